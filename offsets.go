package classpath

import (
	"slices"
	"strings"
)

// OffsetBinding is a read-only snapshot of one offset binding.
type OffsetBinding struct {
	// Offset is the normalized entry-name prefix. Empty means the
	// binding covers the whole root.
	Offset string

	// URL is the logical location reported to observers for entries
	// under this offset.
	URL string

	// Subscribers is the number of observers bound to this offset.
	Subscribers int
}

// binding is a logical sub-root inside a classpath root.
type binding struct {
	offset      string
	url         string
	subscribers []Observer
}

// subscribe adds obs to the binding's subscriber set.
func (b *binding) subscribe(obs Observer) {
	if !slices.Contains(b.subscribers, obs) {
		b.subscribers = append(b.subscribers, obs)
	}
}

// offsetSet owns the offset bindings of one root, kept in descending
// lexicographic order of offset. The empty offset, being smallest,
// always sorts last and acts as the fallback during resolution.
type offsetSet struct {
	bindings []*binding
}

// register creates a binding for the normalized offset if it is new.
// One leading separator is stripped from the offset; duplicates are
// ignored, keeping the first registration and its url.
func (s *offsetSet) register(offset, url string) *binding {
	offset = strings.TrimPrefix(offset, "/")
	for _, b := range s.bindings {
		if b.offset == offset {
			return b
		}
	}

	b := &binding{offset: offset, url: url}
	s.bindings = append(s.bindings, b)
	slices.SortFunc(s.bindings, func(a, b *binding) int {
		return strings.Compare(b.offset, a.offset)
	})
	return b
}

// resolve returns the first binding in descending order whose non-empty
// offset prefixes name, falling back to the empty-offset binding if one
// exists, else nil.
func (s *offsetSet) resolve(name string) *binding {
	var empty *binding
	for _, b := range s.bindings {
		if b.offset == "" {
			empty = b
		} else if strings.HasPrefix(name, b.offset) {
			return b
		}
	}
	return empty
}

// first returns the head binding in descending order, or nil when no
// binding exists.
func (s *offsetSet) first() *binding {
	if len(s.bindings) == 0 {
		return nil
	}
	return s.bindings[0]
}

// anySubscribers reports whether at least one binding has a subscriber.
func (s *offsetSet) anySubscribers() bool {
	for _, b := range s.bindings {
		if len(b.subscribers) > 0 {
			return true
		}
	}
	return false
}

// unsubscribe removes obs from every binding. Idempotent.
func (s *offsetSet) unsubscribe(obs Observer) {
	for _, b := range s.bindings {
		b.subscribers = slices.DeleteFunc(b.subscribers, func(o Observer) bool {
			return o == obs
		})
	}
}
