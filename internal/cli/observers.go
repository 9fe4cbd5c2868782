package cli

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/opencontainers/go-digest"

	classpath "github.com/wwan174/classpath-scanner"
)

// Interface compliance.
var (
	_ classpath.Observer = (*collectObserver)(nil)
	_ classpath.Observer = (*digestObserver)(nil)
	_ classpath.Observer = (*extractObserver)(nil)
)

// collectedEntry is one listed resource with its content size.
type collectedEntry struct {
	entry classpath.Entry
	size  int64
}

// collectObserver records every delivered entry for the list command.
// Safe for parallel scans.
type collectObserver struct {
	include []string
	dirs    bool

	mu      sync.Mutex
	entries []collectedEntry
}

func (o *collectObserver) Interested(string) (bool, error) { return true, nil }

func (o *collectObserver) Select(batch []classpath.Entry) ([]classpath.Entry, error) {
	return selectEntries(batch, o.include, o.dirs), nil
}

func (o *collectObserver) Deliver(e classpath.Entry, r io.Reader) error {
	size, err := io.Copy(io.Discard, r)
	if err != nil {
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	o.entries = append(o.entries, collectedEntry{entry: e, size: size})
	return nil
}

func (o *collectObserver) snapshot() []collectedEntry {
	o.mu.Lock()
	defer o.mu.Unlock()

	entries := slices.Clone(o.entries)
	slices.SortFunc(entries, func(a, b collectedEntry) int {
		if c := strings.Compare(a.entry.RootURL, b.entry.RootURL); c != 0 {
			return c
		}
		return strings.Compare(a.entry.Path, b.entry.Path)
	})
	return entries
}

// digestedEntry is one resource with its canonical content digest.
type digestedEntry struct {
	entry  classpath.Entry
	digest digest.Digest
}

// digestObserver computes content digests for the digest command.
// Directory entries are never selected. Safe for parallel scans.
type digestObserver struct {
	include []string

	mu      sync.Mutex
	entries []digestedEntry
}

func (o *digestObserver) Interested(string) (bool, error) { return true, nil }

func (o *digestObserver) Select(batch []classpath.Entry) ([]classpath.Entry, error) {
	return selectEntries(batch, o.include, false), nil
}

func (o *digestObserver) Deliver(e classpath.Entry, r io.Reader) error {
	d, err := digest.Canonical.FromReader(r)
	if err != nil {
		return fmt.Errorf("digest %s: %w", e.Path, err)
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	o.entries = append(o.entries, digestedEntry{entry: e, digest: d})
	return nil
}

func (o *digestObserver) snapshot() []digestedEntry {
	o.mu.Lock()
	defer o.mu.Unlock()

	entries := slices.Clone(o.entries)
	slices.SortFunc(entries, func(a, b digestedEntry) int {
		if c := strings.Compare(a.entry.RootURL, b.entry.RootURL); c != 0 {
			return c
		}
		return strings.Compare(a.entry.Path, b.entry.Path)
	})
	return entries
}

// extractObserver writes delivered files under dest, preserving their
// offset-relative paths. Safe for parallel scans.
type extractObserver struct {
	dest    string
	include []string

	mu      sync.Mutex
	written int
}

func (o *extractObserver) Interested(string) (bool, error) { return true, nil }

func (o *extractObserver) Select(batch []classpath.Entry) ([]classpath.Entry, error) {
	return selectEntries(batch, o.include, false), nil
}

func (o *extractObserver) Deliver(e classpath.Entry, r io.Reader) error {
	rel := filepath.FromSlash(e.Path)
	if !filepath.IsLocal(rel) {
		return fmt.Errorf("refusing to extract %q outside %s", e.Path, o.dest)
	}

	target := filepath.Join(o.dest, rel)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	f, err := os.Create(target)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close() //nolint:errcheck // already failing
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	o.mu.Lock()
	o.written++
	o.mu.Unlock()
	return nil
}

func (o *extractObserver) count() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.written
}

// selectEntries filters a batch by the include globs and the dirs
// switch.
func selectEntries(batch []classpath.Entry, include []string, dirs bool) []classpath.Entry {
	var selected []classpath.Entry
	for _, e := range batch {
		if e.Dir && !dirs {
			continue
		}
		if !matchAny(include, e.Path) {
			continue
		}
		selected = append(selected, e)
	}
	return selected
}

// matchAny reports whether p matches any of the globs. Patterns match
// the full slash path or just its base name; no patterns means match
// everything.
func matchAny(patterns []string, p string) bool {
	if len(patterns) == 0 {
		return true
	}
	for _, pattern := range patterns {
		if ok, err := path.Match(pattern, p); err == nil && ok {
			return true
		}
		if ok, err := path.Match(pattern, path.Base(p)); err == nil && ok {
			return true
		}
	}
	return false
}
