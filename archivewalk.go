package classpath

import (
	"fmt"
	"strings"
)

// scanArchive opens the archive behind the root and traverses its
// entries in the archive's natural order.
func (r *Root) scanArchive() error {
	if r.reader == nil {
		return fmt.Errorf("%w: %s", ErrNoArchiveReader, r.url)
	}

	ar, err := r.reader.Open(r.source)
	if err != nil {
		return fmt.Errorf("classpath: open archive %s: %w", r.url, err)
	}
	defer ar.Close()

	r.log().Debug("scanning archive", "url", r.url, "source", r.source)

	d := newBatcher(r.batchCap, archiveOpener{archive: ar}, r.logger)
	if r.plan == planSingleDefault {
		return r.scanArchiveDefault(ar, d)
	}
	return r.scanArchiveOffsets(ar, d)
}

// scanArchiveDefault attributes every entry to the sole default binding
// with its name used as-is, skipping offset resolution entirely.
func (r *Root) scanArchiveDefault(ar Archive, d *batcher) error {
	b := r.offsets.first()
	for ae := range ar.Entries() {
		err := d.push(Entry{
			RootURL: r.url,
			URL:     b.url,
			Name:    ae.Name,
			Path:    ae.Name,
			Dir:     ae.Dir,
		}, b)
		if err != nil {
			return err
		}
	}
	return d.flush(b)
}

// scanArchiveOffsets re-resolves the active binding whenever an entry
// name leaves the active offset prefix, flushing pending entries
// against the previous binding before each switch.
//
// Entries resolving to a binding without subscribers are discarded
// without buffering; entries matching no binding at all are dropped.
func (r *Root) scanArchiveOffsets(ar Archive, d *batcher) error {
	var (
		active     *binding
		lastPrefix string
		strip      int
		haveSubs   bool
	)

	for ae := range ar.Entries() {
		if lastPrefix == "" || !strings.HasPrefix(ae.Name, lastPrefix) {
			next := r.offsets.resolve(ae.Name)
			if next != active {
				if err := d.flush(active); err != nil {
					return err
				}
				active = next
				if active == nil {
					lastPrefix = ""
					strip = 0
					haveSubs = false
					continue
				}
				lastPrefix = active.offset
				strip = len(lastPrefix)
				haveSubs = len(active.subscribers) > 0
			}
		}

		if active == nil || !haveSubs {
			continue
		}

		path := ae.Name
		if strip > 0 {
			path = path[strip:]
		}
		err := d.push(Entry{
			RootURL: r.url,
			URL:     active.url,
			Name:    ae.Name,
			Path:    path,
			Dir:     ae.Dir,
		}, active)
		if err != nil {
			return err
		}
	}
	return d.flush(active)
}
