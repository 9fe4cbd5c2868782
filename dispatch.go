package classpath

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// DefaultBatchCapacity is the number of entries accumulated before a
// batch is dispatched to subscribers.
const DefaultBatchCapacity = 3000

// streamOpener opens the physical byte stream behind a scan entry.
// One implementation exists per root kind: directory trees open files,
// archives open member streams.
type streamOpener interface {
	OpenStream(e Entry) (io.ReadCloser, error)
}

// batcher accumulates entries for one traversal and dispatches them in
// bounded batches to the subscribers of the active binding.
type batcher struct {
	capacity int
	opener   streamOpener
	logger   *slog.Logger
	buf      []Entry
}

func newBatcher(capacity int, opener streamOpener, logger *slog.Logger) *batcher {
	if capacity <= 0 {
		capacity = DefaultBatchCapacity
	}
	return &batcher{
		capacity: capacity,
		opener:   opener,
		logger:   logger,
		buf:      make([]Entry, 0, capacity),
	}
}

// log returns the logger, falling back to a discard logger if nil.
func (d *batcher) log() *slog.Logger {
	if d.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return d.logger
}

// push appends e, flushing against b once the capacity is reached.
func (d *batcher) push(e Entry, b *binding) error {
	d.buf = append(d.buf, e)
	if len(d.buf) >= d.capacity {
		return d.flush(b)
	}
	return nil
}

// flush offers the pending batch to every subscriber of b and streams
// the selected entries. An empty batch is a no-op, which also makes
// flushing before the first binding switch safe when b is nil.
//
// The batch is cleared only after all subscribers have been offered it;
// a failing subscriber aborts the flush with the batch intact.
func (d *batcher) flush(b *binding) error {
	if len(d.buf) == 0 {
		return nil
	}

	d.log().Debug("dispatching batch", "entries", len(d.buf), "offset", b.offset, "subscribers", len(b.subscribers))

	for _, obs := range b.subscribers {
		selected, err := obs.Select(d.buf)
		if err != nil {
			return fmt.Errorf("classpath: select by %T: %w", obs, err)
		}
		for _, e := range selected {
			if err := d.deliver(obs, e); err != nil {
				return err
			}
		}
	}

	d.buf = d.buf[:0]
	return nil
}

// deliver streams one entry to obs. The stream is closed after the
// delivery call returns, on success and failure alike.
func (d *batcher) deliver(obs Observer, e Entry) error {
	r, err := d.opener.OpenStream(e)
	if err != nil {
		return fmt.Errorf("classpath: open %s: %w", e.Name, err)
	}

	err = obs.Deliver(e, r)
	_ = r.Close() //nolint:errcheck // stream lifetime ends with the delivery
	if err != nil {
		return fmt.Errorf("classpath: deliver %s to %T: %w", e.Name, obs, err)
	}
	return nil
}

// dirOpener opens files relative to an open directory root.
type dirOpener struct {
	root *os.Root
}

// OpenStream opens the file behind e. Directory entries yield an empty
// stream.
func (o dirOpener) OpenStream(e Entry) (io.ReadCloser, error) {
	if e.Dir {
		return io.NopCloser(bytes.NewReader(nil)), nil
	}
	return o.root.Open(filepath.FromSlash(e.Name))
}

// archiveOpener opens member streams of an open archive.
type archiveOpener struct {
	archive Archive
}

// OpenStream opens the archive member behind e.
func (o archiveOpener) OpenStream(e Entry) (io.ReadCloser, error) {
	return o.archive.Open(e.Name)
}
