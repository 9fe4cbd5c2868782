package classpath

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/wwan174/classpath-scanner/ziparchive"
)

// testOutputSuffix marks an expanded build-test output directory.
var testOutputSuffix = filepath.Join("target", "test-classes")

// offsetPlan selects the traversal strategy decided during negotiation.
type offsetPlan int

const (
	// planMultiOffset resolves the offset binding per entry.
	planMultiOffset offsetPlan = iota

	// planSingleDefault attributes every entry to the implicit
	// whole-root binding, skipping per-entry resolution.
	planSingleDefault
)

// Root is one physical classpath location to be scanned.
//
// The intended lifecycle is register offsets, negotiate observer
// interest, scan. Bindings and their subscriptions stay registered
// until explicitly unsubscribed, so a retained root can be scanned
// again; discard the root to reset everything.
type Root struct {
	url      string
	source   string
	offsets  offsetSet
	plan     offsetPlan
	batchCap int
	reader   ArchiveReader
	logger   *slog.Logger
}

// RootOption configures a Root.
type RootOption func(*Root)

// RootWithLogger sets the logger for scan operations.
// If not set, logging is disabled.
func RootWithLogger(logger *slog.Logger) RootOption {
	return func(r *Root) {
		r.logger = logger
	}
}

// RootWithArchiveReader sets the reader used to open archive-backed
// sources. The default reads zip archives.
func RootWithArchiveReader(reader ArchiveReader) RootOption {
	return func(r *Root) {
		r.reader = reader
	}
}

// RootWithBatchCapacity sets the number of entries accumulated before a
// batch is dispatched. Values < 1 keep DefaultBatchCapacity.
func RootWithBatchCapacity(n int) RootOption {
	return func(r *Root) {
		if n > 0 {
			r.batchCap = n
		}
	}
}

// NewRoot creates a root for the physical source identified by url.
//
// The source path is resolved once at construction and is immutable
// afterward.
func NewRoot(url, source string, opts ...RootOption) (*Root, error) {
	abs, err := filepath.Abs(source)
	if err != nil {
		return nil, fmt.Errorf("classpath: resolve source %s: %w", source, err)
	}

	r := &Root{
		url:      url,
		source:   abs,
		batchCap: DefaultBatchCapacity,
		reader:   ziparchive.Reader{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// log returns the logger, falling back to a discard logger if nil.
func (r *Root) log() *slog.Logger {
	if r.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return r.logger
}

// URL returns the root's logical location identifier.
func (r *Root) URL() string {
	return r.url
}

// Source returns the resolved physical path backing the root.
func (r *Root) Source() string {
	return r.source
}

// RegisterOffset registers a logical mount point inside the root.
// Offsets must be registered before interest is negotiated.
//
// One leading separator is stripped from offset; the empty string
// covers the whole root. Entries under the offset are reported to
// observers with url in place of the root's own url. Registering an
// already-known offset is a no-op that keeps the first registration.
func (r *Root) RegisterOffset(offset, url string) {
	r.offsets.register(offset, url)
}

// Offsets returns a snapshot of the registered offset bindings in
// resolution order.
func (r *Root) Offsets() []OffsetBinding {
	out := make([]OffsetBinding, 0, len(r.offsets.bindings))
	for _, b := range r.offsets.bindings {
		out = append(out, OffsetBinding{
			Offset:      b.offset,
			URL:         b.url,
			Subscribers: len(b.subscribers),
		})
	}
	return out
}

// Unsubscribe removes obs from every offset binding. Idempotent; call
// between scan passes, not during one.
func (r *Root) Unsubscribe(obs Observer) {
	r.offsets.unsubscribe(obs)
}

// IsTestOutput reports whether the root is an expanded test-output
// directory of a build tree.
func (r *Root) IsTestOutput() bool {
	info, err := os.Stat(r.source)
	if err != nil || !info.IsDir() {
		return false
	}
	return strings.HasSuffix(r.source, testOutputSuffix)
}
