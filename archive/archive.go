// Package archive defines the contract between the scanner core and
// physical archive implementations.
//
// The core only needs to enumerate entries and open byte streams for
// named entries. Implementations decide how the container format is
// read; the ziparchive package provides the default zip-backed reader.
package archive

import (
	"io"
	"iter"
)

// Entry describes one member of a physical archive.
type Entry struct {
	// Name is the entry's path inside the archive, slash-separated.
	Name string

	// Dir reports whether the entry is a directory marker.
	Dir bool
}

// Reader opens archives from a physical path.
type Reader interface {
	// Open opens the archive at path. The caller owns the returned
	// handle and must close it.
	Open(path string) (Archive, error)
}

// Archive is one open archive handle.
//
// Entries are yielded in the archive's own natural order. The sequence
// is finite and not restartable mid-scan; callers iterate it at most
// once per open handle.
type Archive interface {
	// Entries enumerates the archive's members.
	Entries() iter.Seq[Entry]

	// Open returns the content stream for the named entry. Directory
	// entries yield an empty stream.
	Open(name string) (io.ReadCloser, error)

	// Close releases the underlying handle.
	Close() error
}
