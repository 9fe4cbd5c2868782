// Package ziparchive reads zip-format archives (jar, war, plain zip)
// for the classpath scanner.
package ziparchive

import (
	"fmt"
	"io"
	"io/fs"
	"iter"

	"github.com/klauspost/compress/zip"

	"github.com/wwan174/classpath-scanner/archive"
)

// Interface compliance.
var (
	_ archive.Reader  = Reader{}
	_ archive.Archive = (*Archive)(nil)
)

// Reader opens zip archives from the local file system.
// It satisfies archive.Reader.
type Reader struct{}

// Open opens the zip archive at path.
func (Reader) Open(path string) (archive.Archive, error) {
	return Open(path)
}

// Archive provides entry enumeration and content streams over one open
// zip file.
type Archive struct {
	rc     *zip.ReadCloser
	byName map[string]*zip.File
}

// Open opens the zip archive at path.
func Open(path string) (*Archive, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("ziparchive: open %s: %w", path, err)
	}

	byName := make(map[string]*zip.File, len(rc.File))
	for _, f := range rc.File {
		// First occurrence wins for duplicate names.
		if _, ok := byName[f.Name]; !ok {
			byName[f.Name] = f
		}
	}
	return &Archive{rc: rc, byName: byName}, nil
}

// Entries yields the archive's members in central directory order.
func (a *Archive) Entries() iter.Seq[archive.Entry] {
	return func(yield func(archive.Entry) bool) {
		for _, f := range a.rc.File {
			e := archive.Entry{Name: f.Name, Dir: f.FileInfo().IsDir()}
			if !yield(e) {
				return
			}
		}
	}
}

// Open returns the content stream for the named entry. Directory
// entries yield an empty stream.
func (a *Archive) Open(name string) (io.ReadCloser, error) {
	f, ok := a.byName[name]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return f.Open()
}

// Close releases the underlying file handle.
func (a *Archive) Close() error {
	return a.rc.Close()
}
