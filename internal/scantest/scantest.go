// Package scantest provides file-system and archive fixtures for
// scanner tests.
package scantest

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/require"
)

// ZipEntry is one member to be written into a fixture archive.
// Names ending in a slash become directory entries; their body must be
// empty.
type ZipEntry struct {
	Name string
	Body string
}

// WriteZip writes a zip archive at path containing entries in order.
// Entry order is preserved, so tests can stage exact offset-switch
// sequences.
func WriteZip(t testing.TB, path string, entries []ZipEntry) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	for _, e := range entries {
		ew, err := w.Create(e.Name)
		require.NoError(t, err)
		if e.Body != "" {
			_, err = ew.Write([]byte(e.Body))
			require.NoError(t, err)
		}
	}
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())
}

// WriteFiles populates dir with the given relative path to content
// mapping, creating parent directories as needed.
func WriteFiles(t testing.TB, dir string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

// NumberedEntries returns n file entries named prefix-%05d.txt, used by
// batch capacity boundary tests.
func NumberedEntries(prefix string, n int) []ZipEntry {
	entries := make([]ZipEntry, 0, n)
	for i := range n {
		entries = append(entries, ZipEntry{
			Name: fmt.Sprintf("%s-%05d.txt", prefix, i),
			Body: fmt.Sprintf("content %d", i),
		})
	}
	return entries
}
