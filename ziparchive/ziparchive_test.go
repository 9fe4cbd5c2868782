package ziparchive

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wwan174/classpath-scanner/archive"
	"github.com/wwan174/classpath-scanner/internal/scantest"
)

func writeFixture(t *testing.T, entries []scantest.ZipEntry) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fixture.jar")
	scantest.WriteZip(t, path, entries)
	return path
}

func TestOpenEntries(t *testing.T) {
	t.Parallel()

	path := writeFixture(t, []scantest.ZipEntry{
		{Name: "a.txt", Body: "alpha"},
		{Name: "dir/"},
		{Name: "dir/b.txt", Body: "bravo"},
	})

	a, err := Open(path)
	require.NoError(t, err)
	defer a.Close()

	var got []archive.Entry
	for e := range a.Entries() {
		got = append(got, e)
	}
	want := []archive.Entry{
		{Name: "a.txt"},
		{Name: "dir/", Dir: true},
		{Name: "dir/b.txt"},
	}
	assert.Equal(t, want, got)
}

func TestArchiveOpen(t *testing.T) {
	t.Parallel()

	path := writeFixture(t, []scantest.ZipEntry{
		{Name: "a.txt", Body: "alpha"},
	})

	a, err := Open(path)
	require.NoError(t, err)
	defer a.Close()

	r, err := a.Open("a.txt")
	require.NoError(t, err)
	body, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())

	assert.Equal(t, "alpha", string(body))
}

func TestArchiveOpenDirectoryEntry(t *testing.T) {
	t.Parallel()

	path := writeFixture(t, []scantest.ZipEntry{
		{Name: "dir/"},
	})

	a, err := Open(path)
	require.NoError(t, err)
	defer a.Close()

	r, err := a.Open("dir/")
	require.NoError(t, err)
	body, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())

	assert.Empty(t, body)
}

func TestArchiveOpenMissing(t *testing.T) {
	t.Parallel()

	path := writeFixture(t, []scantest.ZipEntry{
		{Name: "a.txt", Body: "alpha"},
	})

	a, err := Open(path)
	require.NoError(t, err)
	defer a.Close()

	_, err = a.Open("nope.txt")
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.ErrorContains(t, err, "nope.txt")
}

func TestOpenDuplicateEntriesFirstWins(t *testing.T) {
	t.Parallel()

	path := writeFixture(t, []scantest.ZipEntry{
		{Name: "dup.txt", Body: "one"},
		{Name: "dup.txt", Body: "two"},
	})

	a, err := Open(path)
	require.NoError(t, err)
	defer a.Close()

	var names []string
	for e := range a.Entries() {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"dup.txt", "dup.txt"}, names, "enumeration keeps duplicates")

	r, err := a.Open("dup.txt")
	require.NoError(t, err)
	body, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())

	assert.Equal(t, "one", string(body))
}

func TestOpenNotArchive(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "plain.txt")
	require.NoError(t, os.WriteFile(path, []byte("not an archive"), 0o644))

	_, err := Open(path)
	assert.ErrorIs(t, err, zip.ErrFormat)
	assert.ErrorContains(t, err, path)
}

func TestReaderOpen(t *testing.T) {
	t.Parallel()

	path := writeFixture(t, []scantest.ZipEntry{
		{Name: "a.txt", Body: "alpha"},
	})

	var reader archive.Reader = Reader{}
	a, err := reader.Open(path)
	require.NoError(t, err)
	defer a.Close()

	r, err := a.Open("a.txt")
	require.NoError(t, err)
	body, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())

	assert.Equal(t, "alpha", string(body))
}
