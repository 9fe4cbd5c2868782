package classpath

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wwan174/classpath-scanner/internal/scantest"
)

func TestScannerAddPathDedupe(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := NewScanner()

	first, err := s.AddPath(dir)
	require.NoError(t, err)
	second, err := s.AddPath(dir)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Len(t, s.Roots(), 1)

	other, err := s.AddPath(t.TempDir())
	require.NoError(t, err)
	assert.NotSame(t, first, other)
	assert.Len(t, s.Roots(), 2)
}

func TestScannerAddPathDirectoryURL(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	zip := filepath.Join(t.TempDir(), "lib.jar")
	scantest.WriteZip(t, zip, []scantest.ZipEntry{{Name: "z.txt", Body: "zulu"}})

	s := NewScanner()
	dirRoot, err := s.AddPath(dir)
	require.NoError(t, err)
	zipRoot, err := s.AddPath(zip)
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(dirRoot.URL(), "/"), "directory urls carry a trailing separator")
	assert.False(t, strings.HasSuffix(zipRoot.URL(), "/"))
}

func TestScannerAddURLJarOffsets(t *testing.T) {
	t.Parallel()

	zip := filepath.Join(t.TempDir(), "lib.jar")
	scantest.WriteZip(t, zip, []scantest.ZipEntry{{Name: "lib1/a.txt", Body: "aa"}})

	s := NewScanner()
	first, err := s.AddURL("jar:" + FileURL(zip) + "!/lib1/")
	require.NoError(t, err)
	second, err := s.AddURL("jar:" + FileURL(zip) + "!/lib2/")
	require.NoError(t, err)

	assert.Same(t, first, second, "jar urls over one archive share a root")
	assert.Len(t, s.Roots(), 1)

	want := []OffsetBinding{
		{Offset: "lib2/", URL: JarURL(first.Source(), "lib2/")},
		{Offset: "lib1/", URL: JarURL(first.Source(), "lib1/")},
	}
	assert.Equal(t, want, first.Offsets())
}

func TestScannerAddURLInvalid(t *testing.T) {
	t.Parallel()

	s := NewScanner()
	_, err := s.AddURL("http://example.com/app.jar")
	assert.ErrorIs(t, err, ErrInvalidURL)
}

func TestScannerAddClasspath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	zip := filepath.Join(t.TempDir(), "lib.jar")
	scantest.WriteZip(t, zip, []scantest.ZipEntry{{Name: "z.txt", Body: "zulu"}})

	sep := string(os.PathListSeparator)
	list := dir + sep + sep + zip

	s := NewScanner()
	require.NoError(t, s.AddClasspath(list))
	assert.Len(t, s.Roots(), 2)
}

func TestScannerAddClasspathInvalidEntry(t *testing.T) {
	t.Parallel()

	s := NewScanner()
	err := s.AddClasspath("http://example.com/app.jar")
	assert.ErrorIs(t, err, ErrInvalidURL)
}

func TestScannerScan(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	scantest.WriteFiles(t, dir, map[string]string{"a.txt": "alpha"})
	zip := filepath.Join(t.TempDir(), "lib.jar")
	scantest.WriteZip(t, zip, []scantest.ZipEntry{{Name: "z.txt", Body: "zulu"}})

	s := NewScanner()
	dirRoot, err := s.AddPath(dir)
	require.NoError(t, err)
	zipRoot, err := s.AddPath(zip)
	require.NoError(t, err)

	obs := &mockObserver{}
	require.NoError(t, s.Scan(context.Background(), obs))

	assert.Equal(t, []string{"a.txt", "z.txt"}, obs.deliveredPaths())
	require.Len(t, obs.delivered, 2)
	assert.Equal(t, dirRoot.URL(), obs.delivered[0].entry.RootURL)
	assert.Equal(t, "alpha", obs.delivered[0].body)
	assert.Equal(t, zipRoot.URL(), obs.delivered[1].entry.RootURL)
	assert.Equal(t, "zulu", obs.delivered[1].body)
}

func TestScannerScanParallel(t *testing.T) {
	t.Parallel()

	s := NewScanner(WithParallelism(4))
	var want []string
	for _, name := range []string{"red", "green", "blue"} {
		dir := t.TempDir()
		scantest.WriteFiles(t, dir, map[string]string{
			name + "-1.txt": name,
			name + "-2.txt": name,
		})
		_, err := s.AddPath(dir)
		require.NoError(t, err)
		want = append(want, name+"-1.txt", name+"-2.txt")
	}
	zip := filepath.Join(t.TempDir(), "lib.jar")
	scantest.WriteZip(t, zip, []scantest.ZipEntry{
		{Name: "z1.txt", Body: "z"},
		{Name: "z2.txt", Body: "z"},
	})
	_, err := s.AddPath(zip)
	require.NoError(t, err)
	want = append(want, "z1.txt", "z2.txt")

	obs := &mockObserver{}
	require.NoError(t, s.Scan(context.Background(), obs))

	assert.ElementsMatch(t, want, obs.deliveredPaths())
}

func TestScannerScanContextCancelled(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts []Option
	}{
		{name: "sequential"},
		{name: "parallel", opts: []Option{WithParallelism(4)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			scantest.WriteFiles(t, dir, map[string]string{"a.txt": "alpha"})

			s := NewScanner(tt.opts...)
			_, err := s.AddPath(dir)
			require.NoError(t, err)

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			obs := &mockObserver{}
			err = s.Scan(ctx, obs)
			assert.ErrorIs(t, err, context.Canceled)
			assert.Empty(t, obs.delivered)
		})
	}
}

func TestScannerSubscriptionsPersistAcrossScans(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	scantest.WriteFiles(t, dir, map[string]string{"a.txt": "alpha"})

	s := NewScanner()
	_, err := s.AddPath(dir)
	require.NoError(t, err)

	first := &mockObserver{}
	second := &mockObserver{}
	require.NoError(t, s.Scan(context.Background(), first, second))
	require.Len(t, first.delivered, 1)
	require.Len(t, second.delivered, 1)

	// A later pass that negotiates only with first still delivers to
	// second, whose earlier subscription stays registered.
	require.NoError(t, s.Scan(context.Background(), first))
	assert.Len(t, first.delivered, 2)
	assert.Len(t, second.delivered, 2)
}

func TestScannerUnsubscribe(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	scantest.WriteFiles(t, dir, map[string]string{"a.txt": "alpha"})

	s := NewScanner()
	_, err := s.AddPath(dir)
	require.NoError(t, err)

	first := &mockObserver{}
	second := &mockObserver{}
	require.NoError(t, s.Scan(context.Background(), first, second))

	s.Unsubscribe(second)
	s.Unsubscribe(second)

	require.NoError(t, s.Scan(context.Background(), first))
	assert.Len(t, first.delivered, 2)
	assert.Len(t, second.delivered, 1, "unsubscribed observer receives nothing new")
}

func TestScannerBatchCapacityOption(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	scantest.WriteFiles(t, dir, map[string]string{
		"a.txt": "a",
		"b.txt": "b",
		"c.txt": "c",
	})

	s := NewScanner(WithBatchCapacity(2))
	_, err := s.AddPath(dir)
	require.NoError(t, err)

	obs := &mockObserver{}
	require.NoError(t, s.Scan(context.Background(), obs))

	assert.Equal(t, []int{2, 1}, obs.batchSizes())
}
