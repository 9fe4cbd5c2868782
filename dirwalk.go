package classpath

import (
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// scanDirectory walks the expanded directory tree behind the root.
//
// Directory-backed roots support only the single default binding: all
// entries are attributed to the first binding in resolution order.
// Directories whose name starts with a dot are pruned, neither emitted
// nor descended into; other directories are emitted as entries in their
// own right before their contents.
func (r *Root) scanDirectory() error {
	b := r.offsets.first()
	if b == nil || len(b.subscribers) == 0 {
		return nil
	}

	root, err := os.OpenRoot(r.source)
	if err != nil {
		return fmt.Errorf("classpath: open %s: %w", r.url, err)
	}
	defer root.Close()

	r.log().Debug("scanning directory", "url", r.url, "source", r.source)

	d := newBatcher(r.batchCap, dirOpener{root: root}, r.logger)
	err = fs.WalkDir(root.FS(), ".", func(path string, de fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("classpath: walk %s: %w", r.url, walkErr)
		}
		if path == "." {
			return nil
		}
		if de.IsDir() && strings.HasPrefix(de.Name(), ".") {
			return fs.SkipDir
		}
		return d.push(Entry{
			RootURL: r.url,
			URL:     b.url,
			Name:    path,
			Path:    path,
			Dir:     de.IsDir(),
		}, b)
	})
	if err != nil {
		return err
	}
	return d.flush(b)
}
