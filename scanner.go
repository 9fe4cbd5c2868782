package classpath

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/wwan174/classpath-scanner/ziparchive"
)

// Scanner collects classpath roots and runs scan passes over them.
//
// Roots are deduplicated by physical source path, so a classpath that
// mentions one archive several times (for example through multiple
// jar-offset urls) produces a single root carrying several offset
// bindings.
type Scanner struct {
	logger   *slog.Logger
	reader   ArchiveReader
	batchCap int
	parallel int
	roots    []*Root
	bySource map[string]*Root
}

// NewScanner creates an empty scanner.
func NewScanner(opts ...Option) *Scanner {
	s := &Scanner{
		reader:   ziparchive.Reader{},
		batchCap: DefaultBatchCapacity,
		parallel: 1,
		bySource: make(map[string]*Root),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// log returns the logger, falling back to a discard logger if nil.
func (s *Scanner) log() *slog.Logger {
	if s.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.logger
}

// Roots returns the collected roots in registration order.
func (s *Scanner) Roots() []*Root {
	return slices.Clone(s.roots)
}

// AddPath adds the directory or archive file at path as a root,
// returning the existing root when the resolved path is already known.
func (s *Scanner) AddPath(path string) (*Root, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("classpath: resolve %s: %w", path, err)
	}
	if r, ok := s.bySource[abs]; ok {
		return r, nil
	}

	url := FileURL(abs)
	if info, statErr := os.Stat(abs); statErr == nil && info.IsDir() {
		url += "/"
	}

	r, err := NewRoot(url, abs,
		RootWithLogger(s.logger),
		RootWithArchiveReader(s.reader),
		RootWithBatchCapacity(s.batchCap),
	)
	if err != nil {
		return nil, err
	}
	s.roots = append(s.roots, r)
	s.bySource[abs] = r
	return r, nil
}

// AddURL adds a classpath entry by url. Plain paths, "file:" urls, and
// "jar:file:...!/offset" urls are accepted; a jar url registers its
// offset on the (deduplicated) root of the physical archive, with the
// full jar url as the offset's logical location.
func (s *Scanner) AddURL(raw string) (*Root, error) {
	loc, err := parseRootURL(raw)
	if err != nil {
		return nil, err
	}

	r, err := s.AddPath(loc.source)
	if err != nil {
		return nil, err
	}
	if loc.jar {
		r.RegisterOffset(loc.offset, JarURL(r.Source(), loc.offset))
	}
	return r, nil
}

// AddClasspath splits list on the platform's path list separator and
// adds every non-empty element.
func (s *Scanner) AddClasspath(list string) error {
	for _, entry := range strings.Split(list, string(os.PathListSeparator)) {
		if entry == "" {
			continue
		}
		if _, err := s.AddURL(entry); err != nil {
			return err
		}
	}
	return nil
}

// Scan negotiates observer interest and traverses every collected
// root, failing fast on the first error.
//
// With parallelism enabled, roots are scanned concurrently up to the
// configured limit; roots never share registries or batch buffers, so
// only observer implementations themselves need to be thread-safe. The
// context is honored between roots; a root's traversal is not
// cancellable once started.
func (s *Scanner) Scan(ctx context.Context, observers ...Observer) error {
	s.log().Info("scanning classpath", "roots", len(s.roots), "observers", len(observers), "parallelism", s.parallel)

	if s.parallel > 1 {
		g, ctx := errgroup.WithContext(ctx)
		g.SetLimit(s.parallel)
		for _, r := range s.roots {
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				return scanRoot(r, observers)
			})
		}
		return g.Wait()
	}

	for _, r := range s.roots {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := scanRoot(r, observers); err != nil {
			return err
		}
	}
	return nil
}

// Unsubscribe removes obs from every root's bindings. Idempotent; call
// between scan passes, not during one.
func (s *Scanner) Unsubscribe(obs Observer) {
	for _, r := range s.roots {
		r.Unsubscribe(obs)
	}
}

// scanRoot runs one root's negotiation and traversal.
func scanRoot(r *Root, observers []Observer) error {
	if err := r.Negotiate(observers...); err != nil {
		return err
	}
	return r.Scan()
}
