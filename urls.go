package classpath

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// FileURL returns the canonical file url for a physical path.
// Directory roots conventionally carry a trailing separator; AddPath
// takes care of that for existing directories.
func FileURL(path string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}

// JarURL returns the canonical url for a logical mount point inside an
// archive, in the "jar:file:...!/offset" form classpath conventions
// use for archive offsets.
func JarURL(path, offset string) string {
	offset = strings.TrimPrefix(offset, "/")
	return fmt.Sprintf("jar:%s!/%s", FileURL(path), offset)
}

// rootLocation is the parsed form of one classpath url: the physical
// source path plus an optional archive offset.
type rootLocation struct {
	source string
	offset string
	jar    bool
}

// parseRootURL parses a classpath entry url. Accepted forms are
// "jar:file:...!/offset" urls, "file:" urls, and bare paths.
func parseRootURL(raw string) (rootLocation, error) {
	if raw == "" {
		return rootLocation{}, fmt.Errorf("%w: empty", ErrInvalidURL)
	}

	if rest, ok := strings.CutPrefix(raw, "jar:"); ok {
		inner, offset, found := strings.Cut(rest, "!")
		if !found {
			return rootLocation{}, fmt.Errorf("%w: %s: missing archive separator", ErrInvalidURL, raw)
		}
		source, err := parseFileURL(inner)
		if err != nil {
			return rootLocation{}, fmt.Errorf("%w: %s: %v", ErrInvalidURL, raw, err)
		}
		return rootLocation{
			source: source,
			offset: strings.TrimPrefix(offset, "/"),
			jar:    true,
		}, nil
	}

	if strings.HasPrefix(raw, "file:") {
		source, err := parseFileURL(raw)
		if err != nil {
			return rootLocation{}, fmt.Errorf("%w: %s: %v", ErrInvalidURL, raw, err)
		}
		return rootLocation{source: source}, nil
	}

	if strings.Contains(raw, ":") && !filepath.IsAbs(raw) {
		if u, err := url.Parse(raw); err == nil && u.Scheme != "" && len(u.Scheme) > 1 {
			return rootLocation{}, fmt.Errorf("%w: %s: unsupported scheme %q", ErrInvalidURL, raw, u.Scheme)
		}
	}

	// Bare physical path.
	return rootLocation{source: raw}, nil
}

// parseFileURL extracts the physical path from a file url. Both the
// "file:///path" and the bare "file:/path" forms are accepted.
func parseFileURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme != "file" {
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host != "" && u.Host != "localhost" {
		return "", fmt.Errorf("unsupported host %q", u.Host)
	}

	p := u.Path
	if p == "" {
		p = u.Opaque
	}
	if p == "" {
		return "", fmt.Errorf("empty path")
	}
	// Strip the slash in front of volume-style paths ("/C:/...").
	if len(p) >= 3 && p[0] == '/' && p[2] == ':' {
		p = p[1:]
	}
	return filepath.FromSlash(p), nil
}
