package classpath

// Entry describes one discovered resource.
//
// Entries are transient: they are created during traversal, offered to
// observers for one batch cycle, and discarded. Observers that need an
// entry beyond a Select or Deliver call must copy it.
type Entry struct {
	// RootURL is the url of the owning root.
	RootURL string

	// URL is the url of the matched offset binding. For the default
	// whole-root binding it equals RootURL.
	URL string

	// Name is the physical handle: the archive entry name, or the
	// root-relative file path for directory-backed roots.
	Name string

	// Path is the resource path relative to the matched offset, with
	// the offset prefix stripped. Always slash-separated.
	Path string

	// Dir reports whether the entry is a directory.
	Dir bool
}
