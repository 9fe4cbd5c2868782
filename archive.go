package classpath

import "github.com/wwan174/classpath-scanner/archive"

// Aliases for the archive collaborator contract, re-exported so most
// callers only need this package. Custom archive formats implement
// archive.Reader; ziparchive provides the default implementation.
type (
	// ArchiveReader is an alias for archive.Reader.
	ArchiveReader = archive.Reader

	// Archive is an alias for archive.Archive.
	Archive = archive.Archive

	// ArchiveEntry is an alias for archive.Entry.
	ArchiveEntry = archive.Entry
)
