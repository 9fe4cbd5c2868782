package classpath

import "errors"

// Sentinel errors for the classpath package.
var (
	// ErrInvalidURL is returned when a classpath URL cannot be parsed.
	ErrInvalidURL = errors.New("classpath: invalid url")

	// ErrNoArchiveReader is returned when an archive-backed root is
	// scanned without a configured archive reader.
	ErrNoArchiveReader = errors.New("classpath: no archive reader")
)
