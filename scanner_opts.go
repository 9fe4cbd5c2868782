package classpath

import "log/slog"

// Option configures a Scanner.
type Option func(*Scanner)

// WithLogger sets the logger for scan operations.
// If not set, logging is disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scanner) {
		s.logger = logger
	}
}

// WithArchiveReader sets the reader used to open archive-backed roots.
// The default reads zip archives.
func WithArchiveReader(reader ArchiveReader) Option {
	return func(s *Scanner) {
		s.reader = reader
	}
}

// WithBatchCapacity sets the number of entries accumulated before a
// batch is dispatched. Values < 1 keep DefaultBatchCapacity.
func WithBatchCapacity(n int) Option {
	return func(s *Scanner) {
		if n > 0 {
			s.batchCap = n
		}
	}
}

// WithParallelism sets the number of roots scanned concurrently.
// Values < 2 scan sequentially. Observers shared across roots must be
// thread-safe when parallelism is enabled.
func WithParallelism(n int) Option {
	return func(s *Scanner) {
		if n > 0 {
			s.parallel = n
		}
	}
}
