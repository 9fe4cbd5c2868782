//go:build integration

// Package integration provides integration tests for the classpath
// scanner library.
//
// These tests assemble multi-root classpaths on the real file system,
// directories and archives together, and scan them end to end through
// the public API. Run with: go test -tags=integration ./integration/...
package integration
