package classpath

import (
	"fmt"
	"os"
)

// Scan traverses the physical source and delivers discovered entries to
// the subscribed observers in bounded batches.
//
// Roots nobody subscribed to are skipped without touching the file
// system. Any failure is terminal for this root's pass: negotiation
// must be rerun before scanning again. Scan is synchronous and not
// cancellable once started; callers wanting cancellation between roots
// use Scanner.Scan.
func (r *Root) Scan() error {
	if !r.offsets.anySubscribers() {
		r.log().Debug("skipping root, no subscribers", "url", r.url)
		return nil
	}

	info, err := os.Stat(r.source)
	if err != nil {
		return fmt.Errorf("classpath: stat %s: %w", r.url, err)
	}
	if info.IsDir() {
		return r.scanDirectory()
	}
	return r.scanArchive()
}
