package classpath

import "fmt"

// Negotiate asks every observer whether it is interested in each offset
// binding, subscribing it where the answer is yes.
//
// When no offset was registered, a single default binding covering the
// whole root is created first, and per-entry offset resolution is
// skipped during the scan. An error from an interest test aborts the
// whole negotiation for this root.
//
// Negotiate may be called again to admit more observers; already
// subscribed observers are not added twice.
func (r *Root) Negotiate(observers ...Observer) error {
	if len(r.offsets.bindings) == 0 {
		r.offsets.register("", r.url)
		r.plan = planSingleDefault
	}

	for _, obs := range observers {
		for _, b := range r.offsets.bindings {
			ok, err := obs.Interested(b.url)
			if err != nil {
				return fmt.Errorf("classpath: interest test by %T for %s: %w", obs, b.url, err)
			}
			if ok {
				b.subscribe(obs)
			}
		}
	}
	return nil
}
