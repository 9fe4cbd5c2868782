package classpath

import "io"

// Observer receives discovered resources from a scan pass.
//
// The scanner never inspects an observer beyond these three
// capabilities. Observers are compared by identity, so the same value
// must be used for subscription and unsubscription.
//
// The scanner makes no thread-safety guarantee around observer calls:
// when one observer instance is shared across roots scanned in
// parallel, the observer itself must synchronize.
type Observer interface {
	// Interested reports whether the observer wants resources from the
	// offset binding identified by url. It is asked once per binding
	// during negotiation. An error is fatal to the whole negotiation
	// for that root.
	Interested(url string) (bool, error)

	// Select returns the subset of the offered batch the observer
	// wants delivered. Returning nil or an empty slice declines the
	// whole batch. The batch slice is only valid for the duration of
	// the call.
	Select(batch []Entry) ([]Entry, error)

	// Deliver hands over one selected entry together with its content
	// stream. The stream is valid only for the duration of the call;
	// the scanner closes it afterward.
	Deliver(entry Entry, r io.Reader) error
}
