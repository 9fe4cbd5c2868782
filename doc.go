// Package classpath discovers resource entries inside classpath roots
// (expanded directory trees or packed archive files) and delivers them
// in bounded batches to a dynamic set of observers.
//
// A single archive may carry several logical mount points ("offsets"):
// distinct sub-trees inside one physical file that are negotiated and
// delivered as independent roots, the way bundlers pack multiple
// logical classpath entries into a single jar.
//
// # Quick Start
//
// Build a Scanner, feed it classpath entries, and run one scan pass:
//
//	s := classpath.NewScanner()
//	if err := s.AddClasspath(os.Getenv("CLASSPATH")); err != nil {
//	    return err
//	}
//	if err := s.Scan(ctx, observer); err != nil {
//	    return err
//	}
//
// Observers implement the three-method [Observer] contract: an interest
// test per offset url, batch selection, and per-entry delivery.
//
// # Roots and Offsets
//
// Roots can also be constructed, negotiated, and scanned individually:
//
//	r, err := classpath.NewRoot(url, "/path/to/app.jar")
//	if err != nil {
//	    return err
//	}
//	r.RegisterOffset("lib1/", urlA)
//	r.RegisterOffset("lib2/", urlB)
//	if err := r.Negotiate(observer); err != nil {
//	    return err
//	}
//	err = r.Scan()
//
// Archive access is pluggable through the [archive.Reader] contract;
// the ziparchive package supplies the default zip-backed reader.
package classpath
