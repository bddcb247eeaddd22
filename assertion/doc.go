// Package assertion provides fatal invariant checks that log through a
// logger.Facade before terminating the process.
//
//	assertion.Check(len(buf) <= max, "buffer overflow: %d > %d", len(buf), max)
//
// A failed check writes a critical record naming the condition and its
// call site, flushes and resets the facade so nothing buffered is lost,
// and exits with code 134. Building with the release tag turns every
// check into a no-op.
package assertion
