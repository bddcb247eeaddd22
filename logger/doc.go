// Package logger is the public API of sinklog. Most users only need to
// import this package.
//
// A Logger fans records out to an ordered set of sinks, either on the
// caller's goroutine (Immediate) or through a bounded queue drained by a
// single worker (Deferred). A full queue blocks the caller instead of
// dropping records, and closing a Logger delivers everything queued.
//
// Programs usually go through a Facade, which owns at most one Logger
// with a console sink and a rotating file sink. The package-level
// functions use a process-wide Facade that initializes itself on first
// use:
//
//	logger.Init(logger.DebugLevel, logger.Immediate, "")
//	logger.Info("listening on %s", addr)
//	logger.WarnIf(retries > 3, "retried %d times", retries)
//	defer logger.Reset()
//
// Error and Critical flush every sink before returning. Re-running Init
// with the same mode keeps the Logger and only swaps pattern and
// threshold; a different mode replaces it.
//
// Loggers can also be built directly:
//
//	log := logger.NewBuilder().
//	    WithSinks(sink.NewWriterSink(os.Stderr)).
//	    WithLevel(logger.DebugLevel).
//	    WithMode(logger.Deferred).
//	    Build()
//	defer log.Close()
//
// Level checks happen before any formatting, so filtered-out messages
// cost an atomic load and a comparison.
package logger
