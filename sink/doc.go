// Package sink provides the Sink interface and the in-process sinks.
//
// A Sink receives records from a Logger, renders them with its own
// compiled pattern and writes the text somewhere. Sinks may buffer and
// must write everything pending when Flush is called. Every sink owns
// its pattern: the Logger pushes its pattern to sinks through SetPattern,
// and a sink that never received one renders with
// formatter.DefaultSinkPattern.
//
// Sinks need to tolerate one writer goroutine plus Flush and SetPattern
// calls from arbitrary goroutines. Embedding Base gives a sink a mutex,
// the compiled pattern and a reusable render buffer, which covers that
// contract.
//
// Built-in sinks:
//
//   - WriterSink writes to any io.Writer.
//   - MemorySink keeps rendered lines in memory, mainly for tests.
//   - consolesink.Sink writes to stdout with a colored level range.
//   - filesink.Sink writes to a size-rotated file.
package sink
