// Package core defines the shared types used across sinklog.
//
// It provides the Level type for severity filtering, the Record type that
// represents a single log event, and CallerInfo for the source location
// every record is tagged with.
//
// Records are pooled via sync.Pool. Callers get a Record with GetRecord and
// return it with PutRecord once every sink has consumed it. Sinks render a
// record synchronously inside Log and must not keep a reference to it
// afterwards; the deferred pipeline recycles records as soon as the worker
// has fanned them out.
package core
