package sink

import (
	"bytes"
	"sync"

	"github.com/philipp01105/sinklog/core"
	"github.com/philipp01105/sinklog/formatter"
)

// Sink defines the interface for log destinations
type Sink interface {
	// Log renders and writes (or buffers) a record. The record must not be
	// retained after Log returns.
	Log(rec *core.Record) error

	// Flush writes any buffered output
	Flush() error

	// SetPattern replaces the pattern the sink renders with
	SetPattern(pattern string)

	// Pattern returns the pattern the sink currently renders with
	Pattern() string
}

var defaultFormatter formatter.Formatter = formatter.NewPattern(formatter.DefaultSinkPattern)

// Base carries the pattern, render buffer and lock shared by the
// built-in sinks. The zero value renders with the default sink pattern.
type Base struct {
	mu      sync.Mutex // protects pattern, format and buf, serializes writes
	pattern string
	format  formatter.Formatter
	buf     bytes.Buffer
}

// SetPattern compiles and installs pattern. Setting the pattern that is
// already installed is a no-op.
func (b *Base) SetPattern(pattern string) {
	b.mu.Lock()
	if b.format == nil || b.pattern != pattern {
		b.pattern = pattern
		b.format = formatter.NewPattern(pattern)
	}
	b.mu.Unlock()
}

// Pattern returns the installed pattern
func (b *Base) Pattern() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.format == nil {
		return formatter.DefaultSinkPattern
	}
	return b.pattern
}

// Render formats rec into the sink-owned buffer under the sink lock and
// hands the result to emit. line is only valid until emit returns.
func (b *Base) Render(rec *core.Record, emit func(line []byte, cr formatter.ColorRange) error) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	f := b.format
	if f == nil {
		f = defaultFormatter
	}
	b.buf.Reset()
	cr := f.Format(rec, &b.buf)
	return emit(b.buf.Bytes(), cr)
}

// Locked runs fn while holding the sink lock.
func (b *Base) Locked(fn func() error) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return fn()
}
