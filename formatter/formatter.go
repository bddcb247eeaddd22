package formatter

import (
	"bytes"
	"sync"

	"github.com/philipp01105/sinklog/core"
)

// Formatter renders a record into a caller-provided buffer.
type Formatter interface {
	// Format appends the rendered record to buf and returns the byte
	// range of buf that should be colorized, if any.
	Format(rec *core.Record, buf *bytes.Buffer) ColorRange
}

// ColorRange marks the part of a rendered line between the %^ and %$
// pattern flags. Offsets are absolute positions in the buffer passed to
// Format.
type ColorRange struct {
	Start int
	End   int
}

// Empty reports whether the range covers no bytes.
func (r ColorRange) Empty() bool {
	return r.End <= r.Start
}

// bufferPool is a pool of bytes.Buffer to reduce allocations
var bufferPool = &sync.Pool{
	New: func() interface{} {
		b := new(bytes.Buffer)
		b.Grow(256)
		return b
	},
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 64*1024 { // Don't keep very large buffers
		return
	}
	bufferPool.Put(buf)
}
