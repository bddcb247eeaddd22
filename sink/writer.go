package sink

import (
	"io"

	"github.com/philipp01105/sinklog/core"
	"github.com/philipp01105/sinklog/formatter"
)

// WriterSink writes rendered records to an io.Writer.
type WriterSink struct {
	Base
	w io.Writer
}

// NewWriterSink creates a sink writing to w
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// Log renders rec and writes it to the underlying writer
func (s *WriterSink) Log(rec *core.Record) error {
	return s.Render(rec, func(line []byte, _ formatter.ColorRange) error {
		_, err := s.w.Write(line)
		return err
	})
}

// Flush calls the writer's Flush (bufio.Writer) or Sync (os.File) method
// when it has one.
func (s *WriterSink) Flush() error {
	return s.Locked(func() error {
		switch w := s.w.(type) {
		case interface{ Flush() error }:
			return w.Flush()
		case interface{ Sync() error }:
			return w.Sync()
		}
		return nil
	})
}
