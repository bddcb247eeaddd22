package logger

import (
	"bytes"
	"errors"
	"strings"
	"sync"

	"github.com/philipp01105/sinklog/core"
	"github.com/philipp01105/sinklog/formatter"
	"github.com/philipp01105/sinklog/sink"
)

// bufferedSink holds rendered lines until Flush moves them to the
// visible output.
type bufferedSink struct {
	sink.Base
	pending []string
	flushed []string
	flushes int
}

func (s *bufferedSink) Log(rec *core.Record) error {
	return s.Render(rec, func(line []byte, _ formatter.ColorRange) error {
		s.pending = append(s.pending, string(bytes.TrimSuffix(line, []byte{'\n'})))
		return nil
	})
}

func (s *bufferedSink) Flush() error {
	return s.Locked(func() error {
		s.flushed = append(s.flushed, s.pending...)
		s.pending = nil
		s.flushes++
		return nil
	})
}

func (s *bufferedSink) visible() []string {
	var out []string
	_ = s.Locked(func() error {
		out = append(out, s.flushed...)
		return nil
	})
	return out
}

func (s *bufferedSink) flushCount() int {
	n := 0
	_ = s.Locked(func() error {
		n = s.flushes
		return nil
	})
	return n
}

// gatedSink blocks every Log until the gate is opened.
type gatedSink struct {
	*sink.MemorySink
	gate chan struct{}
	once sync.Once
}

func newGatedSink() *gatedSink {
	return &gatedSink{MemorySink: sink.NewMemorySink(), gate: make(chan struct{})}
}

func (s *gatedSink) Log(rec *core.Record) error {
	<-s.gate
	return s.MemorySink.Log(rec)
}

func (s *gatedSink) open() {
	s.once.Do(func() { close(s.gate) })
}

var errSink = errors.New("sink failed")

// failingSink rejects every write and flush.
type failingSink struct {
	sink.Base
}

func (s *failingSink) Log(*core.Record) error { return errSink }
func (s *failingSink) Flush() error           { return errSink }

// closingSink records whether Close was called.
type closingSink struct {
	*sink.MemorySink
	closed bool
}

func (s *closingSink) Close() error {
	s.closed = true
	return nil
}

// syncBuffer is a bytes.Buffer safe for a writer and a reader on
// different goroutines.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := strings.TrimSuffix(b.buf.String(), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
