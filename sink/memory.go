package sink

import (
	"bytes"
	"strings"

	"github.com/philipp01105/sinklog/core"
	"github.com/philipp01105/sinklog/formatter"
)

// MemorySink keeps every rendered line in memory, without the trailing
// newline.
type MemorySink struct {
	Base
	lines []string
}

// NewMemorySink creates an empty memory sink
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// Log renders rec and appends it to the captured lines
func (s *MemorySink) Log(rec *core.Record) error {
	return s.Render(rec, func(line []byte, _ formatter.ColorRange) error {
		s.lines = append(s.lines, string(bytes.TrimSuffix(line, []byte{'\n'})))
		return nil
	})
}

// Flush is a no-op; lines are visible as soon as Log returns.
func (s *MemorySink) Flush() error {
	return nil
}

// Lines returns a copy of the captured lines
func (s *MemorySink) Lines() []string {
	var out []string
	_ = s.Locked(func() error {
		out = make([]string, len(s.lines))
		copy(out, s.lines)
		return nil
	})
	return out
}

// Len returns the number of captured lines
func (s *MemorySink) Len() int {
	n := 0
	_ = s.Locked(func() error {
		n = len(s.lines)
		return nil
	})
	return n
}

// String returns the captured output, one line per record
func (s *MemorySink) String() string {
	lines := s.Lines()
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// Reset discards the captured lines
func (s *MemorySink) Reset() {
	_ = s.Locked(func() error {
		s.lines = nil
		return nil
	})
}
