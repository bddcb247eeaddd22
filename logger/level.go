package logger

import (
	"strings"

	"github.com/philipp01105/sinklog/core"
)

// Level Re-export type and constants for convenience
type Level = core.Level

const (
	TraceLevel    = core.TraceLevel
	DebugLevel    = core.DebugLevel
	InfoLevel     = core.InfoLevel
	WarnLevel     = core.WarnLevel
	ErrorLevel    = core.ErrorLevel
	CriticalLevel = core.CriticalLevel
	OffLevel      = core.OffLevel
)

// ParseLevel converts a string to a Level, falling back to InfoLevel
func ParseLevel(s string) Level {
	return core.ParseLevel(s)
}

// Mode selects how records travel from the caller to the sinks. A
// Logger's mode is fixed when it is built.
type Mode uint8

const (
	// Immediate writes to every sink on the caller's goroutine
	Immediate Mode = iota
	// Deferred enqueues records for a single background worker
	Deferred
)

// String returns the string representation of the mode
func (m Mode) String() string {
	switch m {
	case Immediate:
		return "immediate"
	case Deferred:
		return "deferred"
	default:
		return "unknown"
	}
}

// ParseMode converts a string to a Mode, falling back to Deferred
func ParseMode(s string) Mode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "immediate", "sync":
		return Immediate
	default:
		return Deferred
	}
}
