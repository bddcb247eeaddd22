package core

import "strings"

// Level represents the severity level of a log record.
// Levels are totally ordered; OffLevel is a sentinel above CriticalLevel
// that disables all emission when used as a threshold.
type Level int8

const (
	// TraceLevel for the finest-grained diagnostics
	TraceLevel Level = iota
	// DebugLevel for detailed debugging information
	DebugLevel
	// InfoLevel for general informational messages (default)
	InfoLevel
	// WarnLevel for warning messages
	WarnLevel
	// ErrorLevel for error messages; triggers a flush by default
	ErrorLevel
	// CriticalLevel for unrecoverable conditions
	CriticalLevel
	// OffLevel disables logging
	OffLevel
)

var levelNames = [...]string{
	TraceLevel:    "trace",
	DebugLevel:    "debug",
	InfoLevel:     "info",
	WarnLevel:     "warning",
	ErrorLevel:    "error",
	CriticalLevel: "critical",
	OffLevel:      "off",
}

var levelLetters = [...]string{
	TraceLevel:    "T",
	DebugLevel:    "D",
	InfoLevel:     "I",
	WarnLevel:     "W",
	ErrorLevel:    "E",
	CriticalLevel: "C",
	OffLevel:      "O",
}

// String returns the lowercase name of the level
func (l Level) String() string {
	if l.Valid() {
		return levelNames[l]
	}
	return "unknown"
}

// Letter returns the single-letter form of the level
func (l Level) Letter() string {
	if l.Valid() {
		return levelLetters[l]
	}
	return "?"
}

// Valid reports whether l is one of the declared levels.
func (l Level) Valid() bool {
	return l >= TraceLevel && l <= OffLevel
}

// Enabled reports whether a record at level l passes the threshold.
func (l Level) Enabled(threshold Level) bool {
	return threshold != OffLevel && l != OffLevel && l >= threshold
}

// ParseLevel converts a string to a Level. Unrecognized input maps to
// InfoLevel.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return TraceLevel
	case "debug":
		return DebugLevel
	case "info":
		return InfoLevel
	case "warn", "warning":
		return WarnLevel
	case "error", "err":
		return ErrorLevel
	case "critical", "fatal":
		return CriticalLevel
	case "off", "none":
		return OffLevel
	default:
		return InfoLevel
	}
}
