package logger

import (
	"sync"

	"github.com/philipp01105/sinklog/core"
)

var (
	defaultFacade = NewFacade(Options{})
	defaultMu     sync.RWMutex
)

// Default returns the process-wide facade used by the package-level
// functions. It stays uninitialized until first use.
func Default() *Facade {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultFacade
}

// SetDefault replaces the process-wide facade. The previous facade is
// not reset.
func SetDefault(f *Facade) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultFacade = f
}

// Package-level convenience functions using the default facade

// Init configures the default facade
func Init(level Level, mode Mode, pattern string) {
	Default().Init(level, mode, pattern)
}

// Instance returns the default facade's Logger, initializing it if needed
func Instance() *Logger {
	return Default().Instance()
}

// Reset closes the default facade's Logger
func Reset() {
	Default().Reset()
}

// Flush flushes the default facade's sinks
func Flush() {
	Default().Flush()
}

// Trace logs a formatted trace message using the default facade
func Trace(format string, args ...interface{}) {
	Default().emit(TraceLevel, 2, nil, format, args, nil)
}

// Debug logs a formatted debug message using the default facade
func Debug(format string, args ...interface{}) {
	Default().emit(DebugLevel, 2, nil, format, args, nil)
}

// Info logs a formatted info message using the default facade
func Info(format string, args ...interface{}) {
	Default().emit(InfoLevel, 2, nil, format, args, nil)
}

// Warn logs a formatted warning using the default facade
func Warn(format string, args ...interface{}) {
	Default().emit(WarnLevel, 2, nil, format, args, nil)
}

// Error logs a formatted error message using the default facade and
// flushes its sinks
func Error(format string, args ...interface{}) {
	Default().emit(ErrorLevel, 2, nil, format, args, nil)
}

// Critical logs a formatted critical message using the default facade
// and flushes its sinks
func Critical(format string, args ...interface{}) {
	Default().emit(CriticalLevel, 2, nil, format, args, nil)
}

// WarnIf logs a formatted warning when cond is true
func WarnIf(cond bool, format string, args ...interface{}) {
	if !cond {
		return
	}
	Default().emit(WarnLevel, 2, nil, format, args, nil)
}

// LogAt logs msg with an explicit call site using the default facade
func LogAt(level Level, caller core.CallerInfo, msg string) {
	Default().LogAt(level, caller, msg)
}
