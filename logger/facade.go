package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/philipp01105/sinklog/core"
	"github.com/philipp01105/sinklog/sink"
	"github.com/philipp01105/sinklog/sink/consolesink"
	"github.com/philipp01105/sinklog/sink/filesink"
)

const (
	// DefaultPattern renders local time with microseconds, a colored level
	// and the call site in front of the message.
	DefaultPattern = "[%T.%f] [%^%l%$] [%s@line:%#] %v"
	// DefaultName is the logger name used by the Facade
	DefaultName = "sinklog"
	// DefaultMode is the delivery mode of lazy initialization and the one
	// restored by Reset
	DefaultMode = Deferred
)

// Options configures the sinks a Facade builds
type Options struct {
	// Name is the logger name (default: sinklog)
	Name string
	// Console is the console sink's writer (default: os.Stdout)
	Console io.Writer
	// ConsoleColor selects console colorization (default: ColorAuto)
	ConsoleColor consolesink.ColorMode
	// File configures the rotating file sink
	File filesink.Config
	// DisableFile skips the file sink
	DisableFile bool
	// QueueSize is the deferred queue capacity (default: 8192)
	QueueSize int
}

// applyFacadeDefaults fills in zero-value fields with defaults.
func applyFacadeDefaults(opts *Options) {
	if opts.Name == "" {
		opts.Name = DefaultName
	}
	if opts.Console == nil {
		opts.Console = os.Stdout
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = DefaultQueueSize
	}
}

// Facade owns at most one Logger together with the last applied pattern
// and mode. It initializes lazily on first use, reconfigures in place
// when the mode is unchanged, and rebuilds the Logger when it changes.
//
// All methods are safe for concurrent use. Emits and Flush hold the read
// lock from resolving the Logger until delivery, so Init and Reset, which
// take the write lock, never close a Logger under an in-flight record.
type Facade struct {
	opts Options

	mu      sync.RWMutex
	logger  *Logger
	pattern string
	mode    Mode
}

// NewFacade creates an uninitialized facade
func NewFacade(opts Options) *Facade {
	applyFacadeDefaults(&opts)
	return &Facade{
		opts: opts,
		mode: DefaultMode,
	}
}

// Init configures the facade. An empty pattern selects DefaultPattern.
//
// If no Logger exists or mode differs from the active mode, the current
// Logger is closed (draining its queue) and a new one is built with a
// console sink and a rotating file sink. Otherwise the pattern is applied
// to every attached sink and the threshold updated, keeping the Logger,
// its sinks and its worker.
func (f *Facade) Init(level Level, mode Mode, pattern string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.initLocked(level, mode, pattern)
}

func (f *Facade) initLocked(level Level, mode Mode, pattern string) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	f.pattern = pattern

	if f.logger != nil && mode == f.mode {
		f.logger.SetPattern(pattern)
		f.logger.SetLevel(level)
		f.logger.FlushOn(ErrorLevel)
		return
	}

	f.mode = mode
	if f.logger != nil {
		_ = f.logger.Close()
		f.logger = nil
	}

	sinks, sinkErr := f.buildSinks()
	f.logger = NewBuilder().
		WithName(f.opts.Name).
		WithSinks(sinks...).
		WithMode(mode).
		WithLevel(level).
		WithPattern(pattern).
		WithFlushOn(ErrorLevel).
		WithQueueSize(f.opts.QueueSize).
		Build()

	if sinkErr != nil {
		f.logger.LogAt(WarnLevel, core.GetCaller(0), fmt.Sprintf("file sink unavailable, logging to console only: %v", sinkErr))
	}
}

func (f *Facade) buildSinks() ([]sink.Sink, error) {
	sinks := []sink.Sink{
		consolesink.New(consolesink.Config{
			Writer: f.opts.Console,
			Color:  f.opts.ConsoleColor,
		}),
	}
	if f.opts.DisableFile {
		return sinks, nil
	}
	fs, err := filesink.New(f.opts.File)
	if err != nil {
		return sinks, err
	}
	return append(sinks, fs), nil
}

// Instance returns the current Logger, initializing with InfoLevel,
// DefaultMode and DefaultPattern if needed. Each call reapplies the
// cached pattern to every attached sink, including sinks attached
// directly on the Logger after Init.
func (f *Facade) Instance() *Logger {
	l := f.acquire()
	f.mu.RUnlock()
	return l
}

// acquire returns the Logger with the pattern reapplied, initializing it
// if needed. It returns with the read lock held.
func (f *Facade) acquire() *Logger {
	f.mu.RLock()
	for f.logger == nil {
		f.mu.RUnlock()
		f.mu.Lock()
		if f.logger == nil {
			f.initLocked(InfoLevel, DefaultMode, DefaultPattern)
		}
		f.mu.Unlock()
		f.mu.RLock()
	}
	f.logger.SetPattern(f.pattern)
	return f.logger
}

// Initialized reports whether a Logger is live
func (f *Facade) Initialized() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.logger != nil
}

// Mode returns the cached delivery mode
func (f *Facade) Mode() Mode {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.mode
}

// Pattern returns the cached pattern; empty when uninitialized
func (f *Facade) Pattern() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.pattern
}

// Reset closes the Logger after draining its queue, clears the cached
// pattern and restores DefaultMode. The next use initializes again.
func (f *Facade) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.logger != nil {
		_ = f.logger.Close()
		f.logger = nil
	}
	f.pattern = ""
	f.mode = DefaultMode
}

// Flush flushes every sink, waiting for the deferred queue to drain up to
// this point. It does nothing when uninitialized.
func (f *Facade) Flush() {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.logger != nil {
		_ = f.logger.Flush()
	}
}

// Trace logs a trace message with formatting
func (f *Facade) Trace(format string, args ...interface{}) {
	f.emit(TraceLevel, 2, nil, format, args, nil)
}

// Debug logs a debug message with formatting
func (f *Facade) Debug(format string, args ...interface{}) {
	f.emit(DebugLevel, 2, nil, format, args, nil)
}

// Info logs an info message with formatting
func (f *Facade) Info(format string, args ...interface{}) {
	f.emit(InfoLevel, 2, nil, format, args, nil)
}

// Warn logs a warning message with formatting
func (f *Facade) Warn(format string, args ...interface{}) {
	f.emit(WarnLevel, 2, nil, format, args, nil)
}

// Error logs an error message with formatting and flushes every sink
func (f *Facade) Error(format string, args ...interface{}) {
	f.emit(ErrorLevel, 2, nil, format, args, nil)
}

// Critical logs a critical message with formatting and flushes every sink
func (f *Facade) Critical(format string, args ...interface{}) {
	f.emit(CriticalLevel, 2, nil, format, args, nil)
}

// WarnIf logs a warning when cond is true. When cond is false the
// arguments are never formatted.
func (f *Facade) WarnIf(cond bool, format string, args ...interface{}) {
	if !cond {
		return
	}
	f.emit(WarnLevel, 2, nil, format, args, nil)
}

// WarnIfFunc logs the message built by fn when cond is true. fn is not
// called otherwise.
func (f *Facade) WarnIfFunc(cond bool, fn func() string) {
	if !cond {
		return
	}
	f.emit(WarnLevel, 2, nil, "", nil, fn)
}

// Log logs msg at level
func (f *Facade) Log(level Level, msg string) {
	f.emit(level, 2, nil, msg, nil, nil)
}

// LogAt logs msg at level, tagged with an explicit call site
func (f *Facade) LogAt(level Level, caller core.CallerInfo, msg string) {
	f.emit(level, 0, &caller, msg, nil, nil)
}

// emit resolves the Logger, tags the record with the caller depth frames
// above emit (or with at) and delivers it. The message is fn() when fn is
// set and format expanded with args otherwise; neither is built for a
// filtered record. Error and above flush.
func (f *Facade) emit(level Level, depth int, at *core.CallerInfo, format string, args []interface{}, fn func() string) {
	l := f.acquire()
	defer f.mu.RUnlock()

	if l.ShouldLog(level) {
		var caller core.CallerInfo
		if at != nil {
			caller = *at
		} else {
			caller = core.GetCaller(depth)
		}
		var msg string
		if fn != nil {
			msg = fn()
		} else {
			msg = sprintf(format, args)
		}
		l.emit(level, caller, msg)
	}
	if level >= ErrorLevel && level != OffLevel {
		_ = l.Flush()
	}
}
