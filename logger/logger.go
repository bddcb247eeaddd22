package logger

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"go.uber.org/multierr"

	"github.com/philipp01105/sinklog/core"
	"github.com/philipp01105/sinklog/sink"
)

// DefaultQueueSize is the capacity of the deferred queue
const DefaultQueueSize = 8192

// Logger fans records out to an ordered set of sinks. The threshold,
// flush level, pattern and sink set can change at runtime; the name and
// the delivery mode are fixed at Build time.
type Logger struct {
	name       string
	mode       Mode
	callerSkip int
	level      atomic.Int32
	flushLevel atomic.Int32

	mu      sync.Mutex // serializes sink set and pattern changes
	sinks   atomic.Pointer[[]sink.Sink]
	pattern string

	pipe  pipeline
	stats *Stats
}

// Builder provides a fluent API for building Logger instances
type Builder struct {
	name       string
	sinks      []sink.Sink
	level      core.Level
	flushLevel core.Level
	mode       Mode
	pattern    string
	queueSize  int
	callerSkip int
}

// NewBuilder creates a new logger builder
func NewBuilder() *Builder {
	return &Builder{
		level:      core.InfoLevel, // Default level
		flushLevel: core.OffLevel,
		mode:       Immediate,
		queueSize:  DefaultQueueSize,
	}
}

// WithName sets the logger name rendered by %n
func (b *Builder) WithName(name string) *Builder {
	b.name = name
	return b
}

// WithSinks appends sinks in delivery order
func (b *Builder) WithSinks(sinks ...sink.Sink) *Builder {
	b.sinks = append(b.sinks, sinks...)
	return b
}

// WithLevel sets the log level
func (b *Builder) WithLevel(level core.Level) *Builder {
	b.level = level
	return b
}

// WithFlushOn makes records at or above level flush every sink
func (b *Builder) WithFlushOn(level core.Level) *Builder {
	b.flushLevel = level
	return b
}

// WithMode sets the delivery mode
func (b *Builder) WithMode(mode Mode) *Builder {
	b.mode = mode
	return b
}

// WithPattern applies pattern to every sink at Build time
func (b *Builder) WithPattern(pattern string) *Builder {
	b.pattern = pattern
	return b
}

// WithQueueSize sets the deferred queue capacity
func (b *Builder) WithQueueSize(n int) *Builder {
	if n > 0 {
		b.queueSize = n
	}
	return b
}

// WithCallerSkip skips extra stack frames when tagging call sites, for
// wrappers around the Logger's level methods.
func (b *Builder) WithCallerSkip(skip int) *Builder {
	b.callerSkip = skip
	return b
}

// Build creates the Logger instance and, in Deferred mode, starts its
// worker.
func (b *Builder) Build() *Logger {
	l := &Logger{
		name:       b.name,
		mode:       b.mode,
		callerSkip: b.callerSkip,
		stats:      NewStats(),
	}
	l.storeSinks(append([]sink.Sink(nil), b.sinks...))
	l.level.Store(int32(b.level))
	l.flushLevel.Store(int32(b.flushLevel))
	if b.pattern != "" {
		l.SetPattern(b.pattern)
	}
	l.pipe = newPipeline(l, b.mode, b.queueSize)
	return l
}

// Name returns the logger name
func (l *Logger) Name() string {
	return l.name
}

// Mode returns the delivery mode
func (l *Logger) Mode() Mode {
	return l.mode
}

// Level returns the threshold
func (l *Logger) Level() core.Level {
	return core.Level(l.level.Load())
}

// SetLevel changes the threshold
func (l *Logger) SetLevel(level core.Level) {
	l.level.Store(int32(level))
}

// ShouldLog reports whether a record at level passes the threshold
func (l *Logger) ShouldLog(level core.Level) bool {
	return level.Enabled(l.Level())
}

// FlushLevel returns the level at which sinks are flushed automatically
func (l *Logger) FlushLevel() core.Level {
	return core.Level(l.flushLevel.Load())
}

// FlushOn flushes every sink after records at or above level.
// OffLevel disables automatic flushing.
func (l *Logger) FlushOn(level core.Level) {
	l.flushLevel.Store(int32(level))
}

// Pattern returns the pattern last set on the Logger
func (l *Logger) Pattern() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pattern
}

// SetPattern records pattern and applies it to every attached sink.
// Sinks attached later keep their own pattern until it is set again.
func (l *Logger) SetPattern(pattern string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pattern = pattern
	for _, s := range l.loadSinks() {
		s.SetPattern(pattern)
	}
}

// Sinks returns a copy of the sink set in delivery order
func (l *Logger) Sinks() []sink.Sink {
	return append([]sink.Sink(nil), l.loadSinks()...)
}

// AddSink appends s to the sink set. The Logger's pattern is not applied.
func (l *Logger) AddSink(s sink.Sink) {
	l.mu.Lock()
	cur := l.loadSinks()
	next := make([]sink.Sink, len(cur), len(cur)+1)
	copy(next, cur)
	l.storeSinks(append(next, s))
	l.mu.Unlock()
}

// SetSinks replaces the sink set. The replaced sinks are not closed.
func (l *Logger) SetSinks(sinks ...sink.Sink) {
	l.mu.Lock()
	l.storeSinks(append([]sink.Sink(nil), sinks...))
	l.mu.Unlock()
}

// ClearSinks detaches every sink without closing it
func (l *Logger) ClearSinks() {
	l.SetSinks()
}

// Stats returns a snapshot of delivery statistics
func (l *Logger) Stats() Snapshot {
	return l.stats.GetSnapshot()
}

// ResetStats zeroes the delivery statistics
func (l *Logger) ResetStats() {
	l.stats.Reset()
}

// Log logs a message at the specified level
func (l *Logger) Log(level core.Level, msg string) {
	if !l.ShouldLog(level) {
		return
	}
	l.emit(level, core.GetCaller(1+l.callerSkip), msg)
}

// LogAt logs a message with an explicit source location
func (l *Logger) LogAt(level core.Level, caller core.CallerInfo, msg string) {
	if !l.ShouldLog(level) {
		return
	}
	l.emit(level, caller, msg)
}

// Trace logs a trace message with formatting
func (l *Logger) Trace(format string, args ...interface{}) {
	l.logf(core.TraceLevel, format, args)
}

// Debug logs a debug message with formatting
func (l *Logger) Debug(format string, args ...interface{}) {
	l.logf(core.DebugLevel, format, args)
}

// Info logs an info message with formatting
func (l *Logger) Info(format string, args ...interface{}) {
	l.logf(core.InfoLevel, format, args)
}

// Warn logs a warning message with formatting
func (l *Logger) Warn(format string, args ...interface{}) {
	l.logf(core.WarnLevel, format, args)
}

// Error logs an error message with formatting
func (l *Logger) Error(format string, args ...interface{}) {
	l.logf(core.ErrorLevel, format, args)
}

// Critical logs a critical message with formatting
func (l *Logger) Critical(format string, args ...interface{}) {
	l.logf(core.CriticalLevel, format, args)
}

// logf is only called from the level methods, which fixes the caller
// depth at two frames.
func (l *Logger) logf(level core.Level, format string, args []interface{}) {
	// Level check before formatting or caller lookup
	if !l.ShouldLog(level) {
		return
	}
	l.emit(level, core.GetCaller(2+l.callerSkip), sprintf(format, args))
}

func (l *Logger) emit(level core.Level, caller core.CallerInfo, msg string) {
	rec := core.GetRecord()
	rec.Level = level
	rec.Message = msg
	rec.Caller = caller
	rec.LoggerName = l.name
	l.pipe.submit(rec)
}

// dispatch writes rec to every sink in order and applies the flush level.
// Sink errors are counted, not returned.
func (l *Logger) dispatch(rec *core.Record) {
	for _, s := range l.loadSinks() {
		if err := s.Log(rec); err != nil {
			l.stats.SinkErrors.Add(1)
		}
	}
	l.stats.Processed.Add(1)

	if fl := l.FlushLevel(); fl != core.OffLevel && rec.Level >= fl {
		_ = l.flushSinks()
	}
}

func (l *Logger) flushSinks() error {
	var err error
	for _, s := range l.loadSinks() {
		if ferr := s.Flush(); ferr != nil {
			l.stats.SinkErrors.Add(1)
			err = multierr.Append(err, ferr)
		}
	}
	return err
}

// Flush flushes every sink. In Deferred mode it first waits for the
// records queued before the call to be written.
func (l *Logger) Flush() error {
	return l.pipe.flush()
}

// Close drains pending records, flushes and closes the sinks that
// implement io.Closer. Records logged after Close are dropped.
func (l *Logger) Close() error {
	l.pipe.close()
	err := l.flushSinks()

	for _, s := range l.loadSinks() {
		if c, ok := s.(io.Closer); ok {
			err = multierr.Append(err, c.Close())
		}
	}
	return err
}

// loadSinks returns the current sink set. The slice is never mutated
// after it is stored; writers replace it under mu.
func (l *Logger) loadSinks() []sink.Sink {
	if p := l.sinks.Load(); p != nil {
		return *p
	}
	return nil
}

func (l *Logger) storeSinks(sinks []sink.Sink) {
	l.sinks.Store(&sinks)
}

func sprintf(format string, args []interface{}) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
