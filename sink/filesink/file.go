package filesink

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/philipp01105/sinklog/core"
	"github.com/philipp01105/sinklog/formatter"
	"github.com/philipp01105/sinklog/sink"
)

const (
	// DefaultFilename is the log file used when none is configured
	DefaultFilename = "logs/sinklog.log"
	// DefaultMaxSizeMB is the rotation threshold in megabytes
	DefaultMaxSizeMB = 5
	// DefaultMaxBackups is the number of rotated files kept
	DefaultMaxBackups = 3
	// DefaultBufferSize is the write buffer size in bytes
	DefaultBufferSize = 256 * 1024
	// DefaultFlushInterval bounds how long output may sit in the buffer
	DefaultFlushInterval = 30 * time.Second
)

// ErrClosed is returned when logging to a closed sink
var ErrClosed = errors.New("filesink: sink is closed")

// Config holds configuration for the file sink
type Config struct {
	// Filename is the path to the log file (default: logs/sinklog.log)
	Filename string
	// MaxSizeMB is the size in megabytes that triggers rotation (default: 5)
	MaxSizeMB int
	// MaxBackups is the number of rotated files to retain (default: 3)
	MaxBackups int
	// MaxAgeDays removes rotated files older than this many days (0 = keep)
	MaxAgeDays int
	// Compress gzips rotated files
	Compress bool
	// LocalTime uses local time in rotated file names instead of UTC
	LocalTime bool
	// BufferSize is the in-memory write buffer in bytes (default: 256 KiB)
	BufferSize int
	// FlushInterval is the periodic flush interval (default: 30s)
	FlushInterval time.Duration
}

// applyFileDefaults fills in zero-value fields with defaults.
func applyFileDefaults(cfg *Config) {
	if cfg.Filename == "" {
		cfg.Filename = DefaultFilename
	}
	if cfg.MaxSizeMB <= 0 {
		cfg.MaxSizeMB = DefaultMaxSizeMB
	}
	if cfg.MaxBackups <= 0 {
		cfg.MaxBackups = DefaultMaxBackups
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = DefaultBufferSize
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = DefaultFlushInterval
	}
}

// Sink writes records to a rotating file
type Sink struct {
	sink.Base
	filename string
	rotator  *lumberjack.Logger
	ws       *zapcore.BufferedWriteSyncer
	closed   bool
}

// New creates the log directory, checks that the file can be opened and
// returns the sink.
func New(cfg Config) (*Sink, error) {
	applyFileDefaults(&cfg)

	if err := os.MkdirAll(filepath.Dir(cfg.Filename), 0o755); err != nil {
		return nil, fmt.Errorf("filesink: create log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.Filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("filesink: open %s: %w", cfg.Filename, err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("filesink: close %s: %w", cfg.Filename, err)
	}

	rotator := &lumberjack.Logger{
		Filename:   cfg.Filename,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
		LocalTime:  cfg.LocalTime,
	}

	return &Sink{
		filename: cfg.Filename,
		rotator:  rotator,
		ws: &zapcore.BufferedWriteSyncer{
			WS:            zapcore.AddSync(rotator),
			Size:          cfg.BufferSize,
			FlushInterval: cfg.FlushInterval,
		},
	}, nil
}

// Filename returns the path of the active log file
func (s *Sink) Filename() string {
	return s.filename
}

// Log renders rec into the write buffer
func (s *Sink) Log(rec *core.Record) error {
	return s.Render(rec, func(line []byte, _ formatter.ColorRange) error {
		if s.closed {
			return ErrClosed
		}
		_, err := s.ws.Write(line)
		return err
	})
}

// Flush writes the buffer to the file
func (s *Sink) Flush() error {
	return s.Locked(func() error {
		if s.closed {
			return nil
		}
		return s.ws.Sync()
	})
}

// Rotate flushes pending output and starts a new file
func (s *Sink) Rotate() error {
	return s.Locked(func() error {
		if s.closed {
			return ErrClosed
		}
		if err := s.ws.Sync(); err != nil {
			return err
		}
		return s.rotator.Rotate()
	})
}

// Close flushes the buffer and closes the file
func (s *Sink) Close() error {
	return s.Locked(func() error {
		if s.closed {
			return nil
		}
		s.closed = true
		return multierr.Append(s.ws.Stop(), s.rotator.Close())
	})
}
