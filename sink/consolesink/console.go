package consolesink

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/sinklog/core"
	"github.com/philipp01105/sinklog/formatter"
	"github.com/philipp01105/sinklog/sink"
)

// ColorMode selects whether the level range is colorized
type ColorMode int

const (
	// ColorAuto colorizes when writing to a terminal
	ColorAuto ColorMode = iota
	// ColorAlways colorizes unconditionally
	ColorAlways
	// ColorNever never colorizes
	ColorNever
)

// String returns the string representation of the mode
func (m ColorMode) String() string {
	switch m {
	case ColorAuto:
		return "auto"
	case ColorAlways:
		return "always"
	case ColorNever:
		return "never"
	default:
		return "unknown"
	}
}

// ParseColorMode converts a string to a ColorMode, defaulting to ColorAuto
func ParseColorMode(s string) ColorMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "always", "on", "true":
		return ColorAlways
	case "never", "off", "false":
		return ColorNever
	default:
		return ColorAuto
	}
}

// Config holds configuration for the console sink
type Config struct {
	// Writer to write to (default: os.Stdout)
	Writer io.Writer
	// Color selects colorization (default: ColorAuto)
	Color ColorMode
}

// applyConsoleDefaults fills in zero-value fields with defaults.
func applyConsoleDefaults(cfg *Config) {
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}
}

// Sink writes records to a console
type Sink struct {
	sink.Base
	out      zapcore.WriteSyncer
	colorize bool
	colors   [core.OffLevel + 1]*color.Color
	scratch  bytes.Buffer
}

// New creates a console sink
func New(cfg Config) *Sink {
	applyConsoleDefaults(&cfg)

	s := &Sink{
		out:      zapcore.Lock(zapcore.AddSync(cfg.Writer)),
		colorize: useColor(cfg.Color, cfg.Writer),
	}
	s.colors = [...]*color.Color{
		core.TraceLevel:    color.New(color.FgWhite),
		core.DebugLevel:    color.New(color.FgCyan),
		core.InfoLevel:     color.New(color.FgGreen),
		core.WarnLevel:     color.New(color.FgYellow, color.Bold),
		core.ErrorLevel:    color.New(color.FgRed, color.Bold),
		core.CriticalLevel: color.New(color.FgHiWhite, color.BgRed, color.Bold),
		core.OffLevel:      color.New(color.Reset),
	}
	for _, c := range s.colors {
		// decided above; don't let the package-level NoColor override it
		c.EnableColor()
	}
	return s
}

// Colorized reports whether the sink emits color escape sequences
func (s *Sink) Colorized() bool {
	return s.colorize
}

// Log renders rec and writes it to the console
func (s *Sink) Log(rec *core.Record) error {
	return s.Render(rec, func(line []byte, cr formatter.ColorRange) error {
		if !s.colorize || cr.Empty() || !rec.Level.Valid() {
			_, err := s.out.Write(line)
			return err
		}
		s.scratch.Reset()
		s.scratch.Write(line[:cr.Start])
		s.scratch.WriteString(s.colors[rec.Level].Sprint(string(line[cr.Start:cr.End])))
		s.scratch.Write(line[cr.End:])
		_, err := s.out.Write(s.scratch.Bytes())
		return err
	})
}

// Flush syncs the underlying writer. Terminals and pipes reject fsync;
// those errors are ignored.
func (s *Sink) Flush() error {
	return s.Locked(func() error {
		err := s.out.Sync()
		if err == nil || errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.ENOTTY) || errors.Is(err, syscall.ENOTSUP) {
			return nil
		}
		return err
	})
}

func useColor(mode ColorMode, w io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isTerminal(w)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
