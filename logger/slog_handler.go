package logger

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/philipp01105/sinklog/core"
)

// SlogHandler is an adapter that implements slog.Handler on top of a
// Facade, so code written against log/slog ends up in the same sinks.
// Attributes are appended to the message as key=value pairs.
type SlogHandler struct {
	facade *Facade
	attrs  string
	group  string
}

// NewSlogHandler creates a slog.Handler that logs through f
func NewSlogHandler(f *Facade) *SlogHandler {
	return &SlogHandler{facade: f}
}

// Enabled reports whether the facade's threshold passes level
func (s *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return s.facade.Instance().ShouldLog(slogLevelToCore(level))
}

// Handle renders the record's attributes into the message and logs it
// at the record's call site.
func (s *SlogHandler) Handle(_ context.Context, record slog.Record) error {
	var b strings.Builder
	b.WriteString(record.Message)
	b.WriteString(s.attrs)
	record.Attrs(func(a slog.Attr) bool {
		appendAttr(&b, s.group, a)
		return true
	})

	s.facade.LogAt(slogLevelToCore(record.Level), core.CallerFromPC(record.PC), b.String())
	return nil
}

// WithAttrs returns a new SlogHandler with additional attributes.
func (s *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return s
	}
	var b strings.Builder
	b.WriteString(s.attrs)
	for _, a := range attrs {
		appendAttr(&b, s.group, a)
	}
	return &SlogHandler{
		facade: s.facade,
		attrs:  b.String(),
		group:  s.group,
	}
}

// WithGroup returns a new SlogHandler with the given group name.
func (s *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return s
	}
	newGroup := name
	if s.group != "" {
		newGroup = s.group + "." + name
	}
	return &SlogHandler{
		facade: s.facade,
		attrs:  s.attrs,
		group:  newGroup,
	}
}

// slogLevelToCore converts a slog.Level to a core.Level. Levels between
// the named slog levels round down; levels well above Error map to
// CriticalLevel.
func slogLevelToCore(level slog.Level) core.Level {
	switch {
	case level >= slog.LevelError+4:
		return core.CriticalLevel
	case level >= slog.LevelError:
		return core.ErrorLevel
	case level >= slog.LevelWarn:
		return core.WarnLevel
	case level >= slog.LevelInfo:
		return core.InfoLevel
	case level >= slog.LevelDebug:
		return core.DebugLevel
	default:
		return core.TraceLevel
	}
}

// appendAttr writes " key=value", prefixing the key with the group.
// Group attributes are flattened into dotted keys.
func appendAttr(b *strings.Builder, group string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	key := a.Key
	if group != "" && key != "" {
		key = group + "." + key
	} else if key == "" {
		key = group
	}

	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			appendAttr(b, key, ga)
		}
		return
	}

	b.WriteByte(' ')
	b.WriteString(key)
	b.WriteByte('=')
	switch a.Value.Kind() {
	case slog.KindString:
		v := a.Value.String()
		if v == "" || strings.ContainsAny(v, " \t\n\"=") {
			b.WriteString(strconv.Quote(v))
		} else {
			b.WriteString(v)
		}
	case slog.KindTime:
		b.WriteString(a.Value.Time().Format(time.RFC3339Nano))
	default:
		b.WriteString(a.Value.String())
	}
}
