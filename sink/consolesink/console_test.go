package consolesink

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipp01105/sinklog/core"
)

func record(level core.Level, msg string) *core.Record {
	return &core.Record{Time: time.Now(), Level: level, Message: msg}
}

func TestConsoleSink_Plain(t *testing.T) {
	var buf bytes.Buffer
	s := New(Config{Writer: &buf, Color: ColorNever})
	s.SetPattern("[%^%l%$] %v")

	require.NoError(t, s.Log(record(core.InfoLevel, "test message")))
	assert.Equal(t, "[info] test message\n", buf.String())
	assert.False(t, s.Colorized())
}

func TestConsoleSink_Colorized(t *testing.T) {
	var buf bytes.Buffer
	s := New(Config{Writer: &buf, Color: ColorAlways})
	s.SetPattern("[%^%l%$] %v")

	require.NoError(t, s.Log(record(core.ErrorLevel, "boom")))
	out := buf.String()
	assert.True(t, s.Colorized())
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, "error")
	assert.True(t, strings.HasPrefix(out, "["))
	assert.True(t, strings.HasSuffix(out, "] boom\n"))
}

func TestConsoleSink_ColorWithoutRange(t *testing.T) {
	var buf bytes.Buffer
	s := New(Config{Writer: &buf, Color: ColorAlways})
	s.SetPattern("%v")

	require.NoError(t, s.Log(record(core.WarnLevel, "plain")))
	assert.Equal(t, "plain\n", buf.String())
}

func TestConsoleSink_AutoDetectsNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	s := New(Config{Writer: &buf})
	assert.False(t, s.Colorized(), "bytes.Buffer is not a terminal")
}

func TestConsoleSink_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.False(t, useColor(ColorAuto, os.Stdout))
	assert.True(t, useColor(ColorAlways, os.Stdout))
}

func TestConsoleSink_DefaultsToStdout(t *testing.T) {
	cfg := Config{}
	applyConsoleDefaults(&cfg)
	assert.Equal(t, io.Writer(os.Stdout), cfg.Writer)
}

func TestConsoleSink_FlushIgnoresUnsyncableWriters(t *testing.T) {
	s := New(Config{Writer: io.Discard, Color: ColorNever})
	assert.NoError(t, s.Flush())
}

func TestParseColorMode(t *testing.T) {
	tests := map[string]ColorMode{
		"always": ColorAlways,
		"ON":     ColorAlways,
		"never":  ColorNever,
		"off":    ColorNever,
		"auto":   ColorAuto,
		"":       ColorAuto,
		"bogus":  ColorAuto,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseColorMode(in), in)
	}
	assert.Equal(t, "never", ColorNever.String())
}
