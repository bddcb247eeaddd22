package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipp01105/sinklog/sink"
	"github.com/philipp01105/sinklog/sink/consolesink"
	"github.com/philipp01105/sinklog/sink/filesink"
)

func newConsoleFacade(t *testing.T) (*Facade, *syncBuffer) {
	t.Helper()
	out := &syncBuffer{}
	f := NewFacade(Options{
		Console:      out,
		ConsoleColor: consolesink.ColorNever,
		DisableFile:  true,
	})
	t.Cleanup(f.Reset)
	return f, out
}

func logSix(f *Facade) {
	f.Trace("1")
	f.Debug("2")
	f.Info("3")
	f.Warn("4")
	f.Error("5")
	f.Critical("6")
}

func TestFacade_AllLevelsInOrder(t *testing.T) {
	for _, mode := range []Mode{Immediate, Deferred} {
		t.Run(mode.String(), func(t *testing.T) {
			f, out := newConsoleFacade(t)
			f.Init(TraceLevel, mode, "%L%v")
			logSix(f)
			f.Flush()

			assert.Equal(t, []string{"T1", "D2", "I3", "W4", "E5", "C6"}, out.lines())
		})
	}
}

func TestFacade_Threshold(t *testing.T) {
	f, out := newConsoleFacade(t)
	f.Init(WarnLevel, Immediate, "%L")
	logSix(f)
	assert.Equal(t, []string{"W", "E", "C"}, out.lines())
}

func TestFacade_OffSilences(t *testing.T) {
	f, out := newConsoleFacade(t)
	f.Init(OffLevel, Immediate, "%L")
	logSix(f)
	f.WarnIf(true, "w")
	f.Flush()
	assert.Empty(t, out.lines())
}

func TestFacade_LazyInit(t *testing.T) {
	f, out := newConsoleFacade(t)
	assert.False(t, f.Initialized())
	assert.Empty(t, f.Pattern())

	f.Info("hello")
	f.Flush()

	require.True(t, f.Initialized())
	l := f.Instance()
	assert.Equal(t, InfoLevel, l.Level())
	assert.Equal(t, DefaultMode, l.Mode())
	assert.Equal(t, DefaultPattern, f.Pattern())
	assert.Equal(t, DefaultName, l.Name())

	lines := out.lines()
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "] [info] [facade_test.go@line:")
	assert.True(t, strings.HasSuffix(lines[0], "] hello"), lines[0])
}

func TestFacade_EmptyPatternMeansDefault(t *testing.T) {
	f, _ := newConsoleFacade(t)
	f.Init(DebugLevel, Immediate, "")
	assert.Equal(t, DefaultPattern, f.Pattern())
	assert.Equal(t, DefaultPattern, f.Instance().Pattern())
}

func TestFacade_SameModeKeepsLogger(t *testing.T) {
	f, out := newConsoleFacade(t)
	f.Init(InfoLevel, Immediate, "a %v")
	first := f.Instance()
	sinks := first.Sinks()

	f.Init(DebugLevel, Immediate, "b %v")
	second := f.Instance()

	assert.Same(t, first, second)
	assert.Equal(t, sinks, second.Sinks())
	assert.Equal(t, DebugLevel, second.Level())
	assert.Equal(t, "b %v", sinks[0].Pattern())

	f.Debug("x")
	assert.Equal(t, []string{"b x"}, out.lines())
}

func TestFacade_ModeChangeReplacesLogger(t *testing.T) {
	f, out := newConsoleFacade(t)
	f.Init(InfoLevel, Immediate, "%v")
	first := f.Instance()
	f.Info("before")

	f.Init(InfoLevel, Deferred, "%v")
	second := f.Instance()
	f.Info("after")
	f.Flush()

	assert.NotSame(t, first, second)
	assert.Equal(t, Deferred, f.Mode())
	assert.Equal(t, Deferred, second.Mode())
	assert.Equal(t, []string{"before", "after"}, out.lines())

	first.Info("to a closed logger")
	assert.Equal(t, uint64(1), first.Stats().Dropped)
}

func TestFacade_PatternConvergesOnInstance(t *testing.T) {
	f, _ := newConsoleFacade(t)
	f.Init(InfoLevel, Immediate, "%v")

	m := sink.NewMemorySink()
	l := f.Instance()
	l.AddSink(m)

	l.Info("direct")
	f.Info("through facade")

	lines := m.Lines()
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "[sinklog] [info] direct")
	assert.Equal(t, "through facade", lines[1])
	assert.Equal(t, "%v", m.Pattern())
}

func TestFacade_ResetThenInstance(t *testing.T) {
	f, _ := newConsoleFacade(t)
	f.Init(TraceLevel, Immediate, "%v")
	before := f.Instance()

	f.Reset()
	assert.False(t, f.Initialized())
	assert.Empty(t, f.Pattern())
	assert.Equal(t, DefaultMode, f.Mode())

	after := f.Instance()
	assert.NotSame(t, before, after)
	assert.Equal(t, InfoLevel, after.Level())
	assert.Equal(t, DefaultPattern, f.Pattern())
}

func TestFacade_ResetDrainsDeferred(t *testing.T) {
	f, _ := newConsoleFacade(t)
	f.Init(TraceLevel, Deferred, "%v")

	g := newGatedSink()
	f.Instance().AddSink(g)

	const n = 1000
	for i := 0; i < n; i++ {
		f.Info("%d", i)
	}

	reset := make(chan struct{})
	go func() {
		f.Reset()
		close(reset)
	}()
	g.open()
	<-reset

	lines := g.Lines()
	require.Len(t, lines, n)
	assert.Equal(t, "0", lines[0])
	assert.Equal(t, fmt.Sprint(n-1), lines[n-1])
}

func TestFacade_FlushOnError(t *testing.T) {
	f, _ := newConsoleFacade(t)
	f.Init(TraceLevel, Immediate, "%v")
	bs := &bufferedSink{}
	f.Instance().AddSink(bs)

	f.Warn("w")
	assert.Empty(t, bs.visible())

	f.Error("e")
	assert.Equal(t, []string{"w", "e"}, bs.visible())

	f.Info("i")
	f.Critical("c")
	assert.Equal(t, []string{"w", "e", "i", "c"}, bs.visible())
}

func TestFacade_ErrorFlushesEvenWhenFiltered(t *testing.T) {
	f, _ := newConsoleFacade(t)
	f.Init(OffLevel, Immediate, "%v")
	bs := &bufferedSink{}
	f.Instance().AddSink(bs)

	f.Error("hidden")
	f.Critical("hidden")
	assert.Empty(t, bs.visible())
	assert.Equal(t, 2, bs.flushCount())
}

func TestFacade_DeferredErrorVisibleOnReturn(t *testing.T) {
	f, _ := newConsoleFacade(t)
	f.Init(TraceLevel, Deferred, "%v")
	bs := &bufferedSink{}
	f.Instance().AddSink(bs)

	f.Info("queued")
	f.Error("boom")
	assert.Equal(t, []string{"queued", "boom"}, bs.visible())
}

func TestFacade_WarnIf(t *testing.T) {
	f, out := newConsoleFacade(t)
	f.Init(TraceLevel, Immediate, "%L %v")

	f.WarnIf(false, "never %s", "shown")
	f.WarnIf(true, "value=%d", 42)

	called := false
	f.WarnIfFunc(false, func() string {
		called = true
		return "x"
	})
	f.WarnIfFunc(true, func() string { return "lazy" })

	assert.False(t, called)
	assert.Equal(t, []string{"W value=42", "W lazy"}, out.lines())
}

type countingStringer struct{ n *int }

func (c countingStringer) String() string {
	*c.n++
	return "s"
}

func TestFacade_FilteredArgsNotFormatted(t *testing.T) {
	f, _ := newConsoleFacade(t)
	f.Init(ErrorLevel, Immediate, "%v")

	n := 0
	f.Info("%s", countingStringer{&n})
	f.WarnIf(false, "%s", countingStringer{&n})
	assert.Zero(t, n)

	f.Error("%s", countingStringer{&n})
	assert.Equal(t, 1, n)
}

func TestFacade_CallerLocation(t *testing.T) {
	f, out := newConsoleFacade(t)
	f.Init(InfoLevel, Immediate, "[%s@line:%#] %v")

	_, _, line, _ := runtime.Caller(0)
	f.Info("here")
	f.Log(WarnLevel, "there")

	assert.Equal(t, []string{
		fmt.Sprintf("[facade_test.go@line:%d] here", line+1),
		fmt.Sprintf("[facade_test.go@line:%d] there", line+2),
	}, out.lines())
}

func TestFacade_FlushUninitialized(t *testing.T) {
	f, _ := newConsoleFacade(t)
	f.Flush()
	assert.False(t, f.Initialized())
}

func TestFacade_FileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	f := NewFacade(Options{
		Console:      &syncBuffer{},
		ConsoleColor: consolesink.ColorNever,
		File:         filesink.Config{Filename: path},
	})
	f.Init(InfoLevel, Deferred, "%l %v")
	f.Info("to file")
	f.Error("flushed")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "info to file\nerror flushed\n", string(data))

	f.Warn("drained on reset")
	f.Reset()
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(data), "warning drained on reset\n"))
}

func TestFacade_FileSinkUnavailable(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	out := &syncBuffer{}
	f := NewFacade(Options{
		Console:      out,
		ConsoleColor: consolesink.ColorNever,
		File:         filesink.Config{Filename: filepath.Join(blocker, "app.log")},
	})
	defer f.Reset()

	f.Init(InfoLevel, Immediate, "[%s@line:%#] %l %v")
	f.Info("console only")

	require.Len(t, f.Instance().Sinks(), 1)
	lines := out.lines()
	require.Len(t, lines, 2)
	assert.Regexp(t, `^\[facade\.go@line:\d+\] warning file sink unavailable`, lines[0])
	assert.Regexp(t, `^\[facade_test\.go@line:\d+\] info console only$`, lines[1])
}

func TestFacade_ConcurrentUse(t *testing.T) {
	f, out := newConsoleFacade(t)
	f.Init(InfoLevel, Deferred, "%v")

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				f.Info("%d-%d", g, i)
				if i%25 == 0 {
					f.Init(InfoLevel, Deferred, "%v")
				}
			}
		}(g)
	}
	wg.Wait()
	f.Flush()

	assert.Len(t, out.lines(), 400)
}

func TestFacade_ModeSwitchAndResetLoseNothing(t *testing.T) {
	f, out := newConsoleFacade(t)
	f.Init(InfoLevel, Deferred, "%v")

	const producers, perProducer = 4, 2000
	var wg sync.WaitGroup
	for g := 0; g < producers; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				f.Info("%d-%d", g, i)
			}
		}(g)
	}

	stop := make(chan struct{})
	switched := make(chan int)
	go func() {
		n := 0
		for {
			select {
			case <-stop:
				switched <- n
				return
			default:
			}
			if n%2 == 0 {
				f.Init(InfoLevel, Immediate, "%v")
			} else {
				f.Init(InfoLevel, Deferred, "%v")
			}
			if n%50 == 49 {
				// emits between Reset and Init initialize lazily
				f.Reset()
			}
			n++
		}
	}()

	wg.Wait()
	close(stop)
	assert.Positive(t, <-switched)
	f.Flush()

	seen := make(map[string]bool, producers*perProducer)
	for _, line := range out.lines() {
		msg := line[strings.LastIndexByte(line, ' ')+1:]
		assert.False(t, seen[msg], "duplicate record %q", msg)
		seen[msg] = true
	}
	assert.Len(t, seen, producers*perProducer)
}

func TestFacade_FilteredEmitDoesNotAllocate(t *testing.T) {
	f, _ := newConsoleFacade(t)
	f.Init(WarnLevel, Immediate, "%v")

	allocs := testing.AllocsPerRun(100, func() {
		f.Debug("filtered")
		f.Info("filtered")
		f.WarnIf(false, "never")
	})
	assert.Zero(t, allocs)
}

func TestDefaultFacade(t *testing.T) {
	out := &syncBuffer{}
	prev := Default()
	SetDefault(NewFacade(Options{Console: out, ConsoleColor: consolesink.ColorNever, DisableFile: true}))
	defer SetDefault(prev)
	defer Reset()

	Init(DebugLevel, Immediate, "%L %s %v")
	Trace("t")
	Debug("d")
	Info("i")
	Warn("w")
	WarnIf(true, "wi")
	Error("e")
	Critical("c")
	Flush()

	assert.Equal(t, []string{
		"D facade_test.go d",
		"I facade_test.go i",
		"W facade_test.go w",
		"W facade_test.go wi",
		"E facade_test.go e",
		"C facade_test.go c",
	}, out.lines())
	assert.Same(t, Default().Instance(), Instance())
}
