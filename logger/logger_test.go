package logger

import (
	"bytes"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipp01105/patlog/appender"
	"github.com/philipp01105/patlog/appender/consoleappender"
	"github.com/philipp01105/patlog/core"
	"github.com/philipp01105/patlog/formatter"
)

// syncBuffer is a bytes.Buffer safe for concurrent use
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func (b *syncBuffer) Lines() []string {
	s := strings.TrimSuffix(b.String(), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func newConsole(w *syncBuffer, level core.Level, pattern string) *consoleappender.ConsoleAppender {
	return consoleappender.NewConsoleAppender(consoleappender.ConsoleConfig{
		Writer:  w,
		Level:   level,
		Pattern: pattern,
	})
}

func newTestManager(pattern string) (*Manager, *syncBuffer) {
	out := &syncBuffer{}
	m := NewManager(Config{
		RootAppender: newConsole(out, core.DebugLevel, ""),
		Pattern:      pattern,
		Provider:     core.StaticProvider{Thread: 7, Fiber: 9, Name: "main"},
	})
	return m, out
}

// panicAppender blows up on every call to Log
type panicAppender struct {
	appender.Base
}

func (a *panicAppender) Log(appender.Owner, core.Level, *core.Event) { panic("boom") }
func (a *panicAppender) Snapshot() appender.Snapshot                 { return a.Describe("PanicAppender") }
func (a *panicAppender) Close() error                                { return nil }

func TestBuilderDefaults(t *testing.T) {
	l := NewBuilder("svc").Build()

	assert.Equal(t, "svc", l.Name())
	assert.Equal(t, DebugLevel, l.Level())
	assert.Equal(t, formatter.Default, l.Formatter().Pattern())
	assert.Empty(t, l.Appenders())
}

func TestBuilderBadPatternFallsBack(t *testing.T) {
	l := NewBuilder("svc").WithPattern("%Q").WithLevel(UnknownLevel).Build()

	assert.Equal(t, formatter.Default, l.Formatter().Pattern())
	assert.Equal(t, DebugLevel, l.Level())
}

func TestLevelGate(t *testing.T) {
	levels := []Level{DebugLevel, InfoLevel, WarnLevel, ErrorLevel, FatalLevel}
	for _, loggerFloor := range levels {
		for _, appenderFloor := range levels {
			for _, level := range levels {
				name := fmt.Sprintf("logger=%s/appender=%s/event=%s", loggerFloor, appenderFloor, level)
				t.Run(name, func(t *testing.T) {
					out := &syncBuffer{}
					l := NewBuilder("gate").
						WithLevel(loggerFloor).
						WithAppender(newConsole(out, appenderFloor, "%m")).
						Build()

					ev := l.NewEvent(level, core.CallerInfo{})
					_, _ = ev.WriteString("x")
					l.Log(level, ev)

					want := level >= loggerFloor && level >= appenderFloor
					assert.Equal(t, want, out.String() == "x")
				})
			}
		}
	}
}

func TestLevelMethods(t *testing.T) {
	out := &syncBuffer{}
	l := NewBuilder("svc").
		WithLevel(WarnLevel).
		WithAppender(newConsole(out, DebugLevel, "%p %m%n")).
		Build()

	l.Debug("d")
	l.Info("i")
	l.Warn("w")
	l.Error("e")
	l.Fatal("f")
	l.Debugf("%s", "d")
	l.Infof("%s", "i")
	l.Warnf("%d", 1)
	l.Errorf("%d", 2)
	l.Fatalf("%d", 3)

	assert.Equal(t, []string{
		"WARN w", "ERROR e", "FATAL f",
		"WARN 1", "ERROR 2", "FATAL 3",
	}, out.Lines())
}

func TestEnabled(t *testing.T) {
	l := NewBuilder("svc").WithLevel(ErrorLevel).Build()

	assert.False(t, l.Enabled(WarnLevel))
	assert.True(t, l.Enabled(ErrorLevel))

	l.SetLevel(DebugLevel)
	assert.True(t, l.Enabled(DebugLevel))
}

func TestCallerIsUserCode(t *testing.T) {
	out := &syncBuffer{}
	l := NewBuilder("svc").WithAppender(newConsole(out, DebugLevel, "%f:%l%n")).Build()

	_, file, line, _ := runtime.Caller(0)
	l.Info("here")
	l.Infof("%s", "here")

	want := fmt.Sprintf("%s:%d", file, line+1)
	wantf := fmt.Sprintf("%s:%d", file, line+2)
	assert.Equal(t, []string{want, wantf}, out.Lines())
}

func TestDispatchOrder(t *testing.T) {
	out := &syncBuffer{}
	l := NewBuilder("svc").
		WithAppender(newConsole(out, DebugLevel, "a:%m%n")).
		WithAppender(newConsole(out, DebugLevel, "b:%m%n")).
		WithAppender(newConsole(out, DebugLevel, "c:%m%n")).
		Build()

	l.Info("x")

	assert.Equal(t, []string{"a:x", "b:x", "c:x"}, out.Lines())
}

func TestAppenderFallsBackToLoggerFormatter(t *testing.T) {
	out := &syncBuffer{}
	l := NewBuilder("svc").
		WithPattern("[%c] %m%n").
		WithAppender(newConsole(out, DebugLevel, "")).
		Build()

	l.Info("one")
	require.True(t, l.SetPattern("<%p> %m%n"))
	l.Info("two")

	assert.Equal(t, []string{"[svc] one", "<INFO> two"}, out.Lines())
}

func TestSetPatternRejected(t *testing.T) {
	l := NewBuilder("svc").WithPattern("%m%n").Build()
	before := l.Formatter()

	assert.False(t, l.SetPattern("%m %"))
	assert.False(t, l.SetPattern("%d{%Y"))
	assert.Same(t, before, l.Formatter())
}

func TestSetFormatterNilRestoresDefault(t *testing.T) {
	l := NewBuilder("svc").WithPattern("%m").Build()

	l.SetFormatter(nil)

	assert.Equal(t, formatter.Default, l.Formatter().Pattern())
}

func TestAddAppenderRejectsDuplicates(t *testing.T) {
	out := &syncBuffer{}
	a := newConsole(out, DebugLevel, "%m%n")
	l := NewBuilder("svc").Build()

	l.AddAppender(a)
	l.AddAppender(a)
	l.AddAppender(nil)
	l.Info("once")

	assert.Len(t, l.Appenders(), 1)
	assert.Equal(t, []string{"once"}, out.Lines())
}

func TestDelAppender(t *testing.T) {
	out := &syncBuffer{}
	a := newConsole(out, DebugLevel, "a%n")
	b := newConsole(out, DebugLevel, "b%n")
	stranger := newConsole(out, DebugLevel, "s%n")
	l := NewBuilder("svc").WithAppender(a, b).Build()

	l.DelAppender(stranger)
	assert.Len(t, l.Appenders(), 2)

	l.DelAppender(a)
	l.DelAppender(a)
	l.Info("x")

	assert.Equal(t, []appender.Appender{b}, l.Appenders())
	assert.Equal(t, []string{"b"}, out.Lines())
}

func TestAppendersReturnsCopy(t *testing.T) {
	out := &syncBuffer{}
	l := NewBuilder("svc").WithAppender(newConsole(out, DebugLevel, "%m%n")).Build()

	apps := l.Appenders()
	apps[0] = nil

	require.Len(t, l.Appenders(), 1)
	assert.NotNil(t, l.Appenders()[0])
}

func TestClearAppenders(t *testing.T) {
	out := &syncBuffer{}
	l := NewBuilder("svc").WithAppender(newConsole(out, DebugLevel, "%m%n")).Build()

	l.ClearAppenders()
	l.Info("gone")

	assert.Empty(t, l.Appenders())
	assert.Empty(t, out.String())
}

func TestLogSurvivesPanickingAppender(t *testing.T) {
	out := &syncBuffer{}
	bad := &panicAppender{}
	bad.Init(DebugLevel, "")
	l := NewBuilder("svc").
		WithAppender(bad).
		WithAppender(newConsole(out, DebugLevel, "%m%n")).
		Build()

	assert.NotPanics(t, func() { l.Info("still here") })
	assert.Equal(t, []string{"still here"}, out.Lines())
}

func TestLogNilEvent(t *testing.T) {
	l := NewBuilder("svc").Build()
	assert.NotPanics(t, func() { l.Log(InfoLevel, nil) })
}

func TestConcurrentLogAndMutate(t *testing.T) {
	out := &syncBuffer{}
	l := NewBuilder("svc").WithAppender(newConsole(out, DebugLevel, "%m%n")).Build()
	extra := newConsole(&syncBuffer{}, DebugLevel, "%m%n")

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Go(func() {
			for j := range 100 {
				l.Infof("%d-%d", i, j)
			}
		})
	}
	wg.Go(func() {
		for range 100 {
			l.AddAppender(extra)
			l.SetPattern("%m%n")
			l.DelAppender(extra)
		}
	})
	wg.Wait()

	assert.Len(t, out.Lines(), 800)
}

func TestLoggerClose(t *testing.T) {
	out := &syncBuffer{}
	l := NewBuilder("svc").WithAppender(newConsole(out, DebugLevel, "%m%n")).Build()

	require.NoError(t, l.Close())
	assert.Empty(t, l.Appenders())
}

func TestLoggerSnapshot(t *testing.T) {
	out := &syncBuffer{}
	l := NewBuilder("svc").
		WithLevel(WarnLevel).
		WithPattern("%m%n").
		WithAppender(newConsole(out, ErrorLevel, "%p %m%n")).
		Build()

	s := l.Snapshot()
	assert.Equal(t, "svc", s.Name)
	assert.Equal(t, WarnLevel, s.Level)
	assert.Equal(t, "%m%n", s.Formatter)
	require.Len(t, s.Appenders, 1)
	assert.Equal(t, "StdoutLogAppender", s.Appenders[0].Type)

	doc := l.YAML()
	assert.Contains(t, doc, "name: svc")
	assert.Contains(t, doc, "level: WARN")
	assert.Contains(t, doc, "type: StdoutLogAppender")
	assert.Contains(t, doc, "level: ERROR")
}
