package logger

import (
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/multierr"

	"github.com/philipp01105/patlog/appender"
	"github.com/philipp01105/patlog/core"
	"github.com/philipp01105/patlog/formatter"
)

// Logger is a named severity gate that dispatches events to appenders
type Logger struct {
	name     string
	level    atomic.Int32
	root     *Logger
	provider core.Provider
	now      func() time.Time

	mu        sync.RWMutex
	appenders []appender.Appender // replaced on change, never mutated in place
	formatter *formatter.Formatter
}

// Builder provides a fluent API for building Logger instances
type Builder struct {
	name        string
	level       core.Level
	pattern     string
	appenders   []appender.Appender
	root        *Logger
	provider    core.Provider
	coarseClock bool
}

// NewBuilder creates a new logger builder
func NewBuilder(name string) *Builder {
	return &Builder{
		name:    name,
		level:   core.DebugLevel,
		pattern: formatter.Default,
	}
}

// WithLevel sets the log level
func (b *Builder) WithLevel(level core.Level) *Builder {
	b.level = level
	return b
}

// WithPattern sets the default formatter pattern
func (b *Builder) WithPattern(pattern string) *Builder {
	b.pattern = pattern
	return b
}

// WithAppender adds appenders
func (b *Builder) WithAppender(appenders ...appender.Appender) *Builder {
	b.appenders = append(b.appenders, appenders...)
	return b
}

// WithRoot sets the logger whose appenders are used while this one has none
func (b *Builder) WithRoot(root *Logger) *Builder {
	b.root = root
	return b
}

// WithProvider sets the thread/fiber context provider
func (b *Builder) WithProvider(p core.Provider) *Builder {
	b.provider = p
	return b
}

// WithCoarseClock timestamps events with the cached coarse clock
func (b *Builder) WithCoarseClock(enabled bool) *Builder {
	b.coarseClock = enabled
	return b
}

// Build creates the Logger instance. A pattern that does not compile
// falls back to formatter.Default.
func (b *Builder) Build() *Logger {
	l := &Logger{
		name:     b.name,
		root:     b.root,
		provider: b.provider,
		now:      time.Now,
	}
	if l.provider == nil {
		l.provider = core.DefaultProvider
	}
	if b.coarseClock {
		core.StartCoarseClock()
		l.now = core.CoarseNow
	}
	level := b.level
	if level == core.UnknownLevel {
		level = core.DebugLevel
	}
	l.level.Store(int32(level))

	l.formatter = formatter.New(b.pattern)
	if l.formatter.HasError() {
		l.formatter = formatter.New(formatter.Default)
	}
	for _, a := range b.appenders {
		l.AddAppender(a)
	}
	return l
}

// Name returns the logger name
func (l *Logger) Name() string {
	return l.name
}

// Level returns the logger floor
func (l *Logger) Level() core.Level {
	return core.Level(l.level.Load())
}

// SetLevel sets the logger floor
func (l *Logger) SetLevel(level core.Level) {
	l.level.Store(int32(level))
}

// Enabled reports whether an event at level would pass the logger floor
func (l *Logger) Enabled(level core.Level) bool {
	return level.Enabled(l.Level())
}

// Formatter returns the default formatter
func (l *Logger) Formatter() *formatter.Formatter {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.formatter
}

// SetFormatter replaces the default formatter; nil restores formatter.Default
func (l *Logger) SetFormatter(f *formatter.Formatter) {
	if f == nil {
		f = formatter.New(formatter.Default)
	}
	l.mu.Lock()
	l.formatter = f
	l.mu.Unlock()
}

// SetPattern compiles pattern and installs it only if it compiled
// cleanly. It reports whether the formatter was replaced.
func (l *Logger) SetPattern(pattern string) bool {
	f := formatter.New(pattern)
	if f.HasError() {
		return false
	}
	l.SetFormatter(f)
	return true
}

// AddAppender appends a to the dispatch list. nil and appenders already
// present are ignored.
func (l *Logger) AddAppender(a appender.Appender) {
	if a == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if slices.Contains(l.appenders, a) {
		return
	}
	next := make([]appender.Appender, len(l.appenders), len(l.appenders)+1)
	copy(next, l.appenders)
	l.appenders = append(next, a)
}

// DelAppender removes a. Removing an appender that is not attached is a no-op.
func (l *Logger) DelAppender(a appender.Appender) {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := slices.Index(l.appenders, a)
	if i < 0 {
		return
	}
	l.appenders = slices.Delete(slices.Clone(l.appenders), i, i+1)
}

// ClearAppenders removes every appender
func (l *Logger) ClearAppenders() {
	l.mu.Lock()
	l.appenders = nil
	l.mu.Unlock()
}

// Appenders returns a copy of the dispatch list
func (l *Logger) Appenders() []appender.Appender {
	return slices.Clone(l.ownAppenders())
}

func (l *Logger) ownAppenders() []appender.Appender {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.appenders
}

// targets resolves the appenders for one dispatch, falling back to
// root's current list when this logger has none.
func (l *Logger) targets() []appender.Appender {
	apps := l.ownAppenders()
	if len(apps) == 0 && l.root != nil && l.root != l {
		return l.root.ownAppenders()
	}
	return apps
}

// NewEvent builds an event owned by this logger with the current time,
// elapsed counter and provider context.
func (l *Logger) NewEvent(level core.Level, caller core.CallerInfo) *core.Event {
	return core.NewEvent(core.EventConfig{
		Logger:   l.name,
		Level:    level,
		Time:     l.now(),
		Caller:   caller,
		Elapsed:  core.Elapsed(),
		Provider: l.provider,
	})
}

// Log dispatches ev to every appender in insertion order if level
// passes the logger floor. It never fails and never panics.
func (l *Logger) Log(level core.Level, ev *core.Event) {
	if ev == nil || !level.Enabled(l.Level()) {
		return
	}
	for _, a := range l.targets() {
		l.deliver(a, level, ev)
	}
}

func (l *Logger) deliver(a appender.Appender, level core.Level, ev *core.Event) {
	defer func() {
		// A misbehaving appender must not take the caller down
		_ = recover()
	}()
	a.Log(l, level, ev)
}

// output builds, fills and dispatches an event. skip 1 attributes the
// event to the caller of the function calling output.
func (l *Logger) output(level core.Level, skip int, write func(ev *core.Event)) {
	if !level.Enabled(l.Level()) {
		return
	}
	ev := l.NewEvent(level, core.GetCaller(skip+1))
	write(ev)
	l.Log(level, ev)
}

func message(msg string) func(ev *core.Event) {
	return func(ev *core.Event) { _, _ = ev.WriteString(msg) }
}

func printf(format string, args []any) func(ev *core.Event) {
	return func(ev *core.Event) { ev.Printf(format, args...) }
}

// Debug logs a debug message
func (l *Logger) Debug(msg string) {
	l.output(core.DebugLevel, 1, message(msg))
}

// Info logs an info message
func (l *Logger) Info(msg string) {
	l.output(core.InfoLevel, 1, message(msg))
}

// Warn logs a warning message
func (l *Logger) Warn(msg string) {
	l.output(core.WarnLevel, 1, message(msg))
}

// Error logs an error message
func (l *Logger) Error(msg string) {
	l.output(core.ErrorLevel, 1, message(msg))
}

// Fatal logs a fatal message. It does not exit the process.
func (l *Logger) Fatal(msg string) {
	l.output(core.FatalLevel, 1, message(msg))
}

// Debugf logs a debug message with formatting
func (l *Logger) Debugf(format string, args ...any) {
	l.output(core.DebugLevel, 1, printf(format, args))
}

// Infof logs an info message with formatting
func (l *Logger) Infof(format string, args ...any) {
	l.output(core.InfoLevel, 1, printf(format, args))
}

// Warnf logs a warning message with formatting
func (l *Logger) Warnf(format string, args ...any) {
	l.output(core.WarnLevel, 1, printf(format, args))
}

// Errorf logs an error message with formatting
func (l *Logger) Errorf(format string, args ...any) {
	l.output(core.ErrorLevel, 1, printf(format, args))
}

// Fatalf logs a fatal message with formatting. It does not exit the process.
func (l *Logger) Fatalf(format string, args ...any) {
	l.output(core.FatalLevel, 1, printf(format, args))
}

// Close closes the logger's own appenders and detaches them
func (l *Logger) Close() error {
	l.mu.Lock()
	apps := l.appenders
	l.appenders = nil
	l.mu.Unlock()

	var err error
	for _, a := range apps {
		err = multierr.Append(err, a.Close())
	}
	return err
}
