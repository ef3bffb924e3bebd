package appender

import (
	"bytes"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/philipp01105/patlog/core"
	"github.com/philipp01105/patlog/formatter"
)

// Owner is the logger dispatching an event. Appenders without their own
// Formatter render with Owner.Formatter.
type Owner interface {
	Name() string
	Formatter() *formatter.Formatter
}

// Appender is an output sink with its own severity floor
type Appender interface {
	// Log renders ev and writes it to the sink if level passes the floor
	Log(owner Owner, level core.Level, ev *core.Event)

	Level() core.Level
	SetLevel(level core.Level)

	// Formatter returns the appender's own formatter, or nil
	Formatter() *formatter.Formatter
	// SetFormatter installs f; nil reverts to the owner's formatter
	SetFormatter(f *formatter.Formatter)
	// SetPattern compiles pattern and installs it only if it compiled
	// cleanly. It reports whether the formatter was replaced.
	SetPattern(pattern string) bool

	// Snapshot describes the appender's configuration
	Snapshot() Snapshot

	// Close releases the sink
	Close() error
}

// fallbackFormatter renders events whose owner has no formatter
var fallbackFormatter = formatter.New(formatter.Default)

// Base holds the state every sink shares: the floor, the optional own
// formatter and the sink lock. Concrete appenders embed it and call
// Write from their Log method.
type Base struct {
	mu        sync.Mutex
	level     atomic.Int32
	formatter *formatter.Formatter
	buf       bytes.Buffer
	stats     Stats
	lastErr   error
}

// Init sets the floor and optional pattern. A zero level means
// DebugLevel. A pattern that fails to compile is ignored.
func (b *Base) Init(level core.Level, pattern string) {
	if level == core.UnknownLevel {
		level = core.DebugLevel
	}
	b.level.Store(int32(level))
	if pattern != "" {
		b.SetPattern(pattern)
	}
}

// Level returns the floor
func (b *Base) Level() core.Level {
	return core.Level(b.level.Load())
}

// SetLevel sets the floor
func (b *Base) SetLevel(level core.Level) {
	b.level.Store(int32(level))
}

// Admits reports whether level passes the floor
func (b *Base) Admits(level core.Level) bool {
	return level.Enabled(b.Level())
}

// Formatter returns the own formatter, or nil
func (b *Base) Formatter() *formatter.Formatter {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.formatter
}

// SetFormatter installs f
func (b *Base) SetFormatter(f *formatter.Formatter) {
	b.mu.Lock()
	b.formatter = f
	b.mu.Unlock()
}

// SetPattern compiles pattern and installs it unless it has errors
func (b *Base) SetPattern(pattern string) bool {
	f := formatter.New(pattern)
	if f.HasError() {
		return false
	}
	b.SetFormatter(f)
	return true
}

// Stats returns a snapshot of the sink counters
func (b *Base) Stats() StatsSnapshot {
	return b.stats.GetSnapshot()
}

// LastError returns the most recent sink failure, or nil
func (b *Base) LastError() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastErr
}

// Write renders ev and hands the bytes to sink, all under the sink
// lock. sink may do more than write (for example reopen a file first);
// the lock makes that sequence atomic with respect to other writers.
func (b *Base) Write(owner Owner, level core.Level, ev *core.Event, sink func(p []byte) error) {
	if !b.Admits(level) {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			b.lastErr = errors.Errorf("appender: sink panicked: %v", r)
			b.stats.IncrementWriteErrors()
		}
	}()

	f := b.formatter
	if f == nil && owner != nil {
		f = owner.Formatter()
	}
	if f == nil {
		f = fallbackFormatter
	}

	b.buf.Reset()
	f.AppendTo(&b.buf, level, ev)
	if err := sink(b.buf.Bytes()); err != nil {
		b.lastErr = err
		b.stats.IncrementWriteErrors()
		return
	}
	b.stats.IncrementProcessed()
}

// Locked runs fn with the sink lock held
func (b *Base) Locked(fn func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fn()
}

// Describe returns the snapshot fields Base knows about
func (b *Base) Describe(kind string) Snapshot {
	s := Snapshot{Type: kind, Level: b.Level()}
	if f := b.Formatter(); f != nil {
		s.Formatter = f.Pattern()
	}
	return s
}

// RecordError stores err as the last failure without counting a write
// error. It must only be called with the sink lock held, from inside a
// Write sink or a Locked function.
func (b *Base) RecordError(err error) {
	b.lastErr = err
}

// Counters exposes the mutable counters to sinks
func (b *Base) Counters() *Stats {
	return &b.stats
}
