package appender

import (
	"sync"
	"time"

	"github.com/philipp01105/patlog/core"
	"github.com/philipp01105/patlog/formatter"
)

// AsyncConfig holds configuration for an Async appender
type AsyncConfig struct {
	// BufferSize is the size of the queue (default: 1000)
	BufferSize int
	// OverflowPolicy defines per-level overflow behavior (default: DefaultLevelPolicy)
	OverflowPolicy map[core.Level]OverflowPolicy
	// BlockTimeout is the timeout for the Block policy (default: 100ms)
	BlockTimeout time.Duration
	// DrainTimeout bounds how long Close keeps writing queued events (default: 5s)
	DrainTimeout time.Duration
}

type record struct {
	owner Owner
	level core.Level
	ev    *core.Event
}

// AsyncAppender queues events and writes them to the wrapped appender
// from a single background goroutine. Events must not be modified
// after they are handed to Log.
type AsyncAppender struct {
	inner          Appender
	queue          chan record
	closed         chan struct{}
	closeOnce      sync.Once
	wg             sync.WaitGroup
	overflowPolicy map[core.Level]OverflowPolicy
	blockTimeout   time.Duration
	drainTimeout   time.Duration
	bufferSize     int
	stats          *Stats
}

// Async wraps inner with a bounded queue
func Async(inner Appender, cfg AsyncConfig) *AsyncAppender {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 1000
	}
	if cfg.OverflowPolicy == nil {
		cfg.OverflowPolicy = DefaultLevelPolicy()
	}
	if cfg.BlockTimeout == 0 {
		cfg.BlockTimeout = 100 * time.Millisecond
	}
	if cfg.DrainTimeout == 0 {
		cfg.DrainTimeout = 5 * time.Second
	}

	a := &AsyncAppender{
		inner:          inner,
		queue:          make(chan record, cfg.BufferSize),
		closed:         make(chan struct{}),
		overflowPolicy: cfg.OverflowPolicy,
		blockTimeout:   cfg.BlockTimeout,
		drainTimeout:   cfg.DrainTimeout,
		bufferSize:     cfg.BufferSize,
		stats:          NewStats(),
	}
	a.wg.Add(1)
	go a.process()
	return a
}

// Log enqueues ev according to the overflow policy of its level
func (a *AsyncAppender) Log(owner Owner, level core.Level, ev *core.Event) {
	if !level.Enabled(a.inner.Level()) {
		return
	}
	r := record{owner: owner, level: level, ev: ev}

	select {
	case <-a.closed:
		// Closing: bypass the queue
		a.inner.Log(owner, level, ev)
		return
	default:
	}

	policy, ok := a.overflowPolicy[level]
	if !ok {
		policy = DropNewest
	}

	switch policy {
	case Block:
		select {
		case a.queue <- r:
			return
		default:
		}
		timer := time.NewTimer(a.blockTimeout)
		defer timer.Stop()
		select {
		case a.queue <- r:
		case <-timer.C:
			// Timeout - fall back to synchronous write
			a.stats.IncrementBlocked()
			a.inner.Log(owner, level, ev)
		case <-a.closed:
			a.inner.Log(owner, level, ev)
		}

	case DropOldest:
		select {
		case a.queue <- r:
			return
		default:
		}
		select {
		case old := <-a.queue:
			a.stats.IncrementDropped(old.level)
		default:
		}
		select {
		case a.queue <- r:
		default:
			a.stats.IncrementDropped(level)
		}

	default:
		select {
		case a.queue <- r:
		default:
			a.stats.IncrementDropped(level)
		}
	}
}

// process drains the queue until Close
func (a *AsyncAppender) process() {
	defer a.wg.Done()

	for {
		select {
		case r := <-a.queue:
			a.inner.Log(r.owner, r.level, r.ev)
		case <-a.closed:
			deadline := time.After(a.drainTimeout)
			for {
				select {
				case r := <-a.queue:
					a.inner.Log(r.owner, r.level, r.ev)
				case <-deadline:
					return
				default:
					return
				}
			}
		}
	}
}

// Inner returns the wrapped appender
func (a *AsyncAppender) Inner() Appender { return a.inner }

// Level returns the wrapped appender's floor
func (a *AsyncAppender) Level() core.Level { return a.inner.Level() }

// SetLevel sets the wrapped appender's floor
func (a *AsyncAppender) SetLevel(level core.Level) { a.inner.SetLevel(level) }

// Formatter returns the wrapped appender's own formatter
func (a *AsyncAppender) Formatter() *formatter.Formatter { return a.inner.Formatter() }

// SetFormatter sets the wrapped appender's own formatter
func (a *AsyncAppender) SetFormatter(f *formatter.Formatter) { a.inner.SetFormatter(f) }

// SetPattern compiles and installs a pattern on the wrapped appender
func (a *AsyncAppender) SetPattern(pattern string) bool { return a.inner.SetPattern(pattern) }

// Snapshot describes the wrapped appender and the queue
func (a *AsyncAppender) Snapshot() Snapshot {
	s := a.inner.Snapshot()
	s.Async = true
	s.BufferSize = a.bufferSize
	return s
}

// Stats returns the queue counters (drops and blocks)
func (a *AsyncAppender) Stats() StatsSnapshot {
	return a.stats.GetSnapshot()
}

// Close drains the queue, bounded by DrainTimeout, then closes the
// wrapped appender. Later calls return nil.
func (a *AsyncAppender) Close() error {
	var err error
	a.closeOnce.Do(func() {
		close(a.closed)
		a.wg.Wait()
		err = a.inner.Close()
	})
	return err
}
