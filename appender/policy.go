package appender

import (
	"sync/atomic"

	"github.com/philipp01105/patlog/core"
)

// OverflowPolicy defines how an Async appender handles a full queue
type OverflowPolicy int

const (
	// DropNewest drops the incoming event when the queue is full
	DropNewest OverflowPolicy = iota
	// DropOldest evicts the oldest queued event to make room
	DropOldest
	// Block waits for room up to BlockTimeout, then writes synchronously
	Block
)

// String returns the string representation of the policy
func (p OverflowPolicy) String() string {
	switch p {
	case DropNewest:
		return "DropNewest"
	case DropOldest:
		return "DropOldest"
	case Block:
		return "Block"
	default:
		return "Unknown"
	}
}

// DefaultLevelPolicy returns the default level-based overflow policies
func DefaultLevelPolicy() map[core.Level]OverflowPolicy {
	return map[core.Level]OverflowPolicy{
		core.DebugLevel: DropNewest,
		core.InfoLevel:  DropNewest,
		core.WarnLevel:  DropNewest,
		core.ErrorLevel: Block,
		core.FatalLevel: Block,
	}
}

// numLevels covers UnknownLevel through FatalLevel
const numLevels = int(core.FatalLevel) + 1

// Stats tracks sink counters. All methods are safe for concurrent use.
type Stats struct {
	dropped        [numLevels]atomic.Uint64
	blocked        atomic.Uint64
	processed      atomic.Uint64
	writeErrors    atomic.Uint64
	reopenFailures atomic.Uint64
}

// NewStats creates a new Stats instance
func NewStats() *Stats {
	return &Stats{}
}

func levelIndex(level core.Level) int {
	if level < 0 || int(level) >= numLevels {
		return 0
	}
	return int(level)
}

// IncrementDropped increments the dropped counter for a level
func (s *Stats) IncrementDropped(level core.Level) {
	s.dropped[levelIndex(level)].Add(1)
}

// IncrementBlocked increments the blocked counter
func (s *Stats) IncrementBlocked() {
	s.blocked.Add(1)
}

// IncrementProcessed increments the processed counter
func (s *Stats) IncrementProcessed() {
	s.processed.Add(1)
}

// IncrementWriteErrors increments the failed write counter
func (s *Stats) IncrementWriteErrors() {
	s.writeErrors.Add(1)
}

// IncrementReopenFailures increments the failed reopen counter
func (s *Stats) IncrementReopenFailures() {
	s.reopenFailures.Add(1)
}

// GetDropped returns the dropped count for a level
func (s *Stats) GetDropped(level core.Level) uint64 {
	return s.dropped[levelIndex(level)].Load()
}

// GetTotalDropped returns the total dropped across all levels
func (s *Stats) GetTotalDropped() uint64 {
	var n uint64
	for i := range s.dropped {
		n += s.dropped[i].Load()
	}
	return n
}

// Reset resets all counters to zero
func (s *Stats) Reset() {
	for i := range s.dropped {
		s.dropped[i].Store(0)
	}
	s.blocked.Store(0)
	s.processed.Store(0)
	s.writeErrors.Store(0)
	s.reopenFailures.Store(0)
}

// StatsSnapshot is a point-in-time copy of Stats
type StatsSnapshot struct {
	Dropped        map[core.Level]uint64
	Blocked        uint64
	Processed      uint64
	WriteErrors    uint64
	ReopenFailures uint64
}

// GetSnapshot returns a snapshot of current statistics
func (s *Stats) GetSnapshot() StatsSnapshot {
	dropped := make(map[core.Level]uint64, numLevels-1)
	for l := core.DebugLevel; l <= core.FatalLevel; l++ {
		dropped[l] = s.GetDropped(l)
	}
	return StatsSnapshot{
		Dropped:        dropped,
		Blocked:        s.blocked.Load(),
		Processed:      s.processed.Load(),
		WriteErrors:    s.writeErrors.Load(),
		ReopenFailures: s.reopenFailures.Load(),
	}
}
