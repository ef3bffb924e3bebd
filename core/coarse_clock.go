package core

import (
	"sync"
	"sync/atomic"
	"time"
)

var (
	coarseClockOnce sync.Once
	coarseNow       atomic.Pointer[time.Time]
)

// coarseTick is how often the cached timestamp is refreshed
const coarseTick = 500 * time.Microsecond

// StartCoarseClock starts the background goroutine that refreshes the
// cached timestamp. It is safe to call many times; the goroutine is
// started once and runs for the lifetime of the process.
func StartCoarseClock() {
	coarseClockOnce.Do(func() {
		t := time.Now()
		coarseNow.Store(&t)
		go func() {
			ticker := time.NewTicker(coarseTick)
			for range ticker.C {
				t := time.Now()
				coarseNow.Store(&t)
			}
		}()
	})
}

// CoarseNow returns the most recently cached time. Before
// StartCoarseClock has run it falls back to time.Now.
func CoarseNow() time.Time {
	if t := coarseNow.Load(); t != nil {
		return *t
	}
	return time.Now()
}
