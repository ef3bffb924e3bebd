package appender

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipp01105/patlog/core"
)

// gateAppender blocks every write until release is closed
type gateAppender struct {
	*memAppender
	release chan struct{}
	once    sync.Once
}

func newGate() *gateAppender {
	return &gateAppender{memAppender: newMem(core.DebugLevel, "%m\n"), release: make(chan struct{})}
}

func (g *gateAppender) Log(owner Owner, level core.Level, ev *core.Event) {
	<-g.release
	g.memAppender.Log(owner, level, ev)
}

func (g *gateAppender) open() { g.once.Do(func() { close(g.release) }) }

func TestAsync_Delivers(t *testing.T) {
	inner := newMem(core.DebugLevel, "%m\n")
	a := Async(inner, AsyncConfig{BufferSize: 16})

	for i := 0; i < 10; i++ {
		a.Log(owner, core.InfoLevel, event(core.InfoLevel, "async"))
	}
	require.NoError(t, a.Close())

	assert.Equal(t, 10, strings.Count(inner.String(), "async\n"))
}

func TestAsync_RespectsInnerFloor(t *testing.T) {
	inner := newMem(core.ErrorLevel, "%m\n")
	a := Async(inner, AsyncConfig{})
	a.Log(owner, core.InfoLevel, event(core.InfoLevel, "info"))
	a.Log(owner, core.ErrorLevel, event(core.ErrorLevel, "error"))
	require.NoError(t, a.Close())

	assert.Equal(t, "error\n", inner.String())
}

func TestAsync_DropNewest(t *testing.T) {
	inner := newGate()
	a := Async(inner, AsyncConfig{
		BufferSize:     1,
		OverflowPolicy: map[core.Level]OverflowPolicy{core.InfoLevel: DropNewest},
	})

	// First event is picked up by the worker and blocks on the gate, the
	// second fills the queue, the rest are dropped.
	a.Log(owner, core.InfoLevel, event(core.InfoLevel, "1"))
	assert.Eventually(t, func() bool { return len(a.queue) == 0 }, time.Second, time.Millisecond)
	for i := 0; i < 5; i++ {
		a.Log(owner, core.InfoLevel, event(core.InfoLevel, "x"))
	}

	assert.Equal(t, uint64(4), a.Stats().Dropped[core.InfoLevel])
	inner.open()
	require.NoError(t, a.Close())
}

func TestAsync_DropOldest(t *testing.T) {
	inner := newGate()
	a := Async(inner, AsyncConfig{
		BufferSize:     1,
		OverflowPolicy: map[core.Level]OverflowPolicy{core.WarnLevel: DropOldest},
	})

	a.Log(owner, core.WarnLevel, event(core.WarnLevel, "first"))
	assert.Eventually(t, func() bool { return len(a.queue) == 0 }, time.Second, time.Millisecond)
	a.Log(owner, core.WarnLevel, event(core.WarnLevel, "old"))
	a.Log(owner, core.WarnLevel, event(core.WarnLevel, "new"))

	assert.Equal(t, uint64(1), a.Stats().Dropped[core.WarnLevel])
	inner.open()
	require.NoError(t, a.Close())

	out := inner.String()
	assert.Contains(t, out, "first\n")
	assert.Contains(t, out, "new\n")
	assert.NotContains(t, out, "old\n")
}

func TestAsync_BlockFallsBackToSyncWrite(t *testing.T) {
	inner := newGate()
	a := Async(inner, AsyncConfig{
		BufferSize:     1,
		BlockTimeout:   10 * time.Millisecond,
		OverflowPolicy: map[core.Level]OverflowPolicy{core.ErrorLevel: Block},
	})

	a.Log(owner, core.ErrorLevel, event(core.ErrorLevel, "first"))
	assert.Eventually(t, func() bool { return len(a.queue) == 0 }, time.Second, time.Millisecond)
	a.Log(owner, core.ErrorLevel, event(core.ErrorLevel, "queued"))

	done := make(chan struct{})
	go func() {
		a.Log(owner, core.ErrorLevel, event(core.ErrorLevel, "blocked"))
		close(done)
	}()
	assert.Eventually(t, func() bool { return a.Stats().Blocked == 1 }, time.Second, time.Millisecond)

	inner.open()
	<-done
	require.NoError(t, a.Close())
	assert.Equal(t, 3, strings.Count(inner.String(), "\n"))
}

func TestAsync_Delegates(t *testing.T) {
	inner := newMem(core.InfoLevel, "")
	a := Async(inner, AsyncConfig{BufferSize: 4})
	defer a.Close()

	a.SetLevel(core.WarnLevel)
	assert.Equal(t, core.WarnLevel, inner.Level())
	assert.Equal(t, core.WarnLevel, a.Level())

	assert.True(t, a.SetPattern("%m"))
	assert.Equal(t, "%m", inner.Formatter().Pattern())
	assert.Same(t, inner.Formatter(), a.Formatter())
	a.SetFormatter(nil)
	assert.Nil(t, inner.Formatter())
	assert.Same(t, Appender(inner), a.Inner())

	snap := a.Snapshot()
	assert.Equal(t, "MemAppender", snap.Type)
	assert.True(t, snap.Async)
	assert.Equal(t, 4, snap.BufferSize)
}

func TestAsync_CloseIdempotentAndLogAfterClose(t *testing.T) {
	inner := newMem(core.DebugLevel, "%m\n")
	a := Async(inner, AsyncConfig{})
	require.NoError(t, a.Close())
	require.NoError(t, a.Close())

	assert.NotPanics(t, func() {
		a.Log(owner, core.InfoLevel, event(core.InfoLevel, "late"))
	})
	assert.Contains(t, inner.String(), "late")
}
