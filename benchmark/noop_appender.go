package benchmark

import (
	"github.com/philipp01105/patlog/appender"
	"github.com/philipp01105/patlog/core"
)

// noopAppender applies the appender floor and discards the event
// without rendering it
type noopAppender struct {
	appender.Base
}

func newNoopAppender() *noopAppender {
	a := &noopAppender{}
	a.Init(core.DebugLevel, "")
	return a
}

func (a *noopAppender) Log(_ appender.Owner, level core.Level, ev *core.Event) {
	if a.Admits(level) {
		_ = len(ev.MessageBytes())
	}
}

func (a *noopAppender) Snapshot() appender.Snapshot {
	return a.Describe("NoopAppender")
}

func (a *noopAppender) Close() error {
	return nil
}
