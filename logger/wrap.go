package logger

import (
	"sync/atomic"

	"github.com/philipp01105/patlog/core"
)

// EventWrap accumulates one message and dispatches it to its logger when
// closed. A wrap begun below the logger floor is inert: writes are
// discarded and Close dispatches nothing.
type EventWrap struct {
	logger *Logger
	event  *core.Event
	done   atomic.Bool
}

// Begin starts an event at level attributed to the caller of Begin
func (l *Logger) Begin(level core.Level) *EventWrap {
	return l.begin(level, 1)
}

func (l *Logger) begin(level core.Level, skip int) *EventWrap {
	w := &EventWrap{logger: l}
	if level.Enabled(l.Level()) {
		w.event = l.NewEvent(level, core.GetCaller(skip+1))
	}
	return w
}

// Scoped runs fn with a fresh wrap and dispatches it when fn returns,
// including when fn panics. The panic is not recovered.
func (l *Logger) Scoped(level core.Level, fn func(w *EventWrap)) {
	w := l.begin(level, 1)
	defer w.Close()
	fn(w)
}

// Write appends p to the message
func (w *EventWrap) Write(p []byte) (int, error) {
	if w.event == nil {
		return len(p), nil
	}
	return w.event.Write(p)
}

// WriteString appends s to the message
func (w *EventWrap) WriteString(s string) (int, error) {
	if w.event == nil {
		return len(s), nil
	}
	return w.event.WriteString(s)
}

// Printf appends formatted text to the message
func (w *EventWrap) Printf(format string, args ...any) {
	if w.event == nil {
		return
	}
	w.event.Printf(format, args...)
}

// Event returns the wrapped event, or nil for an inert wrap
func (w *EventWrap) Event() *core.Event {
	return w.event
}

// Close dispatches the event. Only the first call has an effect.
func (w *EventWrap) Close() error {
	if w.event == nil || !w.done.CompareAndSwap(false, true) {
		return nil
	}
	w.logger.Log(w.event.Level, w.event)
	return nil
}
