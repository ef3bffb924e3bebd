package core

import (
	"bytes"
	"fmt"
	"path/filepath"
	"runtime"
	"time"
)

// processStart anchors Elapsed
var processStart = time.Now()

// Elapsed returns the milliseconds elapsed since the process started
func Elapsed() uint64 {
	return uint64(time.Since(processStart) / time.Millisecond)
}

// Event represents a single log occurrence with all its context.
// Context fields are set at construction; only the message buffer
// may change, and only before dispatch.
type Event struct {
	Time       time.Time
	Level      Level
	Logger     string
	File       string
	Line       int
	Elapsed    uint64
	ThreadID   int
	FiberID    uint64
	ThreadName string

	msg bytes.Buffer
}

// EventConfig carries the contextual fields captured at the call site
type EventConfig struct {
	Logger   string
	Level    Level
	Time     time.Time
	Caller   CallerInfo
	Elapsed  uint64
	Provider Provider
}

// NewEvent creates an event with an empty message buffer. A nil
// Provider falls back to DefaultProvider and a zero Time to time.Now.
func NewEvent(cfg EventConfig) *Event {
	p := cfg.Provider
	if p == nil {
		p = DefaultProvider
	}
	if cfg.Time.IsZero() {
		cfg.Time = time.Now()
	}
	return &Event{
		Time:       cfg.Time,
		Level:      cfg.Level,
		Logger:     cfg.Logger,
		File:       cfg.Caller.File,
		Line:       cfg.Caller.Line,
		Elapsed:    cfg.Elapsed,
		ThreadID:   p.ThreadID(),
		FiberID:    p.FiberID(),
		ThreadName: p.ThreadName(),
	}
}

// Write appends p to the message buffer. It never fails.
func (e *Event) Write(p []byte) (int, error) {
	return e.msg.Write(p)
}

// WriteString appends s to the message buffer. It never fails.
func (e *Event) WriteString(s string) (int, error) {
	return e.msg.WriteString(s)
}

// Printf renders format into the message buffer. Bad verbs show up as
// fmt's %!verb markers.
func (e *Event) Printf(format string, args ...any) {
	fmt.Fprintf(&e.msg, format, args...)
}

// Message returns the text accumulated so far
func (e *Event) Message() string {
	return e.msg.String()
}

// MessageBytes returns the message buffer contents without copying.
// The slice must not be modified.
func (e *Event) MessageBytes() []byte {
	return e.msg.Bytes()
}

// CallerInfo contains information about the caller
type CallerInfo struct {
	File      string
	ShortFile string
	Line      int
	Function  string
	Defined   bool
}

// GetCaller retrieves caller information. skip 0 is the function
// calling GetCaller.
func GetCaller(skip int) CallerInfo {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return CallerInfo{}
	}
	return callerFromPC(pc, file, line)
}

// CallerFromPC resolves a program counter (as recorded by slog.Record
// or runtime.Callers) into CallerInfo.
func CallerFromPC(pc uintptr) CallerInfo {
	if pc == 0 {
		return CallerInfo{}
	}
	frame, _ := runtime.CallersFrames([]uintptr{pc}).Next()
	if frame.File == "" {
		return CallerInfo{}
	}
	return CallerInfo{
		File:      frame.File,
		ShortFile: filepath.Base(frame.File),
		Line:      frame.Line,
		Function:  frame.Function,
		Defined:   true,
	}
}

func callerFromPC(pc uintptr, file string, line int) CallerInfo {
	var funcName string
	if fn := runtime.FuncForPC(pc); fn != nil {
		funcName = fn.Name()
	}
	return CallerInfo{
		File:      file,
		ShortFile: filepath.Base(file),
		Line:      line,
		Function:  funcName,
		Defined:   true,
	}
}
