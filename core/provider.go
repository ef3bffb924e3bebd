package core

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
)

// Provider supplies the execution context recorded on every event
type Provider interface {
	ThreadID() int
	FiberID() uint64
	ThreadName() string
}

// DefaultProvider is used when an event is built without a Provider
var DefaultProvider Provider = NewRuntimeProvider("")

// RuntimeProvider reports the process id as thread id and the calling
// goroutine id as fiber id.
type RuntimeProvider struct {
	pid  int
	name string
}

// NewRuntimeProvider creates a provider with the given thread name.
// An empty name uses the executable's base name.
func NewRuntimeProvider(name string) *RuntimeProvider {
	if name == "" && len(os.Args) > 0 {
		name = filepath.Base(os.Args[0])
	}
	return &RuntimeProvider{pid: os.Getpid(), name: name}
}

// ThreadID returns the process id
func (p *RuntimeProvider) ThreadID() int { return p.pid }

// FiberID returns the id of the calling goroutine
func (p *RuntimeProvider) FiberID() uint64 { return GoroutineID() }

// ThreadName returns the configured name
func (p *RuntimeProvider) ThreadName() string { return p.name }

var goroutinePrefix = []byte("goroutine ")

// GoroutineID parses the current goroutine id out of the stack header
// ("goroutine 42 [running]:"). It returns 0 if the header is malformed.
func GoroutineID() uint64 {
	var buf [64]byte
	b := buf[:runtime.Stack(buf[:], false)]
	b = bytes.TrimPrefix(b, goroutinePrefix)
	if i := bytes.IndexByte(b, ' '); i > 0 {
		b = b[:i]
	}
	id, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// StaticProvider returns fixed values. Useful in tests.
type StaticProvider struct {
	Thread int
	Fiber  uint64
	Name   string
}

// ThreadID returns p.Thread
func (p StaticProvider) ThreadID() int { return p.Thread }

// FiberID returns p.Fiber
func (p StaticProvider) FiberID() uint64 { return p.Fiber }

// ThreadName returns p.Name
func (p StaticProvider) ThreadName() string { return p.Name }
