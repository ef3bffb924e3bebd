package bridge

import (
	"bytes"
	"strings"
	"sync"

	"github.com/philipp01105/patlog/appender/consoleappender"
	"github.com/philipp01105/patlog/core"
	"github.com/philipp01105/patlog/logger"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) Lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := strings.TrimSuffix(b.buf.String(), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func newTarget(level core.Level, pattern string) (*logger.Logger, *syncBuffer) {
	out := &syncBuffer{}
	l := logger.NewBuilder("bridge").
		WithLevel(level).
		WithAppender(consoleappender.NewConsoleAppender(consoleappender.ConsoleConfig{
			Writer:  out,
			Pattern: pattern,
		})).
		Build()
	return l, out
}
