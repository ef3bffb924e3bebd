package consoleappender

import (
	"io"
	"os"

	"github.com/philipp01105/patlog/appender"
	"github.com/philipp01105/patlog/core"
)

// ConsoleConfig holds configuration for a console appender
type ConsoleConfig struct {
	// Writer to write to (default: os.Stdout)
	Writer io.Writer
	// Level is the appender floor (default: DebugLevel)
	Level core.Level
	// Pattern gives the appender its own formatter (default: use the logger's)
	Pattern string
}

// ConsoleAppender writes events to a writer
type ConsoleAppender struct {
	appender.Base
	writer io.Writer
}

// NewConsoleAppender creates a new console appender
func NewConsoleAppender(cfg ConsoleConfig) *ConsoleAppender {
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}
	a := &ConsoleAppender{writer: cfg.Writer}
	a.Init(cfg.Level, cfg.Pattern)
	return a
}

// Log renders ev and writes it
func (a *ConsoleAppender) Log(owner appender.Owner, level core.Level, ev *core.Event) {
	a.Write(owner, level, ev, func(p []byte) error {
		_, err := a.writer.Write(p)
		return err
	})
}

// Snapshot describes the appender
func (a *ConsoleAppender) Snapshot() appender.Snapshot {
	return a.Describe("StdoutLogAppender")
}

// Close is a no-op; the writer belongs to the caller
func (a *ConsoleAppender) Close() error {
	return nil
}
