package fileappender

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"github.com/philipp01105/patlog/appender"
	"github.com/philipp01105/patlog/core"
)

// FileConfig holds configuration for a file appender
type FileConfig struct {
	// Filename is the path to the log file
	Filename string
	// Level is the appender floor (default: DebugLevel)
	Level core.Level
	// Pattern gives the appender its own formatter (default: use the logger's)
	Pattern string
	// ReopenInterval is the reopen granularity (default: 1s)
	ReopenInterval time.Duration
	// Clock returns the current time (default: time.Now)
	Clock func() time.Time
}

// FileAppender writes events to a file that is periodically reopened
type FileAppender struct {
	appender.Base
	filename       string
	file           *os.File
	reopenInterval time.Duration
	clock          func() time.Time
	lastReopen     time.Time
	closed         bool
}

// NewFileAppender opens cfg.Filename for appending, creating parent
// directories as needed.
func NewFileAppender(cfg FileConfig) (*FileAppender, error) {
	if cfg.Filename == "" {
		return nil, errors.New("fileappender: filename is required")
	}
	if cfg.ReopenInterval <= 0 {
		cfg.ReopenInterval = time.Second
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}

	file, err := openFile(cfg.Filename)
	if err != nil {
		return nil, err
	}

	a := &FileAppender{
		filename:       cfg.Filename,
		file:           file,
		reopenInterval: cfg.ReopenInterval,
		clock:          cfg.Clock,
		lastReopen:     cfg.Clock(),
	}
	a.Init(cfg.Level, cfg.Pattern)
	return a, nil
}

func openFile(name string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return nil, errors.Wrapf(err, "fileappender: create directory for %s", name)
	}
	file, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, "fileappender: open %s", name)
	}
	return file, nil
}

// Log renders ev and appends it to the file, reopening first if the
// clock has moved into a new interval since the last reopen.
func (a *FileAppender) Log(owner appender.Owner, level core.Level, ev *core.Event) {
	a.Write(owner, level, ev, func(p []byte) error {
		if a.closed {
			return errors.Errorf("fileappender: %s is closed", a.filename)
		}
		now := a.clock()
		if now.Truncate(a.reopenInterval).After(a.lastReopen.Truncate(a.reopenInterval)) {
			a.lastReopen = now
			// Best effort: the write below is attempted either way
			_ = a.reopenLocked()
		}
		if a.file == nil {
			return errors.Errorf("fileappender: %s is not open", a.filename)
		}
		_, err := a.file.Write(p)
		return err
	})
}

// Reopen closes and reopens the file. It reports whether the file is
// open afterwards.
func (a *FileAppender) Reopen() bool {
	var err error
	a.Locked(func() {
		a.lastReopen = a.clock()
		a.closed = false
		err = a.reopenLocked()
	})
	return err == nil
}

// reopenLocked must be called with the appender lock held
func (a *FileAppender) reopenLocked() error {
	if a.file != nil {
		_ = a.file.Close()
		a.file = nil
	}
	file, err := openFile(a.filename)
	if err != nil {
		a.Counters().IncrementReopenFailures()
		a.RecordError(err)
		return err
	}
	a.file = file
	return nil
}

// Filename returns the path being written
func (a *FileAppender) Filename() string {
	return a.filename
}

// Snapshot describes the appender
func (a *FileAppender) Snapshot() appender.Snapshot {
	s := a.Describe("FileLogAppender")
	s.File = a.filename
	return s
}

// Close syncs and closes the file. Later events are counted as write
// errors until Reopen is called.
func (a *FileAppender) Close() error {
	var err error
	a.Locked(func() {
		a.closed = true
		if a.file == nil {
			return
		}
		if syncErr := a.file.Sync(); syncErr != nil {
			err = syncErr
		}
		if closeErr := a.file.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
		a.file = nil
	})
	return err
}
