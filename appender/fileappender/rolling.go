package fileappender

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/philipp01105/patlog/appender"
	"github.com/philipp01105/patlog/core"
)

// RollingConfig holds configuration for a size-rotated file appender
type RollingConfig struct {
	// Filename is the path to the active log file
	Filename string
	// Level is the appender floor (default: DebugLevel)
	Level core.Level
	// Pattern gives the appender its own formatter (default: use the logger's)
	Pattern string
	// MaxSizeMB is the size in megabytes that triggers rotation (default: 100)
	MaxSizeMB int
	// MaxBackups is the number of rotated files to keep (0 = keep all)
	MaxBackups int
	// MaxAgeDays removes rotated files older than this many days (0 = no limit)
	MaxAgeDays int
	// Compress gzips rotated files
	Compress bool
	// LocalTime uses local time in backup file names instead of UTC
	LocalTime bool
}

// RollingAppender writes events through a lumberjack.Logger
type RollingAppender struct {
	appender.Base
	cfg RollingConfig
	out *lumberjack.Logger
}

// NewRollingAppender creates a rolling appender. The file itself is
// opened lazily on the first write.
func NewRollingAppender(cfg RollingConfig) (*RollingAppender, error) {
	if cfg.Filename == "" {
		return nil, errors.New("fileappender: filename is required")
	}
	if cfg.MaxSizeMB <= 0 {
		cfg.MaxSizeMB = 100
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Filename), 0755); err != nil {
		return nil, errors.Wrapf(err, "fileappender: create directory for %s", cfg.Filename)
	}

	a := &RollingAppender{
		cfg: cfg,
		out: &lumberjack.Logger{
			Filename:   cfg.Filename,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
			LocalTime:  cfg.LocalTime,
		},
	}
	a.Init(cfg.Level, cfg.Pattern)
	return a, nil
}

// Log renders ev and writes it to the active file
func (a *RollingAppender) Log(owner appender.Owner, level core.Level, ev *core.Event) {
	a.Write(owner, level, ev, func(p []byte) error {
		_, err := a.out.Write(p)
		return err
	})
}

// Reopen forces a rotation: the active file is renamed to a backup and
// a fresh file is opened. It reports whether that succeeded.
func (a *RollingAppender) Reopen() bool {
	var err error
	a.Locked(func() {
		if err = a.out.Rotate(); err != nil {
			a.Counters().IncrementReopenFailures()
			a.RecordError(err)
		}
	})
	return err == nil
}

// Filename returns the path of the active file
func (a *RollingAppender) Filename() string {
	return a.cfg.Filename
}

// Snapshot describes the appender
func (a *RollingAppender) Snapshot() appender.Snapshot {
	s := a.Describe("RollingFileLogAppender")
	s.File = a.cfg.Filename
	s.MaxSizeMB = a.cfg.MaxSizeMB
	s.MaxBackups = a.cfg.MaxBackups
	s.MaxAgeDays = a.cfg.MaxAgeDays
	return s
}

// Close closes the active file
func (a *RollingAppender) Close() error {
	var err error
	a.Locked(func() { err = a.out.Close() })
	return err
}
