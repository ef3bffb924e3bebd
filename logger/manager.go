package logger

import (
	"os"
	"slices"
	"sync"

	"go.uber.org/multierr"

	"github.com/philipp01105/patlog/appender"
	"github.com/philipp01105/patlog/appender/consoleappender"
	"github.com/philipp01105/patlog/core"
	"github.com/philipp01105/patlog/formatter"
)

// RootName is the name of the logger every Manager creates up front
const RootName = "root"

// Config holds manager configuration
type Config struct {
	RootAppender appender.Appender // default: console appender on stdout
	Level        core.Level        // root floor, default DebugLevel
	Pattern      string            // default formatter for every logger, default formatter.Default
	Provider     core.Provider     // default core.DefaultProvider
	CoarseClock  bool
}

// Manager is the registry of named loggers. It always holds a root
// logger, and loggers without appenders fall back to root's.
type Manager struct {
	cfg     Config
	root    *Logger
	mu      sync.Mutex
	loggers map[string]*Logger
}

// NewManager creates a manager and its root logger
func NewManager(cfg Config) *Manager {
	if cfg.Level == core.UnknownLevel {
		cfg.Level = core.DebugLevel
	}
	if cfg.Pattern == "" || formatter.New(cfg.Pattern).HasError() {
		cfg.Pattern = formatter.Default
	}
	if cfg.Provider == nil {
		cfg.Provider = core.DefaultProvider
	}
	if cfg.RootAppender == nil {
		cfg.RootAppender = consoleappender.NewConsoleAppender(consoleappender.ConsoleConfig{
			Writer: os.Stdout,
		})
	}

	m := &Manager{
		cfg:     cfg,
		loggers: make(map[string]*Logger),
	}
	m.root = m.builder(RootName).
		WithLevel(cfg.Level).
		WithAppender(cfg.RootAppender).
		Build()
	m.loggers[RootName] = m.root
	return m
}

func (m *Manager) builder(name string) *Builder {
	return NewBuilder(name).
		WithPattern(m.cfg.Pattern).
		WithProvider(m.cfg.Provider).
		WithCoarseClock(m.cfg.CoarseClock)
}

// Root returns the root logger
func (m *Manager) Root() *Logger {
	return m.root
}

// Get returns the logger registered under name, creating it on first
// use. Concurrent callers asking for the same name get the same
// instance. The empty name and RootName resolve to the root logger.
func (m *Manager) Get(name string) *Logger {
	if name == "" || name == RootName {
		return m.root
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if l, ok := m.loggers[name]; ok {
		return l
	}
	l := m.builder(name).WithRoot(m.root).Build()
	m.loggers[name] = l
	return l
}

// Names returns the registered logger names in sorted order
func (m *Manager) Names() []string {
	m.mu.Lock()
	names := make([]string, 0, len(m.loggers))
	for name := range m.loggers {
		names = append(names, name)
	}
	m.mu.Unlock()
	slices.Sort(names)
	return names
}

func (m *Manager) all() []*Logger {
	names := m.Names()
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Logger, 0, len(names))
	for _, name := range names {
		out = append(out, m.loggers[name])
	}
	return out
}

// Snapshot captures every registered logger, sorted by name
func (m *Manager) Snapshot() []Snapshot {
	loggers := m.all()
	out := make([]Snapshot, 0, len(loggers))
	for _, l := range loggers {
		out = append(out, l.Snapshot())
	}
	return out
}

// YAML renders every registered logger as a YAML sequence
func (m *Manager) YAML() string {
	return marshalYAML(m.Snapshot())
}

// Close detaches and closes every appender of every logger. An appender
// shared by several loggers is closed once.
func (m *Manager) Close() error {
	var (
		err    error
		closed []appender.Appender
	)
	for _, l := range m.all() {
		l.mu.Lock()
		apps := l.appenders
		l.appenders = nil
		l.mu.Unlock()
		for _, a := range apps {
			if slices.Contains(closed, a) {
				continue
			}
			closed = append(closed, a)
			err = multierr.Append(err, a.Close())
		}
	}
	return err
}
