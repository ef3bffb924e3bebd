package logger

import (
	"sync"
)

var (
	defaultManager *Manager
	defaultMu      sync.RWMutex
)

func init() {
	// Root logs everything to stdout with the default pattern
	defaultManager = NewManager(Config{})
}

// Default returns the process-wide manager
func Default() *Manager {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultManager
}

// SetDefault replaces the process-wide manager. The previous manager is
// not closed.
func SetDefault(m *Manager) {
	if m == nil {
		return
	}
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultManager = m
}

// Root returns the root logger of the default manager
func Root() *Logger {
	return Default().Root()
}

// Get returns a named logger from the default manager
func Get(name string) *Logger {
	return Default().Get(name)
}

// Package-level convenience functions using the default root logger

// Debug logs a debug message using the root logger
func Debug(msg string) {
	Root().output(DebugLevel, 1, message(msg))
}

// Info logs an info message using the root logger
func Info(msg string) {
	Root().output(InfoLevel, 1, message(msg))
}

// Warn logs a warning message using the root logger
func Warn(msg string) {
	Root().output(WarnLevel, 1, message(msg))
}

// Error logs an error message using the root logger
func Error(msg string) {
	Root().output(ErrorLevel, 1, message(msg))
}

// Fatal logs a fatal message using the root logger. It does not exit.
func Fatal(msg string) {
	Root().output(FatalLevel, 1, message(msg))
}

// Debugf logs a formatted debug message using the root logger
func Debugf(format string, args ...any) {
	Root().output(DebugLevel, 1, printf(format, args))
}

// Infof logs a formatted info message using the root logger
func Infof(format string, args ...any) {
	Root().output(InfoLevel, 1, printf(format, args))
}

// Warnf logs a formatted warning message using the root logger
func Warnf(format string, args ...any) {
	Root().output(WarnLevel, 1, printf(format, args))
}

// Errorf logs a formatted error message using the root logger
func Errorf(format string, args ...any) {
	Root().output(ErrorLevel, 1, printf(format, args))
}

// Fatalf logs a formatted fatal message using the root logger. It does not exit.
func Fatalf(format string, args ...any) {
	Root().output(FatalLevel, 1, printf(format, args))
}
