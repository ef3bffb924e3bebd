package core

import (
	"strings"
)

// Level represents the severity level of a log event
type Level int8

const (
	// UnknownLevel is the result of parsing an unrecognized level name
	UnknownLevel Level = iota
	// DebugLevel for detailed debugging information
	DebugLevel
	// InfoLevel for general informational messages
	InfoLevel
	// WarnLevel for warning messages
	WarnLevel
	// ErrorLevel for error messages
	ErrorLevel
	// FatalLevel for fatal messages (does not exit the process)
	FatalLevel
)

// String returns the canonical name of the level
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	case FatalLevel:
		return "FATAL"
	default:
		return "UNKNOW"
	}
}

// Enabled reports whether an event at level l passes a gate set to floor.
func (l Level) Enabled(floor Level) bool {
	return l >= floor
}

// MarshalText implements encoding.TextMarshaler
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown names
// resolve to UnknownLevel rather than failing.
func (l *Level) UnmarshalText(text []byte) error {
	*l = ParseLevel(string(text))
	return nil
}

// ParseLevel converts a level name to a Level, ignoring case.
// Unrecognized names return UnknownLevel.
func ParseLevel(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return DebugLevel
	case "INFO":
		return InfoLevel
	case "WARN", "WARNING":
		return WarnLevel
	case "ERROR":
		return ErrorLevel
	case "FATAL":
		return FatalLevel
	default:
		return UnknownLevel
	}
}
