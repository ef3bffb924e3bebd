package bridge

import (
	"context"
	"log/slog"

	"github.com/philipp01105/patlog/core"
	"github.com/philipp01105/patlog/logger"
)

type slogField struct {
	key   string
	value string
}

// SlogHandler is an adapter that implements slog.Handler on top of a Logger.
// This allows patlog to sit behind log/slog.
type SlogHandler struct {
	logger *logger.Logger
	attrs  []slogField
	group  string
}

// NewSlogHandler creates a slog.Handler writing to l
func NewSlogHandler(l *logger.Logger) *SlogHandler {
	return &SlogHandler{logger: l}
}

// Enabled reports whether the logger floor admits the given level
func (s *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return s.logger.Enabled(slogLevelToCore(level))
}

// Handle converts a slog.Record into an event and dispatches it
func (s *SlogHandler) Handle(_ context.Context, record slog.Record) error {
	level := slogLevelToCore(record.Level)
	if !s.logger.Enabled(level) {
		return nil
	}
	ev := s.logger.NewEvent(level, core.CallerFromPC(record.PC))
	if !record.Time.IsZero() {
		ev.Time = record.Time
	}
	_, _ = ev.WriteString(record.Message)

	for _, f := range s.attrs {
		writeField(ev, f.key, f.value)
	}
	var fields []slogField
	record.Attrs(func(a slog.Attr) bool {
		fields = flattenAttr(fields, s.group, a)
		return true
	})
	for _, f := range fields {
		writeField(ev, f.key, f.value)
	}

	s.logger.Log(level, ev)
	return nil
}

// WithAttrs returns a new SlogHandler with additional attributes
func (s *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return s
	}
	newAttrs := make([]slogField, len(s.attrs), len(s.attrs)+len(attrs))
	copy(newAttrs, s.attrs)
	for _, a := range attrs {
		newAttrs = flattenAttr(newAttrs, s.group, a)
	}
	return &SlogHandler{
		logger: s.logger,
		attrs:  newAttrs,
		group:  s.group,
	}
}

// WithGroup returns a new SlogHandler whose later attributes are
// prefixed with name
func (s *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return s
	}
	return &SlogHandler{
		logger: s.logger,
		attrs:  s.attrs,
		group:  joinKey(s.group, name),
	}
}

// slogLevelToCore converts a slog.Level to a core.Level
func slogLevelToCore(level slog.Level) core.Level {
	switch {
	case level >= slog.LevelError:
		return core.ErrorLevel
	case level >= slog.LevelWarn:
		return core.WarnLevel
	case level >= slog.LevelInfo:
		return core.InfoLevel
	default:
		return core.DebugLevel
	}
}

// flattenAttr appends a as dotted key=value pairs. Empty attrs are
// dropped and inline groups (empty key) keep the enclosing prefix.
func flattenAttr(dst []slogField, prefix string, a slog.Attr) []slogField {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return dst
	}
	if a.Value.Kind() == slog.KindGroup {
		group := prefix
		if a.Key != "" {
			group = joinKey(prefix, a.Key)
		}
		for _, ga := range a.Value.Group() {
			dst = flattenAttr(dst, group, ga)
		}
		return dst
	}
	return append(dst, slogField{key: joinKey(prefix, a.Key), value: a.Value.String()})
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
