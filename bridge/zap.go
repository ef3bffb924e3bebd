package bridge

import (
	"fmt"
	"path/filepath"
	"slices"

	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/patlog/core"
	"github.com/philipp01105/patlog/logger"
)

// ZapCore implements zapcore.Core on top of a Logger, so a *zap.Logger
// can write through patlog appenders.
type ZapCore struct {
	logger *logger.Logger
	fields []zapcore.Field
}

// NewZapCore creates a zapcore.Core writing to l
func NewZapCore(l *logger.Logger) *ZapCore {
	return &ZapCore{logger: l}
}

// Enabled reports whether the logger floor admits the given level
func (c *ZapCore) Enabled(level zapcore.Level) bool {
	return c.logger.Enabled(zapLevelToCore(level))
}

// With returns a core that adds fields to every entry
func (c *ZapCore) With(fields []zapcore.Field) zapcore.Core {
	return &ZapCore{
		logger: c.logger,
		fields: append(slices.Clone(c.fields), fields...),
	}
}

// Check adds this core to ce if the entry level is enabled
func (c *ZapCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

// Write converts a zap entry into an event and dispatches it. Fields
// are rendered sorted by key.
func (c *ZapCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	level := zapLevelToCore(ent.Level)
	ev := c.logger.NewEvent(level, zapCaller(ent.Caller))
	if !ent.Time.IsZero() {
		ev.Time = ent.Time
	}
	_, _ = ev.WriteString(ent.Message)

	enc := zapcore.NewMapObjectEncoder()
	for _, f := range c.fields {
		f.AddTo(enc)
	}
	for _, f := range fields {
		f.AddTo(enc)
	}
	keys := make([]string, 0, len(enc.Fields))
	for k := range enc.Fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		writeField(ev, k, fmt.Sprint(enc.Fields[k]))
	}

	c.logger.Log(level, ev)
	return nil
}

// Sync is a no-op; appenders write synchronously or own their flushing
func (c *ZapCore) Sync() error {
	return nil
}

func zapCaller(ec zapcore.EntryCaller) core.CallerInfo {
	if !ec.Defined {
		return core.CallerInfo{}
	}
	return core.CallerInfo{
		File:      ec.File,
		ShortFile: filepath.Base(ec.File),
		Line:      ec.Line,
		Function:  ec.Function,
		Defined:   true,
	}
}

// zapLevelToCore converts a zapcore.Level to a core.Level
func zapLevelToCore(level zapcore.Level) core.Level {
	switch {
	case level >= zapcore.DPanicLevel:
		return core.FatalLevel
	case level >= zapcore.ErrorLevel:
		return core.ErrorLevel
	case level >= zapcore.WarnLevel:
		return core.WarnLevel
	case level >= zapcore.InfoLevel:
		return core.InfoLevel
	default:
		return core.DebugLevel
	}
}
