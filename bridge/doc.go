// Package bridge feeds records from other logging front ends into a
// patlog Logger.
//
// SlogHandler implements log/slog.Handler and ZapCore implements
// zapcore.Core. Both turn each record into a core.Event owned by the
// target logger, carrying the record time and caller, and render
// attributes after the message as key=value pairs. Values containing
// spaces, quotes or '=' are quoted. The logger's appenders and
// formatters then apply exactly as for native calls.
//
//	slog.SetDefault(slog.New(bridge.NewSlogHandler(logger.Get("app"))))
//	zl := zap.New(bridge.NewZapCore(logger.Get("rpc")), zap.AddCaller())
package bridge
