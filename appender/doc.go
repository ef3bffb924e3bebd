// Package appender provides the Appender interface shared by every
// output sink, the Base type that concrete sinks embed, and the Async
// wrapper that moves sink I/O off the caller's goroutine.
//
// An Appender has its own severity floor and an optional Formatter. When
// it has none, it renders with the Formatter of the Owner (the logger)
// that dispatched the event, so a logger-wide pattern change applies to
// every appender that has not been given its own.
//
// Appenders never return errors from Log. Write failures are counted in
// Stats and the most recent one is available from LastError; a broken
// sink must not change the control flow of the application that logs
// to it.
//
// Built-in sinks live in sub-packages:
//
//   - consoleappender writes to stdout or any io.Writer.
//   - fileappender writes to a file that is reopened once per second so
//     external rotation is picked up, or to a size-rotated file backed by
//     lumberjack.
//
// Async wraps any Appender with a bounded queue and a per-level
// OverflowPolicy: DropNewest (default for Debug/Info/Warn), DropOldest,
// or Block with a configurable timeout (default for Error and Fatal).
package appender
