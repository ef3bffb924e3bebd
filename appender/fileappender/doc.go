// Package fileappender provides appenders that write rendered events to
// files.
//
//   - FileAppender keeps one file open in append mode and reopens it
//     whenever the wall clock crosses a ReopenInterval boundary (default:
//     one second). A file that was renamed or deleted by an external
//     rotation tool is therefore recreated on the next write without any
//     call to Reopen.
//   - RollingAppender delegates to lumberjack and rotates by size, with
//     optional age and backup-count limits and gzip compression.
//
// In both, the reopen check and the write happen under the appender
// lock, and failures are counted rather than returned from Log.
package fileappender
