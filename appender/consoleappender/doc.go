// Package consoleappender provides an appender that writes rendered
// events to any io.Writer (default: os.Stdout).
//
// Writes are serialized by the appender lock so lines from concurrent
// goroutines never interleave. Write errors are counted, never returned.
package consoleappender
