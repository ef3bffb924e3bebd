// Package core defines the shared types used across patlog.
//
// It provides the Level type for severity filtering and the Event type
// that captures a single log occurrence: source location, thread and
// fiber ids, thread name, wall-clock time, elapsed milliseconds since
// process start, owning logger name, level and a message buffer.
//
// The contextual fields of an Event are set once at construction and
// are read-only afterwards. Only the message buffer may be appended to,
// and only until the event is dispatched to its logger.
//
// Thread ids, fiber ids and thread names come from a Provider. Go has no
// user-visible OS thread ids, so RuntimeProvider reports the process id
// as the thread id and the current goroutine id as the fiber id.
package core
