// Package logger is the public API of patlog. Most users only need to
// import this package.
//
// A Logger is a named severity gate with an ordered list of appenders
// and a default Formatter. Logging an event checks the logger floor,
// then hands the event to every appender in insertion order; each
// appender applies its own floor and renders with its own formatter or,
// if it has none, the logger's. A logger without appenders falls back
// to the appenders currently attached to the root logger, so changes to
// root are visible immediately to such loggers.
//
// Loggers are obtained from a Manager, which owns the name registry and
// the root logger:
//
//	m := logger.NewManager(logger.Config{})
//	db := m.Get("db")
//	db.Infof("connected to %s", addr)
//
// The package also initializes a process-wide default Manager in init().
// The package-level functions Root, Get, Info, Errorf, etc. use it, so
// simple programs can log without any setup:
//
//	logger.Info("ready")
//	logger.Get("http").Warnf("slow request: %s", path)
//
// Messages can also be built incrementally with an EventWrap, which
// dispatches when closed, or with Scoped, which closes it on every exit
// path of the callback including a panic:
//
//	w := lg.Begin(logger.InfoLevel)
//	defer w.Close()
//	fmt.Fprintf(w, "processed %d rows", n)
//
// Level checks happen before the event is built, so filtered-out
// messages cost only an atomic load and an integer comparison.
package logger
