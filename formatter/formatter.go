package formatter

import (
	"bytes"
	"io"
	"strings"
	"sync"

	"github.com/lestrrat-go/strftime"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/philipp01105/patlog/core"
)

const (
	// Default is the layout used by loggers without an explicit pattern
	Default = "%d{%Y-%m-%d %H:%M:%S}%T%t%T%N%T%F%T[%p]%T[%c]%T%f:%l%T%m%n"

	// DefaultDate is the %d sub-pattern used when no braces follow
	DefaultDate = "%Y-%m-%d %H:%M:%S"

	// ErrorMarker replaces every malformed segment of a pattern
	ErrorMarker = "<<pattern_error>>"
)

// Formatter is a compiled pattern. The zero value renders nothing.
type Formatter struct {
	pattern string
	items   []item
	err     error
}

// New compiles pattern. It always returns a usable Formatter; check
// HasError to find out whether parts of the pattern were rejected.
func New(pattern string) *Formatter {
	f := &Formatter{pattern: pattern}
	f.items, f.err = compile(pattern)
	return f
}

// Pattern returns the source pattern
func (f *Formatter) Pattern() string {
	return f.pattern
}

// HasError reports whether any segment of the pattern failed to compile
func (f *Formatter) HasError() bool {
	return f.err != nil
}

// Err returns every compile failure combined, or nil
func (f *Formatter) Err() error {
	return f.err
}

// Format renders ev at level into a new string
func (f *Formatter) Format(level core.Level, ev *core.Event) string {
	buf := getBuffer()
	f.AppendTo(buf, level, ev)
	s := buf.String()
	putBuffer(buf)
	return s
}

// FormatTo renders ev at level and writes the result to w in one call
func (f *Formatter) FormatTo(w io.Writer, level core.Level, ev *core.Event) error {
	buf := getBuffer()
	f.AppendTo(buf, level, ev)
	_, err := w.Write(buf.Bytes())
	putBuffer(buf)
	return err
}

// AppendTo renders ev at level into buf
func (f *Formatter) AppendTo(buf *bytes.Buffer, level core.Level, ev *core.Event) {
	for i := range f.items {
		f.items[i].render(buf, level, ev)
	}
}

// conversions maps a conversion character to its item kind
var conversions = map[byte]itemKind{
	'm': messageItem,
	'p': levelItem,
	'r': elapsedItem,
	'c': nameItem,
	't': threadIDItem,
	'n': newlineItem,
	'd': dateItem,
	'f': fileItem,
	'l': lineItem,
	'T': tabItem,
	'F': fiberIDItem,
	'N': threadNameItem,
}

// compile scans pattern left to right. Failures are collected rather
// than returned early so the remaining segments still compile.
func compile(pattern string) ([]item, error) {
	var (
		items []item
		errs  error
		lit   strings.Builder
	)
	flush := func() {
		if lit.Len() > 0 {
			items = append(items, item{kind: literalItem, text: lit.String()})
			lit.Reset()
		}
	}
	fail := func(err error) {
		flush()
		items = append(items, item{kind: literalItem, text: ErrorMarker})
		errs = multierr.Append(errs, err)
	}

	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c != '%' {
			lit.WriteByte(c)
			continue
		}
		if i+1 == len(pattern) {
			fail(errors.Errorf("offset %d: dangling %%", i))
			break
		}
		conv := pattern[i+1]
		if conv == '%' {
			lit.WriteByte('%')
			i++
			continue
		}
		kind, ok := conversions[conv]
		if !ok {
			fail(errors.Errorf("offset %d: unknown conversion %%%c", i, conv))
			i++
			continue
		}
		if kind != dateItem {
			flush()
			items = append(items, item{kind: kind})
			i++
			continue
		}

		start := i
		layout := DefaultDate
		next := i + 2
		if next < len(pattern) && pattern[next] == '{' {
			end := strings.IndexByte(pattern[next+1:], '}')
			if end < 0 {
				fail(errors.Errorf("offset %d: unterminated {", start))
				break
			}
			if end > 0 {
				layout = pattern[next+1 : next+1+end]
			}
			i = next + 1 + end
		} else {
			i++
		}
		tf, err := strftime.New(layout, strftime.WithMilliseconds('L'))
		if err != nil {
			fail(errors.Wrapf(err, "offset %d: bad date layout %q", start, layout))
			continue
		}
		flush()
		items = append(items, item{kind: dateItem, text: layout, date: tf})
	}
	flush()
	return items, errs
}

// bufferPool is a pool of bytes.Buffer to reduce allocations
var bufferPool = &sync.Pool{
	New: func() interface{} {
		b := new(bytes.Buffer)
		b.Grow(256)
		return b
	},
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 64*1024 { // Don't keep very large buffers
		return
	}
	bufferPool.Put(buf)
}
