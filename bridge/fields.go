package bridge

import (
	"strconv"
	"strings"

	"github.com/philipp01105/patlog/core"
)

// writeField appends " key=value" to the event message
func writeField(ev *core.Event, key, value string) {
	_, _ = ev.WriteString(" ")
	_, _ = ev.WriteString(key)
	_, _ = ev.WriteString("=")
	if needsQuote(value) {
		value = strconv.Quote(value)
	}
	_, _ = ev.WriteString(value)
}

func needsQuote(s string) bool {
	return s == "" || strings.ContainsAny(s, " \t\n\"=")
}
