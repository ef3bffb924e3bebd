package formatter

import (
	"bytes"
	"strconv"

	"github.com/lestrrat-go/strftime"

	"github.com/philipp01105/patlog/core"
)

type itemKind uint8

const (
	literalItem itemKind = iota
	messageItem
	levelItem
	elapsedItem
	nameItem
	threadIDItem
	fiberIDItem
	dateItem
	fileItem
	lineItem
	tabItem
	newlineItem
	threadNameItem
)

// item is one step of a compiled pattern. text holds the literal for
// literalItem and the source layout for dateItem.
type item struct {
	kind itemKind
	text string
	date *strftime.Strftime
}

func (it *item) render(buf *bytes.Buffer, level core.Level, ev *core.Event) {
	switch it.kind {
	case literalItem:
		buf.WriteString(it.text)
	case messageItem:
		buf.Write(ev.MessageBytes())
	case levelItem:
		buf.WriteString(level.String())
	case elapsedItem:
		buf.Write(strconv.AppendUint(buf.AvailableBuffer(), ev.Elapsed, 10))
	case nameItem:
		buf.WriteString(ev.Logger)
	case threadIDItem:
		buf.Write(strconv.AppendInt(buf.AvailableBuffer(), int64(ev.ThreadID), 10))
	case fiberIDItem:
		buf.Write(strconv.AppendUint(buf.AvailableBuffer(), ev.FiberID, 10))
	case dateItem:
		_ = it.date.Format(buf, ev.Time)
	case fileItem:
		buf.WriteString(ev.File)
	case lineItem:
		buf.Write(strconv.AppendInt(buf.AvailableBuffer(), int64(ev.Line), 10))
	case tabItem:
		buf.WriteByte('\t')
	case newlineItem:
		buf.WriteByte('\n')
	case threadNameItem:
		buf.WriteString(ev.ThreadName)
	}
}
