// Package debug has helpers producing human readable dumps for debug reports.
package debug

import (
	"fmt"
	"strconv"
	"strings"
)

// TreeWriter accumulates indented lines, two spaces per depth level.
type TreeWriter struct {
	w *strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{
		w: &strings.Builder{},
	}
}

func (tw *TreeWriter) String() string {
	return tw.w.String()
}

func (tw *TreeWriter) indent(depth int) {
	for range depth {
		tw.w.WriteString("  ")
	}
}

func (tw *TreeWriter) Line(depth int, format string, args ...any) {
	tw.indent(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

// TextBlock writes "label: value" with value quoted, empty value is left as is.
func (tw *TreeWriter) TextBlock(depth int, label, value string) {
	tw.indent(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(encodeText(value))
	tw.w.WriteByte('\n')
}

// Element writes name followed by key=value pairs with values quoted. Odd
// trailing key is ignored.
func (tw *TreeWriter) Element(depth int, name string, kv ...string) {
	tw.indent(depth)
	tw.w.WriteString(name)
	for i := 0; i+1 < len(kv); i += 2 {
		tw.w.WriteByte(' ')
		tw.w.WriteString(kv[i])
		tw.w.WriteByte('=')
		tw.w.WriteString(strconv.Quote(kv[i+1]))
	}
	tw.w.WriteByte('\n')
}

func encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}
