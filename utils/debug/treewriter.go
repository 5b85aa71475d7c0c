// Package debug formats human readable dumps for debug report.
package debug

import (
	"fmt"
	"strconv"
	"strings"
)

// TreeWriter accumulates indented lines, two spaces per level.
type TreeWriter struct {
	b strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{}
}

func (tw *TreeWriter) String() string {
	return tw.b.String()
}

func (tw *TreeWriter) indent(depth int) {
	for range depth {
		tw.b.WriteString("  ")
	}
}

// Line writes formatted line at depth.
func (tw *TreeWriter) Line(depth int, format string, args ...any) {
	tw.indent(depth)
	fmt.Fprintf(&tw.b, format, args...)
	tw.b.WriteByte('\n')
}

// Field writes "label: value" line, non empty strings are quoted so
// whitespace is visible.
func (tw *TreeWriter) Field(depth int, label string, value any) {
	tw.indent(depth)
	tw.b.WriteString(label)
	tw.b.WriteString(": ")
	switch v := value.(type) {
	case string:
		if len(v) > 0 {
			v = strconv.Quote(v)
		}
		tw.b.WriteString(v)
	case fmt.Stringer:
		tw.b.WriteString(v.String())
	default:
		fmt.Fprint(&tw.b, v)
	}
	tw.b.WriteByte('\n')
}
