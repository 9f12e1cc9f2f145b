// Package report formats syntax errors with surrounding source context for
// human-oriented output. The core pipeline never imports it.
package report

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/karupanerura/rpn2tex/internal/types"
)

var caretColor = color.New(color.FgRed, color.Bold)

type SourceContext struct {
	lines  []string
	radius int
}

// NewSourceContext splits the source once; radius is the number of context
// lines shown on each side of the error line.
func NewSourceContext(source string, radius int) *SourceContext {
	lines := strings.Split(source, "\n")
	if n := len(lines); n > 1 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return &SourceContext{lines: lines, radius: radius}
}

// Format renders the canonical error line followed by numbered source lines
// and a caret under the error column.
func (c *SourceContext) Format(err *types.SyntaxError) string {
	var b strings.Builder
	b.WriteString(err.Error())
	b.WriteByte('\n')
	b.WriteString(c.context(err.Line, err.Column))
	return b.String()
}

func (c *SourceContext) context(line, column int) string {
	idx := line - 1
	if idx < 0 || idx >= len(c.lines) {
		return ""
	}

	start := idx - c.radius
	if start < 0 {
		start = 0
	}
	end := idx + 1 + c.radius
	if end > len(c.lines) {
		end = len(c.lines)
	}
	width := len(fmt.Sprint(end))

	var b strings.Builder
	for i := start; i < end; i++ {
		fmt.Fprintf(&b, "%*d | %s\n", width, i+1, c.lines[i])
		if i == idx {
			b.WriteString(strings.Repeat(" ", width+3+column-1))
			b.WriteString(caretColor.Sprint("^"))
			b.WriteByte('\n')
		}
	}
	return b.String()
}
