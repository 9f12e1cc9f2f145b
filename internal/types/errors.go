package types

import (
	"fmt"

	"github.com/samber/lo"
)

type ErrorTag string

const (
	LexErrorTag   ErrorTag = "LexError"
	ParseErrorTag ErrorTag = "ParseError"
)

// SyntaxError is the structured error handed to the I/O layer by every stage
// of the pipeline. Line and Column are 1-based.
type SyntaxError struct {
	Tag     ErrorTag
	Message string
	Line    int
	Column  int
	Extra   map[string]any
}

// Error renders the canonical form matched by downstream tooling:
// "Line {line}, column {column}: {message}". Do not add a prefix or tag.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("Line %d, column %d: %s", e.Line, e.Column, e.Message)
}

// Detail returns the JSON-facing shape of the error.
func (e *SyntaxError) Detail() map[string]any {
	o := map[string]any{
		"tag":     e.Tag,
		"message": e.Message,
		"line":    e.Line,
		"column":  e.Column,
	}
	if len(e.Extra) != 0 {
		o = lo.Assign(o, e.Extra)
	}
	return o
}
