package report_test

import (
	"strings"
	"testing"

	"github.com/karupanerura/rpn2tex/internal/report"
	"github.com/karupanerura/rpn2tex/internal/types"
)

func TestSourceContextFormat(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name     string
		source   string
		radius   int
		err      *types.SyntaxError
		expected string
	}{
		{
			name:   "single line",
			source: "5 3 ^",
			radius: 0,
			err: &types.SyntaxError{
				Tag:     types.LexErrorTag,
				Message: "Unexpected character '^'",
				Line:    1,
				Column:  5,
			},
			expected: strings.Join([]string{
				"Line 1, column 5: Unexpected character '^'",
				"1 | 5 3 ^",
				"        ^",
				"",
			}, "\n"),
		},
		{
			name:   "middle line with context",
			source: "5 3 +\n10 @ 2\n7 4 *",
			radius: 1,
			err: &types.SyntaxError{
				Tag:     types.LexErrorTag,
				Message: "Unexpected character '@'",
				Line:    2,
				Column:  4,
			},
			expected: strings.Join([]string{
				"Line 2, column 4: Unexpected character '@'",
				"1 | 5 3 +",
				"2 | 10 @ 2",
				"       ^",
				"3 | 7 4 *",
				"",
			}, "\n"),
		},
		{
			name:   "radius clipped at the start",
			source: "@ 1 +\n2 3 +",
			radius: 2,
			err: &types.SyntaxError{
				Tag:     types.LexErrorTag,
				Message: "Unexpected character '@'",
				Line:    1,
				Column:  1,
			},
			expected: strings.Join([]string{
				"Line 1, column 1: Unexpected character '@'",
				"1 | @ 1 +",
				"    ^",
				"2 | 2 3 +",
				"",
			}, "\n"),
		},
		{
			name:   "line out of range renders header only",
			source: "5 3 +",
			radius: 1,
			err: &types.SyntaxError{
				Tag:     types.ParseErrorTag,
				Message: "Empty expression",
				Line:    9,
				Column:  1,
			},
			expected: "Line 9, column 1: Empty expression\n",
		},
	} {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx := report.NewSourceContext(tt.source, tt.radius)
			if got := ctx.Format(tt.err); got != tt.expected {
				t.Errorf("unexpected output:\n%q\nexpected:\n%q", got, tt.expected)
			}
		})
	}
}
