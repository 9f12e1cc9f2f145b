package rpn

import (
	"fmt"
	"os"
	"strconv"

	"github.com/k0kubun/pp"
	"github.com/karupanerura/rpn2tex/internal/types"
)

var operatorByTokenKind = map[TokenKind]Operator{
	PlusToken:  AddOperator,
	MinusToken: SubtractOperator,
	StarToken:  MultiplyOperator,
	SlashToken: DivideOperator,
}

var parserDebugLog = false

func init() {
	if v, err := strconv.ParseBool(os.Getenv("RPN2TEX_DEBUG")); v && err == nil {
		parserDebugLog = true
	}
}

// Parse reduces the token sequence to a single expression tree using the
// classic RPN operand stack. The right operand is popped before the left one.
func Parse(tokens []Token) (Expr, error) {
	var stack []Expr

loop:
	for _, tok := range tokens {
		switch tok.Kind {
		case NumberToken:
			stack = append(stack, &NumberLiteral{
				Text:   tok.Text,
				Line:   tok.Line,
				Column: tok.Column,
			})

		case PlusToken, MinusToken, StarToken, SlashToken:
			if len(stack) < 2 {
				return nil, &types.SyntaxError{
					Tag:     types.ParseErrorTag,
					Message: fmt.Sprintf("Operator '%s' requires two operands", tok.Text),
					Line:    tok.Line,
					Column:  tok.Column,
				}
			}

			right := stack[len(stack)-1]
			left := stack[len(stack)-2]
			stack = stack[:len(stack)-2]
			stack = append(stack, &BinaryOp{
				Op:     operatorByTokenKind[tok.Kind],
				Left:   left,
				Right:  right,
				Line:   tok.Line,
				Column: tok.Column,
			})

		case EOFToken:
			break loop

		default:
			return nil, &types.SyntaxError{
				Tag:     types.ParseErrorTag,
				Message: fmt.Sprintf("Unexpected token %q", tok.Text),
				Line:    tok.Line,
				Column:  tok.Column,
			}
		}
	}

	switch len(stack) {
	case 0:
		line, column := 1, 1
		if len(tokens) != 0 {
			last := tokens[len(tokens)-1]
			line, column = last.Line, last.Column
		}
		return nil, &types.SyntaxError{
			Tag:     types.ParseErrorTag,
			Message: "Empty expression",
			Line:    line,
			Column:  column,
		}

	case 1:
		if parserDebugLog {
			pp.Println(stack[0])
		}
		return stack[0], nil

	default:
		first := tokens[0]
		return nil, &types.SyntaxError{
			Tag:     types.ParseErrorTag,
			Message: fmt.Sprintf("Invalid RPN: %d values remain on stack (missing operators?)", len(stack)),
			Line:    first.Line,
			Column:  first.Column,
		}
	}
}
