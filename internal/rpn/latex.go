package rpn

import (
	"fmt"
	"strings"
)

var operatorSymbolMap = map[Operator]string{
	AddOperator:      "+",
	SubtractOperator: "-",
	MultiplyOperator: `\times`,
	DivideOperator:   `\div`,
}

var operatorPrecedenceMap = map[Operator]uint8{
	AddOperator:      1,
	SubtractOperator: 1,
	MultiplyOperator: 2,
	DivideOperator:   2,
}

// Render emits the math-mode LaTeX form of the tree, parenthesizing a
// subexpression only where precedence or right-side associativity demands it.
// It is total for trees built by Parse; an unknown operator is a broken
// invariant and panics.
func Render(root Expr) string {
	var b strings.Builder
	b.WriteByte('$')
	b.WriteString(renderExpr(root))
	b.WriteByte('$')
	return b.String()
}

func renderExpr(e Expr) string {
	switch v := e.(type) {
	case *NumberLiteral:
		return v.Text

	case *BinaryOp:
		symbol, ok := operatorSymbolMap[v.Op]
		if !ok {
			panic(fmt.Sprintf("unknown operator: %d", v.Op))
		}
		precedence := operatorPrecedenceMap[v.Op]

		left := renderExpr(v.Left)
		if needsParens(v.Left, precedence, false) {
			left = "( " + left + " )"
		}
		right := renderExpr(v.Right)
		if needsParens(v.Right, precedence, true) {
			right = "( " + right + " )"
		}

		return left + " " + symbol + " " + right

	default:
		panic(fmt.Sprintf("unknown expression node: %T", e))
	}
}

// needsParens groups a child whose operator binds looser than the parent, and
// a same-precedence Subtract or Divide on the right side, which would
// otherwise read left-associated and change meaning.
func needsParens(child Expr, parentPrecedence uint8, rightSide bool) bool {
	op, ok := child.(*BinaryOp)
	if !ok {
		return false
	}

	childPrecedence := operatorPrecedenceMap[op.Op]
	if childPrecedence < parentPrecedence {
		return true
	}
	if childPrecedence == parentPrecedence && rightSide {
		return op.Op == SubtractOperator || op.Op == DivideOperator
	}
	return false
}
