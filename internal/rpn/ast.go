package rpn

type Operator int

const (
	AddOperator Operator = iota
	SubtractOperator
	MultiplyOperator
	DivideOperator
)

func (op Operator) String() string {
	switch op {
	case AddOperator:
		return "Add"
	case SubtractOperator:
		return "Subtract"
	case MultiplyOperator:
		return "Multiply"
	case DivideOperator:
		return "Divide"
	default:
		return "Unknown"
	}
}

// Expr is a closed sum: the only implementations are NumberLiteral and
// BinaryOp, both built by Parse and never mutated afterwards.
type Expr interface {
	Pos() (line, column int)
	expr()
}

// NumberLiteral keeps the lexed text verbatim; it is never evaluated.
type NumberLiteral struct {
	Text   string
	Line   int
	Column int
}

func (e *NumberLiteral) Pos() (int, int) {
	return e.Line, e.Column
}

func (e *NumberLiteral) expr() {}

// BinaryOp records the operator token's position for error reporting.
type BinaryOp struct {
	Op     Operator
	Left   Expr
	Right  Expr
	Line   int
	Column int
}

func (e *BinaryOp) Pos() (int, int) {
	return e.Line, e.Column
}

func (e *BinaryOp) expr() {}
