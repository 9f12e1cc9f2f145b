package rpn

type TokenKind int

const (
	NumberToken TokenKind = iota
	PlusToken
	MinusToken
	StarToken
	SlashToken
	EOFToken
)

func (k TokenKind) String() string {
	switch k {
	case NumberToken:
		return "Number"
	case PlusToken:
		return "Plus"
	case MinusToken:
		return "Minus"
	case StarToken:
		return "Star"
	case SlashToken:
		return "Slash"
	case EOFToken:
		return "EndOfInput"
	default:
		return "Unknown"
	}
}

// Token is a single lexical unit. Text is the exact source substring,
// Line and Column are 1-based and point at the token's first character.
type Token struct {
	Kind   TokenKind
	Text   string
	Line   int
	Column int
}
