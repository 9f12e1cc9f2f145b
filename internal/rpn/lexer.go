package rpn

import (
	"fmt"
	"unicode/utf8"

	"github.com/karupanerura/rpn2tex/internal/types"
)

type lexer struct {
	source string
	index  int
	line   int
	column int
}

func newLexer(source string) *lexer {
	return &lexer{
		source: source,
		index:  0,
		line:   1,
		column: 1,
	}
}

// Tokenize scans source left to right into a token sequence terminated by
// exactly one EOFToken. It fails on the first unrecognized character.
func Tokenize(source string) ([]Token, error) {
	l := newLexer(source)

	var tokens []Token
	for {
		l.skipWhitespace()
		if l.index == len(l.source) {
			tokens = append(tokens, Token{Kind: EOFToken, Line: l.line, Column: l.column})
			return tokens, nil
		}

		tok, err := l.scanToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
}

func (l *lexer) peek() (rune, bool) {
	if l.index == len(l.source) {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(l.source[l.index:])
	return r, true
}

func (l *lexer) peekNext() (rune, bool) {
	if l.index == len(l.source) {
		return 0, false
	}
	_, size := utf8.DecodeRuneInString(l.source[l.index:])
	if l.index+size == len(l.source) {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(l.source[l.index+size:])
	return r, true
}

func (l *lexer) advance() {
	r, ok := l.peek()
	if !ok {
		return
	}
	l.index += utf8.RuneLen(r)
	if r == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
}

func (l *lexer) skipWhitespace() {
	for {
		switch r, ok := l.peek(); {
		case !ok:
			return
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			l.advance()
		default:
			return
		}
	}
}

func (l *lexer) scanToken() (Token, error) {
	line, column := l.line, l.column
	ch, _ := l.peek()

	switch {
	case ch == '+':
		l.advance()
		return Token{Kind: PlusToken, Text: "+", Line: line, Column: column}, nil

	case ch == '-':
		// A '-' is a sign prefix only when a digit immediately follows it
		// in the source, regardless of surrounding whitespace.
		if next, ok := l.peekNext(); ok && isDigit(next) {
			return l.scanNumber(line, column), nil
		}
		l.advance()
		return Token{Kind: MinusToken, Text: "-", Line: line, Column: column}, nil

	case ch == '*':
		l.advance()
		return Token{Kind: StarToken, Text: "*", Line: line, Column: column}, nil

	case ch == '/':
		l.advance()
		return Token{Kind: SlashToken, Text: "/", Line: line, Column: column}, nil

	case isDigit(ch):
		return l.scanNumber(line, column), nil

	default:
		return Token{}, &types.SyntaxError{
			Tag:     types.LexErrorTag,
			Message: fmt.Sprintf("Unexpected character '%c'", ch),
			Line:    line,
			Column:  column,
		}
	}
}

// scanNumber consumes an optional '-' sign, the integer digits, and a
// fractional part only when a digit follows the dot. A trailing '.' is left
// for the next scan, which then fails on it as an unexpected character.
func (l *lexer) scanNumber(line, column int) Token {
	start := l.index
	if ch, _ := l.peek(); ch == '-' {
		l.advance()
	}
	l.scanDigits()
	if ch, ok := l.peek(); ok && ch == '.' {
		if next, ok := l.peekNext(); ok && isDigit(next) {
			l.advance()
			l.scanDigits()
		}
	}

	return Token{Kind: NumberToken, Text: l.source[start:l.index], Line: line, Column: column}
}

func (l *lexer) scanDigits() {
	for {
		ch, ok := l.peek()
		if !ok || !isDigit(ch) {
			return
		}
		l.advance()
	}
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}
