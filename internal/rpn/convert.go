// Package rpn converts Reverse Polish Notation arithmetic expressions into
// LaTeX math-mode strings: Tokenize scans the source text, Parse reduces the
// tokens to an expression tree, and Render emits the `$...$` form with
// minimal parenthesization.
package rpn

// Convert runs the full pipeline on source. On failure the returned error is
// a *types.SyntaxError carrying the 1-based position of the offending input.
func Convert(source string) (string, error) {
	tokens, err := Tokenize(source)
	if err != nil {
		return "", err
	}

	expr, err := Parse(tokens)
	if err != nil {
		return "", err
	}

	return Render(expr), nil
}
