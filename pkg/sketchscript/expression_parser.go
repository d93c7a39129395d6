package sketchscript

import (
	"strconv"
	"unicode"
)

// The expression grammar is classic precedence climbing:
//
//	expression := term (('+' | '-') term)*      left-associative
//	term       := factor (('*' | '/') factor)*  left-associative
//	factor     := NUMBER | IDENTIFIER | '(' expression ')'
//
// Every parse function threads an explicit token index and a caller-supplied
// stop-token set. The stop set is how the same grammar embeds into different
// statement contexts without a statement terminator: the expression in
// "MOVE ... Forward" stops at the direction word, a condition's left side
// stops at the comparison operator, and so on. A parse function never
// consumes a token that belongs to the stop set.

// ParseExpression parses an expression starting at tokens[i] and returns the
// tree plus the index of the first unconsumed token.
func ParseExpression(tokens []string, i int, stop map[string]bool) (Expr, int, error) {
	node, i, err := parseTerm(tokens, i, stop)
	if err != nil {
		return nil, i, err
	}
	for i < len(tokens) && (tokens[i] == "+" || tokens[i] == "-") && !stop[tokens[i]] {
		op := tokens[i]
		right, next, err := parseTerm(tokens, i+1, stop)
		if err != nil {
			return nil, next, err
		}
		node = &BinaryExpr{Op: op, Left: node, Right: right}
		i = next
	}
	return node, i, nil
}

func parseTerm(tokens []string, i int, stop map[string]bool) (Expr, int, error) {
	node, i, err := parseFactor(tokens, i, stop)
	if err != nil {
		return nil, i, err
	}
	for i < len(tokens) && (tokens[i] == "*" || tokens[i] == "/") && !stop[tokens[i]] {
		op := tokens[i]
		right, next, err := parseFactor(tokens, i+1, stop)
		if err != nil {
			return nil, next, err
		}
		node = &BinaryExpr{Op: op, Left: node, Right: right}
		i = next
	}
	return node, i, nil
}

func parseFactor(tokens []string, i int, stop map[string]bool) (Expr, int, error) {
	if i >= len(tokens) {
		return nil, i, NewSketchError(ErrCategorySyntax, "UNEXPECTED_END")
	}
	token := tokens[i]
	if stop[token] {
		return nil, i, NewSketchError(ErrCategorySyntax, "UNEXPECTED_TOKEN")
	}
	switch {
	case token == "(":
		inner := withStop(stop, ")")
		node, next, err := ParseExpression(tokens, i+1, inner)
		if err != nil {
			return nil, next, err
		}
		if next >= len(tokens) || tokens[next] != ")" {
			return nil, next, NewSketchError(ErrCategorySyntax, "MISSING_PARENTHESIS")
		}
		return node, next + 1, nil
	case isNumericToken(token):
		// The shape test admits at most one dot; ParseFloat still rejects
		// the lone "." it lets through.
		val, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return nil, i, NewSketchError(ErrCategorySyntax, "INVALID_NUMBER")
		}
		return NumberExpr(val), i + 1, nil
	case isAlphaToken(token) || CommandKeywords[token]:
		// Keywords are not reserved in expression position.
		return VarExpr(token), i + 1, nil
	default:
		return nil, i, NewSketchError(ErrCategorySyntax, "UNEXPECTED_TOKEN")
	}
}

// ParseFullExpression parses tokens as one complete expression and rejects
// leftover tokens.
func ParseFullExpression(tokens []string) (Expr, error) {
	expr, i, err := ParseExpression(tokens, 0, nil)
	if err != nil {
		return nil, err
	}
	if i != len(tokens) {
		return nil, NewSketchError(ErrCategorySyntax, "EXTRA_TOKENS")
	}
	return expr, nil
}

// relationalOps are the condition operators, doubling as the stop set for a
// condition's left-hand expression.
var relationalOps = map[string]bool{">": true, "<": true, "=": true, "!=": true}

// ParseCondition parses "<expr> <relop> <expr>" starting at tokens[i]. The
// right-hand expression stops at "{" so the condition composes with the block
// that follows it in IF and WHILE.
func ParseCondition(tokens []string, i int) (*Condition, int, error) {
	left, i, err := ParseExpression(tokens, i, relationalOps)
	if err != nil {
		return nil, i, err
	}
	if i >= len(tokens) {
		return nil, i, NewSketchError(ErrCategorySyntax, "MISSING_OPERATOR")
	}
	op := tokens[i]
	if !relationalOps[op] {
		return nil, i, NewSketchError(ErrCategorySyntax, "MISSING_OPERATOR")
	}
	right, i, err := ParseExpression(tokens, i+1, map[string]bool{"{": true})
	if err != nil {
		return nil, i, err
	}
	return &Condition{Left: left, Op: op, Right: right}, i, nil
}

// FindBlockEnd scans forward from the index just after an opening brace and
// returns the index just past the matching closing brace, honoring nesting.
// An unmatched brace runs to the end of the token sequence.
func FindBlockEnd(tokens []string, start int) int {
	depth := 1
	i := start
	for i < len(tokens) && depth > 0 {
		switch tokens[i] {
		case "{":
			depth++
		case "}":
			depth--
		}
		i++
	}
	return i
}

// withStop returns a copy of stop with one extra token. Stop sets are tiny,
// so copying beats sharing a mutable map between recursion levels.
func withStop(stop map[string]bool, token string) map[string]bool {
	out := make(map[string]bool, len(stop)+1)
	for k := range stop {
		out[k] = true
	}
	out[token] = true
	return out
}

// isNumericToken reports whether a token looks like a numeric literal: only
// digits with at most one embedded dot, and at least one digit.
func isNumericToken(token string) bool {
	if token == "" {
		return false
	}
	dots := 0
	digits := 0
	for _, r := range token {
		switch {
		case r == '.':
			dots++
			if dots > 1 {
				return false
			}
		case r >= '0' && r <= '9':
			digits++
		default:
			return false
		}
	}
	return digits > 0
}

// isAlphaToken reports whether a token consists solely of letters.
func isAlphaToken(token string) bool {
	if token == "" {
		return false
	}
	for _, r := range token {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
