package sketchscript_test

import (
	"testing"

	"github.com/Harsh-Thanki/SketchScript-2.0/pkg/sketchscript"
)

// evalSource parses and evaluates a single expression against a fresh
// interpreter with an empty environment.
func evalSource(t *testing.T, source string) float64 {
	t.Helper()
	expr, err := sketchscript.ParseFullExpression(sketchscript.Tokenize(source))
	if err != nil {
		t.Fatalf("ParseFullExpression(%q) failed: %v", source, err)
	}
	val, err := sketchscript.NewSketchScript().Eval(expr)
	if err != nil {
		t.Fatalf("Eval(%q) failed: %v", source, err)
	}
	return val
}

func TestArithmeticPrecedence(t *testing.T) {
	if got := evalSource(t, "2 + 3 * 4"); got != 14 {
		t.Errorf("2 + 3 * 4 = %v, want 14", got)
	}
	if got := evalSource(t, "( 2 + 3 ) * 4"); got != 20 {
		t.Errorf("( 2 + 3 ) * 4 = %v, want 20", got)
	}
}

func TestLeftAssociativity(t *testing.T) {
	if got := evalSource(t, "10 - 3 - 2"); got != 5 {
		t.Errorf("10 - 3 - 2 = %v, want 5", got)
	}
	if got := evalSource(t, "100 / 10 / 2"); got != 5 {
		t.Errorf("100 / 10 / 2 = %v, want 5", got)
	}
}

func TestDivisionByZeroYieldsZero(t *testing.T) {
	if got := evalSource(t, "5 / 0"); got != 0 {
		t.Errorf("5 / 0 = %v, want 0", got)
	}
	if got := evalSource(t, "1 + 7 / ( 3 - 3 )"); got != 1 {
		t.Errorf("1 + 7 / ( 3 - 3 ) = %v, want 1", got)
	}
}

func TestUnknownVariableDefaultsToZero(t *testing.T) {
	if got := evalSource(t, "nosuchvar + 3"); got != 3 {
		t.Errorf("nosuchvar + 3 = %v, want 3", got)
	}
}

func TestKeywordAsVariableInExpression(t *testing.T) {
	// Keywords are not reserved in expression position; an unbound one reads
	// as 0 like any other name.
	if got := evalSource(t, "MOVE + 1"); got != 1 {
		t.Errorf("MOVE + 1 = %v, want 1", got)
	}
}

func TestParseExpressionStopsAtStopToken(t *testing.T) {
	tokens := sketchscript.Tokenize("10 + 5 Forward")
	stop := map[string]bool{"Forward": true}
	_, next, err := sketchscript.ParseExpression(tokens, 0, stop)
	if err != nil {
		t.Fatalf("ParseExpression failed: %v", err)
	}
	if next >= len(tokens) || tokens[next] != "Forward" {
		t.Errorf("parse consumed past the stop token, next index %d", next)
	}
}

func TestParseFullExpressionRejectsExtraTokens(t *testing.T) {
	_, err := sketchscript.ParseFullExpression(sketchscript.Tokenize("1 + 2 3"))
	assertSyntaxError(t, err, "EXTRA_TOKENS")
}

func TestParseExpressionErrors(t *testing.T) {
	cases := []struct {
		name   string
		source string
		detail string
	}{
		{"truncated expression", "1 +", "UNEXPECTED_END"},
		{"operator in factor position", "* 2", "UNEXPECTED_TOKEN"},
		{"unmatched parenthesis", "( 1 + 2", "MISSING_PARENTHESIS"},
		{"empty input", "", "UNEXPECTED_END"},
		{"malformed literal", "1.2.3", "UNEXPECTED_TOKEN"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := sketchscript.ParseFullExpression(sketchscript.Tokenize(tc.source))
			assertSyntaxError(t, err, tc.detail)
		})
	}
}

func TestParseConditionRequiresOperator(t *testing.T) {
	tokens := sketchscript.Tokenize("x + 1 {")
	_, _, err := sketchscript.ParseCondition(tokens, 0)
	assertSyntaxError(t, err, "MISSING_OPERATOR")

	tokens = sketchscript.Tokenize("x + 1")
	_, _, err = sketchscript.ParseCondition(tokens, 0)
	assertSyntaxError(t, err, "MISSING_OPERATOR")

	// A relational operator in factor position is a stop token there.
	tokens = sketchscript.Tokenize("> 1 {")
	_, _, err = sketchscript.ParseCondition(tokens, 0)
	assertSyntaxError(t, err, "UNEXPECTED_TOKEN")
}

func TestParseConditionStopsAtBrace(t *testing.T) {
	tokens := sketchscript.Tokenize("x < 5 { SET x = 1 }")
	cond, next, err := sketchscript.ParseCondition(tokens, 0)
	if err != nil {
		t.Fatalf("ParseCondition failed: %v", err)
	}
	if cond.Op != "<" {
		t.Errorf("condition op = %q, want <", cond.Op)
	}
	if tokens[next] != "{" {
		t.Errorf("parse should stop at the opening brace, stopped at %q", tokens[next])
	}
}

func TestParseConditionNotEquals(t *testing.T) {
	tokens := sketchscript.Tokenize("a != b {")
	cond, _, err := sketchscript.ParseCondition(tokens, 0)
	if err != nil {
		t.Fatalf("ParseCondition failed: %v", err)
	}
	if cond.Op != "!=" {
		t.Errorf("condition op = %q, want !=", cond.Op)
	}
}

func TestFindBlockEndNested(t *testing.T) {
	// IF n > 0 { WHILE m < 2 { SET m = m + 1 } SET n = 0 }
	tokens := sketchscript.Tokenize("{ WHILE m < 2 { SET m = m + 1 } SET n = 0 } TURN")
	// Index 1 is just past the outer opening brace.
	end := sketchscript.FindBlockEnd(tokens, 1)
	if tokens[end-1] != "}" {
		t.Fatalf("FindBlockEnd should stop just past a closing brace, got index %d", end)
	}
	if end != len(tokens)-1 {
		t.Errorf("FindBlockEnd = %d, want %d (just before TURN)", end, len(tokens)-1)
	}
}

func TestFindBlockEndUnmatchedRunsToEnd(t *testing.T) {
	tokens := sketchscript.Tokenize("{ SET x = 1")
	end := sketchscript.FindBlockEnd(tokens, 1)
	if end != len(tokens) {
		t.Errorf("FindBlockEnd = %d, want %d", end, len(tokens))
	}
}

// assertSyntaxError checks that err is a SketchError with the expected
// syntax detail code.
func assertSyntaxError(t *testing.T, err error, detail string) {
	t.Helper()
	if err == nil {
		t.Fatal("expected a syntax error, got nil")
	}
	se, ok := err.(*sketchscript.SketchError)
	if !ok {
		t.Fatalf("expected *SketchError, got %T: %v", err, err)
	}
	if se.Category != sketchscript.ErrCategorySyntax {
		t.Errorf("error category = %q, want %q", se.Category, sketchscript.ErrCategorySyntax)
	}
	if se.Detail != detail {
		t.Errorf("error detail = %q, want %q", se.Detail, detail)
	}
}
