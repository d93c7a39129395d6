// Package sketchscript implements the SketchScript drawing language: a
// tokenizer, a recursive-descent expression and condition parser, and a
// tree-walking statement interpreter driving a turtle-style drawing cursor.
package sketchscript

// SketchError is a structured interpreter error. Every detected violation is
// fatal to the current run; there is no warning level and no recovery.
type SketchError struct {
	Category  string // error category, e.g. "SYNTAX ERROR"
	Detail    string // machine-readable detail code, e.g. "UNEXPECTED_TOKEN"
	Command   string // statement keyword the error occurred in (optional)
	UsageHint string // correct syntax, attached for syntax errors
}

// Error implements the error interface.
func (se *SketchError) Error() string {
	msg := se.Category + ": " + GetFriendlyErrorText(se.Category, se.Detail)
	if se.Command != "" {
		msg += " (" + se.Command + ")"
	}
	if se.UsageHint != "" {
		msg += "\nUSAGE: " + se.UsageHint
	}
	return msg
}

// NewSketchError creates a new interpreter error.
func NewSketchError(category, detail string) *SketchError {
	return &SketchError{
		Category: category,
		Detail:   detail,
	}
}

// WithCommand attaches the statement keyword and, for syntax errors, the
// matching usage hint.
func (se *SketchError) WithCommand(cmd string) *SketchError {
	se.Command = cmd
	if se.Category == ErrCategorySyntax {
		se.UsageHint = GetCommandUsageHint(cmd)
	}
	return se
}

// WithUsageHint attaches an explicit usage hint.
func (se *SketchError) WithUsageHint(hint string) *SketchError {
	se.UsageHint = hint
	return se
}

// Error categories
const (
	// ErrCategorySyntax marks malformed expressions, conditions and
	// statement headers.
	ErrCategorySyntax = "SYNTAX ERROR"
	// ErrCategoryRuntime marks errors raised while executing statements.
	ErrCategoryRuntime = "RUNTIME ERROR"
	// ErrCategoryEvaluation marks errors raised while evaluating expressions.
	ErrCategoryEvaluation = "EVALUATION ERROR"
	// ErrCategoryResource marks exhausted execution budgets.
	ErrCategoryResource = "RESOURCE ERROR"
)

// FriendlyErrorTexts maps detail codes to user-facing messages.
var FriendlyErrorTexts = map[string]map[string]string{
	ErrCategorySyntax: {
		"UNEXPECTED_END":      "UNEXPECTED END OF PROGRAM IN EXPRESSION",
		"UNEXPECTED_TOKEN":    "UNEXPECTED TOKEN IN EXPRESSION",
		"EXTRA_TOKENS":        "EXTRA TOKENS AFTER EXPRESSION",
		"MISSING_PARENTHESIS": "MISSING CLOSING PARENTHESIS",
		"INVALID_NUMBER":      "MALFORMED NUMERIC LITERAL",
		"MISSING_OPERATOR":    "COMPARISON OPERATOR EXPECTED IN CONDITION",
		"MISSING_EQUALS":      "EXPECTED = AFTER VARIABLE NAME",
		"MISSING_LPAREN":      "EXPECTED ( AFTER FUNCTION NAME",
		"MISSING_BRACE":       "EXPECTED { TO START BLOCK",
		"INCOMPLETE":          "STATEMENT ENDS UNEXPECTEDLY",
	},
	ErrCategoryRuntime: {
		"UNDEFINED_FUNCTION": "CALL TO UNDEFINED FUNCTION",
		"ARGUMENT_COUNT":     "WRONG NUMBER OF ARGUMENTS IN CALL",
	},
	ErrCategoryEvaluation: {
		"INVALID_EXPRESSION": "EXPRESSION CANNOT BE EVALUATED",
		"UNKNOWN_OPERATOR":   "UNKNOWN OPERATOR IN EXPRESSION",
	},
	ErrCategoryResource: {
		"LOOP_BUDGET_EXCEEDED": "WHILE LOOP ITERATION LIMIT EXCEEDED",
		"CALL_DEPTH_EXCEEDED":  "FUNCTION CALL DEPTH LIMIT EXCEEDED",
	},
}

// GetFriendlyErrorText returns the message for a detail code, falling back to
// the code itself.
func GetFriendlyErrorText(category, detail string) string {
	if texts, ok := FriendlyErrorTexts[category]; ok {
		if text, ok := texts[detail]; ok {
			return text
		}
	}
	return detail
}

// commandUsageHints documents the statement grammar for syntax errors.
var commandUsageHints = map[string]string{
	"SET":    "SET var = <expression>",
	"DEFINE": "DEFINE func ( param1 , param2 ) { ... }",
	"CALL":   "CALL func ( arg1 , arg2 )",
	"IF":     "IF <expr> <op> <expr> { ... }   op: > < = !=",
	"WHILE":  "WHILE <expr> <op> <expr> { ... }",
	"MOVE":   "MOVE <expr> Forward|Backward",
	"TURN":   "TURN <expr> Right|Left",
	"DRAW":   "DRAW Circle|Square|Star <expr> [AT <x> , <y>]",
	"COLOR":  "COLOR Red|Blue|Green|Black|Random",
}

// GetCommandUsageHint returns the usage hint for a statement keyword.
func GetCommandUsageHint(cmd string) string {
	return commandUsageHints[cmd]
}
