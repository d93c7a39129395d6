package sketchscript

// Eval evaluates an expression tree against the current environment.
// Lookup of an unknown name yields 0, never an error; so does lookup of a
// name bound to a function definition - the default-on-miss policy applies to
// anything that is not a plain number. Division by zero evaluates to 0.
func (s *SketchScript) Eval(expr Expr) (float64, error) {
	switch e := expr.(type) {
	case NumberExpr:
		return float64(e), nil
	case VarExpr:
		val, ok := s.env[string(e)]
		if !ok || val.IsFunction() {
			return 0, nil
		}
		return val.Num, nil
	case *BinaryExpr:
		left, err := s.Eval(e.Left)
		if err != nil {
			return 0, err
		}
		right, err := s.Eval(e.Right)
		if err != nil {
			return 0, err
		}
		switch e.Op {
		case "+":
			return left + right, nil
		case "-":
			return left - right, nil
		case "*":
			return left * right, nil
		case "/":
			if right == 0 {
				return 0, nil
			}
			return left / right, nil
		}
		// Unreachable given the parser's operator set.
		return 0, NewSketchError(ErrCategoryEvaluation, "UNKNOWN_OPERATOR")
	}
	return 0, NewSketchError(ErrCategoryEvaluation, "INVALID_EXPRESSION")
}

// EvalCondition evaluates both sides of a condition and applies the
// comparison. An unrecognized operator yields false rather than an error;
// the parser never produces one.
func (s *SketchScript) EvalCondition(cond *Condition) (bool, error) {
	left, err := s.Eval(cond.Left)
	if err != nil {
		return false, err
	}
	right, err := s.Eval(cond.Right)
	if err != nil {
		return false, err
	}
	switch cond.Op {
	case ">":
		return left > right, nil
	case "<":
		return left < right, nil
	case "=":
		return left == right, nil
	case "!=":
		return left != right, nil
	}
	return false, nil
}
