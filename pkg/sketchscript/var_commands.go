package sketchscript

// cmdSet implements SET: SET name = <expression>
// The expression stops at the next statement keyword; its value overwrites
// whatever the name was bound to, including a function definition.
func (s *SketchScript) cmdSet(tokens []string, i int) (int, error) {
	if i+2 >= len(tokens) {
		return i, NewSketchError(ErrCategorySyntax, "INCOMPLETE").WithCommand("SET")
	}
	name := tokens[i+1]
	if tokens[i+2] != "=" {
		return i, NewSketchError(ErrCategorySyntax, "MISSING_EQUALS").WithCommand("SET")
	}
	expr, next, err := ParseExpression(tokens, i+3, CommandKeywords)
	if err != nil {
		return i, err
	}
	val, err := s.Eval(expr)
	if err != nil {
		return i, err
	}
	s.env[name] = NumberValue(val)
	return next, nil
}
