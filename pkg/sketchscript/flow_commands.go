package sketchscript

// Control flow and function statements: DEFINE, CALL, IF, WHILE.

// blockBody slices the tokens between an opening brace position and the index
// FindBlockEnd returned, excluding the closing brace. An unmatched brace runs
// the body to the end of the program.
func blockBody(tokens []string, start, end int) []string {
	if end-1 < start {
		return nil
	}
	return tokens[start : end-1]
}

// cmdDefine implements DEFINE: DEFINE name ( p1 , p2 ) { body }
// The body is stored as the raw token slice between the braces and reparsed
// on every call.
func (s *SketchScript) cmdDefine(tokens []string, i int) (int, error) {
	if i+2 >= len(tokens) {
		return i, NewSketchError(ErrCategorySyntax, "INCOMPLETE").WithCommand("DEFINE")
	}
	name := tokens[i+1]
	if tokens[i+2] != "(" {
		return i, NewSketchError(ErrCategorySyntax, "MISSING_LPAREN").WithCommand("DEFINE")
	}

	j := i + 3
	var params []string
	for {
		if j >= len(tokens) {
			return i, NewSketchError(ErrCategorySyntax, "INCOMPLETE").WithCommand("DEFINE")
		}
		if tokens[j] == ")" {
			break
		}
		if tokens[j] != "," {
			params = append(params, tokens[j])
		}
		j++
	}

	if j+1 >= len(tokens) || tokens[j+1] != "{" {
		return i, NewSketchError(ErrCategorySyntax, "MISSING_BRACE").WithCommand("DEFINE")
	}
	bodyStart := j + 2
	bodyEnd := FindBlockEnd(tokens, bodyStart)

	s.env[name] = FunctionValue(&FunctionDef{
		Params: params,
		Body:   blockBody(tokens, bodyStart, bodyEnd),
	})
	return bodyEnd, nil
}

// cmdCall implements CALL: CALL name ( a1 , a2 )
//
// The call protocol is deliberate and order-sensitive: argument expressions
// are evaluated in the caller's environment first, then a full snapshot of
// that environment is pushed, then the live table is updated in place with
// the parameter bindings. The body therefore runs against the shared global
// table with the parameters overlaid - a SET inside the body mutates the same
// table. On return the snapshot replaces the live table wholesale, which is
// what un-shadows any caller variable a parameter collided with. Recursion
// works because every nested CALL pushes its own snapshot before overlaying.
func (s *SketchScript) cmdCall(tokens []string, i int) (int, error) {
	if i+2 >= len(tokens) {
		return i, NewSketchError(ErrCategorySyntax, "INCOMPLETE").WithCommand("CALL")
	}
	name := tokens[i+1]
	if tokens[i+2] != "(" {
		return i, NewSketchError(ErrCategorySyntax, "MISSING_LPAREN").WithCommand("CALL")
	}

	j := i + 3
	var args []Expr
	var argTokens []string
	flush := func() error {
		if len(argTokens) == 0 {
			return nil
		}
		expr, err := ParseFullExpression(argTokens)
		if err != nil {
			return err
		}
		args = append(args, expr)
		argTokens = nil
		return nil
	}
	for {
		if j >= len(tokens) {
			return i, NewSketchError(ErrCategorySyntax, "INCOMPLETE").WithCommand("CALL")
		}
		if tokens[j] == ")" {
			break
		}
		if tokens[j] == "," {
			if err := flush(); err != nil {
				return i, err
			}
		} else {
			argTokens = append(argTokens, tokens[j])
		}
		j++
	}
	if err := flush(); err != nil {
		return i, err
	}

	val, ok := s.env[name]
	if !ok || !val.IsFunction() {
		return i, NewSketchError(ErrCategoryRuntime, "UNDEFINED_FUNCTION").WithCommand("CALL")
	}
	fn := val.Fn
	if len(args) != len(fn.Params) {
		return i, NewSketchError(ErrCategoryRuntime, "ARGUMENT_COUNT").WithCommand("CALL").
			WithUsageHint(GetCommandUsageHint("CALL"))
	}

	// Arguments are resolved before any mutation of the environment.
	locals := make(Environment, len(fn.Params))
	for idx, param := range fn.Params {
		argVal, err := s.Eval(args[idx])
		if err != nil {
			return i, err
		}
		locals[param] = NumberValue(argVal)
	}

	if s.MaxCallDepth > 0 && s.callDepth >= s.MaxCallDepth {
		return i, NewSketchError(ErrCategoryResource, "CALL_DEPTH_EXCEEDED").WithCommand("CALL")
	}
	s.callDepth++

	s.callStack = append(s.callStack, s.env.Copy())
	for param, v := range locals {
		s.env[param] = v
	}

	defer func() {
		top := len(s.callStack) - 1
		s.env = s.callStack[top]
		s.callStack = s.callStack[:top]
		s.callDepth--
	}()

	if err := s.interpret(fn.Body); err != nil {
		return i, err
	}
	return j + 1, nil
}

// cmdIf implements IF: IF cond { body }
// The condition is evaluated once; there is no else branch.
func (s *SketchScript) cmdIf(tokens []string, i int) (int, error) {
	cond, next, err := ParseCondition(tokens, i+1)
	if err != nil {
		return i, err
	}
	if next >= len(tokens) || tokens[next] != "{" {
		return i, NewSketchError(ErrCategorySyntax, "MISSING_BRACE").WithCommand("IF")
	}
	blockStart := next + 1
	blockEnd := FindBlockEnd(tokens, blockStart)

	take, err := s.EvalCondition(cond)
	if err != nil {
		return i, err
	}
	if take {
		if err := s.interpret(blockBody(tokens, blockStart, blockEnd)); err != nil {
			return i, err
		}
	}
	return blockEnd, nil
}

// cmdWhile implements WHILE: WHILE cond { body }
// The condition is re-evaluated before every iteration. All iterations run to
// completion before the outer statement loop resumes; the only brake on an
// infinite loop is the configured iteration budget.
func (s *SketchScript) cmdWhile(tokens []string, i int) (int, error) {
	cond, next, err := ParseCondition(tokens, i+1)
	if err != nil {
		return i, err
	}
	if next >= len(tokens) || tokens[next] != "{" {
		return i, NewSketchError(ErrCategorySyntax, "MISSING_BRACE").WithCommand("WHILE")
	}
	blockStart := next + 1
	blockEnd := FindBlockEnd(tokens, blockStart)
	body := blockBody(tokens, blockStart, blockEnd)

	iterations := 0
	for {
		take, err := s.EvalCondition(cond)
		if err != nil {
			return i, err
		}
		if !take {
			break
		}
		if s.MaxLoopIterations > 0 && iterations >= s.MaxLoopIterations {
			return i, NewSketchError(ErrCategoryResource, "LOOP_BUDGET_EXCEEDED").WithCommand("WHILE")
		}
		iterations++
		if err := s.interpret(body); err != nil {
			return i, err
		}
		if s.ctx != nil {
			select {
			case <-s.ctx.Done():
				return i, s.ctx.Err()
			default:
			}
		}
	}
	return blockEnd, nil
}
