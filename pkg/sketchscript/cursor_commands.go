package sketchscript

// Cursor and drawing statements: MOVE, TURN, DRAW, COLOR.

// cmdMove implements MOVE: MOVE <expression> Forward|Backward
// The distance expression stops at the direction word. A line segment from
// the old to the new position is emitted in the current color.
func (s *SketchScript) cmdMove(tokens []string, i int) (int, error) {
	expr, next, err := ParseExpression(tokens, i+1, map[string]bool{"Forward": true, "Backward": true})
	if err != nil {
		return i, err
	}
	if next >= len(tokens) {
		return i, NewSketchError(ErrCategorySyntax, "INCOMPLETE").WithCommand("MOVE")
	}
	distance, err := s.Eval(expr)
	if err != nil {
		return i, err
	}
	s.emit(MoveCursor(&s.cursor, distance, tokens[next]))
	return next + 1, nil
}

// cmdTurn implements TURN: TURN <expression> Right|Left
// The heading accumulates without bound; no primitive is emitted.
func (s *SketchScript) cmdTurn(tokens []string, i int) (int, error) {
	expr, next, err := ParseExpression(tokens, i+1, map[string]bool{"Right": true, "Left": true})
	if err != nil {
		return i, err
	}
	if next >= len(tokens) {
		return i, NewSketchError(ErrCategorySyntax, "INCOMPLETE").WithCommand("TURN")
	}
	angle, err := s.Eval(expr)
	if err != nil {
		return i, err
	}
	TurnCursor(&s.cursor, angle, tokens[next])
	return next + 1, nil
}

// cmdDraw implements DRAW: DRAW <shape> <expression> [AT <x> , <y>]
// Without an AT clause the shape is centered on the cursor. The size
// expression stops at AT or the next statement keyword; the x expression
// stops at the comma, the y expression at the next statement keyword.
func (s *SketchScript) cmdDraw(tokens []string, i int) (int, error) {
	if i+1 >= len(tokens) {
		return i, NewSketchError(ErrCategorySyntax, "INCOMPLETE").WithCommand("DRAW")
	}
	shape := tokens[i+1]

	expr, next, err := ParseExpression(tokens, i+2, drawStopTokens)
	if err != nil {
		return i, err
	}
	size, err := s.Eval(expr)
	if err != nil {
		return i, err
	}

	var xVal, yVal *float64
	if next < len(tokens) && tokens[next] == "AT" {
		xExpr, afterX, err := ParseExpression(tokens, next+1, map[string]bool{",": true})
		if err != nil {
			return i, err
		}
		x, err := s.Eval(xExpr)
		if err != nil {
			return i, err
		}
		if afterX < len(tokens) && tokens[afterX] == "," {
			afterX++
		}
		yExpr, afterY, err := ParseExpression(tokens, afterX, CommandKeywords)
		if err != nil {
			return i, err
		}
		y, err := s.Eval(yExpr)
		if err != nil {
			return i, err
		}
		xVal, yVal = &x, &y
		next = afterY
	}

	s.emit(DrawShape(&s.cursor, shape, size, xVal, yVal))
	return next, nil
}

// cmdColor implements COLOR: COLOR Red|Blue|Green|Black|Random
// Random picks uniformly from the palette; an unknown name falls back to the
// default color.
func (s *SketchScript) cmdColor(tokens []string, i int) (int, error) {
	if i+1 >= len(tokens) {
		return i, NewSketchError(ErrCategorySyntax, "INCOMPLETE").WithCommand("COLOR")
	}
	name := tokens[i+1]
	if name == "Random" {
		s.cursor.Color = Palette[paletteNames[s.rng.Intn(len(paletteNames))]]
	} else if c, ok := Palette[name]; ok {
		s.cursor.Color = c
	} else {
		s.cursor.Color = DefaultColor
	}
	return i + 2, nil
}
