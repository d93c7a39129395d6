package sketchscript

import "math"

// Cursor is the turtle drawing state: position, heading in degrees and the
// active color. The heading is unbounded - TURN accumulates without
// normalization, so two TURN 200 Right leave the heading at 400, not 40.
type Cursor struct {
	X     float64
	Y     float64
	Angle float64
	Color RGB
}

// MoveCursor advances (Forward) or retreats (Backward) the cursor along its
// heading and returns the line segment from the old to the new position. Any
// other direction word leaves the position unchanged; the degenerate segment
// is still returned, matching the drawing semantics of MOVE.
func MoveCursor(c *Cursor, distance float64, direction string) LineSegment {
	from := Point{c.X, c.Y}
	rad := c.Angle * math.Pi / 180
	switch direction {
	case "Forward":
		c.X += distance * math.Cos(rad)
		c.Y += distance * math.Sin(rad)
	case "Backward":
		c.X -= distance * math.Cos(rad)
		c.Y -= distance * math.Sin(rad)
	}
	return LineSegment{
		From:  from,
		To:    Point{c.X, c.Y},
		Color: c.Color,
		Width: LineWidth,
	}
}

// TurnCursor adds (Right) or subtracts (Left) an angle delta from the
// heading. No modulo is applied.
func TurnCursor(c *Cursor, angle float64, direction string) {
	switch direction {
	case "Right":
		c.Angle += angle
	case "Left":
		c.Angle -= angle
	}
}

// DrawShape builds the primitive for DRAW without mutating the cursor. The
// shape is centered at (x, y) when an AT clause supplied coordinates, else at
// the cursor position; positions and the circle/square size are truncated to
// whole pixels. Unknown shape names draw nothing and return nil.
func DrawShape(c *Cursor, shape string, size float64, x, y *float64) Primitive {
	px := math.Trunc(c.X)
	py := math.Trunc(c.Y)
	if x != nil {
		px = math.Trunc(*x)
	}
	if y != nil {
		py = math.Trunc(*y)
	}

	switch shape {
	case "Circle":
		return CircleOutline{
			Center: Point{px, py},
			Radius: math.Trunc(size),
			Color:  c.Color,
			Width:  LineWidth,
		}
	case "Square":
		side := math.Trunc(size)
		return RectOutline{
			TopLeft: Point{px - math.Trunc(side/2), py - math.Trunc(side/2)},
			Size:    Point{side, side},
			Color:   c.Color,
			Width:   LineWidth,
		}
	case "Star":
		return PolygonOutline{
			Points: starPoints(Point{px, py}, size),
			Color:  c.Color,
			Width:  LineWidth,
		}
	}
	return nil
}

// starPoints computes the 5-point star as 10 alternating vertices: outer
// vertices at radius size stepping by 4*pi/5, each followed by an inner
// vertex at radius size*0.5 offset by 2*pi/5, starting at angle 0.
func starPoints(center Point, size float64) []Point {
	points := make([]Point, 0, 10)
	for i := 0; i < 5; i++ {
		angle := float64(i) * 4 * math.Pi / 5
		points = append(points, Point{
			X: center.X + size*math.Cos(angle),
			Y: center.Y + size*math.Sin(angle),
		})
		angle += 2 * math.Pi / 5
		points = append(points, Point{
			X: center.X + size*0.5*math.Cos(angle),
			Y: center.Y + size*0.5*math.Sin(angle),
		})
	}
	return points
}
