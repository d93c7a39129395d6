package sketchscript

import "github.com/Harsh-Thanki/SketchScript-2.0/pkg/shared"

// Point is a canvas coordinate.
type Point struct {
	X, Y float64
}

// Primitive is one abstract drawing instruction. The core only emits
// primitives; rasterizing them is the renderer's job.
type Primitive interface {
	// Message encodes the primitive for the canvas frontend.
	Message() shared.Message
}

// LineSegment is emitted by MOVE.
type LineSegment struct {
	From  Point
	To    Point
	Color RGB
	Width int
}

// CircleOutline is emitted by DRAW Circle.
type CircleOutline struct {
	Center Point
	Radius float64
	Color  RGB
	Width  int
}

// RectOutline is emitted by DRAW Square.
type RectOutline struct {
	TopLeft Point
	Size    Point
	Color   RGB
	Width   int
}

// PolygonOutline is emitted by DRAW Star.
type PolygonOutline struct {
	Points []Point
	Color  RGB
	Width  int
}

func (p LineSegment) Message() shared.Message {
	return shared.Message{
		Type:    shared.MessageTypeGraphics,
		Command: "LINE",
		Params: map[string]interface{}{
			"x1":    p.From.X,
			"y1":    p.From.Y,
			"x2":    p.To.X,
			"y2":    p.To.Y,
			"color": p.Color.Hex(),
			"width": p.Width,
		},
	}
}

func (p CircleOutline) Message() shared.Message {
	return shared.Message{
		Type:    shared.MessageTypeGraphics,
		Command: "CIRCLE",
		Params: map[string]interface{}{
			"x":      p.Center.X,
			"y":      p.Center.Y,
			"radius": p.Radius,
			"color":  p.Color.Hex(),
			"width":  p.Width,
		},
	}
}

func (p RectOutline) Message() shared.Message {
	return shared.Message{
		Type:    shared.MessageTypeGraphics,
		Command: "RECT",
		Params: map[string]interface{}{
			"x":      p.TopLeft.X,
			"y":      p.TopLeft.Y,
			"w":      p.Size.X,
			"h":      p.Size.Y,
			"color":  p.Color.Hex(),
			"width":  p.Width,
		},
	}
}

func (p PolygonOutline) Message() shared.Message {
	points := make([]map[string]interface{}, len(p.Points))
	for i, pt := range p.Points {
		points[i] = map[string]interface{}{"x": pt.X, "y": pt.Y}
	}
	return shared.Message{
		Type:    shared.MessageTypeGraphics,
		Command: "POLYGON",
		Params: map[string]interface{}{
			"points": points,
			"color":  p.Color.Hex(),
			"width":  p.Width,
		},
	}
}
