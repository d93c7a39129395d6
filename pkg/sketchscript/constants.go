package sketchscript

// CommandKeywords is the stop-token set used when an expression is embedded
// in statement position: an expression parse must not consume the keyword
// that starts the next statement, or a brace. Keywords are only reserved
// positionally - inside an expression any of these parses as a variable name.
var CommandKeywords = map[string]bool{
	"SET":    true,
	"DEFINE": true,
	"CALL":   true,
	"IF":     true,
	"WHILE":  true,
	"MOVE":   true,
	"TURN":   true,
	"DRAW":   true,
	"COLOR":  true,
	"}":      true,
	"{":      true,
}

// drawStopTokens terminates the size expression of a DRAW statement. It is
// CommandKeywords plus "AT" and minus "{", matching the statement grammar.
var drawStopTokens = map[string]bool{
	"AT":     true,
	"SET":    true,
	"DEFINE": true,
	"CALL":   true,
	"IF":     true,
	"WHILE":  true,
	"MOVE":   true,
	"TURN":   true,
	"DRAW":   true,
	"COLOR":  true,
	"}":      true,
}

// RGB is a drawing color.
type RGB struct {
	R, G, B uint8
}

// Hex returns the color as a "#rrggbb" string for the frontend.
func (c RGB) Hex() string {
	const hexdigits = "0123456789abcdef"
	b := []byte{'#', 0, 0, 0, 0, 0, 0}
	for i, v := range [3]uint8{c.R, c.G, c.B} {
		b[1+2*i] = hexdigits[v>>4]
		b[2+2*i] = hexdigits[v&0x0f]
	}
	return string(b)
}

// DefaultColor is used for the initial cursor and for unknown color names.
var DefaultColor = RGB{255, 255, 255}

// paletteNames preserves palette order so COLOR Random picks uniformly from a
// stable list.
var paletteNames = []string{"Red", "Blue", "Green", "Black"}

// Palette maps SketchScript color names to RGB values.
var Palette = map[string]RGB{
	"Red":   {255, 0, 0},
	"Blue":  {0, 0, 255},
	"Green": {0, 255, 0},
	"Black": {0, 0, 0},
}

// LineWidth is the stroke width of every emitted primitive.
const LineWidth = 2

// Default canvas dimensions, overridable via the [Canvas] config section.
const (
	DefaultCanvasWidth  = 800
	DefaultCanvasHeight = 600
)
