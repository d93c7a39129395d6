package sketchscript

import "strings"

// separatorChars become standalone tokens regardless of surrounding
// whitespace. "!" is listed so that "!=" survives as two tokens which are
// merged back below.
var separatorChars = []string{"{", "}", "(", ")", ",", "+", "-", "*", "/", "=", ">", "<", "!"}

// Tokenize splits source text into a flat token sequence. It pads every
// separator character with spaces, splits on whitespace and merges adjacent
// "!" "=" into a single "!=" token. Tokenization never fails; malformed input
// is rejected later by the parser.
func Tokenize(code string) []string {
	for _, ch := range separatorChars {
		code = strings.ReplaceAll(code, ch, " "+ch+" ")
	}

	raw := strings.Fields(code)

	tokens := make([]string, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] == "!" && i+1 < len(raw) && raw[i+1] == "=" {
			tokens = append(tokens, "!=")
			i++
			continue
		}
		tokens = append(tokens, raw[i])
	}
	return tokens
}
