package sketchscript

// SyntaxHelp is the language reference shown by the frontend help view.
var SyntaxHelp = []string{
	"SketchScript 2.0 Syntax:",
	"SET var = <expression>              - Assign a value to a variable",
	"DEFINE func ( param1 , param2 ) {  - Define a function",
	"  ...                               - Function body",
	"}                                   - End block",
	"CALL func ( arg1 , arg2 )          - Call a function",
	"IF <expr> <op> <expr> {            - If condition (op: >, <, =, !=)",
	"  ...                               - If body",
	"}",
	"WHILE <expr> <op> <expr> {         - While loop",
	"  ...                               - Loop body",
	"}",
	"MOVE <expr> Forward|Backward        - Move cursor",
	"TURN <expr> Right|Left              - Turn cursor",
	"DRAW Circle|Square|Star <expr>      - Draw shape with size",
	"DRAW ... AT <x> , <y>               - Draw at position",
	"COLOR Red|Blue|Green|Black|Random   - Set color",
	"Note: Use spaces around punctuation (e.g., = , { })",
}

// SampleProgram draws layered spirals and a star; it exercises every
// statement of the language.
const SampleProgram = `
SET speed = 30
DEFINE spiral ( n ) {
  IF n > 0 {
    MOVE speed * n Forward
    TURN 60 Right
    CALL spiral ( n - 1 )
  }
}
COLOR Random
SET layers = 3
WHILE layers > 0 {
  CALL spiral ( 5 )
  MOVE 20 Backward
  SET layers = layers - 1
}
DRAW Star 15 AT 400 , 300
`
