package sketchscript

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/Harsh-Thanki/SketchScript-2.0/pkg/configuration"
	"github.com/Harsh-Thanki/SketchScript-2.0/pkg/logger"
	"github.com/Harsh-Thanki/SketchScript-2.0/pkg/shared"
)

// Helper function for interpreter debug logging that respects configuration
func sketchDebugLog(format string, args ...interface{}) {
	logger.Debug(logger.AreaInterpreter, format, args...)
}

// SketchScript is one interpreter instance: the shared environment, the call
// stack of environment snapshots, the drawing cursor and the emitted
// primitives. An instance runs one program at a time; Run serializes callers.
type SketchScript struct {
	mu         sync.Mutex
	env        Environment
	callStack  []Environment
	cursor     Cursor
	primitives []Primitive

	sessionID  string
	OutputChan chan shared.Message

	rng *rand.Rand

	// Execution budgets, all disabled at zero. The language itself has no
	// interrupt mechanism - a WHILE whose condition never turns false loops
	// forever - so a hosting service sets these from its configuration.
	MaxLoopIterations int
	MaxCallDepth      int

	canvasWidth  float64
	canvasHeight float64

	callDepth int
	ctx       context.Context
}

// NewSketchScript creates an interpreter with the cursor centered on the
// configured canvas, heading 0 and the default color.
func NewSketchScript() *SketchScript {
	width := float64(configuration.GetInt("Canvas", "width", DefaultCanvasWidth))
	height := float64(configuration.GetInt("Canvas", "height", DefaultCanvasHeight))

	s := &SketchScript{
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
		canvasWidth:  width,
		canvasHeight: height,
	}
	s.resetLocked()
	return s
}

// SetSessionID tags outgoing messages with the canvas session.
func (s *SketchScript) SetSessionID(id string) {
	s.sessionID = id
}

// SetOutputChannel attaches the channel drawing messages are streamed to.
// Without one, primitives are only recorded.
func (s *SketchScript) SetOutputChannel(ch chan shared.Message) {
	s.OutputChan = ch
}

// Reset clears the environment, call stack, cursor and recorded primitives.
func (s *SketchScript) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

func (s *SketchScript) resetLocked() {
	s.env = make(Environment)
	s.callStack = nil
	s.primitives = nil
	s.callDepth = 0
	s.cursor = Cursor{
		X:     s.canvasWidth / 2,
		Y:     s.canvasHeight / 2,
		Angle: 0,
		Color: DefaultColor,
	}
}

// Primitives returns the drawing primitives emitted so far, in order.
// Primitives emitted before a fatal error remain valid.
func (s *SketchScript) Primitives() []Primitive {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Primitive, len(s.primitives))
	copy(out, s.primitives)
	return out
}

// Cursor returns the current cursor state.
func (s *SketchScript) Cursor() Cursor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

// Var returns the numeric value bound to a name. The second result is false
// when the name is unbound or holds a function definition.
func (s *SketchScript) Var(name string) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	val, ok := s.env[name]
	if !ok || val.IsFunction() {
		return 0, false
	}
	return val.Num, true
}

// Run tokenizes and interprets a program. Any hard error aborts the run
// immediately; there is no recovery at the next statement.
func (s *SketchScript) Run(code string) error {
	return s.RunContext(context.Background(), code)
}

// RunContext runs a program under a cancellable context. Cancellation is
// checked between statements, so a hosting service can abort a runaway run.
func (s *SketchScript) RunContext(ctx context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ctx = ctx
	defer func() { s.ctx = nil }()

	tokens := Tokenize(code)
	sketchDebugLog("run started: %d tokens, session=%s", len(tokens), s.sessionID)

	if err := s.interpret(tokens); err != nil {
		logger.Info(logger.AreaInterpreter, "run aborted: %v", err)
		return err
	}
	sketchDebugLog("run finished: %d primitives emitted", len(s.primitives))
	return nil
}

// interpret walks a token sequence statement by statement, dispatching on the
// leading keyword. IF, WHILE and CALL bodies recurse into this same function
// with a sub-slice; each construct is resolved synchronously to completion
// before the index advances. Tokens that start no known statement are
// skipped.
func (s *SketchScript) interpret(tokens []string) error {
	i := 0
	for i < len(tokens) {
		if s.ctx != nil {
			select {
			case <-s.ctx.Done():
				return s.ctx.Err()
			default:
			}
		}

		var next int
		var err error
		switch tokens[i] {
		case "SET":
			next, err = s.cmdSet(tokens, i)
		case "DEFINE":
			next, err = s.cmdDefine(tokens, i)
		case "CALL":
			next, err = s.cmdCall(tokens, i)
		case "IF":
			next, err = s.cmdIf(tokens, i)
		case "WHILE":
			next, err = s.cmdWhile(tokens, i)
		case "MOVE":
			next, err = s.cmdMove(tokens, i)
		case "TURN":
			next, err = s.cmdTurn(tokens, i)
		case "DRAW":
			next, err = s.cmdDraw(tokens, i)
		case "COLOR":
			next, err = s.cmdColor(tokens, i)
		default:
			next, err = i+1, nil
		}
		if err != nil {
			return err
		}
		i = next
	}
	return nil
}

// emit records a primitive and streams it to the output channel when one is
// attached.
func (s *SketchScript) emit(p Primitive) {
	if p == nil {
		return
	}
	s.primitives = append(s.primitives, p)
	s.sendMessageObject(p.Message())
}
