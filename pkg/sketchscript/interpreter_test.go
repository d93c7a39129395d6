package sketchscript_test

import (
	"math"
	"strings"
	"testing"

	"github.com/Harsh-Thanki/SketchScript-2.0/pkg/sketchscript"
)

// newTestSketch creates an interpreter instance for testing.
func newTestSketch() *sketchscript.SketchScript {
	s := sketchscript.NewSketchScript()
	s.SetSessionID("test-session")
	return s
}

// runProgram runs source and fails the test on error.
func runProgram(t *testing.T, s *sketchscript.SketchScript, source string) {
	t.Helper()
	if err := s.Run(source); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
}

func TestSetAndArithmetic(t *testing.T) {
	s := newTestSketch()
	runProgram(t, s, "SET a = 2 + 3 * 4 SET b = ( 2 + 3 ) * 4")
	if v, _ := s.Var("a"); v != 14 {
		t.Errorf("a = %v, want 14", v)
	}
	if v, _ := s.Var("b"); v != 20 {
		t.Errorf("b = %v, want 20", v)
	}
}

func TestSetOverwrites(t *testing.T) {
	s := newTestSketch()
	runProgram(t, s, "SET x = 1 SET x = x + 1")
	if v, _ := s.Var("x"); v != 2 {
		t.Errorf("x = %v, want 2", v)
	}
}

func TestWhileLoopCount(t *testing.T) {
	s := newTestSketch()
	runProgram(t, s, "SET i = 0 WHILE i < 5 { SET i = i + 1 MOVE 0 Forward }")
	if v, _ := s.Var("i"); v != 5 {
		t.Errorf("i = %v, want 5", v)
	}
	// One zero-length segment per iteration proves the body ran 5 times.
	if got := len(s.Primitives()); got != 5 {
		t.Errorf("body ran %d times, want 5", got)
	}
}

func TestIfTakenAndNotTaken(t *testing.T) {
	s := newTestSketch()
	runProgram(t, s, "SET x = 1 IF x > 0 { SET y = 10 } IF x < 0 { SET y = 20 }")
	if v, _ := s.Var("y"); v != 10 {
		t.Errorf("y = %v, want 10", v)
	}
}

func TestNestedBlockMatching(t *testing.T) {
	// The WHILE nested inside the IF must be matched to its own brace; the
	// statement after the outer block must still execute.
	s := newTestSketch()
	runProgram(t, s, `
SET n = 1
IF n > 0 {
  SET m = 0
  WHILE m < 3 {
    SET m = m + 1
  }
  SET inner = m
}
SET after = 99
`)
	if v, _ := s.Var("after"); v != 99 {
		t.Errorf("after = %v, want 99 (outer block end mismatched)", v)
	}
	if v, _ := s.Var("inner"); v != 3 {
		t.Errorf("inner = %v, want 3", v)
	}
}

func TestCallIsolationAndRestoration(t *testing.T) {
	s := newTestSketch()
	runProgram(t, s, "SET x = 1 DEFINE f ( x ) { SET x = 99 } CALL f ( 5 )")
	// The callee's overwrite of the shadowed name must not leak out.
	if v, _ := s.Var("x"); v != 1 {
		t.Errorf("x = %v after call, want 1", v)
	}
}

func TestCallArgumentsEvaluatedInCallerEnvironment(t *testing.T) {
	s := newTestSketch()
	runProgram(t, s, "SET a = 7 DEFINE f ( b ) { SET result = b } CALL f ( a + 1 )")
	// Globals SET inside a call that do not collide with a caller name are
	// still restored away on return; observe via a MOVE instead.
	s2 := newTestSketch()
	runProgram(t, s2, "SET a = 7 DEFINE f ( b ) { MOVE b Forward } CALL f ( a + 1 )")
	prims := s2.Primitives()
	if len(prims) != 1 {
		t.Fatalf("expected 1 primitive, got %d", len(prims))
	}
	line := prims[0].(sketchscript.LineSegment)
	if got := line.To.X - line.From.X; math.Abs(got-8) > 1e-9 {
		t.Errorf("moved %v, want 8 (argument a + 1 in caller env)", got)
	}
}

func TestGlobalMutationRestoredAfterCall(t *testing.T) {
	// The snapshot/restore protocol restores the caller's environment
	// byte-for-byte: even a SET against a fresh global inside the body is
	// undone on return. This is the documented dynamic-scope policy.
	s := newTestSketch()
	runProgram(t, s, "DEFINE f ( ) { SET g = 42 } CALL f ( )")
	if _, ok := s.Var("g"); ok {
		t.Error("g leaked out of the call, snapshot restore is broken")
	}
}

func TestRecursionTerminates(t *testing.T) {
	s := newTestSketch()
	runProgram(t, s, `
DEFINE rec ( n ) {
  MOVE 0 Forward
  IF n > 0 {
    CALL rec ( n - 1 )
  }
}
CALL rec ( 3 )
`)
	// One segment per invocation: n=3,2,1,0.
	if got := len(s.Primitives()); got != 4 {
		t.Errorf("rec invoked %d times, want 4", got)
	}
}

func TestForwardReferenceViaLazyBodies(t *testing.T) {
	// g is undefined when f is defined; bodies are reparsed per call, so the
	// call still resolves.
	s := newTestSketch()
	runProgram(t, s, `
DEFINE f ( ) { CALL g ( ) }
DEFINE g ( ) { SET hit = 1 MOVE 1 Forward }
CALL f ( )
`)
	if got := len(s.Primitives()); got != 1 {
		t.Errorf("expected 1 primitive from forward-referenced call, got %d", got)
	}
}

func TestUndefinedFunctionIsFatal(t *testing.T) {
	s := newTestSketch()
	err := s.Run("CALL nothere ( )")
	assertRuntimeError(t, err, "UNDEFINED_FUNCTION")
}

func TestCallingNumberIsUndefinedFunction(t *testing.T) {
	s := newTestSketch()
	err := s.Run("SET f = 3 CALL f ( )")
	assertRuntimeError(t, err, "UNDEFINED_FUNCTION")
}

func TestArityMismatchIsFatal(t *testing.T) {
	s := newTestSketch()
	err := s.Run("DEFINE f ( a , b ) { MOVE 10 Forward } CALL f ( 1 )")
	assertRuntimeError(t, err, "ARGUMENT_COUNT")
	// The call must emit nothing.
	if got := len(s.Primitives()); got != 0 {
		t.Errorf("expected no primitives from the failed call, got %d", got)
	}
}

func TestFunctionNameReadsAsZeroInExpression(t *testing.T) {
	s := newTestSketch()
	runProgram(t, s, "DEFINE f ( ) { } SET x = f + 1")
	if v, _ := s.Var("x"); v != 1 {
		t.Errorf("x = %v, want 1 (function entry is not numeric)", v)
	}
}

func TestPrimitivesBeforeErrorRemain(t *testing.T) {
	s := newTestSketch()
	err := s.Run("MOVE 10 Forward CALL nothere ( )")
	if err == nil {
		t.Fatal("expected error")
	}
	if got := len(s.Primitives()); got != 1 {
		t.Errorf("primitives emitted before the error must remain, got %d", got)
	}
}

func TestUnknownTokenIsSkipped(t *testing.T) {
	s := newTestSketch()
	runProgram(t, s, "banana SET x = 1 tomato")
	if v, _ := s.Var("x"); v != 1 {
		t.Errorf("x = %v, want 1", v)
	}
}

func TestSyntaxErrorInStatementHeader(t *testing.T) {
	s := newTestSketch()
	err := s.Run("SET x 5")
	assertSyntaxError(t, err, "MISSING_EQUALS")

	err = newTestSketch().Run("DEFINE f x ( ) { }")
	assertSyntaxError(t, err, "MISSING_LPAREN")

	err = newTestSketch().Run("IF x > 0 SET y = 1")
	assertSyntaxError(t, err, "MISSING_BRACE")
}

func TestLoopBudget(t *testing.T) {
	s := newTestSketch()
	s.MaxLoopIterations = 100
	err := s.Run("SET x = 1 WHILE x > 0 { SET x = x + 1 }")
	if err == nil {
		t.Fatal("expected loop budget error")
	}
	se, ok := err.(*sketchscript.SketchError)
	if !ok || se.Detail != "LOOP_BUDGET_EXCEEDED" {
		t.Errorf("got %v, want LOOP_BUDGET_EXCEEDED", err)
	}
}

func TestCallDepthBudget(t *testing.T) {
	s := newTestSketch()
	s.MaxCallDepth = 16
	err := s.Run("DEFINE f ( n ) { CALL f ( n + 1 ) } CALL f ( 0 )")
	if err == nil {
		t.Fatal("expected call depth error")
	}
	se, ok := err.(*sketchscript.SketchError)
	if !ok || se.Detail != "CALL_DEPTH_EXCEEDED" {
		t.Errorf("got %v, want CALL_DEPTH_EXCEEDED", err)
	}
}

func TestSampleProgramRuns(t *testing.T) {
	s := newTestSketch()
	runProgram(t, s, sketchscript.SampleProgram)
	if len(s.Primitives()) == 0 {
		t.Error("sample program emitted no primitives")
	}
}

func TestErrorMessagesCarryUsageHints(t *testing.T) {
	err := newTestSketch().Run("SET x 5")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "SET var = <expression>") {
		t.Errorf("error should carry the SET usage hint, got %q", err.Error())
	}
}

func assertRuntimeError(t *testing.T, err error, detail string) {
	t.Helper()
	if err == nil {
		t.Fatal("expected a runtime error, got nil")
	}
	se, ok := err.(*sketchscript.SketchError)
	if !ok {
		t.Fatalf("expected *SketchError, got %T: %v", err, err)
	}
	if se.Category != sketchscript.ErrCategoryRuntime {
		t.Errorf("error category = %q, want %q", se.Category, sketchscript.ErrCategoryRuntime)
	}
	if se.Detail != detail {
		t.Errorf("error detail = %q, want %q", se.Detail, detail)
	}
}
