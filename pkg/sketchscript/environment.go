package sketchscript

// FunctionDef is a user-defined function. The body is kept as the raw token
// slice between the braces and reparsed on every call, which is what makes
// recursion and forward references work without any pre-resolution pass.
type FunctionDef struct {
	Params []string
	Body   []string
}

// Value is the tagged variant stored in the environment: a number or a
// function definition. Variables and functions share one namespace.
type Value struct {
	Fn  *FunctionDef // nil for numeric values
	Num float64
}

// NumberValue wraps a float as an environment value.
func NumberValue(n float64) Value {
	return Value{Num: n}
}

// FunctionValue wraps a function definition as an environment value.
func FunctionValue(fn *FunctionDef) Value {
	return Value{Fn: fn}
}

// IsFunction reports whether the value holds a function definition.
func (v Value) IsFunction() bool {
	return v.Fn != nil
}

// Environment is the single mutable name table. There is exactly one scope
// level at any instant: a function call overlays its parameters onto the
// live table after pushing a full snapshot, and the snapshot is restored
// wholesale when the call returns.
type Environment map[string]Value

// Copy returns a full snapshot of the environment.
func (e Environment) Copy() Environment {
	out := make(Environment, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}
