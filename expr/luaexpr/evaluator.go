package luaexpr

import (
	"errors"
	"fmt"
	"sort"

	lua "github.com/yuin/gopher-lua"

	"github.com/cwbudde/algo-voice/dsp/funchost"
)

var (
	// ErrEmptyExpression is returned when compiling blank source.
	ErrEmptyExpression = errors.New("luaexpr: empty expression")
	// ErrNotNumber is returned when an expression yields a non-numeric value.
	ErrNotNumber = errors.New("luaexpr: expression did not yield a number")
	// ErrNameInUse is returned when a variable would shadow a registered
	// function.
	ErrNameInUse = errors.New("luaexpr: name is a registered function")
)

// Evaluator owns one Lua state. It is not safe for concurrent use.
type Evaluator struct {
	state     *lua.LState
	functions map[string]int
	nextSite  int
}

var _ funchost.Evaluator = (*Evaluator)(nil)

// New creates an evaluator with the Lua base and math libraries loaded.
func New() *Evaluator {
	state := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.LoadLibName, lua.OpenPackage},
		{lua.BaseLibName, lua.OpenBase},
		{lua.MathLibName, lua.OpenMath},
	} {
		state.Push(state.NewFunction(lib.open))
		state.Push(lua.LString(lib.name))
		state.Call(1, 0)
	}
	return &Evaluator{
		state:     state,
		functions: make(map[string]int),
	}
}

// Close releases the Lua state.
func (e *Evaluator) Close() {
	e.state.Close()
}

// DefineConstant binds name to a fixed value.
func (e *Evaluator) DefineConstant(name string, value float64) {
	e.state.SetGlobal(name, lua.LNumber(value))
}

// SetVariable binds name to value. Unlike constants, variables are expected
// to change between evaluations. Names of registered functions are refused.
func (e *Evaluator) SetVariable(name string, value float64) error {
	if _, ok := e.functions[name]; ok {
		return fmt.Errorf("%w: %s", ErrNameInUse, name)
	}
	e.state.SetGlobal(name, lua.LNumber(value))
	return nil
}

// DefineFunction registers fn under name. Calls in programs compiled after
// registration receive a call-site index; a call with a number of arguments
// other than arity raises a Lua error.
func (e *Evaluator) DefineFunction(name string, arity int, fn funchost.Func) {
	e.functions[name] = arity
	args := make([]float64, arity)
	e.state.SetGlobal(name, e.state.NewFunction(func(L *lua.LState) int {
		if got := L.GetTop() - 1; got != arity {
			L.RaiseError("%s expects %d arguments, got %d", name, arity, got)
			return 0
		}
		site := L.CheckInt(1)
		for i := range args {
			args[i] = float64(L.CheckNumber(i + 2))
		}
		L.Push(lua.LNumber(fn(site, args)))
		return 1
	}))
}

// Functions returns the registered function names in sorted order.
func (e *Evaluator) Functions() []string {
	names := make([]string, 0, len(e.functions))
	for name := range e.functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CallSites returns the number of call-site indices assigned so far.
func (e *Evaluator) CallSites() int {
	return e.nextSite
}

// Compile rewrites src with call-site indices and loads it as a Lua chunk.
func (e *Evaluator) Compile(src string) (*Program, error) {
	rewritten, first, n := rewriteCalls(src, e.functions, e.nextSite)
	if rewritten == "" {
		return nil, ErrEmptyExpression
	}
	fn, err := e.state.LoadString("return (" + rewritten + ")")
	if err != nil {
		return nil, fmt.Errorf("luaexpr: compile %q: %w", src, err)
	}
	e.nextSite += n
	return &Program{
		eval:      e,
		fn:        fn,
		source:    src,
		firstSite: first,
		numSites:  n,
	}, nil
}

// Program is a compiled expression bound to its evaluator.
type Program struct {
	eval      *Evaluator
	fn        *lua.LFunction
	source    string
	firstSite int
	numSites  int
}

// Source returns the expression text as given to Compile.
func (p *Program) Source() string { return p.source }

// CallSites returns the half-open range [first, first+n) of call-site
// indices used by the program.
func (p *Program) CallSites() (first, n int) {
	return p.firstSite, p.numSites
}

// Eval runs the program once and returns its numeric result.
func (p *Program) Eval() (float64, error) {
	L := p.eval.state
	L.Push(p.fn)
	if err := L.PCall(0, 1, nil); err != nil {
		return 0, fmt.Errorf("luaexpr: eval %q: %w", p.source, err)
	}
	ret := L.Get(-1)
	L.Pop(1)

	num, ok := ret.(lua.LNumber)
	if !ok {
		return 0, fmt.Errorf("%w: got %s", ErrNotNumber, ret.Type())
	}
	return float64(num), nil
}
