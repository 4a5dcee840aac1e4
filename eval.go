package formulas

import (
	"strings"

	"github.com/ahrtr/gocontainer/set"
)

// Expr is a compiled formula. An Expr is immutable, so it is safe to
// evaluate concurrently as long as no goroutine modifies the bindings used.
type Expr struct {
	// root is the root of the tree. It is never an Open, Close, or Sep token.
	root *token
	// names is the sorted list of placeholder names used in the formula.
	names []string
	// src is the formula text.
	src string
}

// Compile compiles a formula using the default definitions modified by opts.
func Compile(src string, opts ...Option) (*Expr, error) {
	cfg, err := configure(opts)
	if err != nil {
		return nil, err
	}
	return compile(src, &cfg)
}

func compile(src string, cfg *config) (*Expr, error) {
	if src == "" {
		return nil, &EmptyFormulaError{}
	}
	toks, err := lex(src, cfg.ops, cfg.fns)
	if err != nil {
		return nil, err
	}
	if len(toks) == 0 {
		return nil, &EmptyFormulaError{}
	}
	root, err := dissolve(toks)
	if err != nil {
		return nil, err
	}
	e := Expr{root: root, src: src}
	seen := set.New()
	root.walk(func(t *token) {
		if t.kind == tokenName && !seen.Contains(t.text) {
			seen.Add(t.text)
			e.names = append(e.names, t.text)
		}
	})
	sortstrs(e.names)
	return &e, nil
}

// sortstrs sorts a string slice without using package sort because that has
// reflection and allocation problems.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}

// Eval computes the value of the formula with the given placeholder values.
// b is only read.
func (e *Expr) Eval(b Bindings) (Value, error) {
	return e.root.value(b)
}

// Vars returns the placeholder names used in the formula, sorted.
func (e *Expr) Vars() []string {
	return append(([]string)(nil), e.names...)
}

// Source returns the formula text the expression was compiled from.
func (e *Expr) Source() string {
	return e.src
}

// String creates a string representation of the compiled formula, with
// alternating round and square brackets grouping each operation.
func (e *Expr) String() string {
	var b strings.Builder
	e.root.fmt(&b, false)
	return b.String()
}

// value computes the value of the tree rooted at t.
func (t *token) value(b Bindings) (Value, error) {
	switch t.kind {
	case tokenNum:
		return t.num, nil
	case tokenName:
		v := b[t.text]
		if v == nil {
			return nil, &NameError{Pos: t.pos, Name: t.text}
		}
		return v, nil
	case tokenOpNode:
		// Both operands are always evaluated, even for logical operators.
		var l Value
		if t.lhs != nil {
			var err error
			if l, err = t.lhs.value(b); err != nil {
				return nil, err
			}
		}
		r, err := t.rhs.value(b)
		if err != nil {
			return nil, err
		}
		v, err := t.op.Func(l, r)
		if err != nil {
			return nil, &FuncError{Pos: t.pos, Name: t.op.Symbol, Err: err}
		}
		return v, nil
	case tokenCall:
		args, err := t.callArgs(b)
		if err != nil {
			return nil, err
		}
		v, err := t.fn.Func(args)
		if err != nil {
			return nil, &FuncError{Pos: t.pos, Name: t.fn.Name, Err: err}
		}
		return v, nil
	case tokenList:
		return nil, &ListError{Pos: t.pos, Text: t.text}
	default:
		panic("formulas: token has no value: " + t.String())
	}
}

// callArgs computes the arguments of a call. Every argument is computed
// before the count is checked against the function's arity.
func (t *token) callArgs(b Bindings) ([]Value, error) {
	arg := t.rhs
	if arg.kind != tokenList {
		v, err := arg.value(b)
		if err != nil {
			return nil, err
		}
		if t.fn.Arity != 1 {
			return nil, &CallError{Pos: arg.pos, Func: t.fn.Name, Want: t.fn.Arity, Got: 1}
		}
		return []Value{v}, nil
	}
	r := make([]Value, len(arg.args))
	for i, a := range arg.args {
		v, err := a.element(b)
		if err != nil {
			return nil, err
		}
		r[i] = v
	}
	if len(r) != t.fn.Arity {
		at := arg
		if len(arg.args) > 0 {
			at = arg.args[len(arg.args)-1]
		}
		return nil, &CallError{Pos: at.pos, Func: t.fn.Name, Want: t.fn.Arity, Got: len(r)}
	}
	return r, nil
}

// element computes an element of an argument list. Unlike value, a nested
// list is allowed and becomes a []Value.
func (t *token) element(b Bindings) (Value, error) {
	if t.kind != tokenList {
		return t.value(b)
	}
	r := make([]Value, len(t.args))
	for i, a := range t.args {
		v, err := a.element(b)
		if err != nil {
			return nil, err
		}
		r[i] = v
	}
	return r, nil
}

// Evaluator holds a formula, the definitions used to compile it, and
// placeholder values to evaluate it with. The zero value is ready to use with
// the default definitions. It is not safe to use an Evaluator concurrently;
// use Expr for that.
type Evaluator struct {
	// Formula is the formula to compile. Changing it has no effect until the
	// next call to Compile.
	Formula string
	// Vars holds the placeholder values used by Evaluate. It may be modified
	// freely between evaluations.
	Vars Bindings

	cfg  config
	expr *Expr
}

// NewEvaluator creates an evaluator using the default definitions modified
// by opts.
func NewEvaluator(opts ...Option) (*Evaluator, error) {
	cfg, err := configure(opts)
	if err != nil {
		return nil, err
	}
	return &Evaluator{Vars: make(Bindings), cfg: cfg}, nil
}

// Compile compiles ev.Formula, replacing any previously compiled formula. If
// compiling fails, ev has no compiled formula.
func (ev *Evaluator) Compile() error {
	ev.expr = nil
	if !ev.cfg.ok {
		cfg, err := configure(nil)
		if err != nil {
			return err
		}
		ev.cfg = cfg
	}
	e, err := compile(ev.Formula, &ev.cfg)
	if err != nil {
		return err
	}
	ev.expr = e
	return nil
}

// Evaluate computes the value of the compiled formula with the current
// placeholder values. Returns ErrNotCompiled if Compile has not succeeded.
func (ev *Evaluator) Evaluate() (Value, error) {
	if ev.expr == nil {
		return nil, ErrNotCompiled
	}
	return ev.expr.Eval(ev.Vars)
}

// Set sets the value of a placeholder. Returns ev for chaining.
func (ev *Evaluator) Set(name string, v Value) *Evaluator {
	if ev.Vars == nil {
		ev.Vars = make(Bindings)
	}
	ev.Vars[name] = v
	return ev
}

// Lookup returns the value of a placeholder, or nil if it is not set.
func (ev *Evaluator) Lookup(name string) Value {
	return ev.Vars[name]
}

// Expr returns the compiled formula, or nil if there is none.
func (ev *Evaluator) Expr() *Expr {
	return ev.expr
}

// Operators returns a copy of the operators ev uses.
func (ev *Evaluator) Operators() []Operator {
	return append(([]Operator)(nil), ev.cfg.ops...)
}

// Functions returns a copy of the functions ev uses.
func (ev *Evaluator) Functions() []Function {
	return append(([]Function)(nil), ev.cfg.fns...)
}
