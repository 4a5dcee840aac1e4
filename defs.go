package formulas

import (
	"math"
	"strconv"
	"strings"

	"github.com/ahrtr/gocontainer/set"
)

// Value is the result of evaluating a formula or any part of one. Values
// produced by the default definitions are float64 or bool. Bindings may also
// supply []Value, which only functions know how to use.
type Value = any

// Bindings maps placeholder names to their values.
type Bindings map[string]Value

// Operator defines an infix or prefix operator.
type Operator struct {
	// Symbol is the text of the operator in formulas.
	Symbol string
	// Name is a human-readable name for the operator.
	Name string
	// Precedence orders operators in a formula. Higher binds tighter.
	// Operators of equal precedence group left to right.
	Precedence int
	// Func computes the operator's result. For RHSOnly operators, lhs is
	// always nil.
	Func func(lhs, rhs Value) (Value, error)
	// RHSOnly marks a prefix operator that takes only a right operand.
	RHSOnly bool
}

// Function defines a named function.
type Function struct {
	// Name is the identifier that calls the function.
	Name string
	// Arity is the exact number of arguments the function requires.
	Arity int
	// Func computes the function's result. len(args) is always Arity.
	Func func(args []Value) (Value, error)
}

// LogicalOperators returns the default logical operators. Their
// precedences are all lower than those of ArithmeticOperators.
func LogicalOperators() []Operator {
	return []Operator{
		{"!", "negation", 1000, func(_, p Value) (Value, error) {
			a, err := truth("!", p)
			if err != nil {
				return nil, err
			}
			return !a, nil
		}, true},
		{"&", "conjunction", 900, logical("&", func(p, q bool) bool { return p && q }), false},
		{"|", "disjunction", 800, logical("|", func(p, q bool) bool { return p || q }), false},
		{"^", "exclusive disjunction", 800, logical("^", func(p, q bool) bool { return p != q }), false},
		{"->", "consequence", 700, logical("->", func(p, q bool) bool { return !p || q }), false},
		{"=", "biconditional", 600, logical("=", func(p, q bool) bool { return p == q }), false},
	}
}

// ArithmeticOperators returns the default arithmetic operators.
func ArithmeticOperators() []Operator {
	return []Operator{
		{"+", "sum", 1900, arithmetic("+", func(x, y float64) float64 { return x + y }), false},
		{"-", "difference", 1900, arithmetic("-", func(x, y float64) float64 { return x - y }), false},
		{"*", "product", 2000, arithmetic("*", func(x, y float64) float64 { return x * y }), false},
		{"/", "division", 2000, arithmetic("/", func(x, y float64) float64 { return x / y }), false},
		{"%", "modulo", 2000, arithmetic("%", math.Mod), false},
	}
}

// DefaultOperators returns the logical operators followed by the arithmetic
// operators. "->" precedes "-", as the ordering rule requires.
func DefaultOperators() []Operator {
	return append(LogicalOperators(), ArithmeticOperators()...)
}

// LogicalFunctions returns the default functions, which are the logical
// connectives in function form.
func LogicalFunctions() []Function {
	return []Function{
		{"not", 1, func(args []Value) (Value, error) {
			p, err := truth("not", args[0])
			if err != nil {
				return nil, err
			}
			return !p, nil
		}},
		{"and", 2, connective("and", func(p, q bool) bool { return p && q })},
		{"or", 2, connective("or", func(p, q bool) bool { return p || q })},
		{"xor", 2, connective("xor", func(p, q bool) bool { return p != q })},
		{"con", 2, connective("con", func(p, q bool) bool { return !p || q })},
		{"equ", 2, connective("equ", func(p, q bool) bool { return p == q })},
	}
}

func logical(sym string, f func(p, q bool) bool) func(lhs, rhs Value) (Value, error) {
	return func(lhs, rhs Value) (Value, error) {
		p, err := truth(sym, lhs)
		if err != nil {
			return nil, err
		}
		q, err := truth(sym, rhs)
		if err != nil {
			return nil, err
		}
		return f(p, q), nil
	}
}

func arithmetic(sym string, f func(x, y float64) float64) func(lhs, rhs Value) (Value, error) {
	return func(lhs, rhs Value) (Value, error) {
		x, err := number(sym, lhs)
		if err != nil {
			return nil, err
		}
		y, err := number(sym, rhs)
		if err != nil {
			return nil, err
		}
		return f(x, y), nil
	}
}

func connective(name string, f func(p, q bool) bool) func(args []Value) (Value, error) {
	op := logical(name, f)
	return func(args []Value) (Value, error) {
		return op(args[0], args[1])
	}
}

// number converts a value to a float64 for arithmetic.
func number(op string, v Value) (float64, error) {
	switch v := v.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case uint:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case uint32:
		return float64(v), nil
	default:
		return 0, &TypeError{Op: op, Value: v, Want: "number"}
	}
}

// truth converts a value to a bool for logic. Numbers are true when they are
// nonzero.
func truth(op string, v Value) (bool, error) {
	if b, ok := v.(bool); ok {
		return b, nil
	}
	x, err := number(op, v)
	if err != nil {
		return false, &TypeError{Op: op, Value: v, Want: "boolean"}
	}
	return x != 0, nil
}

// ValidateOperators checks that a list of operators can be tokenized
// unambiguously. Operators are matched in list order, so an operator whose
// symbol begins with another's must be listed first.
func ValidateOperators(ops []Operator) error {
	seen := set.New()
	for i, op := range ops {
		if op.Symbol == "" {
			return &ConfigError{Index: i, Reason: "empty operator symbol"}
		}
		if op.Func == nil {
			return &ConfigError{Index: i, Symbol: op.Symbol, Reason: "operator has no func"}
		}
		if seen.Contains(op.Symbol) {
			return &ConfigError{Index: i, Symbol: op.Symbol, Reason: "duplicate operator"}
		}
		seen.Add(op.Symbol)
		for _, r := range op.Symbol {
			if isWhitespace(r) || isDigit(r) || isDecimalPoint(r) || isSeparator(r) || isOpening(r) || isClosing(r) {
				return &ConfigError{Index: i, Symbol: op.Symbol, Reason: "operator contains reserved character " + strconv.QuoteRune(r)}
			}
		}
		for _, prev := range ops[:i] {
			if strings.HasPrefix(op.Symbol, prev.Symbol) {
				return &ConfigError{Index: i, Symbol: op.Symbol, Reason: "operator is shadowed by earlier " + strconv.Quote(prev.Symbol)}
			}
		}
	}
	return nil
}

// ValidateFunctions checks that every function can be named in a formula that
// uses ops. Like operators, functions are matched in list order, so a function
// whose name begins with another's must be listed first.
func ValidateFunctions(fns []Function, ops []Operator) error {
	seen := set.New()
	for i, fn := range fns {
		if fn.Name == "" {
			return &ConfigError{Index: i, Reason: "empty function name"}
		}
		if fn.Func == nil {
			return &ConfigError{Index: i, Symbol: fn.Name, Reason: "function has no func"}
		}
		if fn.Arity < 0 {
			return &ConfigError{Index: i, Symbol: fn.Name, Reason: "negative arity"}
		}
		if seen.Contains(fn.Name) {
			return &ConfigError{Index: i, Symbol: fn.Name, Reason: "duplicate function"}
		}
		seen.Add(fn.Name)
		for k, r := range fn.Name {
			if isSpecial(r, ops) || k == 0 && isDigit(r) {
				return &ConfigError{Index: i, Symbol: fn.Name, Reason: "function name contains special character " + strconv.QuoteRune(r)}
			}
		}
		for _, prev := range fns[:i] {
			if strings.HasPrefix(fn.Name, prev.Name) {
				return &ConfigError{Index: i, Symbol: fn.Name, Reason: "function is shadowed by earlier " + strconv.Quote(prev.Name)}
			}
		}
	}
	return nil
}
