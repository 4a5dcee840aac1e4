package formulas

import (
	"errors"
	"math"
	"math/big"
	"strconv"

	"github.com/zephyrtronium/bigfloat"
)

// mathPrec is the precision in bits of intermediate results in
// MathFunctions. Results are rounded to float64 only at the end.
const mathPrec = 128

// MathFunctions returns functions for common transcendental operations:
// exp, ln, log (base 10), sqrt, pow, pi, and e. Each computes with extended
// precision and rounds the result to a float64. Non-finite arguments are
// handled by package math.
func MathFunctions() []Function {
	return []Function{
		{"exp", 1, monadic("exp", math.Exp, func(x float64) bool { return true }, bigfloat.Exp)},
		{"ln", 1, monadic("ln", math.Log, nonneg, logz(bigfloat.Log))},
		{"log", 1, monadic("log", math.Log10, nonneg, logz(log10))},
		{"sqrt", 1, monadic("sqrt", math.Sqrt, nonneg, (*big.Float).Sqrt)},
		{"pow", 2, pow},
		{"pi", 0, func(args []Value) (Value, error) {
			r, _ := bigfloat.Pi(new(big.Float).SetPrec(mathPrec)).Float64()
			return r, nil
		}},
		// e is last because it begins exp and equ.
		{"e", 0, func(args []Value) (Value, error) {
			one := new(big.Float).SetPrec(mathPrec).SetInt64(1)
			r, _ := bigfloat.Exp(new(big.Float).SetPrec(mathPrec), one).Float64()
			return r, nil
		}},
	}
}

func nonneg(x float64) bool {
	return x >= 0
}

// logz guards a logarithm against zero, which bigfloat does not handle.
func logz(f func(z, x *big.Float) *big.Float) func(z, x *big.Float) *big.Float {
	return func(z, x *big.Float) *big.Float {
		if x.Sign() == 0 {
			return z.SetInf(true)
		}
		return f(z, x)
	}
}

func log10(z, x *big.Float) *big.Float {
	bigfloat.Log(z, x)
	ten := new(big.Float).SetPrec(z.Prec()).SetFloat64(10)
	bigfloat.Log(ten, ten)
	return z.Quo(z, ten)
}

// monadic wraps a big.Float function of one variable into a Function's
// Func. small handles NaN and infinite arguments. in reports whether an
// argument is inside the function's domain.
func monadic(name string, small func(float64) float64, in func(float64) bool, f func(z, x *big.Float) *big.Float) func([]Value) (Value, error) {
	return func(args []Value) (r Value, err error) {
		x, err := number(name, args[0])
		if err != nil {
			return nil, err
		}
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return small(x), nil
		}
		if !in(x) {
			return nil, &DomainError{Func: name, X: x, Arg: 1}
		}
		defer recoverNaN(name, x, &err)
		z := new(big.Float).SetPrec(mathPrec)
		f(z, new(big.Float).SetPrec(mathPrec).SetFloat64(x))
		v, _ := z.Float64()
		return v, nil
	}
}

func pow(args []Value) (r Value, err error) {
	x, err := number("pow", args[0])
	if err != nil {
		return nil, err
	}
	y, err := number("pow", args[1])
	if err != nil {
		return nil, err
	}
	defer recoverNaN("pow", x, &err)
	neg := false
	switch {
	case math.IsNaN(x), math.IsInf(x, 0), math.IsNaN(y), math.IsInf(y, 0), x == 0:
		return math.Pow(x, y), nil
	case x < 0:
		// A negative base has a real power only for an integer exponent.
		if y != math.Trunc(y) {
			return nil, &DomainError{Func: "pow", X: x, Arg: 1}
		}
		x = -x
		neg = math.Mod(y, 2) != 0
	}
	z := new(big.Float).SetPrec(mathPrec)
	bx := new(big.Float).SetPrec(mathPrec).SetFloat64(x)
	by := new(big.Float).SetPrec(mathPrec).SetFloat64(y)
	bigfloat.Pow(z, bx, by)
	if neg {
		z.Neg(z)
	}
	v, _ := z.Float64()
	return v, nil
}

// recoverNaN converts a big.ErrNaN panic into a DomainError.
func recoverNaN(name string, x float64, err *error) {
	r := recover()
	if r == nil {
		return
	}
	e, ok := r.(error)
	if !ok || !errors.As(e, &big.ErrNaN{}) {
		panic(r)
	}
	*err = &DomainError{Func: name, X: x}
}

// DomainError is an error returned when a function is called on arguments
// outside its domain.
type DomainError struct {
	// X is the out-of-domain argument.
	X float64
	// Arg is the 1-based index of the argument.
	Arg int
	// Func is a name identifying the function.
	Func string
}

func (err *DomainError) Error() string {
	r := strconv.FormatFloat(err.X, 'g', -1, 64) + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	if err.Arg > 0 {
		r += " (argument " + strconv.Itoa(err.Arg) + ")"
	}
	return r
}
