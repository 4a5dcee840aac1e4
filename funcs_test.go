package formulas_test

import (
	"errors"
	"math"
	"testing"

	"github.com/zephyrtronium/formulas"
)

func TestMathFunctions(t *testing.T) {
	cases := []struct {
		src string
		x   float64
		r   float64
	}{
		{"exp(x)", 1, math.E},
		{"exp(x)", 0, 1},
		{"ln(x)", math.E, 1},
		{"ln(x)", 0, math.Inf(-1)},
		{"log(x)", 1000, 3},
		{"sqrt(x)", 2, math.Sqrt2},
		{"sqrt x", 16, 4},
		{"pow(x, 10)", 2, 1024},
		{"pow(x, 0.5)", 9, 3},
		{"pow(x, 2)", 0, 0},
		{"pi() * x", 2, 2 * math.Pi},
		{"e()", 0, math.E},
		{"e() * x", 2, 2 * math.E},
		{"ln(e()) + exp(x)", 0, 2},
		{"pow(x, 3)", -2, -8},
		{"pow(x, 2)", -3, 9},
		{"pow(x, -1)", -2, -0.5},
		{"exp(x)", math.Inf(-1), 0},
		{"2 * sqrt(x) + 1", 4, 5},
	}
	for _, c := range cases {
		e, err := formulas.Compile(c.src, formulas.WithMath())
		if err != nil {
			t.Errorf("%q failed to parse: %v", c.src, err)
			continue
		}
		r, err := e.Eval(formulas.Bindings{"x": c.x})
		if err != nil {
			t.Errorf("%q with x=%g: %v", c.src, c.x, err)
			continue
		}
		f, ok := r.(float64)
		if !ok {
			t.Errorf("%q with x=%g: result %v is %T", c.src, c.x, r, r)
			continue
		}
		if math.Abs(f-c.r) > 1e-12*math.Max(1, math.Abs(c.r)) && f != c.r {
			t.Errorf("%q with x=%g: want %g, got %g", c.src, c.x, c.r, f)
		}
	}
}

func TestMathDomain(t *testing.T) {
	cases := []struct {
		src string
		x   float64
	}{
		{"ln(x)", -1},
		{"log(x)", -10},
		{"sqrt(x)", -4},
		{"pow(x, 0.5)", -2},
		{"pow(x, 2.5)", -1},
	}
	for _, c := range cases {
		e, err := formulas.Compile(c.src, formulas.WithMath())
		if err != nil {
			t.Errorf("%q failed to parse: %v", c.src, err)
			continue
		}
		r, err := e.Eval(formulas.Bindings{"x": c.x})
		var de *formulas.DomainError
		if !errors.As(err, &de) {
			t.Errorf("%q with x=%g: expected DomainError, got %v, %v", c.src, c.x, r, err)
			continue
		}
		if de.X != c.x {
			t.Errorf("%q: wrong argument in error: want %g, got %g", c.src, c.x, de.X)
		}
	}
}

func TestMathNotDefault(t *testing.T) {
	e, err := formulas.Compile("exp(x)")
	if err == nil {
		t.Errorf("exp(x) compiled without math functions as %v", e)
	}
}
