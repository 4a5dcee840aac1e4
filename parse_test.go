package formulas

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseTrees(t *testing.T) {
	cases := []struct {
		name string
		a, b string
	}{
		{"paren", "(x)", "x"},
		{"multi", "((((x))))", "x"},
		{"spaces", " x\t+\ny ", "x+y"},

		{"add", "x+y", "(x)+(y)"},
		{"muladd", "x*y+z", "(x*y)+z"},
		{"addmul", "x+y*z", "x+(y*z)"},
		{"sub3", "x-y-z", "(x-y)-z"},
		{"div3", "x/y/z", "(x/y)/z"},
		{"mod", "x%y*z", "(x%y)*z"},
		{"arithlogic", "x+1=y*2", "(x+1)=(y*2)"},
		{"andor", "p&q|r", "(p&q)|r"},
		{"orand", "p|q&r", "p|(q&r)"},
		{"xoror", "p^q|r", "(p^q)|r"},
		{"conequ", "p->q=r", "(p->q)=r"},
		{"negand", "!p&q", "(!p)&q"},
		{"negparen", "!(p&q)", "!((p&q))"},

		{"call1", "not p", "not(p)"},
		{"call1-bind", "not p & q", "(not(p))&q"},
		{"call-nested", "not not p", "not(not(p))"},
		{"call2", "and(p, q)", "and((p), (q))"},
		{"call2-ops", "and(p|q, r)", "and((p|q), r)"},
		{"call-in-op", "p | and(q, r)", "p | (and(q, r))"},
		{"call-args-nested", "and(not p, or(q, r))", "and((not(p)), (or(q, r)))"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := Compile(c.a)
			if err != nil {
				t.Fatalf("failed to parse %q: %v", c.a, err)
			}
			b, err := Compile(c.b)
			if err != nil {
				t.Fatalf("failed to parse %q: %v", c.b, err)
			}
			if a.String() != b.String() {
				t.Errorf("mismatched trees:\n\t%q parses %v\n\t%q parses %v", c.a, a, c.b, b)
			}
		})
	}
}

func TestExprString(t *testing.T) {
	cases := []struct {
		src, want string
	}{
		{"2 + 3 * 4", "(2 + [3 * 4])"},
		{"(2 + 3) * 4", "([2 + 3] * 4)"},
		{"8 - 3 - 2", "([8 - 3] - 2)"},
		{"!p", "(!p)"},
		{"! p & q", "([!p] & q)"},
		{"and(p, q)", "and(p, q)"},
		{"and(p, q | r)", "and(p, [q | r])"},
		{"not p", "not(p)"},
		{"not(p & q)", "not([p & q])"},
		{"and()", "and()"},
		{"(1, 2)", "(1, 2)"},
		{"1.5", "1.5"},
	}
	for _, c := range cases {
		e, err := Compile(c.src)
		if err != nil {
			t.Errorf("failed to parse %q: %v", c.src, err)
			continue
		}
		if got := e.String(); got != c.want {
			t.Errorf("%q: want %s, got %s", c.src, c.want, got)
		}
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		err  InputError
	}{
		{"empty", "", &EmptyFormulaError{}},
		{"blank", " \t ", &EmptyFormulaError{}},
		{"unclosed", "(2 + 3", &BracketError{Pos: 0}},
		{"unclosed-inner", "((1)", &BracketError{Pos: 0}},
		{"unclosed-late", "1 + (2 * (3)", &BracketError{Pos: 4}},
		{"unopened", "2 + 3)", &BracketError{Pos: 5, Close: true}},
		{"unopened-late", "(1))", &BracketError{Pos: 3, Close: true}},
		{"adjacent", "2 3", &AdjacentError{Pos: 2, Text: "3"}},
		{"adjacent-dots", "1.2.3", &AdjacentError{Pos: 3, Text: ".3"}},
		{"adjacent-paren", "2 (3)", &AdjacentError{Pos: 3, Text: "3"}},
		{"sep-double", "and(p,,q)", &SeparatorError{Pos: 6}},
		{"sep-leading", "and(,q)", &SeparatorError{Pos: 4}},
		{"sep-trailing", "and(p,)", &SeparatorError{Pos: 5}},
		{"sep-alone", ",", &SeparatorError{Pos: 0}},
		{"func-alone", "not", &ArgumentError{Pos: 0, Func: "not", Arity: 1}},
		{"func-end", "p & not", &ArgumentError{Pos: 4, Func: "not", Arity: 1}},
		{"func-op", "not & p", &ArgumentError{Pos: 0, Func: "not", Arity: 1}},
		{"lvalue", "* 2", &OperandError{Pos: 0, Op: "*"}},
		{"rvalue", "2 *", &OperandError{Pos: 2, Op: "*", Right: true}},
		{"rvalue-unary", "!", &OperandError{Pos: 0, Op: "!", Right: true}},
		{"lvalue-op", "2 + * 3", &OperandError{Pos: 4, Op: "*"}},
		{"neg", "-1", &OperandError{Pos: 0, Op: "-"}},
		{"lex", "p - > q", &LexError{Pos: 4, Char: '>'}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e, err := Compile(c.src)
			if err == nil {
				t.Fatalf("%q parsed as %v", c.src, e)
			}
			if e != nil {
				t.Errorf("%q produced expression %v with error", c.src, e)
			}
			if !reflect.DeepEqual(err, c.err) {
				t.Errorf("%q: want error %#v, got %#v", c.src, c.err, err)
			}
			var ie InputError
			if !errors.As(err, &ie) {
				t.Errorf("%q: error %v is not an InputError", c.src, err)
			} else if ie.Offset() != c.err.Offset() {
				t.Errorf("%q: want offset %d, got %d", c.src, c.err.Offset(), ie.Offset())
			}
		})
	}
}

func TestExprVars(t *testing.T) {
	cases := []struct {
		src  string
		vars []string
	}{
		{"1", nil},
		{"x", []string{"x"}},
		{"x + y * x", []string{"x", "y"}},
		{"and(q, p) | not r", []string{"p", "q", "r"}},
		{"(b, a, (c, a))", []string{"a", "b", "c"}},
	}
	for _, c := range cases {
		e, err := Compile(c.src)
		if err != nil {
			t.Errorf("failed to parse %q: %v", c.src, err)
			continue
		}
		if v := e.Vars(); !reflect.DeepEqual(v, c.vars) {
			t.Errorf("%q: want vars %q, got %q", c.src, c.vars, v)
		}
	}
}

func TestNoBracketsInTree(t *testing.T) {
	srcs := []string{
		"x", "(x)", "((x), (y, z))", "and((p), (q))", "not((p))", "((1 + 2) * (3 - (4)))",
	}
	for _, src := range srcs {
		e, err := Compile(src)
		if err != nil {
			t.Errorf("failed to parse %q: %v", src, err)
			continue
		}
		e.root.walk(func(tok *token) {
			switch tok.kind {
			case tokenOpen, tokenClose, tokenSep, tokenOp, tokenFunc, tokenNone:
				t.Errorf("%q: tree contains %v", src, tok)
			}
		})
	}
}
