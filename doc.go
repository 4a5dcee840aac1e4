// Package formulas compiles and evaluates formulas built from numbers,
// placeholders, parentheses, operators, and named functions.
//
// The operators and functions a formula may use are configurable. By default,
// "!", "&", "|", "^", "->", and "=" are logical operators binding looser than
// the arithmetic "+", "-", "*", "/", and "%", and "not", "and", "or", "xor",
// "con", and "equ" are logical functions. "p & x + 1 = q" is then
// "(p & (x + 1)) = q".
//
// A name that begins with a function name is that function applied to the
// rest of the name, so "notp" is "not p".
//
// Placeholders are resolved only during evaluation, so a formula can be
// compiled once and evaluated for many bindings:
//
//	e, err := formulas.Compile("x + 1")
//	...
//	v, err := e.Eval(formulas.Bindings{"x": 2.0})
//
package formulas
