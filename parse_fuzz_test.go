//go:build go1.18
// +build go1.18

package formulas_test

import (
	"testing"

	"github.com/zephyrtronium/formulas"
)

func FuzzCompile(f *testing.F) {
	f.Add("x")
	f.Add("2 + 3 * 4")
	f.Add("and(p, (q, r))")
	f.Add("1.2.3")
	f.Add("((,))")
	f.Fuzz(func(t *testing.T, s string) {
		e, err := formulas.Compile(s)
		if err == nil {
			// Must not panic; errors are fine.
			e.Eval(formulas.Bindings{"x": 1.0, "p": true, "q": false})
			_ = e.String()
		}
	})
}
