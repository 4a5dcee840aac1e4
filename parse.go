package formulas

import (
	"github.com/edwingeng/deque"
)

// level is the tokens seen so far at one nesting level. open is the token
// that opened the level, or nil at the top.
type level struct {
	open *token
	toks []*token
}

// dissolve resolves parentheses in a flat token list into a single tree.
// Each closing parenthesis reduces the tokens since its matching opening
// parenthesis to one token, innermost first, so the enclosing level sees the
// whole group as a single operand.
func dissolve(toks []*token) (*token, error) {
	opens := deque.NewDeque()
	cur := level{}
	for _, tok := range toks {
		switch tok.kind {
		case tokenOpen:
			opens.PushBack(cur)
			cur = level{open: tok}
		case tokenClose:
			if opens.Empty() {
				return nil, &BracketError{Pos: tok.pos, Close: true}
			}
			r, err := reduce(cur.open.pos, cur.toks)
			if err != nil {
				return nil, err
			}
			cur = opens.PopBack().(level)
			cur.toks = append(cur.toks, r)
		default:
			cur.toks = append(cur.toks, tok)
		}
	}
	if !opens.Empty() {
		// Report the earliest parenthesis that was never closed. The bottom
		// of the stack is the top level, which has no opener.
		opens.PopFront()
		if !opens.Empty() {
			cur = opens.PopFront().(level)
		}
		return nil, &BracketError{Pos: cur.open.pos}
	}
	return reduce(0, cur.toks)
}

// reduce reduces the tokens of one nesting level to a single token. If span
// contains separators, the result is a list of the reduced groups between
// them. An empty span is an empty list at pos.
func reduce(pos int, span []*token) (*token, error) {
	if len(span) == 0 {
		return list(pos, nil), nil
	}
	var groups [][]*token
	var g []*token
	for _, tok := range span {
		switch tok.kind {
		case tokenSep:
			if len(g) == 0 {
				return nil, &SeparatorError{Pos: tok.pos}
			}
			groups = append(groups, g)
			g = nil
		case tokenOpen, tokenClose:
			panic("formulas: unresolved parenthesis in group: " + tok.String())
		default:
			g = append(g, tok)
		}
	}
	if len(g) == 0 {
		return nil, &SeparatorError{Pos: span[len(span)-1].pos}
	}
	groups = append(groups, g)

	r := make([]*token, len(groups))
	for i, grp := range groups {
		t, err := reduceGroup(grp)
		if err != nil {
			return nil, err
		}
		r[i] = t
	}
	if len(r) == 1 {
		return r[0], nil
	}
	return list(pos, r), nil
}

// reduceGroup binds functions to their arguments, then operators to their
// operands by precedence. Exactly one token must remain.
func reduceGroup(g []*token) (*token, error) {
	g, err := bindCalls(g)
	if err != nil {
		return nil, err
	}
	for {
		k := -1
		for i, tok := range g {
			if tok.kind != tokenOp {
				continue
			}
			// Strict comparison keeps the leftmost of equal precedences, so
			// they group left to right.
			if k < 0 || tok.op.Precedence > g[k].op.Precedence {
				k = i
			}
		}
		if k < 0 {
			break
		}
		op := g[k]
		if k+1 >= len(g) || g[k+1].kind == tokenOp {
			return nil, &OperandError{Pos: op.pos, Op: op.text, Right: true}
		}
		lo, hi := k, k+2
		var lhs *token
		if !op.op.RHSOnly {
			if k == 0 || g[k-1].kind == tokenOp {
				return nil, &OperandError{Pos: op.pos, Op: op.text}
			}
			lhs = g[k-1]
			lo--
		}
		n := opnode(op, lhs, g[k+1])
		g = append(append(g[:lo:lo], n), g[hi:]...)
	}
	if len(g) != 1 {
		return nil, &AdjacentError{Pos: g[1].pos, Text: g[1].text}
	}
	return g[0], nil
}

// bindCalls replaces each function token and the token following it with a
// call, working right to left so that f g x is f(g(x)).
func bindCalls(g []*token) ([]*token, error) {
	// r is built in reverse.
	r := make([]*token, 0, len(g))
	for i := len(g) - 1; i >= 0; i-- {
		tok := g[i]
		if tok.kind != tokenFunc {
			r = append(r, tok)
			continue
		}
		if len(r) == 0 || r[len(r)-1].kind == tokenOp {
			return nil, &ArgumentError{Pos: tok.pos, Func: tok.fn.Name, Arity: tok.fn.Arity}
		}
		r[len(r)-1] = call(tok, r[len(r)-1])
	}
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return r, nil
}
