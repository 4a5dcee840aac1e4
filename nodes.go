package formulas

import (
	"strconv"
	"strings"
)

// token is both a lexical token and a node in the tree of a compiled formula.
type token struct {
	kind tokenKind
	// pos is the rune offset in the formula where the token begins.
	pos int
	// text is the source text the token represents, for diagnostics.
	text string

	op  *Operator
	fn  *Function
	num float64

	// args is the content of a tokenList.
	args []*token
	// lhs is nil for RHSOnly operators. rhs is the operand of an operator or
	// the argument of a call.
	lhs, rhs *token
}

type tokenKind int8

const (
	tokenNone tokenKind = iota

	// Tokens produced by the lexer. Open, Close, and Sep never appear in a
	// compiled tree.
	tokenOpen
	tokenClose
	tokenSep
	tokenOp
	tokenFunc
	tokenNum  // number literal
	tokenName // placeholder

	// Tokens produced by reduction.
	tokenList   // parenthesized or separated list, args
	tokenOpNode // op applied to lhs and rhs
	tokenCall   // fn applied to rhs
)

var tokenKindNames = [...]string{
	tokenNone:   "None",
	tokenOpen:   "Open",
	tokenClose:  "Close",
	tokenSep:    "Sep",
	tokenOp:     "Op",
	tokenFunc:   "Func",
	tokenNum:    "Num",
	tokenName:   "Name",
	tokenList:   "List",
	tokenOpNode: "OpNode",
	tokenCall:   "Call",
}

func (k tokenKind) String() string {
	if k < 0 || int(k) >= len(tokenKindNames) {
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return tokenKindNames[k]
}

// opnode creates an operator node. lhs is nil for RHSOnly operators.
func opnode(op, lhs, rhs *token) *token {
	if op.op.RHSOnly {
		return &token{
			kind: tokenOpNode,
			pos:  op.pos,
			text: op.text + " " + rhs.text,
			op:   op.op,
			rhs:  rhs,
		}
	}
	return &token{
		kind: tokenOpNode,
		pos:  lhs.pos,
		text: lhs.text + " " + op.text + " " + rhs.text,
		op:   op.op,
		lhs:  lhs,
		rhs:  rhs,
	}
}

// call creates a function call node.
func call(fn, arg *token) *token {
	return &token{
		kind: tokenCall,
		pos:  fn.pos,
		text: fn.text + " " + arg.text,
		fn:   fn.fn,
		rhs:  arg,
	}
}

// list creates an argument list. pos is used only when args is empty.
func list(pos int, args []*token) *token {
	t := token{kind: tokenList, pos: pos, args: args}
	if len(args) > 0 {
		t.pos = args[0].pos
	}
	var b strings.Builder
	b.WriteByte('(')
	for i, a := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.text)
	}
	b.WriteByte(')')
	t.text = b.String()
	return &t
}

func (t *token) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

// fmt writes a fully bracketed form of the tree, alternating round and
// square brackets at each level.
func (t *token) fmt(b *strings.Builder, square bool) {
	var l, r byte = '(', ')'
	if square {
		l, r = '[', ']'
	}
	switch t.kind {
	case tokenNum:
		b.WriteString(strconv.FormatFloat(t.num, 'g', -1, 64))
	case tokenName:
		b.WriteString(t.text)
	case tokenOpNode:
		b.WriteByte(l)
		if t.lhs != nil {
			t.lhs.fmt(b, !square)
			b.WriteByte(' ')
		}
		b.WriteString(t.op.Symbol)
		if t.lhs != nil {
			b.WriteByte(' ')
		}
		t.rhs.fmt(b, !square)
		b.WriteByte(r)
	case tokenCall:
		b.WriteString(t.fn.Name)
		if t.rhs.kind == tokenList {
			t.rhs.fmt(b, square)
			return
		}
		b.WriteByte(l)
		t.rhs.fmt(b, !square)
		b.WriteByte(r)
	case tokenList:
		b.WriteByte(l)
		for i, a := range t.args {
			if i > 0 {
				b.WriteString(", ")
			}
			a.fmt(b, !square)
		}
		b.WriteByte(r)
	default:
		panic("formulas: invalid token in tree: " + t.String())
	}
}

// walk calls f for each token in the tree rooted at t, parents first.
func (t *token) walk(f func(*token)) {
	if t == nil {
		return
	}
	f(t)
	t.lhs.walk(f)
	t.rhs.walk(f)
	for _, a := range t.args {
		a.walk(f)
	}
}
