package formulas

import (
	"strconv"
	"strings"
	"unicode"
)

func isWhitespace(r rune) bool   { return unicode.IsSpace(r) }
func isDigit(r rune) bool        { return '0' <= r && r <= '9' }
func isDecimalPoint(r rune) bool { return r == '.' }
func isSeparator(r rune) bool    { return r == ',' }
func isOpening(r rune) bool      { return r == '(' }
func isClosing(r rune) bool      { return r == ')' }

// isOperatorChar returns whether r appears in the symbol of any operator.
func isOperatorChar(r rune, ops []Operator) bool {
	for _, op := range ops {
		if strings.ContainsRune(op.Symbol, r) {
			return true
		}
	}
	return false
}

// isSpecial returns whether r ends a placeholder or function name. Digits
// are not special, so names like x1 are allowed.
func isSpecial(r rune, ops []Operator) bool {
	return isWhitespace(r) || isDecimalPoint(r) || isSeparator(r) || isOpening(r) || isClosing(r) || isOperatorChar(r, ops)
}

// lexer scans a formula into a flat list of tokens.
type lexer struct {
	src []rune
	ops []Operator
	fns []Function
	pos int
}

// lex scans all tokens from src. Positions are rune offsets from 0.
func lex(src string, ops []Operator, fns []Function) ([]*token, error) {
	l := lexer{src: []rune(src), ops: ops, fns: fns}
	var toks []*token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		if tok == nil {
			return toks, nil
		}
		toks = append(toks, tok)
	}
}

// next scans the next token. At the end of input, the result is nil with no
// error.
func (l *lexer) next() (*token, error) {
	for l.pos < len(l.src) && isWhitespace(l.src[l.pos]) {
		l.pos++
	}
	if l.pos >= len(l.src) {
		return nil, nil
	}
	start := l.pos
	r := l.src[start]
	switch {
	case isDigit(r), isDecimalPoint(r):
		return l.scanNum()
	case isOpening(r):
		l.pos++
		return &token{kind: tokenOpen, pos: start, text: "("}, nil
	case isClosing(r):
		l.pos++
		return &token{kind: tokenClose, pos: start, text: ")"}, nil
	case isSeparator(r):
		l.pos++
		return &token{kind: tokenSep, pos: start, text: ","}, nil
	case isOperatorChar(r, l.ops):
		op := l.matchOperator()
		if op == nil {
			return nil, &LexError{Pos: start, Char: r}
		}
		l.pos += len([]rune(op.Symbol))
		return &token{kind: tokenOp, pos: start, text: op.Symbol, op: op}, nil
	default:
		return l.scanIdent(), nil
	}
}

// scanNum scans a decimal number with at most one decimal point. A second
// point begins the next token.
func (l *lexer) scanNum() (*token, error) {
	start := l.pos
	dot := false
	for l.pos < len(l.src) {
		r := l.src[l.pos]
		if isDecimalPoint(r) {
			if dot {
				break
			}
			dot = true
		} else if !isDigit(r) {
			break
		}
		l.pos++
	}
	text := string(l.src[start:l.pos])
	if text == "." {
		return nil, &LexError{Pos: start, Char: '.'}
	}
	x, err := strconv.ParseFloat(text, 64)
	if err != nil {
		// Only an out-of-range literal gets here. ParseFloat still gives the
		// correctly signed infinity.
		if ne, ok := err.(*strconv.NumError); !ok || ne.Err != strconv.ErrRange {
			panic("formulas: invalid number " + strconv.Quote(text) + ": " + err.Error())
		}
	}
	return &token{kind: tokenNum, pos: start, text: text, num: x}, nil
}

// scanIdent scans a placeholder or function name. A name runs until the
// next special character. If the run begins with a function name, the first
// such function in definition order is the token, and only its name is
// consumed; the rest of the run is scanned as the next token.
func (l *lexer) scanIdent() *token {
	start := l.pos
	end := start + 1
	for end < len(l.src) && !isSpecial(l.src[end], l.ops) {
		end++
	}
	text := string(l.src[start:end])
	for i := range l.fns {
		name := l.fns[i].Name
		if strings.HasPrefix(text, name) {
			l.pos += len([]rune(name))
			return &token{kind: tokenFunc, pos: start, text: name, fn: &l.fns[i]}
		}
	}
	l.pos = end
	return &token{kind: tokenName, pos: start, text: text}
}

// matchOperator finds the first operator in definition order whose symbol
// begins at the current position.
func (l *lexer) matchOperator() *Operator {
	rest := string(l.src[l.pos:])
	for i := range l.ops {
		if strings.HasPrefix(rest, l.ops[i].Symbol) {
			return &l.ops[i]
		}
	}
	return nil
}
