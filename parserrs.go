package formulas

import (
	"errors"
	"fmt"
	"strconv"
)

// LexError is an error indicating a character that looks like part of an
// operator but begins no known operator, or a decimal point with no digits.
// It implements InputError.
type LexError struct {
	// Pos is the rune offset of the character.
	Pos int
	// Char is the character.
	Char rune
}

func (err *LexError) Error() string {
	return errpos(err.Pos, "invalid character "+strconv.QuoteRune(err.Char))
}

func (err *LexError) Offset() int {
	return err.Pos
}

// BracketError is an error indicating an unmatched parenthesis. It implements
// InputError.
type BracketError struct {
	// Pos is the position of the unmatched parenthesis.
	Pos int
	// Close is true if the parenthesis is a closing one with no opening
	// parenthesis before it, and false for an opening parenthesis that is
	// never closed.
	Close bool
}

func (err *BracketError) Error() string {
	if err.Close {
		return errpos(err.Pos, "close parenthesis with no open parenthesis")
	}
	return errpos(err.Pos, "open parenthesis with no close parenthesis")
}

func (err *BracketError) Offset() int {
	return err.Pos
}

// SeparatorError is an error indicating a separator with no expression
// before or after it. It implements InputError.
type SeparatorError struct {
	// Pos is the position of the separator.
	Pos int
}

func (err *SeparatorError) Error() string {
	return errpos(err.Pos, "unexpected separator")
}

func (err *SeparatorError) Offset() int {
	return err.Pos
}

// ArgumentError is an error indicating a function with no argument after it.
// It implements InputError.
type ArgumentError struct {
	// Pos is the position of the function name.
	Pos int
	// Func is the function name.
	Func string
	// Arity is the number of arguments the function requires.
	Arity int
}

func (err *ArgumentError) Error() string {
	return errpos(err.Pos, err.Func+": "+strconv.Itoa(err.Arity)+" argument(s) expected")
}

func (err *ArgumentError) Offset() int {
	return err.Pos
}

// OperandError is an error indicating an operator missing an operand. It
// implements InputError.
type OperandError struct {
	// Pos is the position of the operator.
	Pos int
	// Op is the operator symbol.
	Op string
	// Right is true if the missing operand is the right one.
	Right bool
}

func (err *OperandError) Error() string {
	if err.Right {
		return errpos(err.Pos, "rvalue expected after "+strconv.Quote(err.Op))
	}
	return errpos(err.Pos, "lvalue expected before "+strconv.Quote(err.Op))
}

func (err *OperandError) Offset() int {
	return err.Pos
}

// AdjacentError is an error indicating two values with no operator between
// them. It implements InputError.
type AdjacentError struct {
	// Pos is the position of the second value.
	Pos int
	// Text is the source text of the second value.
	Text string
}

func (err *AdjacentError) Error() string {
	return errpos(err.Pos, "operator expected before "+strconv.Quote(err.Text))
}

func (err *AdjacentError) Offset() int {
	return err.Pos
}

// EmptyFormulaError is an error indicating a formula with no tokens. It
// implements InputError.
type EmptyFormulaError struct{}

func (err *EmptyFormulaError) Error() string {
	return "the formula is empty"
}

func (err *EmptyFormulaError) Offset() int {
	return 0
}

// NameError is an error from evaluating a placeholder that has no binding.
// It implements InputError.
type NameError struct {
	// Pos is the position of the placeholder.
	Pos int
	// Name is the placeholder name.
	Name string
}

func (err *NameError) Error() string {
	return errpos(err.Pos, "placeholder "+strconv.Quote(err.Name)+" can not be resolved")
}

func (err *NameError) Offset() int {
	return err.Pos
}

// CallError is an error indicating a function call with the wrong number of
// arguments. It implements InputError.
type CallError struct {
	// Pos is the position of the last argument, or of the empty argument
	// list if there are none.
	Pos int
	// Func is the function name.
	Func string
	// Want is the function's arity.
	Want int
	// Got is the number of arguments given.
	Got int
}

func (err *CallError) Error() string {
	return errpos(err.Pos, fmt.Sprintf("%s: invalid number of arguments given (%d required but %d specified)", err.Func, err.Want, err.Got))
}

func (err *CallError) Offset() int {
	return err.Pos
}

// ListError is an error from evaluating an argument list anywhere other than
// as the argument of a function. It implements InputError.
type ListError struct {
	// Pos is the position of the list.
	Pos int
	// Text is the source text of the list.
	Text string
}

func (err *ListError) Error() string {
	return errpos(err.Pos, "argument list "+err.Text+" outside function call")
}

func (err *ListError) Offset() int {
	return err.Pos
}

// ConfigError is an error indicating an unusable operator or function
// definition.
type ConfigError struct {
	// Index is the index of the definition in its list.
	Index int
	// Symbol is the operator symbol or function name, if it has one.
	Symbol string
	// Reason describes the problem.
	Reason string
}

func (err *ConfigError) Error() string {
	if err.Symbol == "" {
		return "definition " + strconv.Itoa(err.Index) + ": " + err.Reason
	}
	return "definition " + strconv.Itoa(err.Index) + " (" + strconv.Quote(err.Symbol) + "): " + err.Reason
}

// TypeError is an error returned by an operator or function given a value of
// the wrong type.
type TypeError struct {
	// Op is the operator symbol or function name.
	Op string
	// Value is the bad value.
	Value Value
	// Want describes the type that was needed.
	Want string
}

func (err *TypeError) Error() string {
	return fmt.Sprintf("%s: %s expected, got %T %v", err.Op, err.Want, err.Value, err.Value)
}

// FuncError wraps an error returned by an operator or function. It
// implements InputError.
type FuncError struct {
	// Pos is the position of the operation.
	Pos int
	// Name is the operator symbol or function name.
	Name string
	// Err is the error the operator or function returned.
	Err error
}

func (err *FuncError) Error() string {
	return errpos(err.Pos, err.Err.Error())
}

func (err *FuncError) Offset() int {
	return err.Pos
}

func (err *FuncError) Unwrap() error {
	return err.Err
}

// ErrNotCompiled is returned when evaluating before a successful compile.
var ErrNotCompiled = errors.New("formulas: the formula has not been compiled yet")

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// an invalid formula or an unresolved placeholder implements InputError.
type InputError interface {
	error
	// Offset returns the rune offset in the formula of the token that caused
	// the error.
	Offset() int
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*SeparatorError)(nil)
	_ InputError = (*ArgumentError)(nil)
	_ InputError = (*OperandError)(nil)
	_ InputError = (*AdjacentError)(nil)
	_ InputError = (*EmptyFormulaError)(nil)
	_ InputError = (*NameError)(nil)
	_ InputError = (*CallError)(nil)
	_ InputError = (*ListError)(nil)
	_ InputError = (*FuncError)(nil)
)
