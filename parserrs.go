package ferricalc

import "strconv"

// InputError is an error with position information. Every error the parser
// returns implements InputError.
type InputError interface {
	error
	// Pos returns the byte offset into the source of the token that caused
	// the error.
	Pos() int
}

// SyntaxError indicates a token where an expression or operand was
// required but none could start there.
type SyntaxError struct {
	// Col is the byte offset of the offending token.
	Col int
	// Got is the source text of the offending token, empty at end of input.
	Got string
}

func (err *SyntaxError) Error() string {
	if err.Got == "" {
		return errpos(err.Col, "expected expression")
	}
	return errpos(err.Col, "expected expression, found "+strconv.Quote(err.Got))
}

func (err *SyntaxError) Pos() int {
	return err.Col
}

// BracketError indicates a group or argument list that was not closed.
type BracketError struct {
	// Col is the byte offset where the ')' should have been.
	Col int
}

func (err *BracketError) Error() string {
	return errpos(err.Col, "expect ')' after expression")
}

func (err *BracketError) Pos() int {
	return err.Col
}

// AssignTargetError indicates an '=' whose left-hand side is neither a
// bare identifier nor a call form.
type AssignTargetError struct {
	// Col is the byte offset of the '='.
	Col int
}

func (err *AssignTargetError) Error() string {
	return errpos(err.Col, "expected function or variable assignment")
}

func (err *AssignTargetError) Pos() int {
	return err.Col
}

// ParamError indicates a function assignment whose parameter list contains
// something other than bare identifiers.
type ParamError struct {
	// Col is the byte offset of the '='.
	Col int
}

func (err *ParamError) Error() string {
	return errpos(err.Col, "invalid function args")
}

func (err *ParamError) Pos() int {
	return err.Col
}

// TrailingError indicates input left over after a complete statement.
type TrailingError struct {
	// Col is the byte offset of the first leftover token.
	Col int
	// Got is the source text of the first leftover token.
	Got string
}

func (err *TrailingError) Error() string {
	return errpos(err.Col, "expected end of input, found "+strconv.Quote(err.Got))
}

func (err *TrailingError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

var (
	_ InputError = (*SyntaxError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*AssignTargetError)(nil)
	_ InputError = (*ParamError)(nil)
	_ InputError = (*TrailingError)(nil)
)
