package expr

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why an expression could not be evaluated.
type ErrorKind int

const (
	NoError ErrorKind = iota
	UnexpectedCharacter
	NumberTooLong
	UnbalancedParentheses
	MissingOperand
	UnknownOperatorAtSplit
	EmptyExpression
	DivisionByZero
	NestingTooDeep
)

var errorKindNames = []string{
	"ok",
	"unexpected_character",
	"number_too_long",
	"unbalanced_parentheses",
	"missing_operand",
	"unknown_operator_at_split",
	"empty_expression",
	"division_by_zero",
	"nesting_too_deep",
}

var errorKindMessages = []string{
	"no error",
	"unexpected character",
	"number literal too long",
	"unbalanced parentheses",
	"missing operand",
	"no operator to split on",
	"empty expression",
	"division by zero",
	"parentheses nested too deeply",
}

// String returns a short snake_case name, suitable as a metric label.
func (k ErrorKind) String() string {
	if k < 0 || int(k) >= len(errorKindNames) {
		return fmt.Sprintf("error_kind_%d", int(k))
	}
	return errorKindNames[k]
}

func (k ErrorKind) message() string {
	if k < 0 || int(k) >= len(errorKindMessages) {
		return k.String()
	}
	return errorKindMessages[k]
}

// Error is returned for every expression that fails to lex or evaluate.
type Error struct {
	Kind ErrorKind

	// Offset is the byte offset in the input the failure was detected at, or
	// -1 if it does not apply to a single location.
	Offset int
}

func (e *Error) Error() string {
	if e.Offset < 0 {
		return e.Kind.message()
	}
	return fmt.Sprintf("%s at offset %d", e.Kind.message(), e.Offset)
}

func newError(kind ErrorKind, offset int) *Error {
	return &Error{Kind: kind, Offset: offset}
}

// KindOf returns the ErrorKind carried by err, NoError for a nil err, and
// -1 for errors not produced by this package.
func KindOf(err error) ErrorKind {
	if err == nil {
		return NoError
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return -1
}

// OffsetOf returns the offset carried by err, or -1.
func OffsetOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Offset
	}
	return -1
}
