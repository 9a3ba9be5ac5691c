package duel

import "fmt"

// Code identifies a class of engine error.
type Code string

const (
	// CodeInvalidSelection marks a rejected pick: duplicate, over quota,
	// or a category that is not available.
	CodeInvalidSelection Code = "INVALID_SELECTION"

	// CodeNoContent marks a category, topic or degree with no questions.
	CodeNoContent Code = "NO_CONTENT"

	// CodeOutOfPhase marks a call that violates the state machine, such as
	// answering when no question is showing.
	CodeOutOfPhase Code = "OUT_OF_PHASE"
)

// Error is the engine's error type. Two Errors match under errors.Is when
// their codes are equal.
type Error struct {
	Code    Code
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// Sentinels for errors.Is checks.
var (
	ErrInvalidSelection = &Error{Code: CodeInvalidSelection, Message: "invalid selection"}
	ErrNoContent        = &Error{Code: CodeNoContent, Message: "no content available"}
	ErrOutOfPhase       = &Error{Code: CodeOutOfPhase, Message: "operation out of phase"}
)

func newError(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}
