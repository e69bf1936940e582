package pixperm

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error category.
type Code string

const (
	// CodeImageDecode: an input could not be decoded as an image.
	CodeImageDecode Code = "IMAGE_DECODE"
	// CodeDimensionMismatch: base and target pixel counts differ after preparation.
	// Reaching it means preparation is broken, not that the user did something wrong.
	CodeDimensionMismatch Code = "DIMENSION_MISMATCH"
	// CodeEmptyInput: an image has zero area.
	CodeEmptyInput    Code = "EMPTY_INPUT"
	CodeInvalidMethod Code = "INVALID_METHOD"
	CodeInvalidInput  Code = "INVALID_INPUT"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates an Error with a formatted message.
func NewError(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WrapError creates an Error around cause.
func WrapError(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether any *Error in err's chain carries code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// ErrorCode returns the code of the first *Error in err's chain, or "".
func ErrorCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
