package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared by the store, the
// session controller and the CLI output.
type ErrorCode string

const (
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	ErrCodeInvalid  ErrorCode = "INVALID"
	ErrCodeInternal ErrorCode = "INTERNAL"
)

// Error represents a domain-level error.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain errors.
var (
	ErrTodoNotFound  = NewError(ErrCodeNotFound, "todo not found")
	ErrMissingID     = NewError(ErrCodeInvalid, "todo record has no id")
	ErrIDMismatch    = NewError(ErrCodeInvalid, "replacement record id does not match")
	ErrTitleTooShort = NewError(ErrCodeInvalid, "title must be at least 3 characters long")
	ErrInvalidID     = NewError(ErrCodeInvalid, "invalid todo id")
)

// NotFound reports that no todo with the given id exists.
func NotFound(id int) error {
	return WrapError(ErrCodeNotFound, fmt.Sprintf("todo %d", id), ErrTodoNotFound)
}

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}

// CodeOf returns the code of the outermost domain error in err's chain.
func CodeOf(err error) ErrorCode {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code
	}
	return ErrCodeInternal
}
