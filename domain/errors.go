package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	ErrCodeInvalid  ErrorCode = "INVALID"
	ErrCodeConflict ErrorCode = "CONFLICT"
	ErrCodeStorage  ErrorCode = "STORAGE"
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
	ErrScheduleNotFound  = NewError(ErrCodeNotFound, "schedule not found")
	ErrTaskNotFound      = NewError(ErrCodeNotFound, "task not found")
	ErrStatsNotFound     = NewError(ErrCodeNotFound, "daily stats not found")
	ErrNoCurrentTask     = NewError(ErrCodeNotFound, "no task in progress")
	ErrNoNextTask        = NewError(ErrCodeNotFound, "no pending task")
	ErrNoActiveSlice     = NewError(ErrCodeNotFound, "no active pomodoro slice")
	ErrInvalidInterval   = NewError(ErrCodeInvalid, "end time must be after start time")
	ErrIndexOutOfBounds  = NewError(ErrCodeInvalid, "task index out of bounds")
	ErrInvalidTransition = NewError(ErrCodeInvalid, "invalid task transition")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}
