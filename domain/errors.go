package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeInvalid      ErrorCode = "INVALID"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeGateway      ErrorCode = "GATEWAY"
	ErrCodeInternal     ErrorCode = "INTERNAL"
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

// GatewayError classifies a failed remote-store call. Errors that already
// carry a domain code (not found, invalid) pass through unchanged so callers
// keep the sharper classification.
func GatewayError(message string, err error) error {
	if err == nil {
		return nil
	}
	var dErr *Error
	if errors.As(err, &dErr) {
		return err
	}
	return WrapError(ErrCodeGateway, message, err)
}

// Common domain errors.
var (
	ErrNotAuthenticated = NewError(ErrCodeUnauthorized, "user not authenticated")
	ErrTaskNotFound     = NewError(ErrCodeNotFound, "task not found")
	ErrGroupingNotFound = NewError(ErrCodeNotFound, "grouping not found")
	ErrProfileNotFound  = NewError(ErrCodeNotFound, "profile not found")
	ErrSessionNotFound  = NewError(ErrCodeNotFound, "session not found")
	ErrFilterNotFound   = NewError(ErrCodeNotFound, "filter selection not found")
	ErrInvalidPayload   = NewError(ErrCodeInvalid, "invalid payload")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}
