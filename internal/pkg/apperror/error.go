// Package apperror carries the error taxonomy shared by every domain:
// not found, business-rule conflicts and internal failures. Validation
// failures use validator.ValidationErrors instead.
package apperror

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindNotFound Kind = "NOT_FOUND"
	KindConflict Kind = "CONFLICT"
	KindInternal Kind = "INTERNAL_ERROR"
)

type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

func Conflict(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message}
}

// Internal wraps an unexpected failure. The cause stays reachable through
// errors.Is / errors.As; nil in, nil out.
func Internal(message string, err error) error {
	if err == nil {
		return nil
	}
	return &AppError{Kind: KindInternal, Message: message, Err: err}
}

// KindOf reports the kind of the outermost AppError in the chain, or
// KindInternal when the chain carries none.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// WrapUnexpected leaves typed errors alone and turns anything else into an
// internal error.
func WrapUnexpected(message string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return err
	}
	var validation interface{ ToMap() map[string]string }
	if errors.As(err, &validation) {
		return err
	}
	return Internal(message, err)
}
