// Package apperror defines the error kinds returned by the service layer.
// HTTP handlers map each kind to a status code; services never see HTTP.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrConflict        = errors.New("conflict")
	ErrNotFound        = errors.New("not found")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrPersistence     = errors.New("persistence failure")
)

type AppError struct {
	Err     error  // one of the sentinel kinds above
	Op      string // operation that failed, e.g. "users.createUser"
	Message string // human-readable description
	Field   string // optional: input field causing the error
	Cause   error  // optional: underlying store error
}

func (e *AppError) Error() string {
	if e.Op == "" {
		return e.Message
	}
	return e.Op + ": " + e.Message
}

// Unwrap exposes both the kind and the cause so errors.Is matches either.
func (e *AppError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

func InvalidArgument(op, field, format string, args ...any) *AppError {
	return &AppError{
		Err:     ErrInvalidArgument,
		Op:      op,
		Message: fmt.Sprintf(format, args...),
		Field:   field,
	}
}

// NotFound reports a lookup by key that matched nothing,
// e.g. NotFound(op, "exercise", "id", "65f0...").
func NotFound(op, resource, key, value string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Op:      op,
		Message: fmt.Sprintf("no %s with %s %q found", resource, key, value),
	}
}

func Conflict(op, resource, key, value string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Op:      op,
		Message: fmt.Sprintf("%s with %s %q already exists", resource, key, value),
		Field:   key,
	}
}

func Unauthorized(op, message string) *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Op:      op,
		Message: message,
	}
}

// Persistence wraps a failed or unacknowledged store call.
func Persistence(op string, cause error) *AppError {
	msg := "store operation failed"
	if cause != nil {
		msg = fmt.Sprintf("store operation failed: %v", cause)
	}
	return &AppError{
		Err:     ErrPersistence,
		Op:      op,
		Message: msg,
		Cause:   cause,
	}
}

// Kind returns the sentinel kind carried by err, or nil when err is not an AppError.
func Kind(err error) error {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return nil
	}
	return appErr.Err
}
