// Package errs defines the error taxonomy raised by the use-case layer.
// The HTTP boundary translates these exactly once; the use cases never
// swallow them.
package errs

import "errors"

// ValidationError is returned when a request fails field validation.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ConflictError is returned when a request would violate a uniqueness rule.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// NotFoundError is returned when the referenced entity does not exist.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

func Validation(msg string) error { return &ValidationError{Message: msg} }
func Conflict(msg string) error   { return &ConflictError{Message: msg} }
func NotFound(msg string) error   { return &NotFoundError{Message: msg} }

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
