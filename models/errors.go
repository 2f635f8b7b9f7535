package models

import "errors"

var (
	ErrUnauthenticated = errors.New("not logged in")
	ErrForbidden       = errors.New("access denied")
)

// ValidationError rejects an operator input before any network call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func Invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
