package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

var errMissing = errors.New("missing")

// APIError is a non-2xx backend response. Message is the backend's own text
// and is meant to be shown to the operator as is.
type APIError struct {
	StatusCode int
	Message    string
	Data       string
}

func (e *APIError) Error() string {
	if e.Data != "" {
		return e.Message + "\n" + e.Data
	}
	return e.Message
}

// DecodeError reports a response that does not match the expected schema.
type DecodeError struct {
	Endpoint string
	Field    string
	Err      error
}

func (e *DecodeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: malformed response: %v", e.Endpoint, e.Err)
	}
	return fmt.Sprintf("%s: malformed response field %q: %v", e.Endpoint, e.Field, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsUnauthorized reports whether err is a 401 from the backend, which means
// the stored token is no longer accepted.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// Message extracts the text to show the operator for any client error.
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
