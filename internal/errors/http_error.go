package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError represents an error with an associated HTTP status code.
type HTTPError struct {
	Code    int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTPError with the given code and message.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{
		Code:    code,
		Message: message,
	}
}

// Helper for common errors
var (
	ErrUnauthorized = func(msg string) *HTTPError { return NewHTTPError(http.StatusUnauthorized, msg) }
)

var (
	// ErrNotFound is returned when no availability request matches a key.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateKey is returned when more than one request matches a key.
	ErrDuplicateKey = errors.New("more than one record found for request key")
)

// ContractError means a row or form value did not have the expected shape.
// Input is set when the value came from the form rather than the store.
type ContractError struct {
	Entity string
	Field  string
	Input  bool
	Err    error
}

func (e *ContractError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %v", e.Entity, e.Err)
	}
	return fmt.Sprintf("%s: field %q: %v", e.Entity, e.Field, e.Err)
}

func (e *ContractError) Unwrap() error { return e.Err }

// Status maps an error to the HTTP status reported to the client.
func Status(err error) int {
	var he *HTTPError
	var ce *ContractError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &he):
		return he.Code
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicateKey):
		return http.StatusInternalServerError
	case errors.As(err, &ce):
		if ce.Input {
			return http.StatusBadRequest
		}
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
