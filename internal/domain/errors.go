package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound      = errors.New("resource not found")
	ErrValidation    = errors.New("validation failed")
	ErrConflict      = errors.New("already exists")
	ErrUnprocessable = errors.New("unprocessable")
	ErrStorage       = errors.New("storage failure")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
)

// ValidationError indicates invalid client input
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string   { return e.Message }
func (e *ValidationError) StatusCode() int { return http.StatusBadRequest }

// Is allows errors.Is() to match against ErrValidation
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError wraps a validation failure message
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// AuthError is raised by the bearer token checks. Status and code are
// echoed to the client as-is.
type AuthError struct {
	Status      int
	Code        string
	Description string
}

func (e *AuthError) Error() string   { return e.Code + ": " + e.Description }
func (e *AuthError) StatusCode() int { return e.Status }

// Is allows errors.Is() to match against ErrUnauthorized / ErrForbidden
func (e *AuthError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrForbidden:
		return e.Status == http.StatusForbidden
	}
	return false
}

// NewAuthError creates an AuthError with the given status, code and description
func NewAuthError(status int, code, description string) *AuthError {
	return &AuthError{Status: status, Code: code, Description: description}
}
