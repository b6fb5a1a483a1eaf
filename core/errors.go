package core

import (
	"errors"
	"net/http"
)

// Storage errors
var (
	ErrUserNotFound = errors.New("user not found")
	ErrTaskNotFound = errors.New("task not found")
	ErrEmailTaken   = errors.New("email already registered")
)

// Auth errors
var (
	ErrMissingAuthHeader = errors.New("no token provided")                               // 401
	ErrUnauthenticated   = errors.New("invalid token or failed to resolve user profile") // 401
)

// Error is the failure shape carried to the HTTP boundary. The error handler
// renders it as `{title, message}` with Status, defaulting to 500 for any
// other error.
type Error struct {
	Status  int    `json:"-"`
	Title   string `json:"title"`
	Message string `json:"message"`
	cause   error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.cause }

// Validation builds a 400 input-validation error with a rule-specific message.
func Validation(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Title: "Validation error", Message: message}
}

// NotFound builds a 404 error for an absent user or task.
func NotFound(title, message string) *Error {
	return &Error{Status: http.StatusNotFound, Title: title, Message: message}
}

// Unauthorized builds a 401 error with an intentionally generic message.
func Unauthorized(message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Title: "Unauthorized", Message: message}
}

// Provider wraps an external-service failure, preserving the provider's own
// message in the envelope.
func Provider(title string, err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Title: title, Message: err.Error(), cause: err}
}

// ProviderWithStatus is Provider with an explicit status, for callers whose
// contract maps a store failure to something other than 500.
func ProviderWithStatus(status int, title string, err error) *Error {
	return &Error{Status: status, Title: title, Message: err.Error(), cause: err}
}
