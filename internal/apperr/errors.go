package apperr

import (
	"errors"
	"net/http"
)

// FieldError is a single field-level validation message, surfaced in the
// "data" part of an error response.
type FieldError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Error is the domain error carried from services up to the transport edge.
// Code is an HTTP status code on both the REST and GraphQL surfaces.
type Error struct {
	Code    int          `json:"status"`
	Message string       `json:"message"`
	Data    []FieldError `json:"data,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

func Validation(message string, data []FieldError) *Error {
	return &Error{Code: http.StatusUnprocessableEntity, Message: message, Data: data}
}

func Authentication(message string) *Error {
	return &Error{Code: http.StatusUnauthorized, Message: message}
}

func Authorization(message string) *Error {
	return &Error{Code: http.StatusForbidden, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Code: http.StatusNotFound, Message: message}
}

// Conflict reports a uniqueness violation. The API contract uses 400 for
// these, not 409.
func Conflict(message string) *Error {
	return &Error{Code: http.StatusBadRequest, Message: message}
}

func Internal(message string) *Error {
	return &Error{Code: http.StatusInternalServerError, Message: message}
}

// From returns err as an *Error, wrapping uncategorized failures as a 500
// without leaking their message to the caller.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("An error occurred!")
}
