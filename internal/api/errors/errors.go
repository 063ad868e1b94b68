package errors

import (
	"fmt"
	"net/http"
)

// ErrorKind represents different types of API errors
type ErrorKind string

const (
	KindValidation      ErrorKind = "validation"
	KindNotFound        ErrorKind = "not_found"
	KindBadRequest      ErrorKind = "bad_request"
	KindTooLarge        ErrorKind = "too_large"
	KindInternal        ErrorKind = "internal"
	KindTranscribeError ErrorKind = "transcribe_failed"
)

// APIError is the `{error: message}` payload the front end reads, plus a
// kind and request id for debugging.
type APIError struct {
	Message   string            `json:"error"`
	Kind      ErrorKind         `json:"kind"`
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// HTTPStatus returns the appropriate HTTP status code for the error kind
func (e *APIError) HTTPStatus() int {
	switch e.Kind {
	case KindValidation, KindBadRequest:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindTooLarge:
		return http.StatusRequestEntityTooLarge
	case KindTranscribeError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// NewValidationError creates a validation error with field details
func NewValidationError(message string, fields map[string]string) *APIError {
	return &APIError{
		Kind:    KindValidation,
		Message: message,
		Details: fields,
	}
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *APIError {
	return &APIError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// NewBadRequestError creates a bad request error
func NewBadRequestError(message string) *APIError {
	return &APIError{
		Kind:    KindBadRequest,
		Message: message,
	}
}

// NewTooLargeError is returned when an upload exceeds the size limit.
func NewTooLargeError() *APIError {
	return &APIError{
		Kind:    KindTooLarge,
		Message: "too large",
	}
}

// NewInternalError creates an internal server error
func NewInternalError(message string) *APIError {
	return &APIError{
		Kind:    KindInternal,
		Message: message,
	}
}

// NewTranscribeError reports a provider failure with its message.
func NewTranscribeError(err error) *APIError {
	return &APIError{
		Kind:    KindTranscribeError,
		Message: err.Error(),
	}
}
