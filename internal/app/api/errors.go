package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Error is a non-2xx response from the backend.
type Error struct {
	StatusCode int
	// Message is the server-provided `error` field, or a generic status text.
	Message string
	// ServerMessage reports whether Message came from the response body.
	ServerMessage bool
}

// Error implements the error interface
func (e *Error) Error() string {
	return e.Message
}

// TransportError is a failure to reach the backend or read its response.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

// Unwrap returns the underlying error
func (e *TransportError) Unwrap() error {
	return e.Err
}

// errorBody is the `{error: message}` payload the backend reports failures with.
type errorBody struct {
	Error string `json:"error"`
}

func newError(status int, data []byte) *Error {
	var body errorBody
	if err := json.Unmarshal(data, &body); err == nil && strings.TrimSpace(body.Error) != "" {
		return &Error{StatusCode: status, Message: body.Error, ServerMessage: true}
	}
	return &Error{
		StatusCode: status,
		Message:    fmt.Sprintf("request failed with status code %d", status),
	}
}

// Message returns the text shown in the error banner: the server's message
// when one was returned, else the transport error text.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		var urlErr *url.Error
		if errors.As(transportErr.Err, &urlErr) {
			return urlErr.Err.Error()
		}
		return transportErr.Err.Error()
	}
	return err.Error()
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
