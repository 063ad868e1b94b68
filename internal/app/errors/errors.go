package errors

import (
	"fmt"
)

// Common error types
var (
	// Shell errors
	ErrBusy            = New("a transcription is already in progress")
	ErrUnknownProvider = New("unknown provider")

	// Recorder errors
	ErrAlreadyRecording = New("recording already in progress")
	ErrNoCaptureDevice  = New("no audio capture device available")
	ErrRecorderClosed   = New("recorder closed")

	// Configuration errors
	ErrInvalidConfig = New("invalid configuration")

	// Repository errors
	ErrNotFound = New("not found")

	// File errors
	ErrFileNotFound    = New("file not found")
	ErrFileWriteFailed = New("file write failed")
	ErrNotAudio        = New("file is not an audio or video file")
)

// Error represents a standardized error
type Error struct {
	message string
	cause   error
}

// New creates a new error
func New(message string) *Error {
	return &Error{message: message}
}

// Newf creates a new formatted error
func Newf(format string, args ...interface{}) *Error {
	return &Error{message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: message,
		cause:   err,
	}
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: fmt.Sprintf(format, args...),
		cause:   err,
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// Is checks if the error matches target
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.message == t.message
}

// NotFound returns an error for items that were not found
func NotFound(itemType string, identifier string) error {
	return Wrapf(ErrNotFound, "%s %s", itemType, identifier)
}
