package errors

import (
	"errors"
	"fmt"
)

// Common error types
var (
	// Configuration errors
	ErrMissingConfig = New("configuration is required")
	ErrInvalidConfig = New("invalid configuration")

	// Recording errors
	ErrPermissionDenied  = New("microphone access denied")
	ErrRecordingTooShort = New("recording too short")
	ErrRecordingActive   = New("a recording is already active")
	ErrNotRecording      = New("no active recording")

	// Submission errors
	ErrNoFileSelected      = New("no audio file selected")
	ErrTransmissionFailure = New("transcription request failed")
	ErrEmptyResult         = New("transcription returned no text")

	// Session errors
	ErrInvalidMode = New("invalid session mode")
	ErrNotFound    = New("not found")
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

// Wrap wraps an error with additional context. The result matches both
// the wrapping sentinel (when message is one) and the cause.
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

// Mark attaches a sentinel to err so callers can match either one with errors.Is.
func Mark(sentinel *Error, err error) error {
	if err == nil {
		return sentinel
	}
	return &Error{
		message: sentinel.message,
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

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// RequiredField returns an error for missing required fields
func RequiredField(field string) error {
	return Wrapf(ErrMissingConfig, "%s is required", field)
}

// InvalidField returns an error for invalid field values
func InvalidField(field string, reason string) error {
	return Wrapf(ErrInvalidConfig, "%s is invalid: %s", field, reason)
}
