package errors

import (
	"fmt"
	"net/http"

	apperrors "speech-to-text/internal/app/errors"
)

// ErrorKind represents different types of API errors
type ErrorKind string

const (
	KindValidation         ErrorKind = "validation"
	KindNotFound           ErrorKind = "not_found"
	KindConflict           ErrorKind = "conflict"
	KindInternal           ErrorKind = "internal"
	KindServiceUnavailable ErrorKind = "service_unavailable"
	KindBadRequest         ErrorKind = "bad_request"
)

// APIError represents a structured API error response
type APIError struct {
	Kind      ErrorKind         `json:"kind"`
	Message   string            `json:"message"`
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
	Code      string            `json:"code,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// HTTPStatus returns the appropriate HTTP status code for the error kind
func (e *APIError) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindBadRequest:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindServiceUnavailable:
		return http.StatusServiceUnavailable
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

// NewConflictError creates a conflict error
func NewConflictError(message string) *APIError {
	return &APIError{
		Kind:    KindConflict,
		Message: message,
	}
}

// NewInternalError creates an internal server error
func NewInternalError(message string) *APIError {
	return &APIError{
		Kind:    KindInternal,
		Message: message,
	}
}

// NewBadRequestError creates a bad request error
func NewBadRequestError(message string) *APIError {
	return &APIError{
		Kind:    KindBadRequest,
		Message: message,
	}
}

// NewServiceUnavailableError creates a service unavailable error
func NewServiceUnavailableError(message string) *APIError {
	return &APIError{
		Kind:    KindServiceUnavailable,
		Message: message,
	}
}

// FromDomain maps a session error that the client caused to an APIError.
// It returns nil for errors that are reported through the session state.
func FromDomain(err error) *APIError {
	switch {
	case err == nil:
		return nil
	case apperrors.Is(err, apperrors.ErrNoFileSelected):
		return &APIError{Kind: KindBadRequest, Message: err.Error(), Code: "no_file_selected"}
	case apperrors.Is(err, apperrors.ErrInvalidMode):
		return &APIError{Kind: KindValidation, Message: err.Error(), Code: "invalid_mode"}
	case apperrors.Is(err, apperrors.ErrNotFound):
		return &APIError{Kind: KindNotFound, Message: err.Error(), Code: "not_found"}
	case apperrors.Is(err, apperrors.ErrRecordingActive):
		return &APIError{Kind: KindConflict, Message: err.Error(), Code: "recording_active"}
	case apperrors.Is(err, apperrors.ErrNotRecording):
		return &APIError{Kind: KindConflict, Message: err.Error(), Code: "not_recording"}
	case apperrors.Is(err, apperrors.ErrPermissionDenied),
		apperrors.Is(err, apperrors.ErrRecordingTooShort),
		apperrors.Is(err, apperrors.ErrTransmissionFailure),
		apperrors.Is(err, apperrors.ErrEmptyResult):
		return nil
	default:
		return NewInternalError(err.Error())
	}
}
