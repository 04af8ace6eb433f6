package provider

import (
	"context"
	"io"
	"time"
)

// Transcriber sends one audio payload to a transcription backend
type Transcriber interface {
	// Transcribe submits the request and returns the backend's transcript.
	// An empty transcript is not an error at this level.
	Transcribe(ctx context.Context, request *Request) (*Response, error)

	// Name identifies the backend in logs and metrics
	Name() string
}

// Request is a single transcription submission
type Request struct {
	Body        io.Reader
	Filename    string
	ContentType string
}

// Response is the backend's answer to a Request
type Response struct {
	Transcript     string        `json:"transcript"`
	ProcessingTime time.Duration `json:"processing_time,omitempty"`
	Backend        string        `json:"backend,omitempty"`
}

// TranscriptionError represents backend-specific errors
type TranscriptionError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Provider   string `json:"provider"`
	StatusCode int    `json:"status_code,omitempty"`
	Retryable  bool   `json:"retryable"`
	Cause      error  `json:"-"`
}

func (e *TranscriptionError) Error() string {
	return e.Message
}

// Unwrap returns the underlying transport error, if any
func (e *TranscriptionError) Unwrap() error {
	return e.Cause
}

// Error codes
const (
	CodeInvalidInput  = "invalid_input"
	CodeFormCreation  = "form_creation_failed"
	CodeRequestFailed = "request_failed"
	CodeResponseRead  = "response_read_failed"
	CodeAPIError      = "api_error"
)
