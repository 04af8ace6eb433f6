package whisper

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"

	"speech-to-text/internal/app/api/provider"
)

const providerName = "openai"

// RemoteTranscriber implements provider.Transcriber using the OpenAI audio API.
type RemoteTranscriber struct {
	client *openai.Client
	model  string
}

// NewRemoteTranscriber creates a new RemoteTranscriber instance.
func NewRemoteTranscriber(client *openai.Client, model string) *RemoteTranscriber {
	if model == "" {
		model = openai.Whisper1
	}
	return &RemoteTranscriber{client: client, model: model}
}

// Name implements provider.Transcriber
func (rt *RemoteTranscriber) Name() string {
	return providerName
}

// Transcribe streams the request payload to the OpenAI transcription endpoint.
func (rt *RemoteTranscriber) Transcribe(ctx context.Context, request *provider.Request) (*provider.Response, error) {
	if request == nil || request.Body == nil {
		return nil, &provider.TranscriptionError{
			Code:     provider.CodeInvalidInput,
			Message:  "request has no audio payload",
			Provider: providerName,
		}
	}

	startTime := time.Now()

	// FilePath only names the multipart file when Reader is set
	req := openai.AudioRequest{
		Model:    rt.model,
		Reader:   request.Body,
		FilePath: request.Filename,
	}
	resp, err := rt.client.CreateTranscription(ctx, req)
	if err != nil {
		return nil, toTranscriptionError(err)
	}

	return &provider.Response{
		Transcript:     resp.Text,
		ProcessingTime: time.Since(startTime),
		Backend:        providerName,
	}, nil
}

func toTranscriptionError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &provider.TranscriptionError{
			Code:       provider.CodeAPIError,
			Message:    fmt.Sprintf("createTranscription failed (status %d): %s", apiErr.HTTPStatusCode, apiErr.Message),
			Provider:   providerName,
			StatusCode: apiErr.HTTPStatusCode,
			Retryable:  apiErr.HTTPStatusCode == 429 || apiErr.HTTPStatusCode >= 500,
			Cause:      err,
		}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &provider.TranscriptionError{
			Code:       provider.CodeAPIError,
			Message:    fmt.Sprintf("createTranscription failed (status %d): %v", reqErr.HTTPStatusCode, reqErr.Err),
			Provider:   providerName,
			StatusCode: reqErr.HTTPStatusCode,
			Retryable:  reqErr.HTTPStatusCode >= 500,
			Cause:      err,
		}
	}

	return &provider.TranscriptionError{
		Code:      provider.CodeRequestFailed,
		Message:   fmt.Sprintf("createTranscription failed: %v", err),
		Provider:  providerName,
		Retryable: true,
		Cause:     err,
	}
}
