package provider

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranscriptionError(t *testing.T) {
	cause := errors.New("connection reset")
	err := &TranscriptionError{
		Code:      CodeRequestFailed,
		Message:   "HTTP request failed: connection reset",
		Provider:  "http",
		Retryable: true,
		Cause:     cause,
	}

	assert.Equal(t, "HTTP request failed: connection reset", err.Error())
	assert.ErrorIs(t, err, cause)

	var target *TranscriptionError
	wrapped := errors.Join(errors.New("submit"), err)
	assert.True(t, errors.As(wrapped, &target))
	assert.Equal(t, CodeRequestFailed, target.Code)
}
