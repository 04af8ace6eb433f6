package openai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "speech-to-text/internal/app/errors"
)

func TestNewClient(t *testing.T) {
	_, err := NewClient("", "")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrMissingConfig))

	client, err := NewClient("sk-test", "http://localhost:9999/v1")
	require.NoError(t, err)
	assert.NotNil(t, client)
}
