package testutil

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"speech-to-text/internal/app/api/provider"
)

func TestMockTranscriber(t *testing.T) {
	m := NewMockTranscriber("")
	assert.Equal(t, "mock", m.Name())

	_, ok := m.LastPayload()
	assert.False(t, ok)

	m.On("Transcribe", mock.Anything, mock.MatchedBy(func(req *provider.Request) bool {
		return req.Filename == "a.mp3"
	})).Return(&provider.Response{Transcript: "hi"}, nil).Once()

	resp, err := m.Transcribe(context.Background(), &provider.Request{
		Body:        strings.NewReader("audio"),
		Filename:    "a.mp3",
		ContentType: "audio/mpeg",
	})
	require.NoError(t, err)
	assert.Equal(t, "hi", resp.Transcript)

	payload, ok := m.LastPayload()
	require.True(t, ok)
	assert.Equal(t, Payload{Filename: "a.mp3", ContentType: "audio/mpeg", Data: []byte("audio")}, payload)
	assert.Len(t, m.Payloads(), 1)
	m.AssertExpectations(t)
}

func TestAudioBytes(t *testing.T) {
	data := AudioBytes(3, 7)
	assert.Equal(t, []byte{7, 7, 7}, data)
}
