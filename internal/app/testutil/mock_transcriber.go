package testutil

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/stretchr/testify/mock"

	"speech-to-text/internal/app/api/provider"
)

// MockTranscriber is a mock implementation of provider.Transcriber that
// also records the payload of every call
type MockTranscriber struct {
	mock.Mock
	name string

	mu       sync.Mutex
	payloads []Payload
}

// Payload is what one Transcribe call received
type Payload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// NewMockTranscriber creates a mock reporting name from Name
func NewMockTranscriber(name string) *MockTranscriber {
	return &MockTranscriber{name: name}
}

// Transcribe reads the request body, then returns the configured expectation
func (m *MockTranscriber) Transcribe(ctx context.Context, request *provider.Request) (*provider.Response, error) {
	if request != nil && request.Body != nil {
		data, err := io.ReadAll(request.Body)
		if err != nil {
			return nil, err
		}
		m.mu.Lock()
		m.payloads = append(m.payloads, Payload{
			Filename:    request.Filename,
			ContentType: request.ContentType,
			Data:        data,
		})
		m.mu.Unlock()
		request = &provider.Request{
			Body:        bytes.NewReader(data),
			Filename:    request.Filename,
			ContentType: request.ContentType,
		}
	}

	args := m.Called(ctx, request)
	if resp := args.Get(0); resp != nil {
		return resp.(*provider.Response), args.Error(1)
	}
	return nil, args.Error(1)
}

// Name implements provider.Transcriber
func (m *MockTranscriber) Name() string {
	if m.name == "" {
		return "mock"
	}
	return m.name
}

// Payloads returns the payloads received so far
func (m *MockTranscriber) Payloads() []Payload {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Payload(nil), m.payloads...)
}

// LastPayload returns the most recent payload and false when there was none
func (m *MockTranscriber) LastPayload() (Payload, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.payloads) == 0 {
		return Payload{}, false
	}
	return m.payloads[len(m.payloads)-1], true
}

// AudioBytes returns n bytes of fake encoded audio
func AudioBytes(n int, fill byte) []byte {
	return bytes.Repeat([]byte{fill}, n)
}
