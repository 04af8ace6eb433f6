package custom_http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"speech-to-text/internal/app/api/provider"
)

func newRequest(body string) *provider.Request {
	return &provider.Request{
		Body:        strings.NewReader(body),
		Filename:    "meeting.mp3",
		ContentType: "audio/mpeg",
	}
}

func TestNewClient_RequiresEndpoint(t *testing.T) {
	_, err := NewClient(Config{})
	assert.Error(t, err)
}

func TestClient_Transcribe_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/transcribe", r.URL.Path)
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		require.Len(t, r.MultipartForm.File, 1)
		files := r.MultipartForm.File[FieldName]
		require.Len(t, files, 1)
		assert.Equal(t, "meeting.mp3", files[0].Filename)
		assert.Equal(t, "audio/mpeg", files[0].Header.Get("Content-Type"))

		f, err := files[0].Open()
		require.NoError(t, err)
		defer f.Close()
		data, err := io.ReadAll(f)
		require.NoError(t, err)
		assert.Equal(t, "fake audio", string(data))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"transcript": "hello world"}`))
	}))
	defer server.Close()

	client, err := NewClient(Config{
		Endpoint: server.URL + "/transcribe",
		Headers:  map[string]string{"Authorization": "Bearer token"},
	})
	require.NoError(t, err)

	resp, err := client.Transcribe(context.Background(), newRequest("fake audio"))
	require.NoError(t, err)
	assert.Equal(t, "hello world", resp.Transcript)
	assert.Equal(t, "http", resp.Backend)
}

func TestClient_Transcribe_UnexpectedShapes(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{name: "missing field", body: `{"text": "hello"}`},
		{name: "wrong type", body: `{"transcript": 42}`},
		{name: "not json", body: `hello`},
		{name: "empty body", body: ``},
		{name: "null transcript", body: `{"transcript": null}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tc.body))
			}))
			defer server.Close()

			client, err := NewClient(Config{Endpoint: server.URL})
			require.NoError(t, err)

			resp, err := client.Transcribe(context.Background(), newRequest("x"))
			require.NoError(t, err)
			assert.Empty(t, resp.Transcript)
		})
	}
}

func TestClient_Transcribe_HTTPError(t *testing.T) {
	testCases := []struct {
		name      string
		status    int
		retryable bool
	}{
		{name: "server error", status: http.StatusInternalServerError, retryable: true},
		{name: "bad request", status: http.StatusBadRequest, retryable: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte("boom"))
			}))
			defer server.Close()

			client, err := NewClient(Config{Endpoint: server.URL})
			require.NoError(t, err)

			resp, err := client.Transcribe(context.Background(), newRequest("x"))
			assert.Nil(t, resp)

			var terr *provider.TranscriptionError
			require.True(t, errors.As(err, &terr))
			assert.Equal(t, provider.CodeAPIError, terr.Code)
			assert.Equal(t, tc.status, terr.StatusCode)
			assert.Equal(t, tc.retryable, terr.Retryable)
			assert.Contains(t, terr.Message, "boom")
		})
	}
}

func TestClient_Transcribe_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := server.URL
	server.Close()

	client, err := NewClient(Config{Endpoint: endpoint})
	require.NoError(t, err)

	_, err = client.Transcribe(context.Background(), newRequest("x"))
	var terr *provider.TranscriptionError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, provider.CodeRequestFailed, terr.Code)
}

func TestClient_Transcribe_NilRequest(t *testing.T) {
	client, err := NewClient(Config{Endpoint: "http://localhost:5000/transcribe"})
	require.NoError(t, err)

	_, err = client.Transcribe(context.Background(), nil)
	var terr *provider.TranscriptionError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, provider.CodeInvalidInput, terr.Code)
}
