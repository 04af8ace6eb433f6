package custom_http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"speech-to-text/internal/app/api/provider"
)

// FieldName is the multipart field carrying the audio payload
const FieldName = "audio"

const providerName = "http"

// Config configures the HTTP transcription client
type Config struct {
	Endpoint string
	Headers  map[string]string
	Timeout  time.Duration // 0 keeps the transport defaults
}

// Client posts audio to a remote transcription endpoint as multipart form data
type Client struct {
	endpoint string
	headers  map[string]string
	client   *http.Client
}

// NewClient creates a new HTTP transcription client
func NewClient(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("http transcription client requires an endpoint")
	}

	headers := make(map[string]string, len(cfg.Headers))
	for k, v := range cfg.Headers {
		headers[k] = v
	}

	return &Client{
		endpoint: cfg.Endpoint,
		headers:  headers,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}, nil
}

// Name implements provider.Transcriber
func (c *Client) Name() string {
	return providerName
}

// Endpoint returns the URL requests are posted to
func (c *Client) Endpoint() string {
	return c.endpoint
}

type transcribeResponse struct {
	Transcript *string `json:"transcript"`
}

// Transcribe implements provider.Transcriber
func (c *Client) Transcribe(ctx context.Context, request *provider.Request) (*provider.Response, error) {
	if request == nil || request.Body == nil {
		return nil, &provider.TranscriptionError{
			Code:     provider.CodeInvalidInput,
			Message:  "request has no audio payload",
			Provider: providerName,
		}
	}

	startTime := time.Now()

	body, contentType, err := buildForm(request)
	if err != nil {
		return nil, &provider.TranscriptionError{
			Code:     provider.CodeFormCreation,
			Message:  fmt.Sprintf("failed to build multipart form: %v", err),
			Provider: providerName,
			Cause:    err,
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return nil, &provider.TranscriptionError{
			Code:     provider.CodeRequestFailed,
			Message:  fmt.Sprintf("failed to create request: %v", err),
			Provider: providerName,
			Cause:    err,
		}
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &provider.TranscriptionError{
			Code:      provider.CodeRequestFailed,
			Message:   fmt.Sprintf("HTTP request failed: %v", err),
			Provider:  providerName,
			Retryable: true,
			Cause:     err,
		}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &provider.TranscriptionError{
			Code:      provider.CodeResponseRead,
			Message:   fmt.Sprintf("failed to read response: %v", err),
			Provider:  providerName,
			Retryable: true,
			Cause:     err,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &provider.TranscriptionError{
			Code:       provider.CodeAPIError,
			Message:    fmt.Sprintf("API error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(respBody))),
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Retryable:  resp.StatusCode >= 500,
		}
	}

	return &provider.Response{
		Transcript:     parseTranscript(respBody),
		ProcessingTime: time.Since(startTime),
		Backend:        providerName,
	}, nil
}

// parseTranscript extracts the transcript field. Any other shape yields "".
func parseTranscript(body []byte) string {
	var result transcribeResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return ""
	}
	if result.Transcript == nil {
		return ""
	}
	return *result.Transcript
}

func buildForm(request *provider.Request) (io.Reader, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	filename := request.Filename
	if filename == "" {
		filename = "audio"
	}
	contentType := request.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, FieldName, escapeQuotes(filename)))
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, request.Body); err != nil {
		return nil, "", err
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}

	return &buf, writer.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
