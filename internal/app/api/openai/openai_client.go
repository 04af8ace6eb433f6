package openai

import (
	"github.com/sashabaranov/go-openai"

	apperrors "speech-to-text/internal/app/errors"
)

// NewClient creates an OpenAI client for apiKey. baseURL overrides the
// public API address when set.
func NewClient(apiKey, baseURL string) (*openai.Client, error) {
	if apiKey == "" {
		return nil, apperrors.RequiredField("OPENAI_API_KEY")
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(cfg), nil
}
