package config

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	apperrors "speech-to-text/internal/app/errors"
)

// ValidateTimeout validates an optional timeout; zero means "use transport defaults"
func ValidateTimeout(timeout time.Duration, name string) error {
	if timeout < 0 {
		return apperrors.InvalidField(name, "timeout cannot be negative")
	}
	if timeout > 30*time.Minute {
		return apperrors.InvalidField(name, "timeout too large (max 30 minutes)")
	}
	return nil
}

// ValidateAPIKey validates API key format
func ValidateAPIKey(apiKey string, keyType string) error {
	if apiKey == "" {
		return apperrors.RequiredField(keyType + " API key")
	}

	switch keyType {
	case "OpenAI":
		if !strings.HasPrefix(apiKey, "sk-") {
			return apperrors.InvalidField("OPENAI_API_KEY", "must start with 'sk-'")
		}
		if len(apiKey) < 20 {
			return apperrors.InvalidField("OPENAI_API_KEY", "too short")
		}
	}

	return nil
}

// ValidateURL validates URL format
func ValidateURL(raw string, name string) error {
	if raw == "" {
		return apperrors.RequiredField(name)
	}

	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return apperrors.InvalidField(name, "URL must start with http:// or https://")
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return apperrors.InvalidField(name, "URL has no host")
	}

	return nil
}

// ValidatePort validates port number
func ValidatePort(port string, name string) error {
	if port == "" {
		return apperrors.RequiredField(name)
	}

	n, err := strconv.Atoi(port)
	if err != nil || n <= 0 || n > 65535 {
		return apperrors.InvalidField(name, "port must be between 1 and 65535")
	}

	return nil
}
