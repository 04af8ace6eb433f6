package config

import (
	"net"
	"net/url"
	"strings"

	apperrors "speech-to-text/internal/app/errors"
)

const (
	// TranscribePath is resolved against the configured backend base URL
	TranscribePath = "/transcribe"
	// LocalDevelopmentEndpoint is used when the page is served from the local host
	LocalDevelopmentEndpoint = "http://localhost:5000/transcribe"
)

// ResolveEndpoint picks the transcription endpoint: the configured base URL
// with /transcribe, then the local-development default when publicHost is a
// local host, then the configured fallback.
func ResolveEndpoint(backend BackendConfig, publicHost string) (string, error) {
	if backend.BaseURL != "" {
		base, err := url.Parse(backend.BaseURL)
		if err != nil {
			return "", apperrors.InvalidField("backend.base_url", err.Error())
		}
		return base.ResolveReference(&url.URL{Path: TranscribePath}).String(), nil
	}

	if IsLocalHost(publicHost) {
		return LocalDevelopmentEndpoint, nil
	}

	if backend.FallbackURL != "" {
		return backend.FallbackURL, nil
	}

	return "", apperrors.RequiredField("backend.fallback_url (or " + EnvBackendURL + ")")
}

// IsLocalHost reports whether host (optionally with a port) names the local machine
func IsLocalHost(host string) bool {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.Trim(strings.ToLower(host), "[]")

	switch host {
	case "localhost", "127.0.0.1", "::1":
		return true
	default:
		return false
	}
}
