package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "speech-to-text/internal/app/errors"
)

func TestGetAPIKeys(t *testing.T) {
	testCases := []struct {
		name          string
		openaiKey     string
		expectError   bool
		errorContains string
	}{
		{
			name:      "valid OpenAI key",
			openaiKey: "sk-1234567890abcdef1234567890abcdef",
		},
		{
			name:          "invalid OpenAI key format",
			openaiKey:     "invalid-key",
			expectError:   true,
			errorContains: "must start with 'sk-'",
		},
		{
			name:          "OpenAI key too short",
			openaiKey:     "sk-short",
			expectError:   true,
			errorContains: "too short",
		},
		{
			name:      "empty keys are allowed",
			openaiKey: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(EnvOpenAIKey, tc.openaiKey)

			apiKeys, err := GetAPIKeys()

			if tc.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tc.errorContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.openaiKey, apiKeys.OpenAI)
		})
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	path, err := LoadEnv()
	require.NoError(t, err)
	assert.Empty(t, path)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("STT_TEST_LOADED=yes\n"), 0644))
	t.Setenv("STT_TEST_LOADED", "")
	os.Unsetenv("STT_TEST_LOADED")

	path, err = LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, ".env", path)
	assert.Equal(t, "yes", os.Getenv("STT_TEST_LOADED"))
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(EnvBackendURL, "")
	t.Setenv(EnvPublicHost, "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultHost, cfg.Server.Host)
	assert.Equal(t, DefaultPort, cfg.Server.Port)
	assert.Equal(t, DefaultHost, cfg.Server.PublicHost)
	assert.Equal(t, BackendHTTP, cfg.Backend.Type)
	assert.Zero(t, cfg.Backend.Timeout)
	assert.Equal(t, DeviceCommand, cfg.Capture.Device)
	assert.Equal(t, DefaultChunkSize, cfg.Capture.ChunkSize)
	assert.Equal(t, DefaultExportDir, cfg.Export.Dir)
}

func TestLoad_FileAndEnvironment(t *testing.T) {
	t.Setenv(EnvBackendURL, "")
	t.Setenv(EnvPublicHost, "")
	t.Setenv("STT_TEST_TOKEN", "secret")

	path := filepath.Join(t.TempDir(), "stt.yaml")
	content := `
server:
  host: 0.0.0.0
  port: "9000"
  public_host: stt.example.com
backend:
  type: http
  fallback_url: https://transcribe.example.com/transcribe
  timeout: 45s
  headers:
    Authorization: ${STT_TEST_TOKEN}
capture:
  device: push
export:
  dir: /tmp/exports
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "stt.example.com", cfg.Server.PublicHost)
	assert.Equal(t, 45*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, "secret", cfg.Backend.Headers["Authorization"])
	assert.Equal(t, DevicePush, cfg.Capture.Device)
	assert.Equal(t, "/tmp/exports", cfg.Export.Dir)

	t.Setenv(EnvBackendURL, "https://api.example.com")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", cfg.Backend.BaseURL)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv(EnvBackendURL, "")

	testCases := []struct {
		name    string
		content string
	}{
		{name: "unknown backend", content: "backend:\n  type: carrier-pigeon\n"},
		{name: "unknown device", content: "capture:\n  device: tape\n"},
		{name: "bad fallback url", content: "backend:\n  fallback_url: ftp://example.com\n"},
		{name: "bad port", content: "server:\n  port: \"http\"\n"},
		{name: "negative timeout", content: "backend:\n  timeout: -1s\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "stt.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0644))

			_, err := Load(path)
			require.Error(t, err)
			assert.True(t, apperrors.Is(err, apperrors.ErrInvalidConfig), err.Error())
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv(EnvBackendURL, "")
	t.Setenv(EnvPublicHost, "")

	cfg, err := Load("")
	require.NoError(t, err)
	cfg.Backend.FallbackURL = "https://transcribe.example.com/transcribe"

	path := filepath.Join(t.TempDir(), "stt.yaml")
	require.NoError(t, Save(cfg, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Backend.FallbackURL, loaded.Backend.FallbackURL)
}
