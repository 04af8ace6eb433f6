package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables understood by the application
const (
	EnvBackendURL = "BACKEND_URL"
	EnvPublicHost = "STT_PUBLIC_HOST"
	EnvConfigPath = "STT_CONFIG"
	EnvOpenAIKey  = "OPENAI_API_KEY"
)

// APIKeys holds all API keys loaded from environment
type APIKeys struct {
	OpenAI string
}

// LoadEnv loads environment variables from the first .env file found.
// It returns the path that was loaded, or "" when none exists; variables
// may also be set system-wide so a missing file is not an error.
func LoadEnv() (string, error) {
	envPaths := []string{
		".env",
		".env.local",
		"../.env",
		"../../.env",
	}

	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return "", fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			return envPath, nil
		}
	}

	return "", nil
}

// GetAPIKeys retrieves and validates API keys from environment variables
func GetAPIKeys() (*APIKeys, error) {
	apiKeys := &APIKeys{
		OpenAI: strings.TrimSpace(os.Getenv(EnvOpenAIKey)),
	}

	if apiKeys.OpenAI != "" {
		if err := ValidateAPIKey(apiKeys.OpenAI, "OpenAI"); err != nil {
			return nil, err
		}
	}

	return apiKeys, nil
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

// expandEnv replaces a value of the form ${NAME} with the named variable.
func expandEnv(value string) string {
	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := strings.TrimSuffix(strings.TrimPrefix(value, "${"), "}")
		return os.Getenv(envVar)
	}
	return value
}
