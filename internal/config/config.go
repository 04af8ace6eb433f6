package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	apperrors "speech-to-text/internal/app/errors"
)

// Backend types
const (
	BackendHTTP   = "http"
	BackendOpenAI = "openai"
)

// Capture devices
const (
	DeviceCommand = "command"
	DevicePush    = "push"
)

// Defaults
const (
	DefaultHost         = "localhost"
	DefaultPort         = "8080"
	DefaultChunkSize    = 16 * 1024
	DefaultExportDir    = "."
	DefaultInputFormat  = "pulse"
	DefaultInput        = "default"
	DefaultOpenAIModel  = "whisper-1"
	DefaultReadTimeout  = 60 * time.Second
	DefaultWriteTimeout = 5 * time.Minute
	DefaultIdleTimeout  = 120 * time.Second
)

// Config is the application configuration loaded from stt.yaml and the environment
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Backend BackendConfig `yaml:"backend"`
	Capture CaptureConfig `yaml:"capture"`
	Export  ExportConfig  `yaml:"export"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig configures the session API server
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         string        `yaml:"port"`
	PublicHost   string        `yaml:"public_host"` // Host the page is served from; decides the local-development endpoint
	StaticDir    string        `yaml:"static_dir"`  // Optional page shell
	Environment  string        `yaml:"environment"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

// BackendConfig selects and configures the transcription backend
type BackendConfig struct {
	Type        string            `yaml:"type"`
	BaseURL     string            `yaml:"base_url"`
	FallbackURL string            `yaml:"fallback_url"`
	Timeout     time.Duration     `yaml:"timeout"` // 0 leaves the transport defaults in place
	Headers     map[string]string `yaml:"headers,omitempty"`
	OpenAIModel string            `yaml:"openai_model"`
}

// CaptureConfig configures the recording device
type CaptureConfig struct {
	Device            string   `yaml:"device"`
	DisableMicrophone bool     `yaml:"disable_microphone"`
	Command           []string `yaml:"command,omitempty"` // Overrides the ffmpeg invocation; must write audio to stdout
	InputFormat       string   `yaml:"input_format"`
	Input             string   `yaml:"input"`
	ChunkSize         int      `yaml:"chunk_size"`
}

// ExportConfig configures where saved text and audio are written
type ExportConfig struct {
	Dir string `yaml:"dir"`
}

// LogConfig configures logging
type LogConfig struct {
	Development bool `yaml:"development"`
}

// Load reads the configuration file at path. An empty path yields the
// defaults plus environment overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		path = os.ExpandEnv(path)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	cfg.expandEnvironmentVariables()
	cfg.applyEnvironmentOverrides()
	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration as YAML
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (c *Config) expandEnvironmentVariables() {
	c.Backend.BaseURL = expandEnv(c.Backend.BaseURL)
	c.Backend.FallbackURL = expandEnv(c.Backend.FallbackURL)
	for key, value := range c.Backend.Headers {
		c.Backend.Headers[key] = expandEnv(value)
	}
	c.Export.Dir = expandEnv(c.Export.Dir)
	c.Server.StaticDir = expandEnv(c.Server.StaticDir)
}

func (c *Config) applyEnvironmentOverrides() {
	c.Backend.BaseURL = getEnvOrDefault(EnvBackendURL, c.Backend.BaseURL)
	c.Server.PublicHost = getEnvOrDefault(EnvPublicHost, c.Server.PublicHost)
}

func (c *Config) setDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == "" {
		c.Server.Port = DefaultPort
	}
	if c.Server.PublicHost == "" {
		c.Server.PublicHost = c.Server.Host
	}
	if c.Server.Environment == "" {
		c.Server.Environment = "development"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = DefaultReadTimeout
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = DefaultWriteTimeout
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = DefaultIdleTimeout
	}

	if c.Backend.Type == "" {
		c.Backend.Type = BackendHTTP
	}
	if c.Backend.OpenAIModel == "" {
		c.Backend.OpenAIModel = DefaultOpenAIModel
	}
	if c.Backend.Headers == nil {
		c.Backend.Headers = make(map[string]string)
	}

	if c.Capture.Device == "" {
		c.Capture.Device = DeviceCommand
	}
	if c.Capture.ChunkSize == 0 {
		c.Capture.ChunkSize = DefaultChunkSize
	}
	if c.Capture.InputFormat == "" {
		c.Capture.InputFormat = DefaultInputFormat
	}
	if c.Capture.Input == "" {
		c.Capture.Input = DefaultInput
	}

	if c.Export.Dir == "" {
		c.Export.Dir = DefaultExportDir
	}
}

// Validate checks the configuration for consistency
func (c *Config) Validate() error {
	if err := ValidatePort(c.Server.Port, "server.port"); err != nil {
		return err
	}

	switch c.Backend.Type {
	case BackendHTTP, BackendOpenAI:
	default:
		return apperrors.InvalidField("backend.type", fmt.Sprintf("unknown backend %q", c.Backend.Type))
	}
	if c.Backend.BaseURL != "" {
		if err := ValidateURL(c.Backend.BaseURL, "backend.base_url"); err != nil {
			return err
		}
	}
	if c.Backend.FallbackURL != "" {
		if err := ValidateURL(c.Backend.FallbackURL, "backend.fallback_url"); err != nil {
			return err
		}
	}
	if err := ValidateTimeout(c.Backend.Timeout, "backend.timeout"); err != nil {
		return err
	}

	switch c.Capture.Device {
	case DeviceCommand, DevicePush:
	default:
		return apperrors.InvalidField("capture.device", fmt.Sprintf("unknown device %q", c.Capture.Device))
	}
	if c.Capture.ChunkSize < 0 {
		return apperrors.InvalidField("capture.chunk_size", "must be positive")
	}

	return nil
}
