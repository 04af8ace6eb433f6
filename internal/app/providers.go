package app

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"speech-to-text/internal/api/server"
	"speech-to-text/internal/api/v1/routes"
	"speech-to-text/internal/api/v1/services"
	"speech-to-text/internal/app/api/custom_http"
	"speech-to-text/internal/app/api/openai"
	"speech-to-text/internal/app/api/openai/whisper"
	"speech-to-text/internal/app/api/provider"
	"speech-to-text/internal/app/capture"
	apperrors "speech-to-text/internal/app/errors"
	"speech-to-text/internal/app/metrics"
	"speech-to-text/internal/app/recorder"
	"speech-to-text/internal/app/session"
	"speech-to-text/internal/config"
)

// SessionSet builds a session from the configuration
var SessionSet = wire.NewSet(
	provideTranscriber,
	provideDevice,
	provideRegistry,
	provideMetrics,
	recorder.NewController,
	session.New,
)

// ServerSet builds the session API server on top of SessionSet
var ServerSet = wire.NewSet(
	SessionSet,
	provideChunkReceiver,
	provideServiceContainer,
	provideServerConfig,
	server.NewServer,
	wire.Bind(new(services.SessionService), new(*session.Session)),
	wire.Bind(new(prometheus.Gatherer), new(*prometheus.Registry)),
)

// provideTranscriber selects the transcription backend. The OpenAI backend
// needs OPENAI_API_KEY.
func provideTranscriber(cfg *config.Config, logger *zap.Logger) (provider.Transcriber, error) {
	switch cfg.Backend.Type {
	case config.BackendOpenAI:
		keys, err := config.GetAPIKeys()
		if err != nil {
			return nil, err
		}
		client, err := openai.NewClient(keys.OpenAI, "")
		if err != nil {
			return nil, err
		}
		logger.Info("Using OpenAI transcription backend", zap.String("model", cfg.Backend.OpenAIModel))
		return whisper.NewRemoteTranscriber(client, cfg.Backend.OpenAIModel), nil

	case config.BackendHTTP:
		endpoint, err := config.ResolveEndpoint(cfg.Backend, cfg.Server.PublicHost)
		if err != nil {
			return nil, err
		}
		logger.Info("Using HTTP transcription backend", zap.String("endpoint", endpoint))
		return custom_http.NewClient(custom_http.Config{
			Endpoint: endpoint,
			Headers:  cfg.Backend.Headers,
			Timeout:  cfg.Backend.Timeout,
		})

	default:
		return nil, apperrors.InvalidField("backend.type", cfg.Backend.Type)
	}
}

func provideDevice(cfg *config.Config, logger *zap.Logger) recorder.Device {
	if cfg.Capture.Device == config.DevicePush {
		return capture.NewPushDevice(cfg.Capture.DisableMicrophone, logger)
	}
	return capture.NewCommandDevice(capture.CommandConfig{
		Command:     cfg.Capture.Command,
		InputFormat: cfg.Capture.InputFormat,
		Input:       cfg.Capture.Input,
		ChunkSize:   cfg.Capture.ChunkSize,
		Disabled:    cfg.Capture.DisableMicrophone,
	}, logger)
}

// provideChunkReceiver exposes the device to the API when the page pushes the audio
func provideChunkReceiver(device recorder.Device) services.ChunkReceiver {
	if push, ok := device.(*capture.PushDevice); ok {
		return push
	}
	return nil
}

func provideRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry
}

func provideMetrics(registry *prometheus.Registry) *metrics.Metrics {
	return metrics.New(registry)
}

func provideServiceContainer(sessionService services.SessionService, chunks services.ChunkReceiver) *routes.ServiceContainer {
	return &routes.ServiceContainer{
		Session: sessionService,
		Chunks:  chunks,
	}
}

func provideServerConfig(cfg *config.Config, transcriber provider.Transcriber) server.Config {
	return server.Config{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		StaticDir:    cfg.Server.StaticDir,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		Environment:  cfg.Server.Environment,
		Backend:      transcriber.Name(),
	}
}
