package serve

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"speech-to-text/cmd/stt/cmd/bootstrap"
	"speech-to-text/internal/app"
)

var (
	host            string
	port            string
	staticDir       string
	shutdownTimeout time.Duration
)

func init() {
	Cmd.Flags().StringVar(&host, "host", "", "address to listen on (overrides server.host)")
	Cmd.Flags().StringVarP(&port, "port", "p", "", "port to listen on (overrides server.port)")
	Cmd.Flags().StringVar(&staticDir, "static", "", "directory with the page shell (overrides server.static_dir)")
	Cmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 10*time.Second, "grace period for in-flight requests")
}

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Host a transcription session behind a JSON API",
	Long: `Host a transcription session behind a JSON API

- Upload, record, save and history operations under /api/v1/session
- Prometheus metrics under /metrics
- An optional page shell served from the static directory`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := bootstrap.Load(cmd)
		if err != nil {
			return err
		}
		defer bootstrap.Sync(logger)

		if host != "" {
			cfg.Server.Host = host
		}
		if port != "" {
			cfg.Server.Port = port
		}
		if staticDir != "" {
			cfg.Server.StaticDir = staticDir
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		server, err := app.InitializeServer(cfg, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize server: %w", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh, err := server.Start()
		if err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			logger.Info("Shutdown signal received")
		case err := <-errCh:
			if err != nil {
				return err
			}
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Graceful shutdown failed", zap.Error(err))
			return err
		}
		return nil
	},
}
