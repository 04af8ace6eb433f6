//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	"speech-to-text/internal/api/server"
	"speech-to-text/internal/app/session"
	"speech-to-text/internal/config"
)

// InitializeSession builds a session for the terminal commands
func InitializeSession(cfg *config.Config, logger *zap.Logger) (*session.Session, error) {
	wire.Build(SessionSet)
	return &session.Session{}, nil
}

// InitializeServer builds the session API server
func InitializeServer(cfg *config.Config, logger *zap.Logger) (*server.Server, error) {
	wire.Build(ServerSet)
	return &server.Server{}, nil
}
