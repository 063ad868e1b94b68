//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	"stt-frontend/internal/api/server"
	"stt-frontend/internal/config"
)

func InitializeFrontend(cfg *config.Config, opts ClientOptions, logger *zap.Logger) (*Frontend, error) {
	wire.Build(NewFrontend, provideShell, provideShellMetrics, provideAPIClient, provideProviderCatalog)
	return &Frontend{}, nil
}

func InitializeDevAPI(cfg *config.DevAPIConfig, logger *zap.Logger) (*server.Server, func(), error) {
	wire.Build(server.NewServer, provideServerConfig, provideRegistry, provideTranscriptionDAO)
	return &server.Server{}, nil, nil
}
