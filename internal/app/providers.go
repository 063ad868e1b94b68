package app

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"stt-frontend/internal/api/server"
	"stt-frontend/internal/app/api"
	"stt-frontend/internal/app/api/openai"
	"stt-frontend/internal/app/api/openai/whisper"
	"stt-frontend/internal/app/api/provider"
	"stt-frontend/internal/app/api/whisper_cpp"
	"stt-frontend/internal/app/metrics"
	"stt-frontend/internal/app/recorder"
	"stt-frontend/internal/app/repository"
	"stt-frontend/internal/app/repository/sqlite"
	"stt-frontend/internal/app/shell"
	"stt-frontend/internal/config"
)

// ClientOptions adjusts the backend client for one front end.
type ClientOptions struct {
	// PageHost is the host the front end is served from; it drives base URL
	// resolution when no override is configured.
	PageHost   string
	UserAgent  string
	WrapUpload func(io.Reader, int64) io.Reader
}

// Frontend bundles everything a user-facing surface needs.
type Frontend struct {
	Shell   *shell.Shell
	Metrics *metrics.ShellMetrics
	Client  api.Client
}

func NewFrontend(s *shell.Shell, m *metrics.ShellMetrics, client api.Client) *Frontend {
	return &Frontend{Shell: s, Metrics: m, Client: client}
}

// AttachMicrophone gives the shell a recorder backed by the default capture
// device. Finished recordings go through the same submission path as files.
func (f *Frontend) AttachMicrophone(logger *zap.Logger) {
	f.Shell.SetRecorder(recorder.New(recorder.NewPortAudioDevice(), f.Shell.Submit, logger))
}

func provideProviderCatalog(cfg *config.Config) (*config.ProviderCatalog, error) {
	return config.LoadProviderCatalog(cfg.ProvidersFile)
}

func provideAPIClient(cfg *config.Config, opts ClientOptions) api.Client {
	return api.NewHTTPClient(api.Config{
		BaseURL:    cfg.BaseURL(opts.PageHost),
		UserAgent:  opts.UserAgent,
		WrapUpload: opts.WrapUpload,
	}, nil)
}

func provideShellMetrics() *metrics.ShellMetrics {
	return metrics.NewShellMetrics()
}

func provideShell(client api.Client, catalog *config.ProviderCatalog, cfg *config.Config, m *metrics.ShellMetrics, logger *zap.Logger) *shell.Shell {
	return shell.New(client, catalog, shell.Options{
		NoticeDelay: cfg.NoticeDelay,
		Metrics:     m,
		Logger:      logger,
	})
}

// provideTranscriptionDAO keeps transcripts in SQLite when a database path is
// configured and in memory otherwise.
func provideTranscriptionDAO(cfg *config.DevAPIConfig) (repository.TranscriptionDAO, func(), error) {
	if cfg.DBPath == "" {
		dao := repository.NewMemoryDAO()
		return dao, func() { _ = dao.Close() }, nil
	}
	db, err := sqlite.NewSQLiteDB(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	return db, func() { _ = db.Close() }, nil
}

// provideRegistry registers the mock provider always, whisper.cpp under
// "local" and OpenAI Whisper under "openai" when they are configured.
func provideRegistry(cfg *config.DevAPIConfig, logger *zap.Logger) (*provider.Registry, error) {
	registry := provider.NewRegistry()
	if err := registry.Register("mock", api.NewMockTranscriber()); err != nil {
		return nil, err
	}

	var local api.Transcriber = unconfiguredTranscriber{
		name: "local",
		hint: fmt.Sprintf("set %s and %s", config.EnvWhisperCppBinary, config.EnvWhisperCppModel),
	}
	if cfg.WhisperCppBinary != "" && cfg.WhisperCppModel != "" {
		local = whisper_cpp.NewLocalTranscriber(cfg.WhisperCppBinary, cfg.WhisperCppModel, logger)
	} else {
		logger.Warn("whisper.cpp is not configured; the local provider will fail every request")
	}
	if err := registry.Register("local", local); err != nil {
		return nil, err
	}

	if cfg.OpenAIKey != "" {
		remote := whisper.NewRemoteTranscriber(openai.NewClient(cfg.OpenAIKey, ""))
		if err := registry.Register("openai", remote); err != nil {
			return nil, err
		}
	}

	logger.Info("transcription providers registered", zap.Strings("providers", registry.Names()))
	return registry, nil
}

func provideServerConfig(cfg *config.DevAPIConfig) server.Config {
	return server.Config{
		Addr:           cfg.Addr,
		Environment:    cfg.Environment,
		MaxUploadBytes: cfg.MaxUploadBytes(),
	}
}

// unconfiguredTranscriber answers for a provider whose engine is missing so
// the caller sees why instead of an unknown provider.
type unconfiguredTranscriber struct {
	name string
	hint string
}

func (u unconfiguredTranscriber) Transcript(ctx context.Context, inputFilePath string) (string, error) {
	return "", fmt.Errorf("%s provider is not configured: %s", u.name, u.hint)
}
