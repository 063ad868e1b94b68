// Package bootstrap holds the setup shared by the stt subcommands.
package bootstrap

import (
	"io"
	"strings"

	"go.uber.org/zap"

	"stt-frontend/internal/app"
	"stt-frontend/internal/app/logging"
	"stt-frontend/internal/config"
)

// GlobalFlags are the persistent flags of the root command.
type GlobalFlags struct {
	APIBase  string
	Provider string
	Verbose  bool
}

var Flags GlobalFlags

// LocalHost is the page host of the terminal front ends, which always run on
// the user's machine.
const LocalHost = "localhost"

// LoadConfig reads the environment and applies the command line overrides.
func LoadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if base := strings.TrimSpace(Flags.APIBase); base != "" {
		cfg.APIBaseOverride = strings.TrimRight(base, "/")
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	if Flags.Verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

// ConsoleLogger logs to stderr for commands that do not own the terminal.
func ConsoleLogger(cfg *config.Config) (*zap.Logger, error) {
	return logging.NewLogger(cfg.Environment == "development", cfg.LogLevel)
}

// FileLogger logs to the rotating log file for the full-screen UI.
func FileLogger(cfg *config.Config) (*zap.Logger, io.Closer, error) {
	return logging.NewFileLogger(cfg.LogFile, cfg.LogLevel)
}

// NewFrontend builds the shell and applies the --provider flag.
func NewFrontend(cfg *config.Config, opts app.ClientOptions, logger *zap.Logger) (*app.Frontend, error) {
	frontend, err := app.InitializeFrontend(cfg, opts, logger)
	if err != nil {
		return nil, err
	}
	if Flags.Provider != "" {
		if err := frontend.Shell.SetProvider(Flags.Provider); err != nil {
			return nil, err
		}
	}
	return frontend, nil
}
