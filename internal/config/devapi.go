package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environment variables recognized by the development backend.
const (
	EnvDevAPIAddr        = "STT_DEVAPI_ADDR"
	EnvDevAPIDB          = "STT_DEVAPI_DB"
	EnvDevAPIMaxUploadMB = "STT_DEVAPI_MAX_UPLOAD_MB"
	EnvWhisperCppBinary  = "WHISPER_CPP_BINARY"
	EnvWhisperCppModel   = "WHISPER_CPP_MODEL"
	EnvOpenAIKey         = "OPENAI_API_KEY"
)

// DevAPIConfig configures the stand-in backend used for local development.
type DevAPIConfig struct {
	Addr string
	// DBPath selects the SQLite store; empty keeps transcripts in memory.
	DBPath           string
	MaxUploadMB      int64
	WhisperCppBinary string
	WhisperCppModel  string
	OpenAIKey        string
	Environment      string
}

// LoadDevAPI reads the development backend configuration.
func LoadDevAPI() (*DevAPIConfig, error) {
	cfg := &DevAPIConfig{
		Addr:             getEnvOrDefault(EnvDevAPIAddr, ":5000"),
		DBPath:           strings.TrimSpace(os.Getenv(EnvDevAPIDB)),
		MaxUploadMB:      25,
		WhisperCppBinary: strings.TrimSpace(os.Getenv(EnvWhisperCppBinary)),
		WhisperCppModel:  strings.TrimSpace(os.Getenv(EnvWhisperCppModel)),
		OpenAIKey:        strings.TrimSpace(os.Getenv(EnvOpenAIKey)),
		Environment:      getEnvOrDefault(EnvEnvironment, "development"),
	}

	if raw := os.Getenv(EnvDevAPIMaxUploadMB); raw != "" {
		mb, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s value %q: %w", EnvDevAPIMaxUploadMB, raw, err)
		}
		cfg.MaxUploadMB = mb
	}
	if err := ValidateUploadLimit(cfg.MaxUploadMB); err != nil {
		return nil, err
	}

	if cfg.OpenAIKey != "" {
		if err := ValidateAPIKey(cfg.OpenAIKey, "OpenAI"); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// MaxUploadBytes returns the upload limit in bytes.
func (c *DevAPIConfig) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}
