package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Environment variables recognized by the front end.
const (
	EnvAPIBase       = "STT_API_BASE"
	EnvProvidersFile = "STT_PROVIDERS_FILE"
	EnvDownloadDir   = "STT_DOWNLOAD_DIR"
	EnvLogFile       = "STT_LOG_FILE"
	EnvLogLevel      = "STT_LOG_LEVEL"
	EnvNotify        = "STT_NOTIFY"
	EnvWebAddr       = "STT_WEB_ADDR"
	EnvEnvironment   = "STT_ENV"
)

const (
	// DevBaseURL is used when the front end is served from localhost.
	DevBaseURL = "http://localhost:5000"
	// FallbackBaseURL is the hosted backend used everywhere else.
	FallbackBaseURL = "https://speech-transcriber-backend.onrender.com"

	// NoticeDelay is how long a success notice stays visible.
	NoticeDelay = 3 * time.Second
)

// Config holds the front end settings resolved from the environment.
type Config struct {
	// APIBaseOverride is the explicit backend base URL, empty when unset.
	APIBaseOverride string `validate:"omitempty,url"`
	ProvidersFile   string `validate:"omitempty,file"`
	DownloadDir     string `validate:"required"`
	LogFile         string
	LogLevel        string `validate:"oneof=debug info warn error"`
	Notify          bool
	WebAddr         string `validate:"required,hostname_port"`
	Environment     string `validate:"oneof=development production"`
	NoticeDelay     time.Duration
}

// LoadEnv loads environment variables from .env file if it exists
func LoadEnv() (string, error) {
	envPaths := []string{
		".env",
		".env.local",
		"../.env",
		"../../.env",
	}

	// Look for .env file, but don't fail if not found (environment variables might be set system-wide)
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

// Load reads the configuration from the process environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		APIBaseOverride: strings.TrimRight(strings.TrimSpace(os.Getenv(EnvAPIBase)), "/"),
		ProvidersFile:   strings.TrimSpace(os.Getenv(EnvProvidersFile)),
		DownloadDir:     getEnvOrDefault(EnvDownloadDir, defaultDownloadDir()),
		LogFile:         getEnvOrDefault(EnvLogFile, defaultLogFile()),
		LogLevel:        strings.ToLower(getEnvOrDefault(EnvLogLevel, "info")),
		WebAddr:         getEnvOrDefault(EnvWebAddr, "localhost:5173"),
		Environment:     getEnvOrDefault(EnvEnvironment, "development"),
		NoticeDelay:     NoticeDelay,
	}

	if raw := os.Getenv(EnvNotify); raw != "" {
		notify, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s value %q: %w", EnvNotify, raw, err)
		}
		cfg.Notify = notify
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration with struct tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// BaseURL resolves the backend base URL for a front end served from pageHost.
func (c *Config) BaseURL(pageHost string) string {
	return ResolveBaseURL(c.APIBaseOverride, pageHost)
}

// ResolveBaseURL applies the resolution order: explicit override, then the
// local dev backend when served from localhost, then the hosted fallback.
func ResolveBaseURL(override, pageHost string) string {
	if override = strings.TrimRight(strings.TrimSpace(override), "/"); override != "" {
		return override
	}
	if hostname(pageHost) == "localhost" {
		return DevBaseURL
	}
	return FallbackBaseURL
}

// hostname strips an optional port from host.
func hostname(host string) string {
	host = strings.TrimSpace(host)
	if h, _, err := net.SplitHostPort(host); err == nil {
		return strings.ToLower(h)
	}
	return strings.ToLower(host)
}

func defaultDownloadDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "Downloads")
}

func defaultLogFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "stt-frontend.log")
	}
	return filepath.Join(dir, "stt-frontend", "stt.log")
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}
