package bootstrap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"stt-frontend/internal/app"
	"stt-frontend/internal/config"
)

func withFlags(t *testing.T, f GlobalFlags) {
	t.Helper()
	saved := Flags
	Flags = f
	t.Cleanup(func() { Flags = saved })
}

func TestLoadConfig_FlagOverrides(t *testing.T) {
	t.Setenv(config.EnvAPIBase, "")
	t.Setenv(config.EnvDownloadDir, t.TempDir())
	withFlags(t, GlobalFlags{APIBase: "http://api.test/", Verbose: true})

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://api.test", cfg.APIBaseOverride)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfig_InvalidOverride(t *testing.T) {
	t.Setenv(config.EnvDownloadDir, t.TempDir())
	withFlags(t, GlobalFlags{APIBase: "not a url"})

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestNewFrontend_ProviderFlag(t *testing.T) {
	cfg := &config.Config{NoticeDelay: config.NoticeDelay}

	withFlags(t, GlobalFlags{Provider: "mock"})
	frontend, err := NewFrontend(cfg, app.ClientOptions{PageHost: LocalHost}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "mock", frontend.Shell.Snapshot().Provider)

	withFlags(t, GlobalFlags{Provider: "google"})
	_, err = NewFrontend(cfg, app.ClientOptions{PageHost: LocalHost}, zap.NewNop())
	assert.Error(t, err)
}
