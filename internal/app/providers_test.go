package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"stt-frontend/internal/app/api"
	"stt-frontend/internal/app/repository"
	"stt-frontend/internal/app/repository/sqlite"
	"stt-frontend/internal/config"
)

func TestProvideRegistry_DefaultsToMockAndUnconfiguredLocal(t *testing.T) {
	registry, err := provideRegistry(&config.DevAPIConfig{}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []string{"local", "mock"}, registry.Names())

	local, ok := registry.Get("local")
	require.True(t, ok)
	_, err = local.Transcript(context.Background(), "clip.wav")
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.EnvWhisperCppBinary)
}

func TestProvideRegistry_OpenAIWhenKeySet(t *testing.T) {
	registry, err := provideRegistry(&config.DevAPIConfig{OpenAIKey: "sk-test-key-1234567890"}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []string{"local", "mock", "openai"}, registry.Names())
}

func TestProvideTranscriptionDAO(t *testing.T) {
	dao, cleanup, err := provideTranscriptionDAO(&config.DevAPIConfig{})
	require.NoError(t, err)
	defer cleanup()
	assert.IsType(t, &repository.MemoryDAO{}, dao)

	dbDAO, dbCleanup, err := provideTranscriptionDAO(&config.DevAPIConfig{DBPath: filepath.Join(t.TempDir(), "stt.db")})
	require.NoError(t, err)
	defer dbCleanup()
	assert.IsType(t, &sqlite.SQLiteDB{}, dbDAO)
}

func TestInitializeFrontend(t *testing.T) {
	cfg := &config.Config{APIBaseOverride: "http://backend.test", NoticeDelay: config.NoticeDelay}

	frontend, err := InitializeFrontend(cfg, ClientOptions{PageHost: "localhost"}, zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, frontend.Shell)
	httpClient, ok := frontend.Client.(*api.HTTPClient)
	require.True(t, ok)
	assert.Equal(t, "http://backend.test", httpClient.BaseURL())
	assert.Equal(t, "local", frontend.Shell.Snapshot().Provider)
}

func TestInitializeDevAPI(t *testing.T) {
	srv, cleanup, err := InitializeDevAPI(&config.DevAPIConfig{Addr: ":0", MaxUploadMB: 1}, zap.NewNop())
	require.NoError(t, err)
	defer cleanup()
	assert.NotNil(t, srv.Router())
}
