package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(true, "debug")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(-1)) // debug

	logger, err = NewLogger(false, "warn")
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(0)) // info

	_, err = NewLogger(false, "loud")
	assert.Error(t, err)
}

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "stt.log")

	logger, closer, err := NewFileLogger(path, "info")
	require.NoError(t, err)
	logger.Info("hello from the tui")
	require.NoError(t, logger.Sync())
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from the tui")
}
