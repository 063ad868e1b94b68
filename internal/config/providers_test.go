package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultProviderCatalog(t *testing.T) {
	catalog := DefaultProviderCatalog()
	require.NoError(t, catalog.Validate())

	assert.Equal(t, "local", catalog.Default)
	assert.True(t, catalog.IsEnabled("local"))
	assert.True(t, catalog.IsEnabled("mock"))
	assert.False(t, catalog.IsEnabled("openai"))
	assert.False(t, catalog.IsEnabled("google"))
	assert.False(t, catalog.IsEnabled("nope"))

	assert.Equal(t, "mock", catalog.Next("local"))
	assert.Equal(t, "local", catalog.Next("mock"))
	assert.Equal(t, "local", catalog.Next("unknown"))

	assert.Equal(t, "Mock (demo)", catalog.Label("mock"))
	assert.Equal(t, "custom", catalog.Label("custom"))
}

func TestLoadProviderCatalog(t *testing.T) {
	dir := t.TempDir()

	testCases := []struct {
		name        string
		content     string
		expectError bool
		wantDefault string
	}{
		{
			name: "valid catalog with implicit default",
			content: `
providers:
  - value: mock
    label: Mock
    enabled: true
  - value: openai
    label: OpenAI Whisper
    enabled: true
`,
			wantDefault: "mock",
		},
		{
			name: "default disabled",
			content: `
default: openai
providers:
  - value: mock
    enabled: true
  - value: openai
    enabled: false
`,
			expectError: true,
		},
		{
			name: "duplicate values",
			content: `
providers:
  - value: mock
    enabled: true
  - value: mock
    enabled: true
`,
			expectError: true,
		},
		{
			name:        "nothing enabled",
			content:     "providers:\n  - value: mock\n",
			expectError: true,
		},
		{
			name:        "malformed yaml",
			content:     "providers: [",
			expectError: true,
		},
	}

	for i, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, "providers-"+string(rune('a'+i))+".yaml")
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0o644))

			catalog, err := LoadProviderCatalog(path)
			if tc.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantDefault, catalog.Default)
		})
	}
}

func TestLoadProviderCatalog_EmptyPath(t *testing.T) {
	catalog, err := LoadProviderCatalog("")
	require.NoError(t, err)
	assert.Equal(t, DefaultProviderCatalog(), catalog)
}
