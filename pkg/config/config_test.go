package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestInitConfigCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")

	cfg, err := InitConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.FileExists(t, path)

	reloaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), reloaded)
}

func TestLoadConfigKeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, `
[server]
max_limit = 20

[index]
extra_stop_words = ["upon", "near"]
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Server.MaxLimit)
	assert.Equal(t, DefaultConfig().Server.DefaultLimit, cfg.Server.DefaultLimit)
	assert.Equal(t, []string{"upon", "near"}, cfg.Index.ExtraStopWords)
	assert.Equal(t, DefaultConfig().Watch, cfg.Watch)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoadConfigPartialRecovery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	// max_limit has the wrong type; the rest should survive
	writeFile(t, path, `
[server]
max_limit = "lots"
max_input = 80

[watch]
enabled = true

[log]
format = "json"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Server.MaxLimit, cfg.Server.MaxLimit)
	assert.Equal(t, 80, cfg.Server.MaxInput)
	assert.True(t, cfg.Watch.Enabled)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadConfigUnparsable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[server\nmax_limit = = 3")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestNormalize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, `
[server]
max_limit = 4
default_limit = 0
max_input = -1

[watch]
debounce_ms = -5
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Server.DefaultLimit, "default limit never exceeds the max")
	assert.Equal(t, DefaultConfig().Server.MaxInput, cfg.Server.MaxInput)
	assert.Equal(t, 0, cfg.Watch.DebounceMs)
}

func TestClampLimit(t *testing.T) {
	cfg := DefaultConfig()

	testCases := []struct {
		requested   int
		expected    int
		description string
	}{
		{0, cfg.Server.DefaultLimit, "Missing limit uses default"},
		{-3, cfg.Server.DefaultLimit, "Negative limit uses default"},
		{5, 5, "Within bounds"},
		{1000, cfg.Server.MaxLimit, "Clamped to max"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			assert.Equal(t, tc.expected, cfg.ClampLimit(tc.requested))
		})
	}
}

func TestLoadConfigWithPriorityCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	writeFile(t, path, "[cli]\ndefault_limit = 3\n")

	cfg, used, err := LoadConfigWithPriority(path)
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.Equal(t, 3, cfg.CLI.DefaultLimit)
}
