package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSystemConfig(t *testing.T) {
	cfg := DefaultSystemConfig()

	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, 500, cfg.RetryDelayMs)
	assert.Equal(t, 30000, cfg.NLUTimeoutMs)
	assert.Equal(t, 0, cfg.ActionTimeoutMs)
	assert.Equal(t, "http://localhost:11434", cfg.OllamaDefaultURL)
	assert.Equal(t, 4000, cfg.TelegramMessageLimit)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "workflows", cfg.WorkflowDir)
	assert.Equal(t, "history.json", cfg.HistoryFile)
	assert.Equal(t, 500, cfg.HistoryLimit)
}

func TestLoadSystemConfig_MissingFileFallsBack(t *testing.T) {
	cfg := LoadSystemConfig(filepath.Join(t.TempDir(), "nope.json"))
	assert.Equal(t, DefaultSystemConfig(), cfg)
}

func TestLoadSystemConfig_CorruptFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "system.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	cfg := LoadSystemConfig(path)
	assert.Equal(t, DefaultSystemConfig(), cfg)
}

func TestLoadSystemConfig_PartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "system.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"log_level":"debug","max_retries":7}`), 0644))

	cfg := LoadSystemConfig(path)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 7, cfg.MaxRetries)
	// Untouched fields keep their defaults.
	assert.Equal(t, 30000, cfg.NLUTimeoutMs)
}

func TestConfigValidate(t *testing.T) {
	empty := &Config{}
	assert.Error(t, empty.Validate())

	ok := &Config{NLU: []byte(`[{"type":"gemini"}]`)}
	assert.NoError(t, ok.Validate())
}
