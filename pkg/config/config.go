package config

import (
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"
)

// Config defines the application configuration structure. It maps directly
// to config.json and holds business-level settings: which NLU providers to
// use, which front-end channels to start, and prompt customization.
type Config struct {
	// NLU holds the ordered list of NLU provider groups in raw JSON; the
	// first group is the primary parser, later ones are fallbacks.
	NLU jsoniter.RawMessage `json:"nlu"`
	// Channels maps front-end identifiers (e.g. "console", "web",
	// "telegram") to their specific configuration payloads.
	Channels map[string]jsoniter.RawMessage `json:"channels"`
	// ExtraInstructions is appended verbatim to the generated NLU system
	// prompt, for site-specific phrasing hints.
	ExtraInstructions string `json:"extra_instructions"`
}

// Validate ensures the configuration contains all mandatory fields before
// the system proceeds to initialization.
func (c *Config) Validate() error {
	if len(c.NLU) == 0 {
		return fmt.Errorf("mandatory 'nlu' configuration is missing or empty")
	}
	return nil
}

// SystemConfig defines engine-level technical parameters, stored in
// system.json. These control timeouts, retries, and storage locations rather
// than business behavior.
type SystemConfig struct {
	// MaxRetries is the number of attempts per NLU provider before falling
	// through to the next one.
	MaxRetries int `json:"max_retries"`
	// RetryDelayMs is the base wait between NLU retry attempts.
	RetryDelayMs int `json:"retry_delay_ms"`
	// NLUTimeoutMs is the hard cutoff for one NLU parse call. Front ends
	// derive the context deadline for interpret() from it.
	NLUTimeoutMs int `json:"nlu_timeout_ms"`
	// ActionTimeoutMs bounds a single handler invocation; 0 disables the
	// bound, for handlers that legitimately run long.
	ActionTimeoutMs int `json:"action_timeout_ms"`
	// OllamaDefaultURL is the fallback endpoint for a local Ollama instance.
	OllamaDefaultURL string `json:"ollama_default_url"`
	// TelegramMessageLimit caps a single Telegram message; longer results
	// are split into chunks.
	TelegramMessageLimit int `json:"telegram_message_limit"`
	// LogLevel sets the minimum severity for log output.
	// Accepted values: "debug", "info", "warn", "error". Default: "info".
	LogLevel string `json:"log_level"`
	// WorkflowDir is where saved workflow templates are persisted.
	WorkflowDir string `json:"workflow_dir"`
	// HistoryFile is where the command journal is persisted.
	HistoryFile string `json:"history_file"`
	// HistoryLimit caps the number of journal entries kept in memory and on
	// disk; oldest entries are dropped first.
	HistoryLimit int `json:"history_limit"`
}

// DefaultSystemConfig returns a SystemConfig initialized with safe defaults,
// used as the fallback when system.json is missing or corrupt so the engine
// can always start.
func DefaultSystemConfig() *SystemConfig {
	return &SystemConfig{
		MaxRetries:           3,
		RetryDelayMs:         500,
		NLUTimeoutMs:         30000,
		ActionTimeoutMs:      0,
		OllamaDefaultURL:     "http://localhost:11434",
		TelegramMessageLimit: 4000,
		LogLevel:             "info",
		WorkflowDir:          "workflows",
		HistoryFile:          "history.json",
		HistoryLimit:         500,
	}
}

// Load reads and parses the JSON configuration files from the current
// working directory: config.json is mandatory, system.json falls back to
// defaults.
func Load() (*Config, *SystemConfig, error) {
	appPath := "config.json"
	if _, err := os.Stat(appPath); os.IsNotExist(err) {
		return nil, nil, fmt.Errorf("config file '%s' not found. please create one", appPath)
	}

	appFile, err := os.ReadFile(appPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(appFile, &cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	sysCfg := LoadSystemConfig("system.json")

	return &cfg, sysCfg, nil
}

// LoadSystemConfig attempts to load system settings, returning defaults on
// any failure.
func LoadSystemConfig(path string) *SystemConfig {
	cfg := DefaultSystemConfig()

	file, err := os.ReadFile(path)
	if err != nil {
		return cfg // File not found, use defaults
	}

	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(file, cfg); err != nil {
		return cfg // Parse failed, use defaults
	}

	return cfg
}
