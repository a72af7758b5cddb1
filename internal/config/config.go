// Package config provides the configuration schema and loader for the
// virtual simulated patient server.
package config

// LogLevel controls log verbosity for the server.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Config is the root configuration structure, typically loaded from a YAML
// file using [Load] or [LoadFromReader].
type Config struct {
	Server ServerConfig `yaml:"server"`
	LLM    LLMConfig    `yaml:"llm"`
	Cases  CasesConfig  `yaml:"cases"`
}

// ServerConfig holds network and logging settings.
type ServerConfig struct {
	// ListenAddr is the TCP address the HTTP server listens on (e.g., ":8000").
	ListenAddr string `yaml:"listen_addr"`

	// LogLevel controls verbosity.
	LogLevel LogLevel `yaml:"log_level"`
}

// LLMConfig selects and parameterises the language model backend shared by
// the conversation and evaluation engines.
type LLMConfig struct {
	// Provider selects the backend: "openai" uses the official OpenAI SDK;
	// "anthropic", "gemini", "ollama", "deepseek", "mistral", and "groq" go
	// through the any-llm multi-provider adapter.
	Provider string `yaml:"provider"`

	// APIKey authenticates against the provider's API. When empty, the
	// provider-specific environment variable (e.g., OPENAI_API_KEY) is used.
	APIKey string `yaml:"api_key"`

	// BaseURL overrides the provider's default API endpoint.
	BaseURL string `yaml:"base_url"`

	// Model is the model identifier (e.g., "gpt-4o", "claude-3-5-sonnet-latest").
	Model string `yaml:"model"`

	// Temperature is the sampling temperature for every completion, in [0, 2].
	Temperature float64 `yaml:"temperature"`

	// MaxTokens caps completion length. Zero means provider default.
	MaxTokens int `yaml:"max_tokens"`
}

// CasesConfig locates the case records on disk.
type CasesConfig struct {
	// Dir is the directory holding one JSON case file per case.
	Dir string `yaml:"dir"`
}

// Default values applied by [Load] when the corresponding field is empty.
const (
	DefaultListenAddr  = ":8000"
	DefaultProvider    = "openai"
	DefaultModel       = "gpt-4o"
	DefaultTemperature = 0.7
	DefaultCasesDir    = "data/cases"
)

// applyDefaults fills unset fields with the package defaults.
func applyDefaults(cfg *Config) {
	if cfg.Server.ListenAddr == "" {
		cfg.Server.ListenAddr = DefaultListenAddr
	}
	if cfg.Server.LogLevel == "" {
		cfg.Server.LogLevel = LogInfo
	}
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = DefaultProvider
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = DefaultModel
	}
	if cfg.LLM.Temperature == 0 {
		cfg.LLM.Temperature = DefaultTemperature
	}
	if cfg.Cases.Dir == "" {
		cfg.Cases.Dir = DefaultCasesDir
	}
}
