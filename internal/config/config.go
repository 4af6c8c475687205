package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete Quorum configuration
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Capability CapabilityConfig `mapstructure:"capability"`
	Engines    []EngineConfig   `mapstructure:"engines"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// ServerConfig controls the HTTP server behavior
type ServerConfig struct {
	// Addr is the listen address for the HTTP server (default: ":8080")
	Addr string `mapstructure:"addr"`
	// ShutdownTimeoutSec is how long to wait for in-flight requests on shutdown (default: 15)
	ShutdownTimeoutSec int `mapstructure:"shutdown_timeout_sec"`
}

// CapabilityConfig controls the shared language-model backend used by every
// engine, the decomposer and the synthesizer.
type CapabilityConfig struct {
	// BaseURL is the OpenAI-compatible API base URL (default: "https://api.openai.com/v1")
	BaseURL string `mapstructure:"base_url"`
	// Model is the model identifier sent with every completion (default: "gpt-4o")
	Model string `mapstructure:"model"`
	// MaxTokens bounds the response length of every completion (default: 2000)
	MaxTokens int `mapstructure:"max_tokens"`
	// Temperature is the fixed sampling temperature (default: 0.7)
	Temperature float64 `mapstructure:"temperature"`
	// APIKey is the backend credential. Usually supplied via the
	// QUORUM_CAPABILITY_API_KEY environment variable rather than the config
	// file. An empty key does not fail startup; every completion returns a
	// visible "not configured" notice instead.
	APIKey string `mapstructure:"api_key"`
	// TimeoutSec is the per-request HTTP timeout in seconds (default: 120)
	TimeoutSec int `mapstructure:"timeout_sec"`
}

// EngineConfig describes one research engine: a persona routed through the
// shared capability backend. The set of engines is fixed for the lifetime of
// the process.
type EngineConfig struct {
	// ID is the stable engine identifier shown in reports (e.g. "OpenAI Deep Research")
	ID string `mapstructure:"id"`
	// Persona is the system instruction that differentiates this engine
	Persona string `mapstructure:"persona"`
}

// LoggingConfig controls structured logging behavior
type LoggingConfig struct {
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
}

// Timeout returns the capability HTTP timeout as a time.Duration
func (c *CapabilityConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

// ShutdownTimeout returns the server shutdown grace period as a time.Duration
func (s *ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(s.ShutdownTimeoutSec) * time.Second
}

// Default returns a Config with all default values applied
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:               ":8080",
			ShutdownTimeoutSec: 15,
		},
		Capability: CapabilityConfig{
			BaseURL:     "https://api.openai.com/v1",
			Model:       "gpt-4o",
			MaxTokens:   2000,
			Temperature: 0.7,
			TimeoutSec:  120,
		},
		Engines: DefaultEngines(),
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DefaultEngines returns the four stock research engines. Each engine is a
// persona over the one shared backend; they differ only in how they are
// instructed to research and present findings.
func DefaultEngines() []EngineConfig {
	return []EngineConfig{
		{
			ID: "OpenAI Deep Research",
			Persona: "You are OpenAI Deep Research, an exhaustive research analyst. " +
				"Investigate the question from multiple angles, cover background, current " +
				"state and open debates, and present a thorough, well-organized answer.",
		},
		{
			ID: "Gemini Deep Research",
			Persona: "You are Gemini Deep Research, a methodical research analyst. " +
				"Work through the question step by step, distinguish established facts " +
				"from interpretation, and cite the kind of sources that support each claim.",
		},
		{
			ID: "Perplexity Research",
			Persona: "You are Perplexity, a concise citation-forward research assistant. " +
				"Answer directly and briefly, lead with the most load-bearing facts, and " +
				"note where authoritative sources agree.",
		},
		{
			ID: "Claude Research",
			Persona: "You are Claude, a careful research analyst. Answer thoroughly but " +
				"flag uncertainty explicitly, call out weak evidence, and separate what is " +
				"well-established from what is contested.",
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Server defaults
	viper.SetDefault("server.addr", defaults.Server.Addr)
	viper.SetDefault("server.shutdown_timeout_sec", defaults.Server.ShutdownTimeoutSec)

	// Capability defaults
	viper.SetDefault("capability.base_url", defaults.Capability.BaseURL)
	viper.SetDefault("capability.model", defaults.Capability.Model)
	viper.SetDefault("capability.max_tokens", defaults.Capability.MaxTokens)
	viper.SetDefault("capability.temperature", defaults.Capability.Temperature)
	viper.SetDefault("capability.api_key", defaults.Capability.APIKey)
	viper.SetDefault("capability.timeout_sec", defaults.Capability.TimeoutSec)

	// Engine defaults
	engines := make([]map[string]any, 0, len(defaults.Engines))
	for _, e := range defaults.Engines {
		engines = append(engines, map[string]any{"id": e.ID, "persona": e.Persona})
	}
	viper.SetDefault("engines", engines)

	// Logging defaults
	viper.SetDefault("logging.level", defaults.Logging.Level)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "quorum")
	}
	// Fall back to ~/.config/quorum
	home, err := os.UserHomeDir()
	if err != nil {
		return ".quorum"
	}
	return filepath.Join(home, ".config", "quorum")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
