package config

import (
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg == nil {
		t.Fatal("Default() returned nil")
	}

	// Verify default server config
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, ":8080")
	}
	if cfg.Server.ShutdownTimeoutSec != 15 {
		t.Errorf("Server.ShutdownTimeoutSec = %d, want 15", cfg.Server.ShutdownTimeoutSec)
	}

	// Verify default capability config
	if cfg.Capability.BaseURL != "https://api.openai.com/v1" {
		t.Errorf("Capability.BaseURL = %q, want OpenAI endpoint", cfg.Capability.BaseURL)
	}
	if cfg.Capability.Model != "gpt-4o" {
		t.Errorf("Capability.Model = %q, want %q", cfg.Capability.Model, "gpt-4o")
	}
	if cfg.Capability.MaxTokens != 2000 {
		t.Errorf("Capability.MaxTokens = %d, want 2000", cfg.Capability.MaxTokens)
	}
	if cfg.Capability.Temperature != 0.7 {
		t.Errorf("Capability.Temperature = %f, want 0.7", cfg.Capability.Temperature)
	}
	if cfg.Capability.APIKey != "" {
		t.Errorf("Capability.APIKey = %q, want empty", cfg.Capability.APIKey)
	}

	// Verify default logging config
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}
}

func TestDefault_Engines(t *testing.T) {
	cfg := Default()

	if len(cfg.Engines) != 4 {
		t.Fatalf("Engines = %d, want 4", len(cfg.Engines))
	}

	wantIDs := []string{
		"OpenAI Deep Research",
		"Gemini Deep Research",
		"Perplexity Research",
		"Claude Research",
	}
	for i, want := range wantIDs {
		if cfg.Engines[i].ID != want {
			t.Errorf("Engines[%d].ID = %q, want %q", i, cfg.Engines[i].ID, want)
		}
		if cfg.Engines[i].Persona == "" {
			t.Errorf("Engines[%d].Persona is empty", i)
		}
	}
}

func TestDefault_Validates(t *testing.T) {
	cfg := Default()
	if errs := cfg.Validate(); len(errs) > 0 {
		t.Errorf("Default() config should validate, got: %v", ValidationErrors(errs))
	}
}

func TestDurationHelpers(t *testing.T) {
	cfg := Default()

	if cfg.Capability.Timeout() != 120*time.Second {
		t.Errorf("Capability.Timeout() = %v, want 120s", cfg.Capability.Timeout())
	}
	if cfg.Server.ShutdownTimeout() != 15*time.Second {
		t.Errorf("Server.ShutdownTimeout() = %v, want 15s", cfg.Server.ShutdownTimeout())
	}
}
