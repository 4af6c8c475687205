package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "capability.max_tokens")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateServer()...)
	errors = append(errors, c.validateCapability()...)
	errors = append(errors, c.validateEngines()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

func (c *Config) validateServer() []ValidationError {
	var errors []ValidationError

	if c.Server.Addr == "" {
		errors = append(errors, ValidationError{
			Field:   "server.addr",
			Value:   c.Server.Addr,
			Message: "listen address must not be empty",
		})
	}
	if c.Server.ShutdownTimeoutSec < 0 {
		errors = append(errors, ValidationError{
			Field:   "server.shutdown_timeout_sec",
			Value:   c.Server.ShutdownTimeoutSec,
			Message: "must be zero or positive",
		})
	}

	return errors
}

func (c *Config) validateCapability() []ValidationError {
	var errors []ValidationError

	if c.Capability.BaseURL == "" {
		errors = append(errors, ValidationError{
			Field:   "capability.base_url",
			Value:   c.Capability.BaseURL,
			Message: "base URL must not be empty",
		})
	}
	if c.Capability.Model == "" {
		errors = append(errors, ValidationError{
			Field:   "capability.model",
			Value:   c.Capability.Model,
			Message: "model identifier must not be empty",
		})
	}
	if c.Capability.MaxTokens <= 0 {
		errors = append(errors, ValidationError{
			Field:   "capability.max_tokens",
			Value:   c.Capability.MaxTokens,
			Message: "must be positive",
		})
	}
	if c.Capability.Temperature < 0 || c.Capability.Temperature > 2 {
		errors = append(errors, ValidationError{
			Field:   "capability.temperature",
			Value:   c.Capability.Temperature,
			Message: "must be between 0 and 2",
		})
	}
	if c.Capability.TimeoutSec <= 0 {
		errors = append(errors, ValidationError{
			Field:   "capability.timeout_sec",
			Value:   c.Capability.TimeoutSec,
			Message: "must be positive",
		})
	}

	return errors
}

func (c *Config) validateEngines() []ValidationError {
	var errors []ValidationError

	if len(c.Engines) == 0 {
		errors = append(errors, ValidationError{
			Field:   "engines",
			Value:   c.Engines,
			Message: "at least one engine must be configured",
		})
		return errors
	}

	seen := make(map[string]bool, len(c.Engines))
	for i, engine := range c.Engines {
		field := fmt.Sprintf("engines[%d]", i)
		if engine.ID == "" {
			errors = append(errors, ValidationError{
				Field:   field + ".id",
				Value:   engine.ID,
				Message: "engine ID must not be empty",
			})
			continue
		}
		if seen[engine.ID] {
			errors = append(errors, ValidationError{
				Field:   field + ".id",
				Value:   engine.ID,
				Message: "engine ID must be unique",
			})
		}
		seen[engine.ID] = true

		if engine.Persona == "" {
			errors = append(errors, ValidationError{
				Field:   field + ".persona",
				Value:   engine.Persona,
				Message: "engine persona must not be empty",
			})
		}
	}

	return errors
}

func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errors
}
