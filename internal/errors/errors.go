// Package errors provides centralized error definitions and error handling
// utilities for the Quorum codebase. It defines domain-specific errors,
// semantic error types, error constructors with context wrapping, and error
// classification helpers.
//
// # Error Types
//
// The package provides two categories of errors:
//
// Domain-specific errors represent errors from specific subsystems:
//   - CapabilityError: errors from the upstream language-model backend
//     (transport, authentication, rate limiting)
//   - PipelineError: errors from research pipeline coordination
//
// Semantic errors represent common error conditions:
//   - ValidationError: invalid input or state
//
// # Usage
//
// Creating errors:
//
//	// Domain-specific error
//	err := errors.NewCapabilityError("completion request failed", errors.ErrUpstreamUnavailable)
//
//	// Semantic error
//	err := errors.NewValidationError("question cannot be empty")
//
//	// With context wrapping
//	err := errors.NewCapabilityError("completion failed", baseErr).WithEngine("perplexity")
//
// Checking errors:
//
//	// Check for specific sentinel errors
//	if errors.Is(err, errors.ErrRateLimited) { ... }
//
//	// Check for error types
//	var capErr *errors.CapabilityError
//	if errors.As(err, &capErr) { ... }
//
//	// Use classification helpers
//	if errors.IsRetryable(err) { ... }
//	if errors.IsUserFacing(err) { ... }
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityDebug is for errors that are useful for debugging but not critical.
	SeverityDebug Severity = iota
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo
	// SeverityWarning is for errors that might indicate a problem but aren't critical.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
	// SeverityCritical is for errors that require immediate attention.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Capability-related sentinel errors
var (
	// ErrUnauthorized indicates the upstream backend rejected the credential.
	ErrUnauthorized = New("capability credential rejected")
	// ErrRateLimited indicates the upstream backend applied rate limiting.
	ErrRateLimited = New("capability rate limited")
	// ErrUpstreamUnavailable indicates the upstream backend could not be reached
	// or returned a server-side failure.
	ErrUpstreamUnavailable = New("capability backend unavailable")
	// ErrEmptyCompletion indicates the upstream backend returned no content.
	ErrEmptyCompletion = New("capability returned empty completion")
)

// General sentinel errors
var (
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
	// ErrCanceled indicates that an operation was canceled.
	ErrCanceled = New("operation canceled")
)

// -----------------------------------------------------------------------------
// Base Error Interface
// -----------------------------------------------------------------------------

// QuorumError is the base interface for all Quorum errors.
// It extends the standard error interface with additional methods for
// error handling and classification.
type QuorumError interface {
	error

	// Unwrap returns the underlying error, if any.
	Unwrap() error

	// Is reports whether this error matches the target error.
	Is(target error) bool

	// Severity returns the severity level of this error.
	Severity() Severity

	// IsRetryable returns true if the error is transient and the operation
	// may succeed on retry.
	IsRetryable() bool

	// IsUserFacing returns true if the error message is safe to display
	// to end users.
	IsUserFacing() bool
}

// -----------------------------------------------------------------------------
// Base Error Implementation
// -----------------------------------------------------------------------------

// baseError provides common functionality for all error types.
type baseError struct {
	message    string
	cause      error
	severity   Severity
	retryable  bool
	userFacing bool
}

// Error returns the error message.
func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *baseError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// Severity returns the error severity.
func (e *baseError) Severity() Severity {
	return e.severity
}

// IsRetryable returns whether the error is retryable.
func (e *baseError) IsRetryable() bool {
	return e.retryable
}

// IsUserFacing returns whether the error is safe to show users.
func (e *baseError) IsUserFacing() bool {
	return e.userFacing
}

// -----------------------------------------------------------------------------
// Domain-Specific Errors
// -----------------------------------------------------------------------------

// CapabilityError represents errors from the upstream language-model backend.
//
// Example:
//
//	err := errors.NewCapabilityError("completion request failed", errors.ErrRateLimited)
//	err = err.WithEngine("OpenAI Deep Research").WithStatusCode(429)
type CapabilityError struct {
	baseError
	Engine     string
	Stage      string
	StatusCode int
}

// NewCapabilityError creates a new CapabilityError.
func NewCapabilityError(message string, cause error) *CapabilityError {
	return &CapabilityError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityWarning,
			retryable:  false,
			userFacing: true,
		},
	}
}

// WithEngine adds the engine identifier to the error context.
func (e *CapabilityError) WithEngine(id string) *CapabilityError {
	e.Engine = id
	return e
}

// WithStage adds the pipeline stage name to the error context.
func (e *CapabilityError) WithStage(stage string) *CapabilityError {
	e.Stage = stage
	return e
}

// WithStatusCode adds the upstream HTTP status code to the error context.
// Rate-limit (429) and server-side (5xx) statuses mark the error retryable.
func (e *CapabilityError) WithStatusCode(code int) *CapabilityError {
	e.StatusCode = code
	if code == 429 || code >= 500 {
		e.retryable = true
	}
	return e
}

// WithSeverity sets the error severity.
func (e *CapabilityError) WithSeverity(s Severity) *CapabilityError {
	e.severity = s
	return e
}

// Error returns the formatted error message.
func (e *CapabilityError) Error() string {
	var parts []string
	if e.Engine != "" {
		parts = append(parts, fmt.Sprintf("engine=%s", e.Engine))
	}
	if e.Stage != "" {
		parts = append(parts, fmt.Sprintf("stage=%s", e.Stage))
	}
	if e.StatusCode != 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}

	prefix := "capability error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("capability error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *CapabilityError) Is(target error) bool {
	if _, ok := target.(*CapabilityError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// PipelineError represents errors from research pipeline coordination.
// Per-stage degradation is handled inside the stages themselves; a
// PipelineError is reserved for faults that escape stage-local recovery.
//
// Example:
//
//	err := errors.NewPipelineError("fan-out worker panicked", cause).WithStage("fanout")
type PipelineError struct {
	baseError
	Stage     string
	RequestID string
}

// NewPipelineError creates a new PipelineError.
func NewPipelineError(message string, cause error) *PipelineError {
	return &PipelineError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityError,
			retryable:  false,
			userFacing: false,
		},
	}
}

// WithStage adds the pipeline stage name to the error context.
func (e *PipelineError) WithStage(stage string) *PipelineError {
	e.Stage = stage
	return e
}

// WithRequestID adds the request identifier to the error context.
func (e *PipelineError) WithRequestID(id string) *PipelineError {
	e.RequestID = id
	return e
}

// Error returns the formatted error message.
func (e *PipelineError) Error() string {
	var parts []string
	if e.Stage != "" {
		parts = append(parts, fmt.Sprintf("stage=%s", e.Stage))
	}
	if e.RequestID != "" {
		parts = append(parts, fmt.Sprintf("request=%s", e.RequestID))
	}

	prefix := "pipeline error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("pipeline error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *PipelineError) Is(target error) bool {
	if _, ok := target.(*PipelineError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Semantic Errors
// -----------------------------------------------------------------------------

// ValidationError represents invalid input or state.
//
// Example:
//
//	err := errors.NewValidationError("question cannot be empty")
//	err = err.WithField("question").WithValue("")
type ValidationError struct {
	baseError
	Field string
	Value any
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:    message,
			severity:   SeverityWarning,
			retryable:  false,
			userFacing: true,
		},
	}
}

// WithField adds a field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithValue adds the invalid value to the error context.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// WithCause adds a cause to the error.
func (e *ValidationError) WithCause(cause error) *ValidationError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}

	prefix := "validation error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("validation error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	if errors.Is(target, ErrInvalidInput) {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Error Classification Helpers
// -----------------------------------------------------------------------------

// IsRetryable returns true if the error represents a transient condition
// that may succeed on retry. Note that the pipeline itself never retries;
// this classification exists so callers and logs can distinguish transient
// upstream conditions from permanent ones.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var qerr QuorumError
	if As(err, &qerr) {
		return qerr.IsRetryable()
	}

	if Is(err, ErrRateLimited) || Is(err, ErrUpstreamUnavailable) {
		return true
	}

	return false
}

// IsUserFacing returns true if the error message is safe to display to end
// users. Errors that are not user-facing should be logged and replaced with
// a generic message at the boundary.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}

	var qerr QuorumError
	if As(err, &qerr) {
		return qerr.IsUserFacing()
	}

	var validation *ValidationError
	return As(err, &validation)
}
