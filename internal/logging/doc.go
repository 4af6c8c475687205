// Package logging provides structured logging for Quorum.
//
// This package wraps Go's log/slog to provide JSON-formatted logs with
// context propagation support. It is designed to make multi-engine research
// requests traceable after the fact: every log line produced while serving
// a request carries the request ID, and lines produced inside a pipeline
// stage or engine call carry those identifiers too.
//
// # Features
//
//   - JSON-formatted structured logging via slog
//   - Configurable log levels (DEBUG, INFO, WARN, ERROR)
//   - Context propagation (request ID, pipeline stage, engine ID)
//
// # Thread Safety
//
// All types in this package are safe for concurrent use. The [Logger] type
// uses Go's slog internally which is designed for concurrent access. Child
// loggers created via With* methods share the underlying writer safely.
//
// # Basic Usage
//
// Create a logger writing to stderr:
//
//	logger := logging.NewLogger(os.Stderr, "INFO")
//
//	logger.Debug("detailed info", "key", "value")
//	logger.Info("synthesis completed", "duration_ms", 150)
//	logger.Warn("degraded parse", "stage", "synthesize")
//	logger.Error("request failed", "error", err.Error())
//
// # Context Propagation
//
// Create child loggers with persistent context attributes:
//
//	requestLogger := logger.WithRequest("req-abc123")
//	engineLogger := requestLogger.WithEngine("Perplexity Research")
//	stageLogger := requestLogger.WithStage("fanout")
package logging
