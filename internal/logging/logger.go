package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// Log levels supported by the logger
const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

// Logger provides structured logging with context propagation.
// It is safe for concurrent use.
type Logger struct {
	logger *slog.Logger
	attrs  []slog.Attr // Persistent attributes (request, stage, engine)
}

// NewLogger creates a new Logger that writes JSON-formatted logs to w.
//
// The level parameter controls which messages are logged:
//   - DEBUG: All messages
//   - INFO: Info, Warn, and Error messages
//   - WARN: Warn and Error messages
//   - ERROR: Only Error messages
func NewLogger(w io.Writer, level string) *Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}

	return &Logger{
		logger: slog.New(slog.NewJSONHandler(w, opts)),
		attrs:  make([]slog.Attr, 0),
	}
}

// parseLevel converts a string log level to slog.Level.
// Defaults to INFO if the level string is not recognized.
func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithRequest returns a new Logger with the request ID added to all log
// entries. This creates a child logger that inherits all existing attributes.
func (l *Logger) WithRequest(requestID string) *Logger {
	return l.withAttr(slog.String("request_id", requestID))
}

// WithEngine returns a new Logger with the engine ID added to all log
// entries. This creates a child logger that inherits all existing attributes.
func (l *Logger) WithEngine(engineID string) *Logger {
	return l.withAttr(slog.String("engine_id", engineID))
}

// WithStage returns a new Logger with the pipeline stage added to all log
// entries. Stages are "decompose", "fanout" and "synthesize".
func (l *Logger) WithStage(stage string) *Logger {
	return l.withAttr(slog.String("stage", stage))
}

// With returns a new Logger with arbitrary key-value attributes.
// Keys and values are provided as alternating arguments.
// This creates a child logger that inherits all existing attributes.
func (l *Logger) With(args ...any) *Logger {
	if len(args) == 0 {
		return l
	}

	newAttrs := make([]slog.Attr, 0, len(l.attrs)+len(args)/2)
	newAttrs = append(newAttrs, l.attrs...)

	for i := 0; i < len(args)-1; i += 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}
		newAttrs = append(newAttrs, slog.Any(key, args[i+1]))
	}

	return &Logger{
		logger: l.logger,
		attrs:  newAttrs,
	}
}

// withAttr creates a new Logger with an additional attribute.
func (l *Logger) withAttr(attr slog.Attr) *Logger {
	newAttrs := make([]slog.Attr, len(l.attrs)+1)
	copy(newAttrs, l.attrs)
	newAttrs[len(l.attrs)] = attr

	return &Logger{
		logger: l.logger,
		attrs:  newAttrs,
	}
}

// Debug logs a message at DEBUG level with optional key-value pairs.
func (l *Logger) Debug(msg string, args ...any) {
	l.log(slog.LevelDebug, msg, args...)
}

// Info logs a message at INFO level with optional key-value pairs.
func (l *Logger) Info(msg string, args ...any) {
	l.log(slog.LevelInfo, msg, args...)
}

// Warn logs a message at WARN level with optional key-value pairs.
func (l *Logger) Warn(msg string, args ...any) {
	l.log(slog.LevelWarn, msg, args...)
}

// Error logs a message at ERROR level with optional key-value pairs.
func (l *Logger) Error(msg string, args ...any) {
	l.log(slog.LevelError, msg, args...)
}

// log is the internal logging method that combines persistent attributes
// with per-call arguments.
func (l *Logger) log(level slog.Level, msg string, args ...any) {
	allArgs := make([]any, 0, len(l.attrs)*2+len(args))
	for _, attr := range l.attrs {
		allArgs = append(allArgs, attr.Key, attr.Value.Any())
	}
	allArgs = append(allArgs, args...)

	l.logger.Log(context.Background(), level, msg, allArgs...)
}

// NopLogger returns a Logger that discards all log output.
// Useful for testing or when logging is disabled.
func NopLogger() *Logger {
	return &Logger{
		logger: slog.New(slog.NewJSONHandler(io.Discard, nil)),
		attrs:  make([]slog.Attr, 0),
	}
}

// ParseLevel converts a string level to the corresponding constant.
// Returns LevelInfo if the level string is not recognized.
func ParseLevel(level string) string {
	switch strings.ToUpper(level) {
	case LevelDebug:
		return LevelDebug
	case LevelInfo:
		return LevelInfo
	case LevelWarn:
		return LevelWarn
	case LevelError:
		return LevelError
	default:
		return LevelInfo
	}
}

// ValidLevels returns the list of recognized log level names.
func ValidLevels() []string {
	return []string{LevelDebug, LevelInfo, LevelWarn, LevelError}
}
