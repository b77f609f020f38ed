// Package logger provides structured logging configuration using log/slog.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config holds logger configuration.
type Config struct {
	Level  slog.Level
	Format string    // "text" or "json"
	Output io.Writer // defaults to os.Stderr
}

// NewLogger creates a configured slog.Logger.
func NewLogger(cfg Config) *slog.Logger {
	var handler slog.Handler

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level: cfg.Level,
		// Add a source location for debug level
		AddSource: cfg.Level <= slog.LevelDebug,
	}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	return slog.New(handler)
}

// DefaultConfig returns the default logger configuration.
// Parses LIVESPECTRUM_LOG_LEVEL (DEBUG, INFO, WARN, WARNING, ERROR; default INFO)
// and LIVESPECTRUM_LOG_FORMAT (text or json; default text).
func DefaultConfig() Config {
	return Config{
		Level:  ParseLevel(os.Getenv("LIVESPECTRUM_LOG_LEVEL"), slog.LevelInfo),
		Format: parseFormat(os.Getenv("LIVESPECTRUM_LOG_FORMAT")),
	}
}

// ParseLevel converts a level name to a slog.Level, returning fallback for unknown names.
func ParseLevel(name string, fallback slog.Level) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return fallback
	}
}

func parseFormat(name string) string {
	if strings.EqualFold(strings.TrimSpace(name), "json") {
		return "json"
	}
	return "text"
}
