// Package logging configures the leveled diagnostics written to stderr.
// Command results never go through the logger; they are printed by the
// output package so that stdout stays machine-readable.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// EnvLevel overrides the configured level when set.
const EnvLevel = "COMPUTER_USE_LOG_LEVEL"

// ParseLevel parses a log level string into slog.Level.
// Unknown values fall back to warn.
func ParseLevel(levelStr string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// New returns a text logger writing to w at the given level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Setup builds the process logger from the flag value, the environment and
// the configured default, in that order of precedence, and installs it as
// the slog default.
func Setup(flagLevel, configLevel string) *slog.Logger {
	levelStr := configLevel
	if env := os.Getenv(EnvLevel); env != "" {
		levelStr = env
	}
	if flagLevel != "" {
		levelStr = flagLevel
	}
	logger := New(os.Stderr, ParseLevel(levelStr))
	slog.SetDefault(logger)
	return logger
}
