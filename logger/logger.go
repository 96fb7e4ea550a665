// Package logger builds the structured logger shared by the binary and the
// engine.
package logger

import (
	"io"
	"log/slog"
	"strings"
)

// Log format values.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config represents logger configuration.
type Config struct {
	Level     string // "debug", "info", "warn", "error"
	Format    string // "text", "json"
	AddSource bool
}

// DefaultConfig returns warn-level text logging, quiet enough to share a
// terminal with the game.
func DefaultConfig() Config {
	return Config{Level: "warn", Format: FormatText}
}

// LogLevel converts the string level to slog.Level. Unknown levels map to
// info.
func (c Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// IsJSON reports whether the format is JSON.
func (c Config) IsJSON() bool {
	return strings.EqualFold(c.Format, FormatJSON)
}

// New returns a logger writing to w.
func New(w io.Writer, c Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel(), AddSource: c.AddSource}
	if c.IsJSON() {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
