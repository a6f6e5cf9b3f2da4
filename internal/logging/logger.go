// Package logging configures the structured logger shared by every package.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Logger is the application-wide structured logger instance.
var Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Init initializes the global logger with the specified level and format.
// level: "debug", "info", "warn", "error" (defaults to "warn")
// format: "json" or "text" (defaults to "text")
func Init(level, format string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(level),
	}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	Logger = slog.New(handler)
	slog.SetDefault(Logger)
	return Logger
}

// ParseLevel maps a level name to a slog level
func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// OpenFile opens (or creates) a log file for appending.
// The TUI logs here so output does not tear the alternate screen.
func OpenFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}
