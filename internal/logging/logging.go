package logging

import (
	"io"
	"log/slog"
	"os"
)

// Logger is the package-level structured logger.
var Logger *slog.Logger

// Verbose reports whether debug logging is enabled.
var Verbose bool

func init() {
	Setup(false, false, os.Stderr)
}

// Setup configures the package logger. When verbose is true, debug
// records are emitted. When jsonOutput is true, records are written
// as JSON. A nil writer falls back to stderr.
func Setup(verbose, jsonOutput bool, w io.Writer) {
	if w == nil {
		w = os.Stderr
	}

	Verbose = verbose

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if jsonOutput {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	Logger = slog.New(handler)
}

// Debug logs a debug message with key-value attributes.
func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}

// Info logs an info message with key-value attributes.
func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

// Warn logs a warning message with key-value attributes.
func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}

// Error logs an error message with key-value attributes.
func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}

// With returns a logger with the given attributes attached.
func With(args ...any) *slog.Logger {
	return Logger.With(args...)
}
