// Package logging configures the zerolog logger. The TUI owns the terminal,
// so logs go to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ParseLevel maps a level name to a zerolog level, defaulting to info
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	case "info":
		fallthrough
	default:
		return zerolog.InfoLevel
	}
}

// New builds a logger writing JSON lines to w
func New(w io.Writer, level string) zerolog.Logger {
	return zerolog.New(w).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Str("app", "copilotdesk").
		Logger()
}

// NewConsole builds a human-readable logger for one-shot commands
func NewConsole(w io.Writer, level string) zerolog.Logger {
	return New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}, level)
}

// OpenFile opens path for appending and returns a logger over it. An empty
// path disables logging. The returned closer is never nil.
func OpenFile(path, level string) (zerolog.Logger, io.Closer, error) {
	if path == "" || ParseLevel(level) == zerolog.Disabled {
		return zerolog.Nop(), io.NopCloser(nil), nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return zerolog.Nop(), io.NopCloser(nil), fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return zerolog.Nop(), io.NopCloser(nil), fmt.Errorf("failed to open log file: %w", err)
	}

	return New(f, level), f, nil
}
