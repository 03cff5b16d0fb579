// Package log builds the structured loggers used across the server.
//
// Loggers are injected, never global: each component receives a
// *slog.Logger through its constructor and may add context with
// logger.With("component", ...). Output always goes to stderr because
// stdout is reserved for JSON-RPC when the server runs on the stdio
// transport.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger aliases *slog.Logger so components depend on the standard
// library type directly.
type Logger = *slog.Logger

// Config defines logger construction options.
type Config struct {
	// Level is the minimum level to emit. Default: slog.LevelInfo.
	Level slog.Level

	// JSON selects JSON output instead of text. The serve command
	// defaults to JSON; stdio mode uses text.
	JSON bool

	// AddSource attaches file:line to each record.
	AddSource bool
}

// New creates a logger writing to stderr.
func New(cfg Config) Logger {
	return NewWithWriter(os.Stderr, cfg)
}

// NewWithWriter creates a logger writing to w. Tests use this with a
// bytes.Buffer to inspect output.
func NewWithWriter(w io.Writer, cfg Config) Logger {
	opts := &slog.HandlerOptions{
		Level:     cfg.Level,
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	if cfg.JSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

// NewNop creates a logger that discards everything. Test-only; wiring
// it into production code hides failures.
func NewNop() Logger {
	return slog.New(slog.DiscardHandler)
}

// ParseLevel maps a configuration string (debug, info, warn, error)
// to its slog level. Matching is case-insensitive.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}
