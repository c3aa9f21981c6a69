// Package log sets up the application logger. The TUI owns the terminal, so
// logs go to a file (or nowhere).
package log

import (
	"io"
	"log/slog"
	"os"
)

// New creates a logger writing to the given path. An empty path discards
// everything. The returned closer flushes and closes the log file; call it
// on shutdown.
func New(path string) (*slog.Logger, func() error, error) {
	if path == "" {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		return logger, func() error { return nil }, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, f.Close, nil
}
