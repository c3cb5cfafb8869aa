// Package logging configures the application logger. The TUI owns
// stdout, so log output always goes to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

var logger *zerolog.Logger

// Setup opens (appending) the log file at path and installs the global
// logger at the given level. An empty path discards all output.
func Setup(level zerolog.Level, path string) error {
	var w io.Writer = io.Discard
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		w = f
	}

	l := zerolog.New(w).Level(level).With().Timestamp().Logger()
	logger = &l
	return nil
}

// Logger returns the configured logger. Before Setup it returns a
// disabled logger so packages can log unconditionally.
func Logger() *zerolog.Logger {
	if logger == nil {
		l := zerolog.Nop()
		logger = &l
	}
	return logger
}
