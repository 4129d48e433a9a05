// Package logging builds the file-backed logger. The TUI owns the terminal,
// so nothing in the browser may log to stdout or stderr while it runs.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// DefaultPath returns the log file path under the user state dir.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "charview", "charview.log"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".local", "state", "charview", "charview.log"), nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open returns a logger writing to the given file, plus its closer. On any
// setup failure the logger is a no-op writer rather than an error: logging
// must never take the tool down.
func Open(path string) (zerolog.Logger, io.Closer) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return zerolog.New(io.Discard), nopCloser{}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return zerolog.New(io.Discard), nopCloser{}
	}
	logger := zerolog.New(f).With().Timestamp().Logger()
	return logger, f
}
