// Package logging configures run logging for commands that rewrite
// journal files.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// New builds a logger that writes JSON lines to <dir>/<name>.log and
// human-readable output to stderr, mirroring the audit trail the
// metrics updater keeps alongside goal files. The returned closer
// releases the log file.
func New(dir, name string, verbose bool) (zerolog.Logger, func(), error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("creating log directory: %w", err)
	}

	path := filepath.Join(dir, name+".log")
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("opening log file: %w", err)
	}

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	console := zerolog.ConsoleWriter{Out: os.Stderr}
	logger := zerolog.New(zerolog.MultiLevelWriter(console, file)).
		Level(level).
		With().Timestamp().Logger()

	return logger, func() { file.Close() }, nil
}
