// Package logging configures the editor's zerolog file logger. A raw-mode
// editor owns the tty, so log output always goes to a file, never to
// stdout/stderr.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

const (
	EnvLogLevel = "ETCH_LOG_LEVEL"
	EnvLogFile  = "ETCH_LOG_FILE"
)

// Options selects the logger's level and destination. Zero values mean
// disabled logging and the default state-dir file.
type Options struct {
	Level string
	File  string
	Debug bool // forces debug level regardless of Level
}

// Open builds the logger and returns it with a close func for the backing
// file. A disabled logger returns a no-op close.
func Open(opts Options) (zerolog.Logger, func() error, error) {
	applyEnvOverrides(&opts)

	level := parseLevel(opts.Level)
	if opts.Debug {
		level = zerolog.DebugLevel
	}
	if level == zerolog.Disabled {
		return zerolog.Nop(), func() error { return nil }, nil
	}

	path := opts.File
	if path == "" {
		path = defaultLogPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("opening log file: %w", err)
	}

	logger := zerolog.New(f).Level(level).With().Timestamp().Logger()
	return logger, f.Close, nil
}

func applyEnvOverrides(opts *Options) {
	if v := os.Getenv(EnvLogLevel); v != "" {
		opts.Level = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		opts.File = v
	}
}

func parseLevel(raw string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.Disabled
	}
}

func defaultLogPath() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "etch", "etch.log")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "state", "etch", "etch.log")
	}
	return filepath.Join(os.TempDir(), "etch.log")
}
