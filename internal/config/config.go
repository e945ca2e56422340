// Package config loads the etch configuration file. One TOML file covers
// both binaries: the editor reads [log], etchdev reads [lint].
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// FileName is the per-project config file looked up in the working
// directory before falling back to the user-level file.
const FileName = ".etch.toml"

// Config is the root of the TOML document.
type Config struct {
	Log  LogConfig  `toml:"log"`
	Lint LintConfig `toml:"lint"`
}

// LogConfig controls the editor's file logger.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// LintConfig tunes how etchdev invokes the linter. Tool replaces the binary
// name; ExtraArgs are appended after each target's fixed argument list and
// never replace it.
type LintConfig struct {
	Tool      string        `toml:"tool"`
	ExtraArgs []string      `toml:"extra_args"`
	Timeout   time.Duration `toml:"-"`

	// RawTimeout holds the TOML value ("2m", "90s") before parsing.
	RawTimeout string `toml:"timeout"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Log: LogConfig{
			Level: "disabled",
		},
		Lint: LintConfig{
			Tool: "golangci-lint",
		},
	}
}

// Load reads the config file at path. An empty path walks the lookup order:
// ./.etch.toml, then ~/.config/etch/etch.toml, then defaults. A missing
// file is only an error when the path was given explicitly.
func Load(path string) (Config, error) {
	if path != "" {
		cfg, err := loadFile(path, true)
		if err != nil {
			return Config{}, err
		}
		return *cfg, nil
	}
	for _, candidate := range lookupPaths() {
		cfg, err := loadFile(candidate, false)
		if err != nil {
			return Config{}, err
		}
		if cfg != nil {
			return *cfg, nil
		}
	}
	return Default(), nil
}

func lookupPaths() []string {
	paths := []string{FileName}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "etch", "etch.toml"))
	}
	return paths
}

// loadFile parses one candidate. It returns (nil, nil) when the file does
// not exist and was not explicitly requested.
func loadFile(path string, explicit bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config load failed (%s): %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	if err := finalize(&cfg); err != nil {
		return nil, fmt.Errorf("config invalid (%s): %w", path, err)
	}
	return &cfg, nil
}

func finalize(cfg *Config) error {
	if cfg.Lint.Tool == "" {
		cfg.Lint.Tool = "golangci-lint"
	}
	if strings.ContainsAny(cfg.Lint.Tool, " \t") {
		return fmt.Errorf("lint.tool %q must be a bare command name or path", cfg.Lint.Tool)
	}
	if cfg.Lint.RawTimeout != "" {
		d, err := time.ParseDuration(cfg.Lint.RawTimeout)
		if err != nil {
			return fmt.Errorf("lint.timeout %q: %w", cfg.Lint.RawTimeout, err)
		}
		if d < 0 {
			return fmt.Errorf("lint.timeout must be non-negative, got %s", d)
		}
		cfg.Lint.Timeout = d
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Log.Level)) {
	case "", "disabled", "off", "none":
		cfg.Log.Level = "disabled"
	case "trace", "debug", "info", "warn", "error":
		cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	default:
		return fmt.Errorf("log.level %q is not a known level", cfg.Log.Level)
	}
	return nil
}
