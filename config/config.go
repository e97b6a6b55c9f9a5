// Package config handles configuration loading from TOML files and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
)

// DefaultFile is looked up in the working directory when no file is named.
const DefaultFile = ".codeview.toml"

// DefaultMaxBytes is the default size cap for scanned files.
const DefaultMaxBytes = 2 * 1024 * 1024

// Config is the root configuration structure.
type Config struct {
	// Jobs is the number of parallel workers for directory runs.
	Jobs int `toml:"jobs"`

	// MaxBytes skips files larger than this.
	MaxBytes int64 `toml:"max_bytes"`

	LogLevel string `toml:"log_level"`

	// Ext restricts directory runs when no --ext flag is given.
	Ext []string `toml:"ext"`

	// IgnoreDirs are skipped in addition to the built-in list.
	IgnoreDirs []string `toml:"ignore_dirs"`

	// MaxLines truncates expanded items in plain output. Zero disables it.
	MaxLines int `toml:"max_lines"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Jobs:     runtime.NumCPU(),
		MaxBytes: DefaultMaxBytes,
		LogLevel: "warn",
	}
}

// Load builds the configuration from defaults, a TOML file and environment
// variable overrides. An empty path falls back to CODEVIEW_CONFIG and then
// to DefaultFile; only the default file may be absent.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := true
	if path == "" {
		path = os.Getenv("CODEVIEW_CONFIG")
	}
	if path == "" {
		path = DefaultFile
		explicit = false
	}

	if _, err := os.Stat(path); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
	} else if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate returns an error if the configuration is invalid.
func (c *Config) Validate() error {
	var errs []error

	if c.Jobs < 0 {
		errs = append(errs, fmt.Errorf("jobs=%d must not be negative", c.Jobs))
	}
	if c.MaxBytes < 0 {
		errs = append(errs, fmt.Errorf("max_bytes=%d must not be negative", c.MaxBytes))
	}
	if c.MaxLines < 0 {
		errs = append(errs, fmt.Errorf("max_lines=%d must not be negative", c.MaxLines))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Level returns the zerolog level named by LogLevel. Empty means warn.
func (c *Config) Level() (zerolog.Level, error) {
	if c.LogLevel == "" {
		return zerolog.WarnLevel, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.NoLevel, fmt.Errorf("log_level=%q is not a known level", c.LogLevel)
	}
	return level, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) error {
	for _, setter := range []struct {
		env   string
		apply func(string) error
	}{
		{"CODEVIEW_JOBS", func(v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return err
			}
			cfg.Jobs = n
			return nil
		}},
		{"CODEVIEW_MAX_BYTES", func(v string) error {
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return err
			}
			cfg.MaxBytes = n
			return nil
		}},
		{"CODEVIEW_LOG_LEVEL", func(v string) error {
			cfg.LogLevel = v
			return nil
		}},
	} {
		v := os.Getenv(setter.env)
		if v == "" {
			continue
		}
		if err := setter.apply(v); err != nil {
			return fmt.Errorf("%s=%q: %w", setter.env, v, err)
		}
	}
	return nil
}
