// Package config loads .purefunc.toml for the purefuncgen command.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pelletier/go-toml/v2"
)

// DefaultFile is looked up in the root directory when no path is given.
const DefaultFile = ".purefunc.toml"

const defaultDebounceMs = 200

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Include          []string `toml:"include"`
	Exclude          []string `toml:"exclude"`
	RespectGitignore bool     `toml:"respect_gitignore"`
	Jobs             int      `toml:"jobs"` // 0 = runtime.NumCPU()
	Watch            Watch    `toml:"watch"`
}

type Watch struct {
	DebounceMs int `toml:"debounce_ms"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Include:          []string{"**/*.go"},
		RespectGitignore: true,
		Watch:            Watch{DebounceMs: defaultDebounceMs},
	}
}

// Load reads path on top of the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("%w: %s: %s", ErrInvalid, path, strict.String())
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalid, path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks value ranges and glob syntax.
func (c *Config) Validate() error {
	if c.Jobs < 0 {
		return fmt.Errorf("%w: jobs must not be negative, got %d", ErrInvalid, c.Jobs)
	}

	if c.Watch.DebounceMs < 0 {
		return fmt.Errorf("%w: watch.debounce_ms must not be negative, got %d", ErrInvalid, c.Watch.DebounceMs)
	}

	for _, list := range [][]string{c.Include, c.Exclude} {
		for _, p := range list {
			if !doublestar.ValidatePattern(p) {
				return fmt.Errorf("%w: bad glob pattern %q", ErrInvalid, p)
			}
		}
	}

	return nil
}

// Workers returns the number of files processed at once.
func (c *Config) Workers() int {
	if c.Jobs == 0 {
		return runtime.NumCPU()
	}

	return c.Jobs
}

// Debounce returns the watch debounce interval.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Watch.DebounceMs) * time.Millisecond
}
