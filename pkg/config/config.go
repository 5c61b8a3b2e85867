// Package config loads boxscope settings from a TOML file.
//
// The file lives at $XDG_CONFIG_HOME/boxscope/config.toml (or
// ~/.config/boxscope/config.toml). Missing files and missing keys fall back
// to [Default]; command-line flags override file values.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/boxscope/pkg/errors"
	"github.com/matzehuels/boxscope/pkg/pointer"
)

const appName = "boxscope"

// Config holds boxscope configuration.
type Config struct {
	Pointer PointerConfig `toml:"pointer"`
	Display DisplayConfig `toml:"display"`
	Server  ServerConfig  `toml:"server"`
	Log     LogConfig     `toml:"log"`
}

// PointerConfig controls pointer sampling.
type PointerConfig struct {
	IntervalMS int    `toml:"interval_ms"`
	ZeroWidth  string `toml:"zero_width"` // "skip" or "unit"
}

// DisplayConfig describes the surface the visualization is drawn on.
type DisplayConfig struct {
	// Width is the available display width. Zero means "measure the terminal".
	Width float64 `toml:"width"`
}

// ServerConfig controls the inspection server.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `toml:"level"` // "debug", "info", "warn", "error"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Pointer: PointerConfig{IntervalMS: int(pointer.DefaultInterval / time.Millisecond), ZeroWidth: "skip"},
		Server:  ServerConfig{Addr: "127.0.0.1:7070"},
		Log:     LogConfig{Level: "info"},
	}
}

// Interval returns the pointer sampling interval.
func (c *Config) Interval() time.Duration {
	if c.Pointer.IntervalMS <= 0 {
		return pointer.DefaultInterval
	}
	return time.Duration(c.Pointer.IntervalMS) * time.Millisecond
}

// ZeroWidthPolicy returns the parsed zero-width policy.
func (c *Config) ZeroWidthPolicy() (pointer.ZeroWidthPolicy, error) {
	p, err := pointer.ParseZeroWidthPolicy(c.Pointer.ZeroWidth)
	if err != nil {
		return p, errors.Wrap(errors.ErrCodeInvalidConfig, err, "pointer.zero_width")
	}
	return p, nil
}

// Dir returns the boxscope config directory path.
func Dir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, appName)
}

// Path returns the default config file path.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file at path. An empty path selects Path(). A
// missing file yields the defaults; a malformed file is an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = Path()
	}
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if _, err := cfg.ZeroWidthPolicy(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path, creating parent directories. An empty path
// selects Path().
func Save(path string, cfg *Config) error {
	if path == "" {
		path = Path()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}
