// Package config loads parley settings from an optional YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/samdwyer/parley/internal/ui"
)

// Output backends.
const (
	BackendTcell = "tcell"
	BackendANSI  = "ansi"
)

// Config holds client configuration options.
type Config struct {
	// Nick is the name local messages are sent under.
	Nick string `yaml:"nick"`
	// Backend selects the terminal driver, "tcell" or "ansi".
	Backend string `yaml:"backend"`
	// LogFile receives structured logs. Empty means logger.DefaultPath.
	LogFile   string `yaml:"log_file"`
	Debug     bool   `yaml:"debug"`
	Telemetry bool   `yaml:"telemetry"`
	// RosterWidth fixes the roster column. Zero sizes it to its content.
	RosterWidth  int   `yaml:"roster_width"`
	HistoryLimit int   `yaml:"history_limit"`
	Theme        Theme `yaml:"theme"`
}

// Theme holds hex colours such as "#c0c0c0". Empty means the terminal
// default.
type Theme struct {
	Foreground string `yaml:"foreground"`
	Background string `yaml:"background"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Nick:         "me",
		Backend:      BackendTcell,
		HistoryLimit: 500,
	}
}

// Path returns the config file location: $PARLEY_CONFIG, else
// $XDG_CONFIG_HOME/parley/config.yaml, else ~/.config/parley/config.yaml.
func Path() string {
	if p := os.Getenv("PARLEY_CONFIG"); p != "" {
		return p
	}
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "parley", "config.yaml")
}

// Load reads the default config file if present, then applies environment
// overrides and validates the result.
func Load() (*Config, error) {
	path := Path()
	if path == "" {
		return finish(Default())
	}
	cfg, err := read(path)
	if errors.Is(err, os.ErrNotExist) {
		return finish(Default())
	}
	if err != nil {
		return nil, err
	}
	return finish(cfg)
}

// LoadFromPath reads the given file, which must exist.
func LoadFromPath(path string) (*Config, error) {
	cfg, err := read(path)
	if err != nil {
		return nil, err
	}
	return finish(cfg)
}

func read(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing YAML in %s: %w", path, err)
	}
	return cfg, nil
}

func finish(cfg *Config) (*Config, error) {
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("PARLEY_NICK")); v != "" {
		cfg.Nick = v
	}
	if v := strings.TrimSpace(os.Getenv("PARLEY_BACKEND")); v != "" {
		cfg.Backend = strings.ToLower(v)
	}
	if v := os.Getenv("PARLEY_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v, ok := envBool("PARLEY_DEBUG"); ok {
		cfg.Debug = v
	}
	if v, ok := envBool("PARLEY_TELEMETRY"); ok {
		cfg.Telemetry = v
	}
	if v := strings.TrimSpace(os.Getenv("PARLEY_HISTORY_LIMIT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.HistoryLimit = n
		}
	}
}

func envBool(key string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	default:
		return false, false
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendTcell, BackendANSI:
	default:
		return fmt.Errorf("unknown backend %q (want %s or %s)", c.Backend, BackendTcell, BackendANSI)
	}
	if strings.TrimSpace(c.Nick) == "" {
		return errors.New("nick must not be empty")
	}
	if c.RosterWidth < 0 {
		return fmt.Errorf("roster_width must not be negative, got %d", c.RosterWidth)
	}
	if c.HistoryLimit < 0 {
		return fmt.Errorf("history_limit must not be negative, got %d", c.HistoryLimit)
	}
	if _, err := c.UITheme(); err != nil {
		return err
	}
	return nil
}

// UITheme parses the configured colours.
func (c *Config) UITheme() (ui.Theme, error) {
	theme, err := ui.NewTheme(c.Theme.Foreground, c.Theme.Background)
	if err != nil {
		return ui.Theme{}, fmt.Errorf("theme: %w", err)
	}
	return theme, nil
}
