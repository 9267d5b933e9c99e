package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the YAML configuration of perf-compare.
type Config struct {
	Inputs struct {
		Baseline string `yaml:"baseline"`
		Current  string `yaml:"current"`
	} `yaml:"inputs"`

	Labels struct {
		Baseline string `yaml:"baseline"`
		Current  string `yaml:"current"`
	} `yaml:"labels"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`

	Report struct {
		ShowRecordedInfo  bool `yaml:"show_recorded_info"`
		ShowOverallStatus bool `yaml:"show_overall_status"`
	} `yaml:"report"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	var c Config
	c.Inputs.Baseline = "uat6.json"
	c.Inputs.Current = "uat7.json"
	c.Log.Level = "info"
	return c
}

// Load reads path on top of the defaults.
func Load(path string) (Config, error) {
	c := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return c, fmt.Errorf("parse %s: %w", path, err)
	}
	return c, nil
}

// LoadOrDefault is Load, except that a missing file yields Default.
func LoadOrDefault(path string) (Config, error) {
	c, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return c, err
}

// SlogLevel maps log.level to a slog level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.Log.Level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
