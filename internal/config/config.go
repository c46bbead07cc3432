// Package config loads and validates mmsearch configuration.
//
// Configuration comes from an optional YAML file (.mmsearch/config.yaml by
// default) merged over built-in defaults, with command-line flags taking
// precedence over both.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents mmsearch configuration options.
type Config struct {
	// Workers is the number of concurrent search workers.
	Workers int `yaml:"workers"`

	// PollTimeout bounds every queue poll; a silent queue for one full
	// interval signals the pipeline to wind down.
	PollTimeout time.Duration `yaml:"poll_timeout"`

	// Extensions lists the map file suffixes searched under a directory root.
	Extensions []string `yaml:"extensions"`

	// Delimiter separates multiple conjunctive keyword patterns.
	Delimiter string `yaml:"delimiter"`

	// Connector joins node texts in flattened lines.
	Connector string `yaml:"connector"`

	// LineBreak replaces literal line breaks in printed matches.
	LineBreak string `yaml:"line_break"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error).
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Workers:     10,
		PollTimeout: time.Second,
		Extensions:  []string{".mm"},
		Delimiter:   ",,",
		Connector:   " --> ",
		LineBreak:   ` \n `,
		LogLevel:    "info",
	}
}

// LoadConfig loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration without error.
// If the file exists but is malformed, returns an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		// File doesn't exist, return defaults (not an error)
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Durations are written as strings in YAML ("500ms", "2s").
	type yamlConfig struct {
		Workers     int      `yaml:"workers"`
		PollTimeout string   `yaml:"poll_timeout"`
		Extensions  []string `yaml:"extensions"`
		Delimiter   string   `yaml:"delimiter"`
		Connector   string   `yaml:"connector"`
		LineBreak   string   `yaml:"line_break"`
		LogLevel    string   `yaml:"log_level"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply non-zero values from the file over the defaults.
	if yamlCfg.Workers != 0 {
		cfg.Workers = yamlCfg.Workers
	}
	if yamlCfg.PollTimeout != "" {
		timeout, err := time.ParseDuration(yamlCfg.PollTimeout)
		if err != nil {
			return nil, fmt.Errorf("invalid poll_timeout format %q: %w", yamlCfg.PollTimeout, err)
		}
		cfg.PollTimeout = timeout
	}
	if len(yamlCfg.Extensions) > 0 {
		cfg.Extensions = yamlCfg.Extensions
	}
	if yamlCfg.Delimiter != "" {
		cfg.Delimiter = yamlCfg.Delimiter
	}
	if yamlCfg.Connector != "" {
		cfg.Connector = yamlCfg.Connector
	}
	if yamlCfg.LineBreak != "" {
		cfg.LineBreak = yamlCfg.LineBreak
	}
	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .mmsearch/config.yaml in the
// specified directory. If the directory or file doesn't exist, returns
// default configuration without error.
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, ".mmsearch", "config.yaml"))
}

// MergeWithFlags merges CLI flags into the configuration. Non-nil flag
// values override configuration values, letting flags take precedence over
// the config file.
func (c *Config) MergeWithFlags(workers *int, pollTimeout *time.Duration, extensions []string, delimiter *string, logLevel *string) {
	if workers != nil {
		c.Workers = *workers
	}
	if pollTimeout != nil {
		c.PollTimeout = *pollTimeout
	}
	if extensions != nil {
		c.Extensions = extensions
	}
	if delimiter != nil {
		c.Delimiter = *delimiter
	}
	if logLevel != nil {
		c.LogLevel = *logLevel
	}
}

// Validate validates the configuration values.
// Returns an error if any values are invalid.
func (c *Config) Validate() error {
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be > 0, got %d", c.Workers)
	}

	if c.PollTimeout <= 0 {
		return fmt.Errorf("poll_timeout must be > 0, got %v", c.PollTimeout)
	}

	if len(c.Extensions) == 0 {
		return fmt.Errorf("extensions cannot be empty")
	}
	for _, ext := range c.Extensions {
		if strings.TrimSpace(ext) == "" {
			return fmt.Errorf("extensions cannot contain blank entries")
		}
	}

	if c.Delimiter == "" {
		return fmt.Errorf("delimiter cannot be empty")
	}

	if c.Connector == "" {
		return fmt.Errorf("connector cannot be empty")
	}

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	return nil
}
