// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Defaults applied by MergeWithDefaults when a field is unset.
const (
	DefaultPort             = 8080
	DefaultLogLevel         = "info"
	DefaultLogFormat        = "json"
	DefaultMaxUploadBytes   = 10 << 20
	DefaultBatchConcurrency = 4
	DefaultMaxBulletChars   = 300
)

// Config represents the configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or come from CLI flags and env.
type Config struct {
	// Server
	Port           int    `json:"port,omitempty" yaml:"port,omitempty"`
	DatabaseURL    string `json:"database_url,omitempty" yaml:"database_url,omitempty"` // PostgreSQL connection URL
	MaxUploadBytes int64  `json:"max_upload_bytes,omitempty" yaml:"max_upload_bytes,omitempty"`

	// Logging
	LogLevel  string `json:"log_level,omitempty" yaml:"log_level,omitempty"`
	LogFormat string `json:"log_format,omitempty" yaml:"log_format,omitempty"` // json or pretty

	// Parsing
	BatchConcurrency int  `json:"batch_concurrency,omitempty" yaml:"batch_concurrency,omitempty"` // parallel parses in a batch
	MaxBulletChars   int  `json:"max_bullet_chars,omitempty" yaml:"max_bullet_chars,omitempty"`   // report threshold
	CleanInput       bool `json:"clean_input,omitempty" yaml:"clean_input,omitempty"`
	NormalizeSkills  bool `json:"normalize_skills,omitempty" yaml:"normalize_skills,omitempty"`
}

// LoadConfig loads configuration from a file. Files ending in .yaml or .yml
// are read as YAML, everything else as JSON.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// ApplyEnv overrides fields from PORT, DATABASE_URL, LOG_LEVEL, LOG_FORMAT
// and MAX_UPLOAD_BYTES when they are set.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config error: invalid PORT %q: %w", v, err)
		}
		c.Port = port
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}
	if v := os.Getenv("MAX_UPLOAD_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("config error: invalid MAX_UPLOAD_BYTES %q: %w", v, err)
		}
		c.MaxUploadBytes = n
	}
	return nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.MaxUploadBytes < 0 {
		return fmt.Errorf("config error: 'max_upload_bytes' must be non-negative")
	}
	if c.BatchConcurrency < 0 {
		return fmt.Errorf("config error: 'batch_concurrency' must be non-negative")
	}
	if c.MaxBulletChars < 0 {
		return fmt.Errorf("config error: 'max_bullet_chars' must be non-negative")
	}
	switch c.LogFormat {
	case "", "json", "pretty":
	default:
		return fmt.Errorf("config error: 'log_format' must be json or pretty, got %q", c.LogFormat)
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero fields filled from defaults,
// then from the package defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = firstNonZero(defaults.Port, DefaultPort)
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.MaxUploadBytes == 0 {
		result.MaxUploadBytes = firstNonZero(defaults.MaxUploadBytes, DefaultMaxUploadBytes)
	}
	if result.LogLevel == "" {
		result.LogLevel = firstNonZero(defaults.LogLevel, DefaultLogLevel)
	}
	if result.LogFormat == "" {
		result.LogFormat = firstNonZero(defaults.LogFormat, DefaultLogFormat)
	}
	if result.BatchConcurrency == 0 {
		result.BatchConcurrency = firstNonZero(defaults.BatchConcurrency, DefaultBatchConcurrency)
	}
	if result.MaxBulletChars == 0 {
		result.MaxBulletChars = firstNonZero(defaults.MaxBulletChars, DefaultMaxBulletChars)
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

func firstNonZero[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}
