// Package config provides configuration loading and validation for the sizing assistant.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the assistant configuration. It can be loaded from a JSON or YAML file and is
// then overridden by environment variables. Missing values use defaults.
type Config struct {
	// Data
	DataDir string `json:"data_dir,omitempty" yaml:"data_dir,omitempty"` // Directory holding the catalog JSON files

	// Server
	Port int `json:"port,omitempty" yaml:"port,omitempty"`

	// Conversation
	MaxTurns               int `json:"max_turns,omitempty" yaml:"max_turns,omitempty"`                               // Turns kept per session
	ComposerTimeoutSeconds int `json:"composer_timeout_seconds,omitempty" yaml:"composer_timeout_seconds,omitempty"` // Bound on one LLM call

	// LLM
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"` // Gemini API key; empty means template replies only
	Model  string `json:"model,omitempty" yaml:"model,omitempty"`     // Overrides the standard-tier model

	// Backends
	DatabaseURL string `json:"database_url,omitempty" yaml:"database_url,omitempty"` // PostgreSQL turn log
	RedisURL    string `json:"redis_url,omitempty" yaml:"redis_url,omitempty"`       // Shared rate limit state
	SentryDSN   string `json:"sentry_dsn,omitempty" yaml:"sentry_dsn,omitempty"`

	// Logging
	LogLevel  string `json:"log_level,omitempty" yaml:"log_level,omitempty"`   // debug, info, warn, error
	LogFormat string `json:"log_format,omitempty" yaml:"log_format,omitempty"` // text or json

	Environment string `json:"environment,omitempty" yaml:"environment,omitempty"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		DataDir:                "data",
		Port:                   8080,
		MaxTurns:               10,
		ComposerTimeoutSeconds: 20,
		LogLevel:               "info",
		LogFormat:              "text",
		Environment:            "local",
	}
}

var (
	validLogLevels  = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	validLogFormats = map[string]bool{"text": true, "json": true}
)

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
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

// ApplyEnv overrides fields with any environment variables that are set.
func (c *Config) ApplyEnv() error {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	setString("SIZING_DATA_DIR", &c.DataDir)
	setString("GEMINI_API_KEY", &c.APIKey)
	setString("GEMINI_MODEL", &c.Model)
	setString("DATABASE_URL", &c.DatabaseURL)
	setString("REDIS_URL", &c.RedisURL)
	setString("SENTRY_DSN", &c.SentryDSN)
	setString("LOG_LEVEL", &c.LogLevel)
	setString("LOG_FORMAT", &c.LogFormat)
	setString("ENV", &c.Environment)

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT: %w", err)
		}
		c.Port = port
	}
	return nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535 (0 selects the default), got %d", c.Port)
	}
	if c.MaxTurns < 0 {
		return fmt.Errorf("config error: 'max_turns' must be non-negative")
	}
	if c.ComposerTimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'composer_timeout_seconds' must be non-negative")
	}
	if c.LogLevel != "" && !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("config error: unknown log level %q", c.LogLevel)
	}
	if c.LogFormat != "" && !validLogFormats[strings.ToLower(c.LogFormat)] {
		return fmt.Errorf("config error: unknown log format %q", c.LogFormat)
	}

	// Validate the data directory exists (if specified)
	if c.DataDir != "" {
		info, err := os.Stat(c.DataDir)
		if os.IsNotExist(err) {
			return fmt.Errorf("config error: data directory not found: %s", c.DataDir)
		}
		if err == nil && !info.IsDir() {
			return fmt.Errorf("config error: data path is not a directory: %s", c.DataDir)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.DataDir == "" {
		result.DataDir = defaults.DataDir
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.RedisURL == "" {
		result.RedisURL = defaults.RedisURL
	}
	if result.SentryDSN == "" {
		result.SentryDSN = defaults.SentryDSN
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}
	if result.Environment == "" {
		result.Environment = defaults.Environment
	}

	// Int fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.MaxTurns == 0 {
		result.MaxTurns = defaults.MaxTurns
	}
	if result.ComposerTimeoutSeconds == 0 {
		result.ComposerTimeoutSeconds = defaults.ComposerTimeoutSeconds
	}

	return result
}

// ComposerTimeout is ComposerTimeoutSeconds as a duration.
func (c *Config) ComposerTimeout() time.Duration {
	return time.Duration(c.ComposerTimeoutSeconds) * time.Second
}

// Override adjusts a loaded configuration, typically from command-line flags.
type Override func(*Config)

// WithDataDir overrides the catalog directory when dir is non-empty.
func WithDataDir(dir string) Override {
	return func(c *Config) {
		if dir != "" {
			c.DataDir = dir
		}
	}
}

// Resolve loads path (when non-empty), applies environment overrides and then the given
// overrides, fills defaults and validates the result once.
func Resolve(path string, overrides ...Override) (Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return Config{}, err
	}
	for _, override := range overrides {
		override(cfg)
	}
	merged := cfg.MergeWithDefaults(Defaults())
	if err := merged.Validate(); err != nil {
		return Config{}, err
	}
	return merged, nil
}
