// Copyright (c) 2025 FinMentor Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for finmentor.
//
// Configuration is TOML with sensible defaults and environment variable
// overrides (FINMENTOR_* via envconfig).
//
// Configuration file location:
//   - ~/.finmentor/config.toml
//   - Built-in defaults
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete finmentor configuration.
type Config struct {
	// Version of the config schema.
	Version string `toml:"version" ignored:"true"`

	// Gemini holds settings for the generative-language API.
	Gemini GeminiConfig `toml:"gemini"`

	// Chat holds conversation settings.
	Chat ChatConfig `toml:"chat"`

	// UI holds terminal interface settings.
	UI UIConfig `toml:"ui"`
}

// GeminiConfig configures the completion endpoint.
// Generation parameters (temperature, top-p, top-k, output cap) are policy
// constants in the gemini package, not configuration.
type GeminiConfig struct {
	// BaseURL is the API root, without a trailing slash.
	BaseURL string `toml:"base_url" envconfig:"GEMINI_BASE_URL"`

	// Model is the generative model identifier.
	Model string `toml:"model" envconfig:"GEMINI_MODEL"`

	// TimeoutSecs is the per-request timeout in seconds.
	TimeoutSecs int `toml:"timeout_secs" envconfig:"GEMINI_TIMEOUT_SECS"`
}

// ChatConfig configures the conversation session.
type ChatConfig struct {
	// DefaultPersona selects the persona active at startup.
	DefaultPersona string `toml:"default_persona" envconfig:"DEFAULT_PERSONA"`
}

// UIConfig configures the terminal interface.
type UIConfig struct {
	// ShowTimestamps renders message timestamps in the chat log.
	ShowTimestamps bool `toml:"show_timestamps" envconfig:"SHOW_TIMESTAMPS"`

	// MarkdownWidth is the word-wrap width for rendered assistant replies.
	MarkdownWidth int `toml:"markdown_width" envconfig:"MARKDOWN_WIDTH"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns a Config with built-in defaults.
func Default() *Config {
	return &Config{
		Version: "1",
		Gemini: GeminiConfig{
			BaseURL:     "https://generativelanguage.googleapis.com/v1beta",
			Model:       "gemini-1.5-flash",
			TimeoutSecs: 60,
		},
		Chat: ChatConfig{
			DefaultPersona: "ca",
		},
		UI: UIConfig{
			ShowTimestamps: true,
			MarkdownWidth:  80,
		},
	}
}

// Timeout returns the request timeout as a duration.
func (g GeminiConfig) Timeout() time.Duration {
	if g.TimeoutSecs <= 0 {
		return 60 * time.Second
	}
	return time.Duration(g.TimeoutSecs) * time.Second
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns the finmentor configuration directory (~/.finmentor).
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".finmentor"), nil
}

// ConfigPath returns the path of the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureConfigDir creates the config directory with restricted permissions.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return nil
}

// =============================================================================
// LOADING AND SAVING
// =============================================================================

// Load reads the configuration file, falling back to defaults when absent.
// Environment overrides are applied last, then the result is validated.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := LoadFile(cfg, path); err != nil {
				return nil, fmt.Errorf("failed to load config: %w", err)
			}
		}
	}

	if err := cfg.ApplyEnvOverrides(); err != nil {
		return nil, err
	}
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFile decodes a TOML config file into cfg.
func LoadFile(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// Save writes the configuration to the config file.
func Save(cfg *Config) error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}
	path, err := ConfigPath()
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ApplyEnvOverrides applies FINMENTOR_* environment variables on top of the
// loaded values.
func (c *Config) ApplyEnvOverrides() error {
	if err := envconfig.Process("finmentor", &c.Gemini); err != nil {
		return fmt.Errorf("failed to apply gemini env overrides: %w", err)
	}
	if err := envconfig.Process("finmentor", &c.Chat); err != nil {
		return fmt.Errorf("failed to apply chat env overrides: %w", err)
	}
	if err := envconfig.Process("finmentor", &c.UI); err != nil {
		return fmt.Errorf("failed to apply ui env overrides: %w", err)
	}
	return nil
}

// fillDefaults replaces zero values with built-in defaults after decoding a
// possibly partial config file.
func (c *Config) fillDefaults() {
	def := Default()
	if c.Version == "" {
		c.Version = def.Version
	}
	if c.Gemini.BaseURL == "" {
		c.Gemini.BaseURL = def.Gemini.BaseURL
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = def.Gemini.Model
	}
	if c.Gemini.TimeoutSecs <= 0 {
		c.Gemini.TimeoutSecs = def.Gemini.TimeoutSecs
	}
	if c.Chat.DefaultPersona == "" {
		c.Chat.DefaultPersona = def.Chat.DefaultPersona
	}
	if c.UI.MarkdownWidth <= 0 {
		c.UI.MarkdownWidth = def.UI.MarkdownWidth
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError describes one invalid configuration field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	var errs []string

	u, err := url.Parse(c.Gemini.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, ValidationError{"gemini.base_url", "must be an absolute URL"}.Error())
	} else if u.Scheme != "https" && u.Scheme != "http" {
		errs = append(errs, ValidationError{"gemini.base_url", "scheme must be http or https"}.Error())
	}

	if strings.TrimSpace(c.Gemini.Model) == "" {
		errs = append(errs, ValidationError{"gemini.model", "must not be empty"}.Error())
	}
	if c.Gemini.TimeoutSecs < 1 || c.Gemini.TimeoutSecs > 600 {
		errs = append(errs, ValidationError{"gemini.timeout_secs", "must be between 1 and 600"}.Error())
	}
	if c.UI.MarkdownWidth < 20 || c.UI.MarkdownWidth > 500 {
		errs = append(errs, ValidationError{"ui.markdown_width", "must be between 20 and 500"}.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// =============================================================================
// GLOBAL CONFIG
// =============================================================================

var (
	globalConfig *Config
	globalMu     sync.RWMutex
)

// Global returns the process-wide configuration, loading it on first use.
// Returns defaults when loading fails.
func Global() *Config {
	globalMu.RLock()
	if globalConfig != nil {
		defer globalMu.RUnlock()
		return globalConfig
	}
	globalMu.RUnlock()

	globalMu.Lock()
	defer globalMu.Unlock()
	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			cfg = Default()
		}
		globalConfig = cfg
	}
	return globalConfig
}

// SetGlobal replaces the process-wide configuration.
func SetGlobal(cfg *Config) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalConfig = cfg
}

// ReloadGlobal re-reads the configuration file into the global config.
func ReloadGlobal() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	SetGlobal(cfg)
	return nil
}

// ResetGlobalForTesting clears the global config so tests start clean.
func ResetGlobalForTesting() {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalConfig = nil
}
