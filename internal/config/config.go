// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for alfred.
//
// Supports TOML configuration with sensible defaults and environment
// variable overrides.
//
// Configuration file locations (in order of precedence):
//   - ~/.alfred/config.toml
//   - Built-in defaults
package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/morganforge/alfred/internal/brain"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete alfred configuration.
type Config struct {
	// Server configuration
	Server ServerConfig `toml:"server"`

	// OpenAI provider configuration
	OpenAI OpenAIConfig `toml:"openai"`

	// Memory (conversation snapshot) configuration
	Memory MemoryConfig `toml:"memory"`

	// Database (staff directory) configuration
	Database DatabaseConfig `toml:"database"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	// Addr is the listen address (e.g., ":8000" or "127.0.0.1:8000")
	Addr string `toml:"addr"`
	// AllowedOrigins is the CORS origin allowlist. Use "*" to allow all.
	AllowedOrigins []string `toml:"allowed_origins"`
}

// OpenAIConfig contains OpenAI provider configuration.
type OpenAIConfig struct {
	// APIKey is the OpenAI API key. Empty means dev mode: the stub provider
	// is used and no network calls are made.
	APIKey string `toml:"api_key"`
	// Model is the chat completion model
	Model string `toml:"model"`
	// SystemPrompt seeds every conversation
	SystemPrompt string `toml:"system_prompt"`
	// Voice is the default text-to-speech voice
	Voice string `toml:"voice"`
	// MockTranscription makes /stt return a fixed transcript without
	// calling Whisper. Useful for client development.
	MockTranscription bool `toml:"mock_transcription"`
}

// MemoryConfig contains conversation snapshot configuration.
type MemoryConfig struct {
	// Path is the JSON snapshot file for the default session
	Path string `toml:"path"`
}

// DatabaseConfig contains staff directory database configuration.
type DatabaseConfig struct {
	// Path is the SQLite database file
	Path string `toml:"path"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:           ":8000",
			AllowedOrigins: []string{"*"},
		},

		OpenAI: OpenAIConfig{
			APIKey:            "",
			Model:             brain.DefaultModel,
			SystemPrompt:      brain.DefaultSystemPrompt,
			Voice:             brain.DefaultVoice,
			MockTranscription: false,
		},

		Memory: MemoryConfig{
			Path: "alfred_memory.json",
		},

		Database: DatabaseConfig{
			Path: "alfred.db",
		},
	}
}

// DevMode reports whether the server should run with the stub provider.
// Dev mode is simply the absence of an API key.
func (c *Config) DevMode() bool {
	return c.OpenAI.APIKey == ""
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the alfred configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".alfred"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// ensureSecurePermissions checks and fixes permissions on config files.
// SECURITY: Config files should be 0600 (owner read/write only) to protect API keys.
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	mode := info.Mode().Perm()
	if mode != 0600 {
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
	}

	return nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file, falling back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	cfg := Default()
	var loadErr error

	path, err := ConfigPath()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := LoadTOML(cfg, path); err != nil {
				loadErr = fmt.Errorf("failed to load TOML config: %w", err)
			} else {
				cfg.ApplyEnvOverrides()
				if err := cfg.Validate(); err != nil {
					return nil, fmt.Errorf("invalid config: %w", err)
				}
				return cfg, nil
			}
		}
	}

	// Apply environment overrides to defaults
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	// Return defaults (with any load error for informational purposes)
	return cfg, loadErr
}

// LoadTOML loads configuration from a TOML file.
// SECURITY: Checks and fixes file permissions on load.
func LoadTOML(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		// Log warning but don't fail - permissions might not be fixable on all systems
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	fillDefaults(cfg)
	return nil
}

// LoadFromPath loads configuration from a specific file path with validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := &Config{}
	if err := LoadTOML(cfg, path); err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// fillDefaults fills in any missing values with defaults.
func fillDefaults(cfg *Config) {
	defaults := Default()

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = defaults.Server.Addr
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		cfg.Server.AllowedOrigins = defaults.Server.AllowedOrigins
	}

	if cfg.OpenAI.Model == "" {
		cfg.OpenAI.Model = defaults.OpenAI.Model
	}
	if cfg.OpenAI.SystemPrompt == "" {
		cfg.OpenAI.SystemPrompt = defaults.OpenAI.SystemPrompt
	}
	if cfg.OpenAI.Voice == "" {
		cfg.OpenAI.Voice = defaults.OpenAI.Voice
	}

	if cfg.Memory.Path == "" {
		cfg.Memory.Path = defaults.Memory.Path
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = defaults.Database.Path
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file.
// SECURITY: Creates config files with 0600 permissions (owner read/write only).
func SaveTOML(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	// Ensure permissions are correct even if file already existed
	if err := os.Chmod(path, 0600); err != nil {
		return fmt.Errorf("failed to set config file permissions: %w", err)
	}

	// Write header comment
	fmt.Fprintln(file, "# alfred configuration file")
	fmt.Fprintln(file, "# Generated by alfred - edit with care")
	fmt.Fprintln(file, "")

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	// Validate listen address
	if c.Server.Addr == "" {
		errs = append(errs, ValidationError{
			Field:   "server.addr",
			Message: "listen address cannot be empty",
		})
	} else if _, _, err := net.SplitHostPort(c.Server.Addr); err != nil {
		errs = append(errs, ValidationError{
			Field:   "server.addr",
			Message: fmt.Sprintf("invalid listen address '%s': %v", c.Server.Addr, err),
		})
	}

	if c.OpenAI.Model == "" {
		errs = append(errs, ValidationError{
			Field:   "openai.model",
			Message: "model cannot be empty",
		})
	}

	if c.Memory.Path == "" {
		errs = append(errs, ValidationError{
			Field:   "memory.path",
			Message: "snapshot path cannot be empty",
		})
	}

	if c.Database.Path == "" {
		errs = append(errs, ValidationError{
			Field:   "database.path",
			Message: "database path cannot be empty",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - OPENAI_API_KEY: overrides openai.api_key
//   - ALFRED_MODEL: overrides openai.model
//   - ALFRED_SYSTEM_PROMPT: overrides openai.system_prompt
//   - MOCK_MODE: set to "1" or "true" to enable mock transcription
//   - ALFRED_ADDR: overrides server.addr
//   - ALFRED_DB_PATH: overrides database.path
//   - ALFRED_MEMORY_FILE: overrides memory.path
func (c *Config) ApplyEnvOverrides() {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		c.OpenAI.APIKey = key
	}

	if model := os.Getenv("ALFRED_MODEL"); model != "" {
		c.OpenAI.Model = model
	}

	if prompt := os.Getenv("ALFRED_SYSTEM_PROMPT"); prompt != "" {
		c.OpenAI.SystemPrompt = prompt
	}

	if mock := os.Getenv("MOCK_MODE"); mock != "" {
		c.OpenAI.MockTranscription = mock == "1" || strings.ToLower(mock) == "true"
	}

	if addr := os.Getenv("ALFRED_ADDR"); addr != "" {
		c.Server.Addr = addr
	}

	if dbPath := os.Getenv("ALFRED_DB_PATH"); dbPath != "" {
		c.Database.Path = dbPath
	}

	if memPath := os.Getenv("ALFRED_MEMORY_FILE"); memPath != "" {
		c.Memory.Path = memPath
	}
}
