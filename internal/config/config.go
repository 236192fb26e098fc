// Package config handles Promptsmith configuration loading.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultSearchPaths returns the config file search order.
// An explicit path (from -config flag) is checked first.
// Then: ./config.yaml, ~/.config/promptsmith/config.yaml, /etc/promptsmith/config.yaml.
func DefaultSearchPaths() []string {
	paths := []string{"config.yaml"}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "promptsmith", "config.yaml"))
	}

	paths = append(paths, "/etc/promptsmith/config.yaml")
	return paths
}

// FindConfig locates a config file. If explicit is non-empty, it must exist.
// Otherwise, searches DefaultSearchPaths and returns the first that exists.
// Returns the path found, or an error if nothing was found.
func FindConfig(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	for _, p := range DefaultSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("no config file found (searched: %v)", DefaultSearchPaths())
}

// Config holds all Promptsmith configuration.
type Config struct {
	Listen    ListenConfig   `yaml:"listen"`
	DataDir   string         `yaml:"data_dir"`
	LogLevel  string         `yaml:"log_level"`
	LogFormat string         `yaml:"log_format"`
	History   HistoryConfig  `yaml:"history"`
	Defaults  DefaultsConfig `yaml:"defaults"`
	Fetch     FetchConfig    `yaml:"fetch"`
}

// ListenConfig defines the API server settings.
type ListenConfig struct {
	Address string `yaml:"address"` // Bind address (default: 127.0.0.1)
	Port    int    `yaml:"port"`
}

// HistoryConfig defines where and how enhancement history is persisted.
type HistoryConfig struct {
	// Backend selects the storage engine: "json" (single file, the
	// default) or "sqlite".
	Backend string `yaml:"backend"`
	// Path overrides the default history location
	// (<data_dir>/history.json or <data_dir>/history.db).
	Path string `yaml:"path"`
}

// DefaultsConfig defines fallbacks applied when a request leaves a
// field unset.
type DefaultsConfig struct {
	Tone string `yaml:"tone"`
}

// FetchConfig defines limits for context-from-URL retrieval.
type FetchConfig struct {
	TimeoutSeconds int `yaml:"timeout_seconds"`
	MaxChars       int `yaml:"max_chars"`
}

// Load reads configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default returns a default configuration. Promptsmith runs without a
// config file; these values are the effective config in that case.
func Default() *Config {
	return &Config{
		Listen:    ListenConfig{Address: "127.0.0.1", Port: 8000},
		DataDir:   "~/.promptsmith",
		LogLevel:  "info",
		LogFormat: "text",
		History:   HistoryConfig{Backend: "json"},
		Defaults:  DefaultsConfig{Tone: "professional"},
		Fetch:     FetchConfig{TimeoutSeconds: 15, MaxChars: 4000},
	}
}

// Validate checks the configuration for values that would fail at
// startup. A bad default tone is not an error: unknown tones fall back
// to professional at enhancement time.
func (c *Config) Validate() error {
	if c.Listen.Port < 1 || c.Listen.Port > 65535 {
		return fmt.Errorf("listen.port %d out of range (1-65535)", c.Listen.Port)
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("unknown log_format %q (valid: text, json)", c.LogFormat)
	}
	switch c.History.Backend {
	case "", "json", "sqlite":
	default:
		return fmt.Errorf("unknown history.backend %q (valid: json, sqlite)", c.History.Backend)
	}
	if c.Fetch.TimeoutSeconds < 1 {
		return fmt.Errorf("fetch.timeout_seconds must be positive, got %d", c.Fetch.TimeoutSeconds)
	}
	if c.Fetch.MaxChars < 1 {
		return fmt.Errorf("fetch.max_chars must be positive, got %d", c.Fetch.MaxChars)
	}
	return nil
}

// ExpandedDataDir returns DataDir with a leading ~ resolved to the
// user's home directory.
func (c *Config) ExpandedDataDir() string {
	return expandHome(c.DataDir)
}

// HistoryPath returns the history file location for the configured
// backend, honoring the history.path override.
func (c *Config) HistoryPath() string {
	if c.History.Path != "" {
		return expandHome(c.History.Path)
	}
	name := "history.json"
	if c.History.Backend == "sqlite" {
		name = "history.db"
	}
	return filepath.Join(c.ExpandedDataDir(), name)
}

// expandHome replaces a leading ~ with the user's home directory.
// Returns the path unchanged if the home directory cannot be determined.
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		if path == "~" {
			return home
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
