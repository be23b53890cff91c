// Package config holds commit-as configuration, loaded from
// ~/.commit-as/config.yaml with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultDBFile is the store file name under the user's home directory.
const DefaultDBFile = "commit-as.sqlite3"

// Config holds all commit-as configuration.
type Config struct {
	// Path to the identity database file.
	DBPath string `yaml:"db_path"`

	// What add does when the key already exists: allow, reject, or replace.
	OnConflict string `yaml:"on_conflict"`

	// Git binary to invoke; looked up on PATH when bare.
	GitPath string `yaml:"git_path"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		DBPath:     DefaultDBPath(),
		OnConflict: "allow",
		GitPath:    "git",
	}
}

// DefaultDBPath returns <home>/commit-as.sqlite3, falling back to the
// working directory if the home directory cannot be determined.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultDBFile
	}
	return filepath.Join(home, DefaultDBFile)
}

// DefaultPath returns the config file location, ~/.commit-as/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".commit-as", "config.yaml")
	}
	return filepath.Join(home, ".commit-as", "config.yaml")
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults; environment overrides apply either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a YAML file, creating the directory if needed.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if path := os.Getenv("COMMIT_AS_DB"); path != "" {
		c.DBPath = path
	}
	if mode := os.Getenv("COMMIT_AS_ON_CONFLICT"); mode != "" {
		c.OnConflict = mode
	}
	if git := os.Getenv("COMMIT_AS_GIT"); git != "" {
		c.GitPath = git
	}
}
