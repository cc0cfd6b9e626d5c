package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the persisted CLI configuration.
type Config struct {
	// BaseURL is the API endpoint, e.g. "http://localhost:8000".
	BaseURL string `yaml:"base_url"`
	// DefaultWorkspace is used when --workspace is omitted.
	DefaultWorkspace string `yaml:"default_workspace,omitempty"`
}

// configDir returns the CLI state directory, honoring AGENTOS_CONFIG_DIR
// for tests and non-standard setups.
func configDir() (string, error) {
	if dir := os.Getenv("AGENTOS_CONFIG_DIR"); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(base, "agentos"), nil
}

func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func sessionPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "session.json"), nil
}

// loadConfig reads the config file. A missing file yields the zero
// config; AGENTOS_BASE_URL overrides the stored base URL either way.
func loadConfig() (Config, error) {
	var cfg Config
	path, err := configPath()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return cfg, fmt.Errorf("read %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if v := os.Getenv("AGENTOS_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	return cfg, nil
}

func saveConfig(cfg Config) error {
	path, err := configPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
