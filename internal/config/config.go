package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the flat runcard configuration
type Config struct {
	Version  string `json:"version"`
	DataFile string `json:"data_file,omitempty"` // Path to the reference data JSON
	Listen   string `json:"listen,omitempty"`    // serve bind address, default :8787
}

// DefaultListen is the bind address used when none is configured.
const DefaultListen = ":8787"

// LoadConfig reads .runcard/config.json from the specified directory.
// Returns error if no config found - caller should handle accordingly.
func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, ".runcard", "config.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// SaveConfig writes config.json to directory
func SaveConfig(dir string, cfg *Config) error {
	runcardDir := filepath.Join(dir, ".runcard")
	if err := os.MkdirAll(runcardDir, 0755); err != nil {
		return fmt.Errorf("failed to create .runcard dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(runcardDir, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// DataFilePath resolves the reference data file: an explicit config entry
// wins, then ./data.json, then ~/.runcard/data.json.
func DataFilePath(dir string) string {
	if cfg, err := LoadConfig(dir); err == nil && cfg.DataFile != "" {
		return cfg.DataFile
	}
	local := filepath.Join(dir, "data.json")
	if _, err := os.Stat(local); err == nil {
		return local
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return local
	}
	return filepath.Join(home, ".runcard", "data.json")
}

// ListenAddr resolves the serve bind address.
func ListenAddr(dir string) string {
	if cfg, err := LoadConfig(dir); err == nil && cfg.Listen != "" {
		return cfg.Listen
	}
	return DefaultListen
}
