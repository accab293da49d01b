package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Load loads the gate configuration.
// Search order: customPath -> ~/.gate/config.yaml -> ./configs/gate.yaml -> embedded default.
// Files are applied on top of the defaults, so a partial file only overrides what it names.
func Load(customPath string) (Config, error) {
	cfg := Default()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			candidate := Default()
			if err := yaml.Unmarshal(data, &candidate); err == nil && candidate.Validate() == nil {
				return candidate, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "gate.yaml")); err == nil {
		candidate := Default()
		if err := yaml.Unmarshal(data, &candidate); err == nil && candidate.Validate() == nil {
			return candidate, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultGateYAML, &cfg); err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to a file in ~/.gate, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gate", filename)
}

// Environment variables that override file values.
const (
	EnvDBPath      = "GATE_DB"
	EnvBackend     = "GATE_STORAGE"
	EnvSSHAddr     = "GATE_SSH_ADDR"
	EnvIdleTimeout = "GATE_IDLE_TIMEOUT"
)

// LoadEnvFile reads KEY=value pairs from a .env file into the process
// environment. Variables that are already set win. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides cfg with values from the GATE_* environment variables.
func ApplyEnv(cfg *Config) error {
	if v := os.Getenv(EnvDBPath); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv(EnvBackend); v != "" {
		cfg.Storage.Backend = StorageBackend(v)
	}
	if v := os.Getenv(EnvSSHAddr); v != "" {
		cfg.Server.Address = v
	}
	if v := os.Getenv(EnvIdleTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, EnvIdleTimeout, err)
		}
		cfg.Server.IdleTimeout = d
	}
	return cfg.Validate()
}
