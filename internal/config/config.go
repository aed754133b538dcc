package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// StaticLocation pins the routing origin to a fixed point instead of asking
// the location service.
type StaticLocation struct {
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
}

// Config is the top-level application configuration, stored as YAML in the
// config directory.
type Config struct {
	// Storage selects the store backend: "json" (default) or "sqlite".
	Storage string `yaml:"storage"`

	// GeoBaseURL overrides the geocoding/directions provider base URL.
	// Empty means the provider default.
	GeoBaseURL string `yaml:"geo_base_url,omitempty"`

	// LocationEndpoint overrides the IP geolocation endpoint.
	LocationEndpoint string `yaml:"location_endpoint,omitempty"`

	// HomeLocation, if set, is used as the routing origin instead of the
	// geolocation service.
	HomeLocation *StaticLocation `yaml:"home_location,omitempty"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Storage: "json",
	}
}

// Path returns the config file path inside the given config directory.
func Path(configDir string) string {
	return filepath.Join(configDir, "config.yaml")
}

// Load reads the configuration, creating a default file on first run.
func Load(configDir string) (*Config, error) {
	path := Path(configDir)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(configDir, cfg); err != nil {
				return nil, err
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Storage == "" {
		cfg.Storage = "json"
	}
	return cfg, nil
}

// Save writes the configuration with 0600 permissions.
func Save(configDir string, cfg *Config) error {
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(Path(configDir), data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
