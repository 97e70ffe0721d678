package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ManifestPath string // YAML service manifest
	BaseDir      string // base directory for relative service paths
	ConfigFile   string // optional locator config file for the store

	LogFormat  string
	LogLevel   string
	StatusPort int
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ManifestPath == "" {
		return nil, errors.New("ManifestPath is a required configuration field and cannot be empty")
	}
	if cfg.BaseDir == "" {
		cfg.BaseDir = "."
	}
	return &cfg, nil
}
