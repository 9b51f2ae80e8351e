package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config holds user preferences read from config.toml.
type Config struct {
	Theme    string `toml:"theme"`     // theme name for the pad
	TabWidth int    `toml:"tab_width"` // spaces per tab in the cell editor
	Autosave bool   `toml:"autosave"`  // write the notebook file after every edit
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() Config {
	return Config{
		Theme:    "default",
		TabWidth: 4,
	}
}

// LoadConfig reads config.toml at path. A missing file is not an error:
// defaults are returned.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // path is resolved internally
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.TabWidth <= 0 {
		cfg.TabWidth = DefaultConfig().TabWidth
	}
	return cfg, nil
}
