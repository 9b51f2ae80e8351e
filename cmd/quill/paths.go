package main

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths holds all resolved quill state file paths.
// Use ResolvePaths() to populate this struct with defaults + env overrides.
type Paths struct {
	QuillHome      string // ~/.quill or QUILL_HOME
	SnapshotDBPath string // snapshots.db or QUILL_DB_PATH
	ConfigPath     string // config.toml or QUILL_CONFIG
}

// ResolvePaths returns all quill paths, respecting env var overrides.
// Environment variables:
//   - QUILL_HOME: base directory for all quill state (default: ~/.quill)
//   - QUILL_DB_PATH: snapshot database (default: $QUILL_HOME/snapshots.db)
//   - QUILL_CONFIG: config file (default: $QUILL_HOME/config.toml)
//
// If QUILL_HOME is set, it becomes the base for all default paths. The
// specific env vars override both the default and the QUILL_HOME base.
func ResolvePaths() (*Paths, error) {
	home, err := resolveQuillHome()
	if err != nil {
		return nil, err
	}

	return &Paths{
		QuillHome:      home,
		SnapshotDBPath: resolvePathWithEnv("QUILL_DB_PATH", home, "snapshots.db"),
		ConfigPath:     resolvePathWithEnv("QUILL_CONFIG", home, "config.toml"),
	}, nil
}

// EnsureHome creates the quill home directory if it does not exist.
func (p *Paths) EnsureHome() error {
	if err := os.MkdirAll(p.QuillHome, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", p.QuillHome, err)
	}
	return nil
}

// resolveQuillHome returns the quill home directory from QUILL_HOME or
// ~/.quill.
func resolveQuillHome() (string, error) {
	if v := os.Getenv("QUILL_HOME"); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".quill"), nil
}

// resolvePathWithEnv returns the env override if set, else base/name.
func resolvePathWithEnv(envVar, base, name string) string {
	if v := os.Getenv(envVar); v != "" {
		return v
	}
	return filepath.Join(base, name)
}
