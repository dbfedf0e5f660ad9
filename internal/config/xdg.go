// Package config loads the mathventure configuration: built-in defaults,
// overridden by the TOML config file, overridden by MATHVENTURE_* env vars.
package config

import (
	"os"
	"path/filepath"
)

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), "mathventure", "config.toml")
}

// DefaultDBPath returns the default path for the SQLite database. The
// MATHVENTURE_DB env var overrides it.
func DefaultDBPath() string {
	if v := os.Getenv("MATHVENTURE_DB"); v != "" {
		return v
	}
	return filepath.Join(XDGDataHome(), "mathventure", "mathventure.db")
}

// DefaultModelPath returns the default path for the trained model file.
func DefaultModelPath() string {
	return filepath.Join(XDGDataHome(), "mathventure", "model.json")
}
