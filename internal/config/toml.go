package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file. Pointer fields
// distinguish "unset" from zero values when merging over defaults.
type FileConfig struct {
	Session  SessionFileConfig  `toml:"session"`
	Adaptive AdaptiveFileConfig `toml:"adaptive"`
	LLM      LLMFileConfig      `toml:"llm"`
}

// SessionFileConfig maps session-related settings.
type SessionFileConfig struct {
	Player          *string `toml:"player"`
	Problems        *int    `toml:"problems"`
	AdaptAfter      *int    `toml:"adapt-after"`
	Window          *int    `toml:"window"`
	StartDifficulty *int    `toml:"start-difficulty"`
}

// AdaptiveFileConfig maps adaptive-engine settings.
type AdaptiveFileConfig struct {
	ConfidenceThreshold *float64 `toml:"confidence-threshold"`
	LearningRate        *float64 `toml:"learning-rate"`
	Epochs              *int     `toml:"epochs"`
	Seed                *int64   `toml:"seed"`
}

// LLMFileConfig maps word-problem settings. API keys stay in the
// environment, never in the file.
type LLMFileConfig struct {
	Enabled  *bool     `toml:"enabled"`
	Provider *string   `toml:"provider"`
	Themes   *[]string `toml:"themes"`
}

// LoadFile reads a TOML config from the given path. Missing file is not an
// error.
func LoadFile(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
