package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/priyad/mathventure/internal/adaptive"
	"github.com/priyad/mathventure/internal/tracker"
)

// Config is the resolved application configuration.
type Config struct {
	Session  SessionConfig
	Adaptive AdaptiveConfig
	LLM      LLMConfig
}

// SessionConfig controls a play session.
type SessionConfig struct {
	// Player is shown in the header and stored with sessions.
	Player string

	// Problems is the number of problems per session.
	Problems int

	// AdaptAfter is the attempt count before difficulty adjustment starts.
	AdaptAfter int

	// Window is the performance window size, clamped to 3-7.
	Window int

	// StartDifficulty is the tier a new session begins at (1-3).
	StartDifficulty int
}

// AdaptiveConfig controls the difficulty engine and its training run.
type AdaptiveConfig struct {
	ConfidenceThreshold float64
	LearningRate        float64
	Epochs              int
	Seed                uint64
}

// LLMConfig controls word-problem generation.
type LLMConfig struct {
	// Enabled turns LLM story framing on. Problems fall back to bare
	// expressions when no provider is reachable.
	Enabled bool

	// Provider overrides auto-discovery: "anthropic", "openai",
	// "gemini", "mock".
	Provider string

	// Themes rotate through generated stories.
	Themes []string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Session: SessionConfig{
			Player:          "player",
			Problems:        10,
			AdaptAfter:      3,
			Window:          tracker.DefaultWindowSize,
			StartDifficulty: adaptive.MinDifficulty,
		},
		Adaptive: AdaptiveConfig{
			ConfidenceThreshold: 0.5,
			LearningRate:        0.1,
			Epochs:              500,
			Seed:                42,
		},
		LLM: LLMConfig{
			Enabled: true,
		},
	}
}

// Load resolves the configuration: defaults, then the TOML file at path
// (DefaultConfigPath when empty), then MATHVENTURE_* env vars.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultConfigPath()
	}
	file, err := LoadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg.applyFile(file)
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyFile(f FileConfig) {
	if f.Session.Player != nil {
		c.Session.Player = *f.Session.Player
	}
	if f.Session.Problems != nil {
		c.Session.Problems = *f.Session.Problems
	}
	if f.Session.AdaptAfter != nil {
		c.Session.AdaptAfter = *f.Session.AdaptAfter
	}
	if f.Session.Window != nil {
		c.Session.Window = *f.Session.Window
	}
	if f.Session.StartDifficulty != nil {
		c.Session.StartDifficulty = *f.Session.StartDifficulty
	}

	if f.Adaptive.ConfidenceThreshold != nil {
		c.Adaptive.ConfidenceThreshold = *f.Adaptive.ConfidenceThreshold
	}
	if f.Adaptive.LearningRate != nil {
		c.Adaptive.LearningRate = *f.Adaptive.LearningRate
	}
	if f.Adaptive.Epochs != nil {
		c.Adaptive.Epochs = *f.Adaptive.Epochs
	}
	if f.Adaptive.Seed != nil {
		c.Adaptive.Seed = uint64(*f.Adaptive.Seed)
	}

	if f.LLM.Enabled != nil {
		c.LLM.Enabled = *f.LLM.Enabled
	}
	if f.LLM.Provider != nil {
		c.LLM.Provider = *f.LLM.Provider
	}
	if f.LLM.Themes != nil {
		c.LLM.Themes = *f.LLM.Themes
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv("MATHVENTURE_PLAYER"); v != "" {
		c.Session.Player = v
	}
	if v, ok := envInt("MATHVENTURE_PROBLEMS"); ok {
		c.Session.Problems = v
	}
	if v, ok := envInt("MATHVENTURE_ADAPT_AFTER"); ok {
		c.Session.AdaptAfter = v
	}
	if v, ok := envInt("MATHVENTURE_WINDOW"); ok {
		c.Session.Window = v
	}
	if v, ok := envInt("MATHVENTURE_START_DIFFICULTY"); ok {
		c.Session.StartDifficulty = v
	}
	if v, ok := envFloat("MATHVENTURE_CONFIDENCE_THRESHOLD"); ok {
		c.Adaptive.ConfidenceThreshold = v
	}
	if v := os.Getenv("MATHVENTURE_LLM_PROVIDER"); v != "" {
		c.LLM.Provider = v
	}
	if v := os.Getenv("MATHVENTURE_LLM_DISABLED"); v == "1" || v == "true" {
		c.LLM.Enabled = false
	}
}

func envInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func envFloat(key string) (float64, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Validate checks resolved values against their allowed ranges.
func (c Config) Validate() error {
	if c.Session.Problems < 1 {
		return fmt.Errorf("session.problems must be at least 1, got %d", c.Session.Problems)
	}
	if c.Session.AdaptAfter < 1 {
		return fmt.Errorf("session.adapt-after must be at least 1, got %d", c.Session.AdaptAfter)
	}
	if c.Session.Window < tracker.MinWindowSize || c.Session.Window > tracker.MaxWindowSize {
		return fmt.Errorf("session.window must be %d-%d, got %d",
			tracker.MinWindowSize, tracker.MaxWindowSize, c.Session.Window)
	}
	if c.Session.StartDifficulty < adaptive.MinDifficulty || c.Session.StartDifficulty > adaptive.MaxDifficulty {
		return fmt.Errorf("session.start-difficulty must be %d-%d, got %d",
			adaptive.MinDifficulty, adaptive.MaxDifficulty, c.Session.StartDifficulty)
	}
	if c.Adaptive.ConfidenceThreshold < 0 || c.Adaptive.ConfidenceThreshold > 1 {
		return fmt.Errorf("adaptive.confidence-threshold must be in [0,1], got %g", c.Adaptive.ConfidenceThreshold)
	}
	if c.Adaptive.LearningRate <= 0 {
		return fmt.Errorf("adaptive.learning-rate must be positive, got %g", c.Adaptive.LearningRate)
	}
	if c.Adaptive.Epochs < 1 {
		return fmt.Errorf("adaptive.epochs must be at least 1, got %d", c.Adaptive.Epochs)
	}
	return nil
}
