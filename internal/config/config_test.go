package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"MATHVENTURE_PLAYER",
		"MATHVENTURE_PROBLEMS",
		"MATHVENTURE_ADAPT_AFTER",
		"MATHVENTURE_WINDOW",
		"MATHVENTURE_START_DIFFICULTY",
		"MATHVENTURE_CONFIDENCE_THRESHOLD",
		"MATHVENTURE_LLM_PROVIDER",
		"MATHVENTURE_LLM_DISABLED",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[session]
player = "maya"
problems = 15
window = 5

[adaptive]
confidence-threshold = 0.6

[llm]
enabled = false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "maya", cfg.Session.Player)
	require.Equal(t, 15, cfg.Session.Problems)
	require.Equal(t, 5, cfg.Session.Window)
	require.Equal(t, 0.6, cfg.Adaptive.ConfidenceThreshold)
	require.False(t, cfg.LLM.Enabled)
	// Untouched fields keep defaults.
	require.Equal(t, 3, cfg.Session.AdaptAfter)
	require.Equal(t, 500, cfg.Adaptive.Epochs)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[session]\nwindow = 4\n"), 0o644))
	t.Setenv("MATHVENTURE_WINDOW", "6")
	t.Setenv("MATHVENTURE_LLM_DISABLED", "1")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 6, cfg.Session.Window)
	require.False(t, cfg.LLM.Enabled)
}

func TestLoad_MalformedFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("not [valid toml"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestValidate_Ranges(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"window too small", func(c *Config) { c.Session.Window = 2 }},
		{"window too large", func(c *Config) { c.Session.Window = 8 }},
		{"zero problems", func(c *Config) { c.Session.Problems = 0 }},
		{"zero adapt-after", func(c *Config) { c.Session.AdaptAfter = 0 }},
		{"difficulty out of range", func(c *Config) { c.Session.StartDifficulty = 4 }},
		{"threshold above 1", func(c *Config) { c.Adaptive.ConfidenceThreshold = 1.1 }},
		{"negative learning rate", func(c *Config) { c.Adaptive.LearningRate = -0.1 }},
		{"zero epochs", func(c *Config) { c.Adaptive.Epochs = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestDefaultDBPath_EnvOverride(t *testing.T) {
	t.Setenv("MATHVENTURE_DB", "/tmp/custom.db")
	require.Equal(t, "/tmp/custom.db", DefaultDBPath())
}
