package problemgen

// Config controls the behavior of the WordProblemGenerator.
type Config struct {
	// Themes rotate across problems to keep stories varied.
	Themes []string

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns a Config with recommended defaults.
func DefaultConfig() Config {
	return Config{
		Themes: []string{
			"space exploration",
			"animals",
			"sports",
			"baking",
			"pirates and treasure",
		},
		MaxTokens:   256,
		Temperature: 0.7,
	}
}
