package llm

import (
	"context"
	"fmt"
)

// RequestLog captures one provider call for the event log.
type RequestLog struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// RequestLogger persists request logs. The store implements it; a nil
// logger disables logging.
type RequestLogger interface {
	LogLLMRequest(ctx context.Context, entry RequestLog) error
}

// NewProvider creates a Provider from configuration, wrapped with retry and
// logging middleware (caller -> retry -> logging -> base).
func NewProvider(ctx context.Context, cfg Config, logger RequestLogger) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	logged := WithLogging(base, cfg.Provider, logger)
	return WithRetry(logged, cfg.Retry), nil
}

// NewProviderFromEnv builds a provider from MATHVENTURE_* variables when
// set, otherwise discovers one from the vendors' standard key variables.
func NewProviderFromEnv(ctx context.Context, logger RequestLogger) (Provider, error) {
	cfg := ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		discovered, ok := DiscoverConfig()
		if !ok {
			return nil, err
		}
		cfg = discovered
	}
	return NewProvider(ctx, cfg, logger)
}
