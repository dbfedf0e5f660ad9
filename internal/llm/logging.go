package llm

import (
	"context"
	"fmt"
	"os"
	"time"
)

// LoggingProvider is a decorator that records every LLM request through a
// RequestLogger.
type LoggingProvider struct {
	inner    Provider
	provider string
	logger   RequestLogger
}

// WithLogging wraps a Provider with request logging under the given vendor
// name ("anthropic", "openai", ...). A nil logger returns the provider
// unwrapped.
func WithLogging(p Provider, provider string, logger RequestLogger) Provider {
	if logger == nil {
		return p
	}
	return &LoggingProvider{inner: p, provider: provider, logger: logger}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	entry := RequestLog{
		Provider:  l.provider,
		Model:     l.inner.ModelID(),
		Purpose:   PurposeFrom(ctx),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}

	if resp != nil {
		entry.InputTokens = resp.Usage.InputTokens
		entry.OutputTokens = resp.Usage.OutputTokens
		entry.Model = resp.Model
	}

	if err != nil {
		entry.ErrorMessage = err.Error()
	}

	// Log the request but don't fail the call if logging fails.
	if logErr := l.logger.LogLLMRequest(ctx, entry); logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log LLM request: %v\n", logErr)
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
