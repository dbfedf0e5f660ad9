package problemgen

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/priyad/mathventure/internal/llm"
)

// WordProblemGenerator decorates a local generator with LLM story framing.
// The local problem stays the source of truth for operands and answer; the
// model only supplies the narrative. Any provider failure degrades to the
// bare expression so a session never blocks on the network.
type WordProblemGenerator struct {
	local    *LocalGenerator
	provider llm.Provider
	config   Config
	next     int // theme rotation cursor
}

// NewWordProblem creates a WordProblemGenerator over the given local
// generator and provider.
func NewWordProblem(local *LocalGenerator, provider llm.Provider, cfg Config) *WordProblemGenerator {
	if len(cfg.Themes) == 0 {
		cfg.Themes = DefaultConfig().Themes
	}
	return &WordProblemGenerator{local: local, provider: provider, config: cfg}
}

// storyOutput is the raw LLM response before validation.
type storyOutput struct {
	Story string `json:"story"`
}

// Generate produces a problem for the tier, with a story when the provider
// cooperates.
func (g *WordProblemGenerator) Generate(ctx context.Context, difficulty int) (*Problem, error) {
	p, err := g.local.Generate(ctx, difficulty)
	if err != nil {
		return nil, err
	}

	theme := g.config.Themes[g.next%len(g.config.Themes)]
	g.next++

	story, err := g.fetchStory(ctx, p, theme)
	if err != nil {
		// Degrade to the plain expression.
		fmt.Fprintf(os.Stderr, "warning: word problem generation failed: %v\n", err)
		return p, nil
	}

	p.Story = story
	return p, nil
}

func (g *WordProblemGenerator) fetchStory(ctx context.Context, p *Problem, theme string) (string, error) {
	ctx = llm.WithPurpose(ctx, "word-problem")

	req := llm.Request{
		System:      storySystemPrompt,
		Prompt:      buildStoryPrompt(p, theme),
		Schema:      StorySchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return "", err
	}

	var out storyOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return "", fmt.Errorf("parse story response: %w", err)
	}

	return out.Story, nil
}
