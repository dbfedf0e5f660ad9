package problemgen

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/priyad/mathventure/internal/llm"
)

func TestWordProblem_AttachesStory(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.EnqueueJSON(`{"story":"Three rockets carry five astronauts each. How many astronauts fly?"}`)

	g := NewWordProblem(NewLocalSeeded(3), mock, DefaultConfig())
	p, err := g.Generate(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Story == "" {
		t.Fatal("expected story to be attached")
	}
	if p.Text() != p.Story {
		t.Errorf("Text() should prefer the story")
	}
	// Operands and answer come from the local generator, untouched.
	if p.Operand1 == 0 || p.Operand2 == 0 {
		t.Errorf("operands missing: %+v", p)
	}
}

func TestWordProblem_FallsBackOnProviderError(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.EnqueueError(&llm.ErrProviderUnavailable{Err: errors.New("down")})

	g := NewWordProblem(NewLocalSeeded(3), mock, DefaultConfig())
	p, err := g.Generate(context.Background(), 1)
	if err != nil {
		t.Fatalf("fallback should not surface provider error, got: %v", err)
	}
	if p.Story != "" {
		t.Errorf("expected bare expression on provider failure, got story %q", p.Story)
	}
	if p.Text() != p.Expression() {
		t.Errorf("Text() = %q, want %q", p.Text(), p.Expression())
	}
}

func TestWordProblem_InvalidStoryJSONFallsBack(t *testing.T) {
	mock := llm.NewMockProvider()
	// Valid against no schema check here, but unparseable as storyOutput.
	mock.EnqueueError(&llm.ErrInvalidResponse{Err: errors.New("schema violation")})

	g := NewWordProblem(NewLocalSeeded(9), mock, DefaultConfig())
	p, err := g.Generate(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Story != "" {
		t.Error("expected fallback to bare expression")
	}
}

func TestWordProblem_ThemesRotate(t *testing.T) {
	mock := llm.NewMockProvider()
	for range 3 {
		mock.EnqueueJSON(`{"story":"A tiny story for testing rotation."}`)
	}

	cfg := DefaultConfig()
	cfg.Themes = []string{"alpha", "beta"}
	g := NewWordProblem(NewLocalSeeded(5), mock, cfg)

	for range 3 {
		if _, err := g.Generate(context.Background(), 1); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	calls := mock.Calls()
	if len(calls) != 3 {
		t.Fatalf("expected 3 provider calls, got %d", len(calls))
	}
	wantThemes := []string{"alpha", "beta", "alpha"}
	for i, call := range calls {
		if !strings.Contains(call.Prompt, "Theme: "+wantThemes[i]) {
			t.Errorf("call %d prompt missing theme %q:\n%s", i, wantThemes[i], call.Prompt)
		}
	}
}
