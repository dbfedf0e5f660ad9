package llm

import (
	"context"
	"errors"
	"testing"
)

type recordingLogger struct {
	entries []RequestLog
}

func (r *recordingLogger) LogLLMRequest(_ context.Context, entry RequestLog) error {
	r.entries = append(r.entries, entry)
	return nil
}

func TestLogging_RecordsSuccess(t *testing.T) {
	mock := NewMockProvider()
	mock.EnqueueResponse(&Response{
		Content: []byte(`{"story":"ok"}`),
		Usage:   Usage{InputTokens: 12, OutputTokens: 34},
		Model:   "mock-1",
	})
	logger := &recordingLogger{}
	p := WithLogging(mock, "mock", logger)

	ctx := WithPurpose(context.Background(), "word-problem")
	if _, err := p.Generate(ctx, Request{Prompt: "hi"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(logger.entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(logger.entries))
	}
	entry := logger.entries[0]
	if !entry.Success {
		t.Error("expected Success=true")
	}
	if entry.Purpose != "word-problem" {
		t.Errorf("purpose = %q, want word-problem", entry.Purpose)
	}
	if entry.InputTokens != 12 || entry.OutputTokens != 34 {
		t.Errorf("tokens = %d/%d, want 12/34", entry.InputTokens, entry.OutputTokens)
	}
	if entry.Model != "mock-1" {
		t.Errorf("model = %q, want mock-1", entry.Model)
	}
	// The vendor name comes from the wrapper, not the model identifier.
	if entry.Provider != "mock" {
		t.Errorf("provider = %q, want mock", entry.Provider)
	}
}

func TestLogging_RecordsFailure(t *testing.T) {
	mock := NewMockProvider()
	mock.EnqueueError(&ErrProviderUnavailable{Err: errors.New("down")})
	logger := &recordingLogger{}
	p := WithLogging(mock, "mock", logger)

	if _, err := p.Generate(context.Background(), Request{Prompt: "hi"}); err == nil {
		t.Fatal("expected error")
	}

	if len(logger.entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(logger.entries))
	}
	entry := logger.entries[0]
	if entry.Success {
		t.Error("expected Success=false")
	}
	if entry.ErrorMessage == "" {
		t.Error("expected non-empty error message")
	}
	if entry.Purpose != "unknown" {
		t.Errorf("purpose = %q, want unknown", entry.Purpose)
	}
}

func TestLogging_NilLoggerPassthrough(t *testing.T) {
	mock := NewMockProvider()
	p := WithLogging(mock, "mock", nil)
	if p != Provider(mock) {
		t.Fatal("expected nil logger to return the provider unwrapped")
	}
}

func TestMock_SchemaValidation(t *testing.T) {
	mock := NewMockProvider()
	mock.EnqueueJSON(`{"theme":"space"}`)

	_, err := mock.Generate(context.Background(), Request{Schema: storySchema()})
	if err == nil {
		t.Fatal("expected schema validation error")
	}
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestMock_FIFOOrder(t *testing.T) {
	mock := NewMockProvider()
	mock.EnqueueJSON(`{"n":1}`)
	mock.EnqueueJSON(`{"n":2}`)

	first, err := mock.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := mock.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(first.Content) != `{"n":1}` || string(second.Content) != `{"n":2}` {
		t.Fatalf("responses out of order: %s, %s", first.Content, second.Content)
	}

	if _, err := mock.Generate(context.Background(), Request{}); err == nil {
		t.Fatal("expected error on exhausted queue")
	}
}
