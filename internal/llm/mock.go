package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockProvider returns canned responses in FIFO order. Useful in tests and
// for running the app offline without an API key.
type MockProvider struct {
	mu        sync.Mutex
	responses []*Response
	errs      []error
	calls     []Request
}

// NewMockProvider creates an empty mock. Enqueue responses or errors before
// use; Generate fails with ErrProviderUnavailable when the queue is empty.
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

// EnqueueResponse adds a canned response to the queue.
func (m *MockProvider) EnqueueResponse(resp *Response) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
	m.errs = append(m.errs, nil)
}

// EnqueueError adds an error to the queue.
func (m *MockProvider) EnqueueError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, nil)
	m.errs = append(m.errs, err)
}

// EnqueueJSON is a convenience for enqueueing a JSON content response.
func (m *MockProvider) EnqueueJSON(content string) {
	m.EnqueueResponse(&Response{
		Content:    json.RawMessage(content),
		Model:      "mock",
		StopReason: "end_turn",
	})
}

// Calls returns a copy of all requests seen so far.
func (m *MockProvider) Calls() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Request, len(m.calls))
	copy(out, m.calls)
	return out
}

func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, req)

	if len(m.responses) == 0 {
		return nil, &ErrProviderUnavailable{Err: errMockExhausted}
	}

	resp, err := m.responses[0], m.errs[0]
	m.responses = m.responses[1:]
	m.errs = m.errs[1:]

	if err != nil {
		return nil, err
	}
	if verr := validateResponse(req.Schema, resp.Content); verr != nil {
		return nil, verr
	}
	return resp, nil
}

func (m *MockProvider) ModelID() string { return "mock" }

var errMockExhausted = &exhaustedError{}

type exhaustedError struct{}

func (*exhaustedError) Error() string { return "mock provider has no queued responses" }
