package store

import (
	"context"
	"fmt"
	"time"

	"github.com/priyad/mathventure/internal/llm"
)

// LogLLMRequest implements llm.RequestLogger.
func (s *Store) LogLLMRequest(ctx context.Context, entry llm.RequestLog) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO llm_requests (provider, model, purpose, input_tokens, output_tokens, latency_ms, success, error_message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		entry.Provider, entry.Model, entry.Purpose,
		entry.InputTokens, entry.OutputTokens, entry.LatencyMs,
		entry.Success, entry.ErrorMessage,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert llm request: %w", err)
	}
	return nil
}

// LLMRequestRow is one logged provider call.
type LLMRequestRow struct {
	ID           int64
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	CreatedAt    time.Time
}

// RecentLLMRequests returns the newest logged calls, newest first.
func (s *Store) RecentLLMRequests(ctx context.Context, limit int) ([]LLMRequestRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, provider, model, purpose, input_tokens, output_tokens, latency_ms, success, error_message, created_at
		FROM llm_requests
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query llm requests: %w", err)
	}
	defer rows.Close()

	var out []LLMRequestRow
	for rows.Next() {
		var r LLMRequestRow
		var created string
		if err := rows.Scan(&r.ID, &r.Provider, &r.Model, &r.Purpose,
			&r.InputTokens, &r.OutputTokens, &r.LatencyMs,
			&r.Success, &r.ErrorMessage, &created); err != nil {
			return nil, fmt.Errorf("scan llm request: %w", err)
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339, created)
		out = append(out, r)
	}
	return out, rows.Err()
}

// LLMUsage aggregates token counts for one purpose.
type LLMUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMUsageByPurpose returns per-purpose usage totals.
func (s *Store) LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT purpose, COUNT(*), SUM(input_tokens), SUM(output_tokens), CAST(AVG(latency_ms) AS INTEGER)
		FROM llm_requests
		GROUP BY purpose
		ORDER BY purpose
	`)
	if err != nil {
		return nil, fmt.Errorf("query llm usage: %w", err)
	}
	defer rows.Close()

	var out []LLMUsage
	for rows.Next() {
		var u LLMUsage
		if err := rows.Scan(&u.Purpose, &u.Calls, &u.InputTokens, &u.OutputTokens, &u.AvgLatencyMs); err != nil {
			return nil, fmt.Errorf("scan llm usage: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
