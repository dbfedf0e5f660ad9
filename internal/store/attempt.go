package store

import (
	"context"
	"fmt"
	"time"
)

// AttemptRecord is one answered problem within a session.
type AttemptRecord struct {
	SessionID  string
	Seq        int
	Problem    string
	Difficulty int
	Answer     float64
	Given      string
	Correct    bool
	Seconds    float64
}

// DecisionRecord is one difficulty decision taken after an attempt.
type DecisionRecord struct {
	SessionID     string
	AttemptSeq    int
	Action        string
	Confidence    float64
	ProbDecrease  float64
	ProbStay      float64
	ProbIncrease  float64
	UsedFallback  bool
	Rationale     string
	OldDifficulty int
	NewDifficulty int
}

// AppendAttempt records an answered problem.
func (s *Store) AppendAttempt(ctx context.Context, a AttemptRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO attempts (session_id, seq, problem, difficulty, answer, given, correct, seconds, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		a.SessionID, a.Seq, a.Problem, a.Difficulty, a.Answer,
		a.Given, a.Correct, a.Seconds,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}
	return nil
}

// AppendDecision records a difficulty decision.
func (s *Store) AppendDecision(ctx context.Context, d DecisionRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO decisions (session_id, attempt_seq, action, confidence, prob_decrease, prob_stay, prob_increase, used_fallback, rationale, old_difficulty, new_difficulty, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		d.SessionID, d.AttemptSeq, d.Action, d.Confidence,
		d.ProbDecrease, d.ProbStay, d.ProbIncrease,
		d.UsedFallback, d.Rationale, d.OldDifficulty, d.NewDifficulty,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert decision: %w", err)
	}
	return nil
}

// SessionAttempts returns the attempts of a session in order.
func (s *Store) SessionAttempts(ctx context.Context, sessionID string) ([]AttemptRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT session_id, seq, problem, difficulty, answer, given, correct, seconds
		FROM attempts
		WHERE session_id = ?
		ORDER BY seq
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var out []AttemptRecord
	for rows.Next() {
		var a AttemptRecord
		if err := rows.Scan(
			&a.SessionID, &a.Seq, &a.Problem, &a.Difficulty,
			&a.Answer, &a.Given, &a.Correct, &a.Seconds,
		); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
