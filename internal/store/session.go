package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Session is one persisted play session.
type Session struct {
	ID                string
	Player            string
	StartedAt         time.Time
	FinishedAt        *time.Time
	StartDifficulty   int
	FinalDifficulty   int
	Problems          int
	Correct           int
	AvgSeconds        float64
	DifficultyChanges int
	RecommendedNext   int
}

// CreateSession inserts a new session row at session start.
func (s *Store) CreateSession(ctx context.Context, sess *Session) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, player, started_at, start_difficulty, final_difficulty, recommended_next)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		sess.ID,
		sess.Player,
		sess.StartedAt.UTC().Format(time.RFC3339),
		sess.StartDifficulty,
		sess.StartDifficulty,
		sess.StartDifficulty,
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// FinishSession writes the final tallies when a session completes.
func (s *Store) FinishSession(ctx context.Context, sess *Session) error {
	finished := time.Now().UTC()
	if sess.FinishedAt != nil {
		finished = sess.FinishedAt.UTC()
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE sessions
		SET finished_at = ?, final_difficulty = ?, problems = ?, correct = ?,
		    avg_seconds = ?, difficulty_changes = ?, recommended_next = ?
		WHERE id = ?
	`,
		finished.Format(time.RFC3339),
		sess.FinalDifficulty,
		sess.Problems,
		sess.Correct,
		sess.AvgSeconds,
		sess.DifficultyChanges,
		sess.RecommendedNext,
		sess.ID,
	)
	if err != nil {
		return fmt.Errorf("finish session: %w", err)
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return fmt.Errorf("finish session: no session with id %s", sess.ID)
	}
	return nil
}

// RecentSessions returns up to limit finished sessions, newest first.
func (s *Store) RecentSessions(ctx context.Context, limit int) ([]Session, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, player, started_at, finished_at, start_difficulty, final_difficulty,
		       problems, correct, avg_seconds, difficulty_changes, recommended_next
		FROM sessions
		WHERE finished_at IS NOT NULL
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		var (
			sess     Session
			started  string
			finished sql.NullString
		)
		if err := rows.Scan(
			&sess.ID, &sess.Player, &started, &finished,
			&sess.StartDifficulty, &sess.FinalDifficulty,
			&sess.Problems, &sess.Correct, &sess.AvgSeconds,
			&sess.DifficultyChanges, &sess.RecommendedNext,
		); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		if sess.StartedAt, err = time.Parse(time.RFC3339, started); err != nil {
			return nil, fmt.Errorf("parse started_at: %w", err)
		}
		if finished.Valid {
			t, err := time.Parse(time.RFC3339, finished.String)
			if err != nil {
				return nil, fmt.Errorf("parse finished_at: %w", err)
			}
			sess.FinishedAt = &t
		}
		out = append(out, sess)
	}
	return out, rows.Err()
}

// ResetAll deletes all stored sessions and their dependents.
func (s *Store) ResetAll(ctx context.Context) error {
	for _, stmt := range []string{
		"DELETE FROM decisions",
		"DELETE FROM attempts",
		"DELETE FROM sessions",
		"DELETE FROM llm_requests",
	} {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%s: %w", stmt, err)
		}
	}
	return nil
}
