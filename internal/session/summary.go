package session

import (
	"context"
	"fmt"
	"time"

	"github.com/priyad/mathventure/internal/adaptive"
	"github.com/priyad/mathventure/internal/store"
)

// Summary aggregates a finished session.
type Summary struct {
	Player            string
	Problems          int
	Correct           int
	Accuracy          float64 // percent
	AvgSeconds        float64
	ByTier            map[int]Tally
	DifficultyChanges int
	FinalDifficulty   int
	RecommendedNext   int
	Duration          time.Duration
}

// Recent-window accuracy thresholds for the next-session recommendation.
const (
	recommendUpAbove   = 80.0
	recommendDownBelow = 50.0
)

// Summary computes the wrap-up for the session so far.
func (s *Session) Summary() Summary {
	sum := Summary{
		Player:            s.cfg.Player,
		Problems:          s.answered,
		Correct:           s.correct,
		ByTier:            map[int]Tally{},
		DifficultyChanges: s.changes,
		FinalDifficulty:   s.difficulty,
		Duration:          time.Since(s.startedAt),
	}

	if s.answered > 0 {
		sum.Accuracy = float64(s.correct) / float64(s.answered) * 100
		sum.AvgSeconds = s.totalSecs / float64(s.answered)
	}

	for tier, t := range s.byTier {
		sum.ByTier[tier] = *t
	}

	// The recommendation keys on the recent window, not the whole
	// session: how the learner finished matters more than how they
	// started.
	recent := s.track.Features(s.difficulty)[adaptive.FeatAccuracy]
	sum.RecommendedNext = recommendNext(s.difficulty, recent)
	return sum
}

// recommendNext suggests the starting tier for the next session given the
// recent-window accuracy.
func recommendNext(current int, accuracy float64) int {
	next := current
	switch {
	case accuracy >= recommendUpAbove:
		next++
	case accuracy < recommendDownBelow:
		next--
	}
	if next < adaptive.MinDifficulty {
		next = adaptive.MinDifficulty
	}
	if next > adaptive.MaxDifficulty {
		next = adaptive.MaxDifficulty
	}
	return next
}

// Finish persists the final tallies and returns the summary.
func (s *Session) Finish(ctx context.Context) (Summary, error) {
	sum := s.Summary()

	if s.rec != nil {
		now := time.Now()
		err := s.rec.FinishSession(ctx, &store.Session{
			ID:                s.ID,
			Player:            s.cfg.Player,
			StartedAt:         s.startedAt,
			FinishedAt:        &now,
			StartDifficulty:   s.cfg.StartDifficulty,
			FinalDifficulty:   s.difficulty,
			Problems:          s.answered,
			Correct:           s.correct,
			AvgSeconds:        sum.AvgSeconds,
			DifficultyChanges: s.changes,
			RecommendedNext:   sum.RecommendedNext,
		})
		if err != nil {
			return sum, fmt.Errorf("session: %w", err)
		}
	}

	return sum, nil
}
