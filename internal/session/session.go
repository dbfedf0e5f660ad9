// Package session orchestrates one play session: it deals problems, checks
// answers, feeds the performance window, and applies difficulty decisions.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/priyad/mathventure/internal/adaptive"
	"github.com/priyad/mathventure/internal/problemgen"
	"github.com/priyad/mathventure/internal/store"
	"github.com/priyad/mathventure/internal/tracker"
)

// ErrSessionOver is returned by HandleAnswer once all problems are answered.
var ErrSessionOver = errors.New("session: no problems left")

// Config controls one session.
type Config struct {
	Player          string
	Problems        int
	AdaptAfter      int
	Window          int
	StartDifficulty int
}

// Recorder persists session progress. *store.Store satisfies it; a nil
// Recorder runs the session in memory only.
type Recorder interface {
	CreateSession(ctx context.Context, sess *store.Session) error
	FinishSession(ctx context.Context, sess *store.Session) error
	AppendAttempt(ctx context.Context, a store.AttemptRecord) error
	AppendDecision(ctx context.Context, d store.DecisionRecord) error
}

// Tally counts problems and correct answers for one difficulty tier.
type Tally struct {
	Problems int
	Correct  int
}

// Session holds the live state of a play session.
type Session struct {
	ID string

	cfg     Config
	track   *tracker.Tracker
	engine  *adaptive.Engine
	gen     problemgen.Generator
	rec     Recorder
	current *problemgen.Problem

	difficulty int
	answered   int
	correct    int
	totalSecs  float64
	changes    int
	byTier     map[int]*Tally
	startedAt  time.Time
}

// Feedback describes the outcome of one answered problem.
type Feedback struct {
	// Correct reports whether the answer matched.
	Correct bool

	// Answer is the canonical correct answer.
	Answer float64

	// Decision is the difficulty decision taken after this attempt, nil
	// while the warm-up window is still filling.
	Decision *adaptive.Decision

	// Difficulty is the tier the next problem will be drawn from.
	Difficulty int

	// Answered and Total track session progress.
	Answered int
	Total    int
}

// New creates a session. Call Start before dealing problems.
func New(cfg Config, engine *adaptive.Engine, gen problemgen.Generator, rec Recorder) *Session {
	return &Session{
		ID:         uuid.NewString(),
		cfg:        cfg,
		track:      tracker.New(cfg.Window),
		engine:     engine,
		gen:        gen,
		rec:        rec,
		difficulty: cfg.StartDifficulty,
		byTier:     map[int]*Tally{},
	}
}

// Start registers the session and deals the first problem.
func (s *Session) Start(ctx context.Context) error {
	s.startedAt = time.Now()

	if s.rec != nil {
		err := s.rec.CreateSession(ctx, &store.Session{
			ID:              s.ID,
			Player:          s.cfg.Player,
			StartedAt:       s.startedAt,
			StartDifficulty: s.cfg.StartDifficulty,
		})
		if err != nil {
			return fmt.Errorf("session: %w", err)
		}
	}

	return s.deal(ctx)
}

// Current returns the problem awaiting an answer, nil when the session is
// over.
func (s *Session) Current() *problemgen.Problem {
	return s.current
}

// Difficulty returns the current tier.
func (s *Session) Difficulty() int {
	return s.difficulty
}

// Done reports whether all problems have been answered.
func (s *Session) Done() bool {
	return s.answered >= s.cfg.Problems
}

// Answered returns the number of problems answered so far.
func (s *Session) Answered() int {
	return s.answered
}

// Total returns the number of problems in the session.
func (s *Session) Total() int {
	return s.cfg.Problems
}

// HandleAnswer checks the raw answer against the current problem, records
// the attempt, consults the engine once enough attempts accumulated, and
// deals the next problem.
func (s *Session) HandleAnswer(ctx context.Context, raw string, elapsed time.Duration) (*Feedback, error) {
	if s.Done() || s.current == nil {
		return nil, ErrSessionOver
	}

	p := s.current
	correct := problemgen.CheckAnswer(raw, p)
	seconds := elapsed.Seconds()
	if seconds <= 0 {
		seconds = 0.001
	}

	s.answered++
	s.totalSecs += seconds
	tally := s.tally(p.Difficulty)
	tally.Problems++
	if correct {
		s.correct++
		tally.Correct++
	}

	if err := s.track.Record(correct, seconds, p.Difficulty); err != nil {
		return nil, fmt.Errorf("session: record attempt: %w", err)
	}

	if s.rec != nil {
		err := s.rec.AppendAttempt(ctx, store.AttemptRecord{
			SessionID:  s.ID,
			Seq:        s.answered,
			Problem:    p.Text(),
			Difficulty: p.Difficulty,
			Answer:     p.Answer,
			Given:      raw,
			Correct:    correct,
			Seconds:    seconds,
		})
		if err != nil {
			return nil, fmt.Errorf("session: %w", err)
		}
	}

	fb := &Feedback{
		Correct:    correct,
		Answer:     p.Answer,
		Difficulty: s.difficulty,
		Answered:   s.answered,
		Total:      s.cfg.Problems,
	}

	if s.answered >= s.cfg.AdaptAfter {
		decision, err := s.adapt(ctx)
		if err != nil {
			return nil, err
		}
		fb.Decision = &decision
		fb.Difficulty = s.difficulty
	}

	if !s.Done() {
		if err := s.deal(ctx); err != nil {
			return nil, err
		}
	} else {
		s.current = nil
	}

	return fb, nil
}

// adapt runs one difficulty decision and applies it.
func (s *Session) adapt(ctx context.Context) (adaptive.Decision, error) {
	features := s.track.Features(s.difficulty)
	decision, err := s.engine.Decide(features)
	if err != nil {
		return adaptive.Decision{}, fmt.Errorf("session: decide: %w", err)
	}

	old := s.difficulty
	if decision.NewDifficulty != old {
		s.changes++
	}
	s.difficulty = decision.NewDifficulty

	if s.rec != nil {
		err := s.rec.AppendDecision(ctx, store.DecisionRecord{
			SessionID:     s.ID,
			AttemptSeq:    s.answered,
			Action:        decision.Action.String(),
			Confidence:    decision.Confidence,
			ProbDecrease:  decision.Probabilities[adaptive.ActionDecrease],
			ProbStay:      decision.Probabilities[adaptive.ActionStay],
			ProbIncrease:  decision.Probabilities[adaptive.ActionIncrease],
			UsedFallback:  decision.UsedFallback,
			Rationale:     decision.Rationale,
			OldDifficulty: old,
			NewDifficulty: decision.NewDifficulty,
		})
		if err != nil {
			return adaptive.Decision{}, fmt.Errorf("session: %w", err)
		}
	}

	return decision, nil
}

func (s *Session) deal(ctx context.Context) error {
	p, err := s.gen.Generate(ctx, s.difficulty)
	if err != nil {
		return fmt.Errorf("session: generate problem: %w", err)
	}
	s.current = p
	return nil
}

func (s *Session) tally(difficulty int) *Tally {
	t, ok := s.byTier[difficulty]
	if !ok {
		t = &Tally{}
		s.byTier[difficulty] = t
	}
	return t
}
