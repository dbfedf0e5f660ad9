package session

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/priyad/mathventure/internal/adaptive"
	"github.com/priyad/mathventure/internal/problemgen"
	"github.com/priyad/mathventure/internal/store"
)

func testConfig() Config {
	return Config{
		Player:          "test",
		Problems:        10,
		AdaptAfter:      3,
		Window:          3,
		StartDifficulty: 1,
	}
}

// fallbackEngine decides via the rule fallback: a zero-value model yields
// uniform probabilities, always below the confidence threshold.
func fallbackEngine() *adaptive.Engine {
	return adaptive.NewEngine(&adaptive.Model{}, adaptive.Scaler{}, adaptive.DefaultConfig())
}

func newTestSession(t *testing.T, cfg Config, rec Recorder) *Session {
	t.Helper()
	s := New(cfg, fallbackEngine(), problemgen.NewLocalSeeded(17), rec)
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return s
}

func answerCorrectly(t *testing.T, s *Session, elapsed time.Duration) *Feedback {
	t.Helper()
	raw := strconv.FormatFloat(s.Current().Answer, 'f', -1, 64)
	fb, err := s.HandleAnswer(context.Background(), raw, elapsed)
	if err != nil {
		t.Fatalf("HandleAnswer: %v", err)
	}
	return fb
}

func answerWrong(t *testing.T, s *Session, elapsed time.Duration) *Feedback {
	t.Helper()
	fb, err := s.HandleAnswer(context.Background(), "999999", elapsed)
	if err != nil {
		t.Fatalf("HandleAnswer: %v", err)
	}
	return fb
}

func TestStart_DealsFirstProblem(t *testing.T) {
	s := newTestSession(t, testConfig(), nil)
	if s.Current() == nil {
		t.Fatal("expected a problem after Start")
	}
	if s.Current().Difficulty != 1 {
		t.Errorf("first problem difficulty = %d, want 1", s.Current().Difficulty)
	}
	if s.Done() {
		t.Error("fresh session should not be done")
	}
}

func TestHandleAnswer_NoDecisionDuringWarmup(t *testing.T) {
	s := newTestSession(t, testConfig(), nil)
	for i := range 2 {
		fb := answerCorrectly(t, s, 2*time.Second)
		if fb.Decision != nil {
			t.Fatalf("attempt %d: expected no decision during warm-up", i+1)
		}
	}
	fb := answerCorrectly(t, s, 2*time.Second)
	if fb.Decision == nil {
		t.Fatal("expected a decision on the third attempt")
	}
}

func TestHandleAnswer_PerfectRunClimbsToHard(t *testing.T) {
	s := newTestSession(t, testConfig(), nil)
	for !s.Done() {
		answerCorrectly(t, s, 2*time.Second)
	}
	// 100% accuracy with no incorrect streak rules toward increase; two
	// steps reach the ceiling and stay there.
	if s.Difficulty() != adaptive.MaxDifficulty {
		t.Errorf("final difficulty = %d, want %d", s.Difficulty(), adaptive.MaxDifficulty)
	}

	sum := s.Summary()
	if sum.Accuracy != 100 {
		t.Errorf("accuracy = %v, want 100", sum.Accuracy)
	}
	if sum.RecommendedNext != adaptive.MaxDifficulty {
		t.Errorf("recommended next = %d, want %d", sum.RecommendedNext, adaptive.MaxDifficulty)
	}
	if sum.DifficultyChanges != 2 {
		t.Errorf("difficulty changes = %d, want 2", sum.DifficultyChanges)
	}
}

func TestHandleAnswer_StrugglingStaysAtFloor(t *testing.T) {
	s := newTestSession(t, testConfig(), nil)
	for !s.Done() {
		fb := answerWrong(t, s, 10*time.Second)
		if fb.Correct {
			t.Fatal("expected wrong answer")
		}
	}
	if s.Difficulty() != adaptive.MinDifficulty {
		t.Errorf("final difficulty = %d, want %d", s.Difficulty(), adaptive.MinDifficulty)
	}

	sum := s.Summary()
	if sum.Accuracy != 0 {
		t.Errorf("accuracy = %v, want 0", sum.Accuracy)
	}
	if sum.RecommendedNext != adaptive.MinDifficulty {
		t.Errorf("recommended next = %d, want %d (clamped)", sum.RecommendedNext, adaptive.MinDifficulty)
	}
}

func TestHandleAnswer_AfterDone(t *testing.T) {
	cfg := testConfig()
	cfg.Problems = 1
	s := newTestSession(t, cfg, nil)

	answerCorrectly(t, s, time.Second)
	if !s.Done() {
		t.Fatal("expected session to be done")
	}
	if s.Current() != nil {
		t.Error("expected no current problem after the last answer")
	}
	if _, err := s.HandleAnswer(context.Background(), "1", time.Second); !errors.Is(err, ErrSessionOver) {
		t.Errorf("err = %v, want ErrSessionOver", err)
	}
}

func TestSummary_PerTierTallies(t *testing.T) {
	s := newTestSession(t, testConfig(), nil)
	for !s.Done() {
		answerCorrectly(t, s, 2*time.Second)
	}
	sum := s.Summary()

	total := 0
	correct := 0
	for _, tally := range sum.ByTier {
		total += tally.Problems
		correct += tally.Correct
	}
	if total != 10 || correct != 10 {
		t.Errorf("per-tier tallies sum to %d/%d, want 10/10", correct, total)
	}
	if _, ok := sum.ByTier[1]; !ok {
		t.Error("expected tier 1 tally (session starts there)")
	}
}

func TestSummary_RecommendationFollowsRecentWindow(t *testing.T) {
	cfg := testConfig()
	cfg.Problems = 8
	s := newTestSession(t, cfg, nil)

	// A rough start followed by a strong finish: whole-session accuracy
	// is 3/8, but the window holds only the three correct answers.
	for range 5 {
		answerWrong(t, s, 2*time.Second)
	}
	for range 3 {
		answerCorrectly(t, s, 2*time.Second)
	}

	sum := s.Summary()
	if sum.Accuracy != 37.5 {
		t.Errorf("Accuracy = %v, want 37.5", sum.Accuracy)
	}
	// The last window is perfect, so the final attempt moved the tier to
	// 2 and the recommendation goes one above it.
	if sum.FinalDifficulty != 2 {
		t.Errorf("FinalDifficulty = %d, want 2", sum.FinalDifficulty)
	}
	if sum.RecommendedNext != 3 {
		t.Errorf("RecommendedNext = %d, want 3 (recent window is perfect)", sum.RecommendedNext)
	}
}

// recordingStore captures Recorder calls without a database.
type recordingStore struct {
	created   int
	finished  int
	attempts  []store.AttemptRecord
	decisions []store.DecisionRecord
}

func (r *recordingStore) CreateSession(_ context.Context, _ *store.Session) error {
	r.created++
	return nil
}

func (r *recordingStore) FinishSession(_ context.Context, _ *store.Session) error {
	r.finished++
	return nil
}

func (r *recordingStore) AppendAttempt(_ context.Context, a store.AttemptRecord) error {
	r.attempts = append(r.attempts, a)
	return nil
}

func (r *recordingStore) AppendDecision(_ context.Context, d store.DecisionRecord) error {
	r.decisions = append(r.decisions, d)
	return nil
}

func TestSession_PersistsProgress(t *testing.T) {
	rec := &recordingStore{}
	s := newTestSession(t, testConfig(), rec)
	for !s.Done() {
		answerCorrectly(t, s, 2*time.Second)
	}
	if _, err := s.Finish(context.Background()); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	if rec.created != 1 || rec.finished != 1 {
		t.Errorf("created/finished = %d/%d, want 1/1", rec.created, rec.finished)
	}
	if len(rec.attempts) != 10 {
		t.Errorf("attempts = %d, want 10", len(rec.attempts))
	}
	// Decisions start on attempt 3: attempts 3..10.
	if len(rec.decisions) != 8 {
		t.Errorf("decisions = %d, want 8", len(rec.decisions))
	}
	for i, a := range rec.attempts {
		if a.Seq != i+1 {
			t.Fatalf("attempt %d has seq %d", i, a.Seq)
		}
	}
	first := rec.decisions[0]
	if first.AttemptSeq != 3 {
		t.Errorf("first decision at seq %d, want 3", first.AttemptSeq)
	}
	if !first.UsedFallback {
		t.Error("uniform model should force fallback decisions")
	}
}

func TestHandleAnswer_ZeroElapsedClamped(t *testing.T) {
	s := newTestSession(t, testConfig(), nil)
	if _, err := s.HandleAnswer(context.Background(), "0", 0); err != nil {
		t.Fatalf("zero elapsed should be clamped, got: %v", err)
	}
}
