// Package tracker maintains the bounded recent-attempt window and derives
// the feature vector consumed by the adaptive engine.
package tracker

import (
	"errors"
	"fmt"

	"github.com/priyad/mathventure/internal/adaptive"
)

// ErrInvalidInput is returned for malformed attempt data. The record call is
// rejected and the window is left unchanged.
var ErrInvalidInput = errors.New("tracker: invalid input")

const (
	// DefaultWindowSize is the standard window capacity.
	DefaultWindowSize = 3

	// MinWindowSize and MaxWindowSize bound configurable capacities.
	MinWindowSize = 3
	MaxWindowSize = 7

	// Neutral feature defaults for an empty window.
	neutralAccuracy = 50.0
	neutralAvgTime  = 5.0
)

// Attempt is one recorded problem outcome. Immutable once recorded.
type Attempt struct {
	Correct    bool
	Seconds    float64
	Difficulty int
	Seq        int
}

// Tracker holds the most recent attempts, evicting the oldest past the
// window capacity. One tracker belongs to one learner session; it is not
// safe for concurrent use without external serialization.
type Tracker struct {
	window   []Attempt
	capacity int
	seq      int
}

// New creates a tracker with the given window capacity, clamped to
// [MinWindowSize, MaxWindowSize]. Zero or negative means the default.
func New(capacity int) *Tracker {
	if capacity <= 0 {
		capacity = DefaultWindowSize
	}
	if capacity < MinWindowSize {
		capacity = MinWindowSize
	}
	if capacity > MaxWindowSize {
		capacity = MaxWindowSize
	}
	return &Tracker{
		window:   make([]Attempt, 0, capacity),
		capacity: capacity,
	}
}

// Record appends an attempt to the window, evicting the oldest entry if the
// window is full.
func (t *Tracker) Record(correct bool, seconds float64, difficulty int) error {
	if seconds <= 0 {
		return fmt.Errorf("%w: response time %.3fs must be positive", ErrInvalidInput, seconds)
	}
	if difficulty < adaptive.MinDifficulty || difficulty > adaptive.MaxDifficulty {
		return fmt.Errorf("%w: difficulty %d outside [%d,%d]",
			ErrInvalidInput, difficulty, adaptive.MinDifficulty, adaptive.MaxDifficulty)
	}

	t.seq++
	t.window = append(t.window, Attempt{
		Correct:    correct,
		Seconds:    seconds,
		Difficulty: difficulty,
		Seq:        t.seq,
	})
	if len(t.window) > t.capacity {
		t.window = t.window[1:]
	}
	return nil
}

// Len returns the number of attempts currently in the window.
func (t *Tracker) Len() int {
	return len(t.window)
}

// Capacity returns the window capacity.
func (t *Tracker) Capacity() int {
	return t.capacity
}

// Window returns a copy of the current window, oldest first.
func (t *Tracker) Window() []Attempt {
	out := make([]Attempt, len(t.window))
	copy(out, t.window)
	return out
}

// Features derives the feature vector from the current window. It is a pure
// read: the window is never mutated and the vector is computed fresh on
// every call.
func (t *Tracker) Features(currentDifficulty int) adaptive.FeatureVector {
	var fv adaptive.FeatureVector
	fv[adaptive.FeatDifficulty] = float64(currentDifficulty)

	if len(t.window) == 0 {
		fv[adaptive.FeatAccuracy] = neutralAccuracy
		fv[adaptive.FeatAvgTime] = neutralAvgTime
		return fv
	}

	correct := 0
	var totalSeconds float64
	for _, a := range t.window {
		if a.Correct {
			correct++
		}
		totalSeconds += a.Seconds
	}

	n := float64(len(t.window))
	fv[adaptive.FeatAccuracy] = 100 * float64(correct) / n
	fv[adaptive.FeatAvgTime] = totalSeconds / n

	correctStreak, incorrectStreak := t.streaks()
	fv[adaptive.FeatCorrectStreak] = float64(correctStreak)
	fv[adaptive.FeatIncorrectStreak] = float64(incorrectStreak)
	fv[adaptive.FeatTrend] = float64(t.trend())

	return fv
}

// streaks returns the trailing run lengths. Exactly one is nonzero for a
// non-empty window.
func (t *Tracker) streaks() (correct, incorrect int) {
	if len(t.window) == 0 {
		return 0, 0
	}

	latest := t.window[len(t.window)-1].Correct
	run := 0
	for i := len(t.window) - 1; i >= 0; i-- {
		if t.window[i].Correct != latest {
			break
		}
		run++
	}

	if latest {
		return run, 0
	}
	return 0, run
}

// trend compares accuracy of the newer half of the window against the older
// half and returns the sign of the difference. Windows shorter than 2 have
// no trend.
func (t *Tracker) trend() int {
	n := len(t.window)
	if n < 2 {
		return 0
	}

	mid := n / 2
	older := accuracyOf(t.window[:mid])
	newer := accuracyOf(t.window[mid:])

	switch {
	case newer > older:
		return 1
	case newer < older:
		return -1
	default:
		return 0
	}
}

func accuracyOf(attempts []Attempt) float64 {
	if len(attempts) == 0 {
		return 0
	}
	correct := 0
	for _, a := range attempts {
		if a.Correct {
			correct++
		}
	}
	return float64(correct) / float64(len(attempts))
}
