package adaptive

import (
	"fmt"
	"math"
)

// Feature indices into a FeatureVector. The classifier's weight columns and
// the scaler's statistics are bound to this ordering; changing it invalidates
// every saved model.
const (
	FeatAccuracy        = iota // percentage of correct attempts in the window (0-100)
	FeatAvgTime                // mean response time in seconds
	FeatCorrectStreak          // trailing run of consecutive correct attempts
	FeatIncorrectStreak        // trailing run of consecutive incorrect attempts
	FeatTrend                  // -1 declining, 0 flat, 1 improving
	FeatDifficulty             // current difficulty tier (1-3)

	NumFeatures = 6
)

// NumClasses is the number of difficulty actions the classifier predicts.
const NumClasses = 3

// Difficulty tier bounds. Tiers map to the problem generator's profiles.
const (
	MinDifficulty = 1
	MaxDifficulty = 3
)

// featureNames gives the canonical name of each feature, in vector order.
// Persisted in model files to detect ordering drift on load.
var featureNames = [NumFeatures]string{
	"accuracy_pct",
	"avg_time_seconds",
	"correct_streak",
	"incorrect_streak",
	"trend",
	"difficulty",
}

// FeatureVector is the fixed-order numeric summary of recent performance
// consumed by the classifier. Values are raw (unscaled).
type FeatureVector [NumFeatures]float64

// Validate rejects non-finite values. A NaN or Inf here indicates a bug in
// the producer, so the error is surfaced rather than silently recovered.
func (fv FeatureVector) Validate() error {
	for i, v := range fv {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is %v", ErrInvalidFeature, featureNames[i], v)
		}
	}
	return nil
}

// clampDifficulty bounds a tier to [MinDifficulty, MaxDifficulty].
func clampDifficulty(d int) int {
	if d < MinDifficulty {
		return MinDifficulty
	}
	if d > MaxDifficulty {
		return MaxDifficulty
	}
	return d
}
