package adaptive

import (
	"math/rand/v2"
)

// TrainerConfig controls synthetic cohort generation and model fitting.
// Cohort sizes are tuning constants, not architecture.
type TrainerConfig struct {
	// Cohort sizes for the synthetic training set.
	HighPerformers int // labeled Increase
	Strugglers     int // labeled Decrease
	Average        int // labeled Stay
	Ambiguous      int // labeled by the fallback rules

	// WindowSize bounds streak features in synthetic samples; it should
	// match the tracker's window capacity.
	WindowSize int

	// LearningRate and Epochs control batch gradient descent on the
	// cross-entropy loss.
	LearningRate float64
	Epochs       int

	// Seed makes the synthetic dataset reproducible.
	Seed uint64
}

// DefaultTrainerConfig returns the standard bootstrap configuration.
func DefaultTrainerConfig() TrainerConfig {
	return TrainerConfig{
		HighPerformers: 100,
		Strugglers:     100,
		Average:        100,
		Ambiguous:      50,
		WindowSize:     3,
		LearningRate:   0.1,
		Epochs:         500,
		Seed:           42,
	}
}

// TrainResult carries the fitted parameters plus a diagnostic accuracy
// metric. The metric is for display only; the decision path never reads it.
type TrainResult struct {
	Model         Model
	Scaler        Scaler
	TrainAccuracy float64
	Samples       int
}

// Train synthesizes the labeled cohorts, fits scaling statistics over the
// full set, then fits the classifier by gradient descent. It runs once per
// process start; the returned parameters are immutable thereafter.
func Train(cfg TrainerConfig) TrainResult {
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))

	samples, labels := synthesize(cfg, rng)
	scaler := FitScaler(samples)

	scaled := make([]FeatureVector, len(samples))
	for i, s := range samples {
		scaled[i] = scaler.Transform(s)
	}

	model := fit(scaled, labels, cfg)

	correct := 0
	for i, s := range scaled {
		p := model.Probabilities(s)
		if argmaxStayBiased(p) == labels[i] {
			correct++
		}
	}

	accuracy := 0.0
	if len(scaled) > 0 {
		accuracy = float64(correct) / float64(len(scaled))
	}

	return TrainResult{
		Model:         model,
		Scaler:        scaler,
		TrainAccuracy: accuracy,
		Samples:       len(samples),
	}
}

// synthesize generates the four cohorts under fixed distributions.
func synthesize(cfg TrainerConfig, rng *rand.Rand) ([]FeatureVector, []int) {
	total := cfg.HighPerformers + cfg.Strugglers + cfg.Average + cfg.Ambiguous
	samples := make([]FeatureVector, 0, total)
	labels := make([]int, 0, total)

	window := cfg.WindowSize
	if window < 1 {
		window = DefaultTrainerConfig().WindowSize
	}

	add := func(fv FeatureVector, label int) {
		samples = append(samples, fv)
		labels = append(labels, label)
	}

	// High performers: near-perfect accuracy, fast answers, no misses.
	for range cfg.HighPerformers {
		add(FeatureVector{
			FeatAccuracy:        80 + rng.Float64()*20,
			FeatAvgTime:         1 + rng.Float64()*3,
			FeatCorrectStreak:   float64(1 + rng.IntN(window)),
			FeatIncorrectStreak: 0,
			FeatTrend:           float64(rng.IntN(2)), // 0 or 1
			FeatDifficulty:      float64(MinDifficulty + rng.IntN(MaxDifficulty)),
		}, int(ActionIncrease))
	}

	// Strugglers: low accuracy, slow answers, active incorrect streak.
	for range cfg.Strugglers {
		add(FeatureVector{
			FeatAccuracy:        rng.Float64() * 35,
			FeatAvgTime:         8 + rng.Float64()*7,
			FeatCorrectStreak:   0,
			FeatIncorrectStreak: float64(1 + rng.IntN(window)),
			FeatTrend:           float64(rng.IntN(2)) - 1, // -1 or 0
			FeatDifficulty:      float64(MinDifficulty + rng.IntN(MaxDifficulty)),
		}, int(ActionDecrease))
	}

	// Average performers: middling accuracy and pace, short streaks.
	for range cfg.Average {
		fv := FeatureVector{
			FeatAccuracy:   45 + rng.Float64()*30,
			FeatAvgTime:    4 + rng.Float64()*4,
			FeatTrend:      float64(rng.IntN(3)) - 1,
			FeatDifficulty: float64(MinDifficulty + rng.IntN(MaxDifficulty)),
		}
		if rng.IntN(2) == 0 {
			fv[FeatCorrectStreak] = 1
		} else {
			fv[FeatIncorrectStreak] = 1
		}
		add(fv, int(ActionStay))
	}

	// Ambiguous cases: uniform draws labeled by the fallback rules, keeping
	// the model consistent with the policy it approximates.
	for range cfg.Ambiguous {
		fv := FeatureVector{
			FeatAccuracy:   rng.Float64() * 100,
			FeatAvgTime:    1 + rng.Float64()*14,
			FeatTrend:      float64(rng.IntN(3)) - 1,
			FeatDifficulty: float64(MinDifficulty + rng.IntN(MaxDifficulty)),
		}
		if rng.IntN(2) == 0 {
			fv[FeatCorrectStreak] = float64(rng.IntN(window + 1))
		} else {
			fv[FeatIncorrectStreak] = float64(rng.IntN(window + 1))
		}
		action, _ := fallbackAction(fv)
		add(fv, int(action))
	}

	return samples, labels
}

// fit runs batch gradient descent on the softmax cross-entropy loss over
// already-scaled samples.
func fit(scaled []FeatureVector, labels []int, cfg TrainerConfig) Model {
	var m Model
	if len(scaled) == 0 {
		return m
	}

	n := float64(len(scaled))
	for range cfg.Epochs {
		var gradW [NumClasses]FeatureVector
		var gradB [NumClasses]float64

		for i, x := range scaled {
			p := m.Probabilities(x)
			for c := range p {
				diff := p[c]
				if labels[i] == c {
					diff -= 1
				}
				for j := range x {
					gradW[c][j] += diff * x[j]
				}
				gradB[c] += diff
			}
		}

		for c := range gradW {
			for j := range gradW[c] {
				m.Weights[c][j] -= cfg.LearningRate * gradW[c][j] / n
			}
			m.Bias[c] -= cfg.LearningRate * gradB[c] / n
		}
	}

	return m
}
