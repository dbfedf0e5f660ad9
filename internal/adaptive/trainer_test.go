package adaptive

import "testing"

func trainOnce(t *testing.T) TrainResult {
	t.Helper()
	return Train(DefaultTrainerConfig())
}

func TestTrain_Deterministic(t *testing.T) {
	a := trainOnce(t)
	b := trainOnce(t)

	if a.Model != b.Model {
		t.Error("same seed produced different weights")
	}
	if a.Scaler != b.Scaler {
		t.Error("same seed produced different scaling parameters")
	}
	if a.TrainAccuracy != b.TrainAccuracy {
		t.Errorf("accuracy differs: %v vs %v", a.TrainAccuracy, b.TrainAccuracy)
	}
}

func TestTrain_SampleCount(t *testing.T) {
	cfg := DefaultTrainerConfig()
	res := Train(cfg)
	want := cfg.HighPerformers + cfg.Strugglers + cfg.Average + cfg.Ambiguous
	if res.Samples != want {
		t.Errorf("samples = %d, want %d", res.Samples, want)
	}
}

func TestTrain_SeparatesCohorts(t *testing.T) {
	res := trainOnce(t)
	if res.TrainAccuracy < 0.75 {
		t.Errorf("training accuracy = %.3f, want >= 0.75", res.TrainAccuracy)
	}
}

func TestTrain_AccuracyWeightOrdering(t *testing.T) {
	res := trainOnce(t)
	m := res.Model

	// The accuracy column must separate the classes: strongest pull toward
	// Increase, strongest push away for Decrease.
	wDec := m.Weights[ActionDecrease][FeatAccuracy]
	wStay := m.Weights[ActionStay][FeatAccuracy]
	wInc := m.Weights[ActionIncrease][FeatAccuracy]
	if !(wDec < wStay && wStay < wInc) {
		t.Errorf("accuracy weights not ordered: dec=%v stay=%v inc=%v", wDec, wStay, wInc)
	}

	// Slow answers should favor Decrease over Increase.
	if m.Weights[ActionDecrease][FeatAvgTime] <= m.Weights[ActionIncrease][FeatAvgTime] {
		t.Errorf("avg-time weights not ordered: dec=%v inc=%v",
			m.Weights[ActionDecrease][FeatAvgTime], m.Weights[ActionIncrease][FeatAvgTime])
	}
}

func TestTrain_IncreaseProbabilityMonotoneInAccuracy(t *testing.T) {
	res := trainOnce(t)
	e := NewEngine(&res.Model, res.Scaler, DefaultConfig())

	prev := -1.0
	for acc := 30.0; acc <= 100.0; acc += 5 {
		dec, err := e.Decide(FeatureVector{acc, 3.0, 1, 0, 0, 2})
		if err != nil {
			t.Fatalf("Decide: %v", err)
		}
		pInc := dec.Probabilities[ActionIncrease]
		if pInc < prev-epsilon {
			t.Fatalf("p[increase] dropped from %v to %v at accuracy %v", prev, pInc, acc)
		}
		prev = pInc
	}
}

func TestTrain_EndToEndScenarios(t *testing.T) {
	res := trainOnce(t)
	e := NewEngine(&res.Model, res.Scaler, DefaultConfig())

	tests := []struct {
		name     string
		fv       FeatureVector
		wantDiff int
	}{
		// Three fast correct answers at tier 1.
		{"strong run advances", FeatureVector{100, 2.5, 3, 0, 0, 1}, 2},
		// Three misses at tier 2.
		{"losing run retreats", FeatureVector{0, 10, 0, 3, 0, 2}, 1},
		// Mixed 2-of-3 window at tier 2 holds steady.
		{"mixed window holds", FeatureVector{100.0 * 2 / 3, 5, 1, 0, -1, 2}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dec, err := e.Decide(tt.fv)
			if err != nil {
				t.Fatalf("Decide: %v", err)
			}
			if dec.NewDifficulty != tt.wantDiff {
				t.Errorf("new difficulty = %d (action %s, confidence %.2f, fallback %v), want %d",
					dec.NewDifficulty, dec.Action, dec.Confidence, dec.UsedFallback, tt.wantDiff)
			}
		})
	}
}
