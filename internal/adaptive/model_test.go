package adaptive

import (
	"math"
	"math/rand/v2"
	"testing"
)

const epsilon = 1e-6

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestSoftmax_SumsToOne(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	var m Model
	for c := range m.Weights {
		for j := range m.Weights[c] {
			m.Weights[c][j] = rng.NormFloat64()
		}
		m.Bias[c] = rng.NormFloat64()
	}

	for range 100 {
		var fv FeatureVector
		for i := range fv {
			fv[i] = rng.NormFloat64() * 3
		}
		p := m.Probabilities(fv)

		sum := 0.0
		for _, v := range p {
			if v < 0 || v > 1 {
				t.Fatalf("probability %v outside [0,1] for %v", v, fv)
			}
			sum += v
		}
		if !almostEqual(sum, 1.0) {
			t.Fatalf("probabilities sum to %v, want 1", sum)
		}
	}
}

func TestSoftmax_StableForLargeLogits(t *testing.T) {
	// Without max subtraction these logits would overflow exp.
	p := softmax([NumClasses]float64{1000, 1001, 999})
	sum := 0.0
	for _, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("softmax produced non-finite value: %v", p)
		}
		sum += v
	}
	if !almostEqual(sum, 1.0) {
		t.Errorf("sum = %v, want 1", sum)
	}
	if p[1] <= p[0] || p[1] <= p[2] {
		t.Errorf("largest logit did not win: %v", p)
	}
}

func TestArgmax_TieBreaksTowardStay(t *testing.T) {
	tests := []struct {
		name string
		p    [NumClasses]float64
		want int
	}{
		{"clear decrease", [NumClasses]float64{0.8, 0.1, 0.1}, 0},
		{"clear stay", [NumClasses]float64{0.1, 0.8, 0.1}, 1},
		{"clear increase", [NumClasses]float64{0.1, 0.1, 0.8}, 2},
		{"decrease ties stay", [NumClasses]float64{0.45, 0.45, 0.1}, 1},
		{"stay ties increase", [NumClasses]float64{0.1, 0.45, 0.45}, 1},
		{"three-way tie", [NumClasses]float64{1.0 / 3, 1.0 / 3, 1.0 / 3}, 1},
		{"decrease ties increase", [NumClasses]float64{0.4, 0.2, 0.4}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := argmaxStayBiased(tt.p); got != tt.want {
				t.Errorf("argmaxStayBiased(%v) = %d, want %d", tt.p, got, tt.want)
			}
		})
	}
}

func TestAction_Apply(t *testing.T) {
	tests := []struct {
		action  Action
		current int
		want    int
	}{
		{ActionIncrease, 1, 2},
		{ActionIncrease, 3, 3}, // clamped at ceiling
		{ActionDecrease, 2, 1},
		{ActionDecrease, 1, 1}, // clamped at floor
		{ActionStay, 2, 2},
	}

	for _, tt := range tests {
		if got := tt.action.Apply(tt.current); got != tt.want {
			t.Errorf("%s.Apply(%d) = %d, want %d", tt.action, tt.current, got, tt.want)
		}
	}
}
