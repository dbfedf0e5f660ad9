package adaptive

import "math"

// Scaler standardizes raw feature values using per-feature statistics fixed
// at training time. Immutable after FitScaler; safe to share across
// concurrent Decide calls.
type Scaler struct {
	Mean FeatureVector `json:"mean"`
	Std  FeatureVector `json:"std"`
}

// Transform returns (raw - mean) / std per feature. A zero std is treated
// as 1 so constant features pass through centered instead of exploding.
func (s Scaler) Transform(raw FeatureVector) FeatureVector {
	var out FeatureVector
	for i := range raw {
		std := s.Std[i]
		if std == 0 {
			std = 1
		}
		out[i] = (raw[i] - s.Mean[i]) / std
	}
	return out
}

// FitScaler computes per-feature mean and population standard deviation
// over the given samples.
func FitScaler(samples []FeatureVector) Scaler {
	var sc Scaler
	if len(samples) == 0 {
		return sc
	}

	n := float64(len(samples))
	for _, s := range samples {
		for i, v := range s {
			sc.Mean[i] += v
		}
	}
	for i := range sc.Mean {
		sc.Mean[i] /= n
	}

	for _, s := range samples {
		for i, v := range s {
			d := v - sc.Mean[i]
			sc.Std[i] += d * d
		}
	}
	for i := range sc.Std {
		sc.Std[i] = math.Sqrt(sc.Std[i] / n)
	}

	return sc
}
