package adaptive

import "math"

// Model holds the trained multinomial logistic regression parameters:
// one weight row plus bias per class, over the fixed feature ordering.
// Immutable after training; any number of goroutines may run inference
// on a shared Model without synchronization.
type Model struct {
	Weights [NumClasses]FeatureVector `json:"weights"`
	Bias    [NumClasses]float64       `json:"bias"`
}

// Probabilities computes the class distribution for an already-scaled
// feature vector. The result sums to 1 within floating tolerance and every
// entry lies in [0, 1].
func (m *Model) Probabilities(scaled FeatureVector) [NumClasses]float64 {
	var logits [NumClasses]float64
	for c := range logits {
		logits[c] = dot(m.Weights[c], scaled) + m.Bias[c]
	}
	return softmax(logits)
}

// softmax normalizes logits into a probability distribution. The max logit
// is subtracted before exponentiation for numeric stability.
func softmax(logits [NumClasses]float64) [NumClasses]float64 {
	maxLogit := logits[0]
	for _, l := range logits[1:] {
		if l > maxLogit {
			maxLogit = l
		}
	}

	var p [NumClasses]float64
	var sum float64
	for c, l := range logits {
		p[c] = math.Exp(l - maxLogit)
		sum += p[c]
	}
	for c := range p {
		p[c] /= sum
	}
	return p
}

// argmaxStayBiased returns the index of the largest probability. Exact ties
// are broken toward the class closest to Stay (class 1), so an ambiguous
// model never forces a difficulty jump.
func argmaxStayBiased(p [NumClasses]float64) int {
	best := 0
	for c := 1; c < NumClasses; c++ {
		switch {
		case p[c] > p[best]:
			best = c
		case p[c] == p[best] && distToStay(c) < distToStay(best):
			best = c
		}
	}
	return best
}

func distToStay(class int) int {
	d := class - int(ActionStay)
	if d < 0 {
		return -d
	}
	return d
}

func dot(a, b FeatureVector) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
