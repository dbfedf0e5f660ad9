package adaptive

import "errors"

var (
	// ErrModelNotReady is returned when a decision is requested before the
	// engine has trained model parameters.
	ErrModelNotReady = errors.New("adaptive: model not ready")

	// ErrInvalidFeature is returned when a feature vector contains a
	// non-finite value. This is a programming-error class: a correct
	// tracker never produces one.
	ErrInvalidFeature = errors.New("adaptive: invalid feature vector")

	// ErrInvalidModelFile is returned when a persisted model file fails
	// schema validation or disagrees with the compiled-in feature order.
	ErrInvalidModelFile = errors.New("adaptive: invalid model file")
)
