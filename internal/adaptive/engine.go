package adaptive

import "fmt"

// Fallback rule thresholds, in accuracy percentage points. The same rules
// label the ambiguous training cohort so the model approximates the policy
// it degrades to.
const (
	fallbackDecreaseBelow = 40.0
	fallbackIncreaseAbove = 80.0
)

// Config holds the engine's policy knobs.
type Config struct {
	// ConfidenceThreshold is the minimum class probability required to
	// accept the model's prediction. Below it the rule fallback decides.
	ConfidenceThreshold float64
}

// DefaultConfig returns the recommended engine configuration.
func DefaultConfig() Config {
	return Config{
		ConfidenceThreshold: 0.5,
	}
}

// Engine maps a feature vector through the scaler and classifier into a
// difficulty decision, falling back to deterministic rules when the model
// is not confident. The engine holds only immutable state and is safe for
// concurrent use.
type Engine struct {
	model  *Model
	scaler Scaler
	cfg    Config
}

// NewEngine builds an engine around trained parameters. Tests may inject
// hand-computed parameters instead of running the trainer.
func NewEngine(model *Model, scaler Scaler, cfg Config) *Engine {
	return &Engine{model: model, scaler: scaler, cfg: cfg}
}

// Decide classifies the feature vector into a difficulty transition.
// The current difficulty is read from the vector's difficulty feature.
//
// Returns ErrModelNotReady before training and ErrInvalidFeature for
// non-finite inputs; the fallback path itself cannot fail.
func (e *Engine) Decide(fv FeatureVector) (Decision, error) {
	if e == nil || e.model == nil {
		return Decision{}, ErrModelNotReady
	}
	if err := fv.Validate(); err != nil {
		return Decision{}, err
	}

	probs := e.model.Probabilities(e.scaler.Transform(fv))
	class := argmaxStayBiased(probs)
	confidence := probs[class]

	action := Action(class)
	usedFallback := false
	rationale := fmt.Sprintf("model predicts %s at %.0f%% confidence", action, confidence*100)

	if confidence < e.cfg.ConfidenceThreshold {
		usedFallback = true
		action, rationale = fallbackAction(fv)
	}

	current := int(fv[FeatDifficulty])
	return Decision{
		Action:        action,
		NewDifficulty: action.Apply(current),
		Confidence:    confidence,
		Probabilities: probs,
		UsedFallback:  usedFallback,
		Rationale:     rationale,
	}, nil
}

// fallbackAction applies the deterministic accuracy rules. It is total over
// all valid feature vectors: any computable accuracy yields a decision.
func fallbackAction(fv FeatureVector) (Action, string) {
	acc := fv[FeatAccuracy]
	switch {
	case acc < fallbackDecreaseBelow:
		return ActionDecrease, fmt.Sprintf("fallback: accuracy %.0f%% below %.0f%%", acc, fallbackDecreaseBelow)
	case acc > fallbackIncreaseAbove && fv[FeatIncorrectStreak] == 0:
		return ActionIncrease, fmt.Sprintf("fallback: accuracy %.0f%% above %.0f%% with no incorrect streak", acc, fallbackIncreaseAbove)
	default:
		return ActionStay, fmt.Sprintf("fallback: accuracy %.0f%% in holding range", acc)
	}
}
