package adaptive

// Action is a difficulty transition predicted by the classifier or chosen by
// the fallback rules. The numeric values match the classifier's class
// indices (0 = Decrease, 1 = Stay, 2 = Increase).
type Action int

const (
	ActionDecrease Action = iota
	ActionStay
	ActionIncrease
)

func (a Action) String() string {
	switch a {
	case ActionDecrease:
		return "decrease"
	case ActionStay:
		return "stay"
	case ActionIncrease:
		return "increase"
	default:
		return "unknown"
	}
}

// Apply maps the action onto a difficulty tier, clamped to the valid range.
// Decreasing at the floor or increasing at the ceiling leaves the tier
// unchanged; the action itself is still reported in the Decision.
func (a Action) Apply(current int) int {
	switch a {
	case ActionDecrease:
		return clampDifficulty(current - 1)
	case ActionIncrease:
		return clampDifficulty(current + 1)
	default:
		return clampDifficulty(current)
	}
}

// Decision is the outcome of a single Decide call. Created fresh per call
// and not retained by the engine.
type Decision struct {
	// Action is the difficulty transition to take.
	Action Action

	// NewDifficulty is the tier after applying Action, clamped to [1,3].
	NewDifficulty int

	// Confidence is the model probability of its predicted class, reported
	// even when the fallback overrode the class choice.
	Confidence float64

	// Probabilities holds the full class distribution
	// [decrease, stay, increase]. Always populated, fallback or not.
	Probabilities [NumClasses]float64

	// UsedFallback is true when confidence fell below the threshold and the
	// rule-based fallback chose the action.
	UsedFallback bool

	// Rationale is a short human-readable explanation for the session UI.
	Rationale string
}
