package problemgen

import "fmt"

// Operation is an arithmetic operator.
type Operation string

const (
	OpAdd Operation = "+"
	OpSub Operation = "-"
	OpMul Operation = "×"
	OpDiv Operation = "÷"
)

// Problem is a single arithmetic problem ready for display.
type Problem struct {
	// Operand1, Operand2 and Op define the expression.
	Operand1 int
	Operand2 int
	Op       Operation

	// Answer is the canonical correct answer. Division problems are
	// constructed so the quotient is a whole number, but the field stays
	// a float for uniform checking.
	Answer float64

	// Difficulty is the tier the problem was generated for (1-3).
	Difficulty int

	// Story is an optional word-problem rendering of the same expression.
	// Empty when the plain expression should be shown.
	Story string
}

// Text returns the display form of the problem: the story when present,
// otherwise the bare expression.
func (p *Problem) Text() string {
	if p.Story != "" {
		return p.Story
	}
	return p.Expression()
}

// Expression returns the bare arithmetic expression, e.g. "7 × 8".
func (p *Problem) Expression() string {
	return fmt.Sprintf("%d %s %d", p.Operand1, p.Op, p.Operand2)
}

// apply evaluates the operation over the operands.
func apply(a, b int, op Operation) float64 {
	switch op {
	case OpAdd:
		return float64(a + b)
	case OpSub:
		return float64(a - b)
	case OpMul:
		return float64(a * b)
	case OpDiv:
		return float64(a) / float64(b)
	default:
		return 0
	}
}
