package problemgen

import (
	"math"
	"strconv"
	"strings"
)

// answerTolerance absorbs float noise in typed decimal answers.
const answerTolerance = 0.01

// CheckAnswer reports whether the learner's raw input matches the problem's
// answer. Input is trimmed and parsed as a number; anything unparseable is
// simply wrong, never an error.
func CheckAnswer(raw string, p *Problem) bool {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return false
	}
	return math.Abs(value-p.Answer) < answerTolerance
}
