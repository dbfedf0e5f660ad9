package problemgen

import (
	"fmt"
	"strings"
)

const storySystemPrompt = `You are a math tutor dressing up arithmetic drills as tiny stories for children.

Rules:
- You are given a fixed arithmetic expression. Write a 1-3 sentence word problem whose answer is exactly the result of that expression.
- Never change the numbers or the operation, and never reveal the answer.
- Use plain ASCII text. No LaTeX, no Unicode symbols.
- End with a direct question the learner can answer with a single number.
- Keep it age-appropriate for grades 3-5 and use the given theme.`

// opPhrase maps an operation to the verb the story should embody.
var opPhrase = map[Operation]string{
	OpAdd: "combining or gaining",
	OpSub: "losing, spending, or comparing",
	OpMul: "equal groups or repeated amounts",
	OpDiv: "sharing equally or splitting into groups",
}

// buildStoryPrompt constructs the user message for one expression.
func buildStoryPrompt(p *Problem, theme string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Expression: %s\n", p.Expression())
	fmt.Fprintf(&b, "Operation character: %s\n", opPhrase[p.Op])
	fmt.Fprintf(&b, "Theme: %s\n", theme)

	if p.Op == OpDiv {
		b.WriteString("The quotient is a whole number; the story must split things evenly.\n")
	}

	return b.String()
}
