package session

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/priyad/mathventure/internal/adaptive"
	sess "github.com/priyad/mathventure/internal/session"
	"github.com/priyad/mathventure/internal/ui/components"
	"github.com/priyad/mathventure/internal/ui/theme"
)

func (s *SessionScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if !s.started {
		return renderLoading(width)
	}
	if s.confirmQuit {
		return renderQuitConfirm(width)
	}
	if s.showFeedback {
		return s.renderFeedback(width)
	}
	return s.renderProblem(width)
}

// renderProblem renders the active problem and answer input.
func (s *SessionScreen) renderProblem(width int) string {
	p := s.game.Current()
	if p == nil {
		return renderLoading(width)
	}

	var b strings.Builder

	// Progress line: problem counter, tier, elapsed time on this problem.
	answered := s.game.Answered()
	progress := components.NewProgressBar(
		fmt.Sprintf("  Problem %d", answered+1),
		float64(answered)/float64(maxInt(1, s.game.Total())),
		false,
		width/2,
	)

	secs := int(s.elapsed.Seconds())
	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s  %d:%02d", tierNames[p.Difficulty], secs/60, secs%60))

	infoLine := progress.View()
	rightPad := width - lipgloss.Width(infoLine) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}

	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", maxInt(0, width-4))))
	b.WriteString("\n\n")

	// Problem text (centered). Word problems wrap; bare expressions show
	// with a trailing "= ?".
	text := p.Text()
	if p.Story == "" {
		text += " = ?"
	}
	questionStyle := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true)
	b.WriteString(questionStyle.Render(text))
	b.WriteString("\n\n")

	answerLine := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render("Answer: " + s.input.View())
	b.WriteString(answerLine)

	return b.String()
}

// renderFeedback renders the post-answer overlay.
func (s *SessionScreen) renderFeedback(width int) string {
	fb := s.feedback
	if fb == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n\n")

	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	if fb.Correct {
		b.WriteString(center.Foreground(theme.Success).Bold(true).Render("Correct!"))
	} else {
		b.WriteString(center.Foreground(theme.Error).Bold(true).Render("Not quite"))
		b.WriteString("\n")
		b.WriteString(center.Foreground(theme.TextDim).
			Render("Correct answer: " + strconv.FormatFloat(fb.Answer, 'f', -1, 64)))
	}
	b.WriteString("\n\n")

	// Difficulty banner once the engine starts deciding.
	if fb.Decision != nil {
		b.WriteString(renderDecision(width, fb))
	}

	b.WriteString(center.Foreground(theme.TextDim).
		Render(fmt.Sprintf("Problem %d of %d", fb.Answered, fb.Total)))
	b.WriteString("\n\n")
	b.WriteString(center.Foreground(theme.TextDim).Render("Press any key to continue..."))

	return b.String()
}

// renderDecision shows how and why the difficulty moved.
func renderDecision(width int, fb *sess.Feedback) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	d := fb.Decision

	var b strings.Builder
	switch d.Action {
	case adaptive.ActionIncrease:
		b.WriteString(center.Foreground(theme.Accent).Bold(true).
			Render("Level up! Moving to " + tierNames[fb.Difficulty]))
		b.WriteString("\n")
	case adaptive.ActionDecrease:
		b.WriteString(center.Foreground(theme.Secondary).Bold(true).
			Render("Easing off. Moving to " + tierNames[fb.Difficulty]))
		b.WriteString("\n")
	}

	source := fmt.Sprintf("confidence %.0f%%", d.Confidence*100)
	if d.UsedFallback {
		source = "steady rules"
	}
	b.WriteString(center.Foreground(theme.TextDim).
		Render(fmt.Sprintf("(%s · %s)", d.Action, source)))
	b.WriteString("\n\n")

	return b.String()
}

// renderQuitConfirm renders the quit confirmation dialog.
func renderQuitConfirm(width int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(center.Foreground(theme.Text).Bold(true).Render("End session early?"))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).Render("Your progress will be saved."))
	b.WriteString("\n\n")
	b.WriteString(center.Foreground(theme.Success).Render("[Y] Yes, end session"))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Primary).Render("[N] No, keep going"))

	return b.String()
}

// renderLoading renders the loading state.
func renderLoading(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  Warming up...")
}

// renderError renders an error message.
func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to exit.", errMsg))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
