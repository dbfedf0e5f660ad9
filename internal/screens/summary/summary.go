// Package summary displays the end-of-session wrap-up.
package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/priyad/mathventure/internal/adaptive"
	"github.com/priyad/mathventure/internal/screen"
	sess "github.com/priyad/mathventure/internal/session"
	"github.com/priyad/mathventure/internal/ui/layout"
	"github.com/priyad/mathventure/internal/ui/theme"
)

// tierNames maps difficulty tiers to display labels.
var tierNames = map[int]string{
	1: "Easy",
	2: "Medium",
	3: "Hard",
}

// SummaryScreen displays the session summary.
type SummaryScreen struct {
	summary sess.Summary
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary sess.Summary) *SummaryScreen {
	return &SummaryScreen{summary: summary}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Exit"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc", "q":
			return s, tea.Quit
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary

	var b strings.Builder

	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	b.WriteString(center.Foreground(theme.Primary).Bold(true).
		Render(fmt.Sprintf("Great work, %s!", sum.Player)))
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(center.Foreground(theme.TextDim).
		Render(fmt.Sprintf("Duration: %d:%02d", mins, secs)))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Problems: %d        Correct: %d        Accuracy: %.0f%%",
		sum.Problems, sum.Correct, sum.Accuracy)
	b.WriteString(center.Foreground(theme.Text).Render(statsLine))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).
		Render(fmt.Sprintf("Average time per problem: %.1fs", sum.AvgSeconds)))
	b.WriteString("\n\n")

	// Per-tier breakdown.
	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("By difficulty")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	for tier := adaptive.MinDifficulty; tier <= adaptive.MaxDifficulty; tier++ {
		tally, ok := sum.ByTier[tier]
		if !ok || tally.Problems == 0 {
			continue
		}
		line := fmt.Sprintf("  %-8s %d/%d correct", tierNames[tier], tally.Correct, tally.Problems)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Text).Render(line)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if sum.DifficultyChanges > 0 {
		b.WriteString(center.Foreground(theme.Secondary).
			Render(fmt.Sprintf("Difficulty adjusted %d time(s)", sum.DifficultyChanges)))
		b.WriteString("\n")
	}

	next := tierNames[sum.RecommendedNext]
	line := fmt.Sprintf("Next time, try %s", next)
	style := center.Foreground(theme.Accent).Bold(true)
	if sum.RecommendedNext == sum.FinalDifficulty {
		line = fmt.Sprintf("Keep practicing at %s", next)
		style = center.Foreground(theme.Success)
	}
	b.WriteString(style.Render(line))

	return b.String()
}
