// Package welcome collects the player's name and starting tier before the
// session begins.
package welcome

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/priyad/mathventure/internal/router"
	"github.com/priyad/mathventure/internal/screen"
	"github.com/priyad/mathventure/internal/ui/components"
	"github.com/priyad/mathventure/internal/ui/layout"
	"github.com/priyad/mathventure/internal/ui/theme"
)

const bannerArt = `
  ┌┬┐┌─┐┌┬┐┬ ┬┬  ┬┌─┐┌┐┌┌┬┐┬ ┬┬─┐┌─┐
  │││├─┤ │ ├─┤└┐┌┘├┤ │││ │ │ │├┬┘├┤
  ┴ ┴┴ ┴ ┴ ┴ ┴ └┘ └─┘┘└┘ ┴ └─┘┴└─└─┘`

type step int

const (
	stepName step = iota
	stepDifficulty
)

// SessionFactory builds the session screen once the player is set up.
type SessionFactory func(player string, difficulty int) screen.Screen

// WelcomeScreen walks the player through name entry and tier selection.
type WelcomeScreen struct {
	factory SessionFactory

	step   step
	input  components.TextInput
	picker components.Menu
	player string
}

var _ screen.Screen = (*WelcomeScreen)(nil)
var _ screen.KeyHintProvider = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen. defaultPlayer pre-fills the name prompt.
func New(defaultPlayer string, factory SessionFactory) *WelcomeScreen {
	w := &WelcomeScreen{
		factory: factory,
		input:   components.NewTextInput("What's your name?", false, 24),
	}
	w.input.Model.SetValue(defaultPlayer)

	w.picker = components.NewMenu([]components.MenuItem{
		{Label: "Easy", Description: "add and subtract up to 10"},
		{Label: "Medium", Description: "bigger sums and times tables"},
		{Label: "Hard", Description: "all four operations"},
	})
	return w
}

func (w *WelcomeScreen) Title() string {
	return "Welcome"
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return w.input.Init()
}

func (w *WelcomeScreen) KeyHints() []layout.KeyHint {
	if w.step == stepName {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Continue"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose tier"},
		{Key: "Enter", Description: "Start"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, isKey := msg.(tea.KeyMsg)

	switch w.step {
	case stepName:
		if isKey && kmsg.String() == "enter" {
			name := strings.TrimSpace(w.input.Value())
			if name == "" {
				return w, nil
			}
			w.player = name
			w.step = stepDifficulty
			return w, nil
		}
		var cmd tea.Cmd
		w.input, cmd = w.input.Update(msg)
		return w, cmd

	case stepDifficulty:
		if isKey && kmsg.String() == "enter" {
			difficulty := w.picker.Selected + 1
			next := w.factory(w.player, difficulty)
			return w, func() tea.Msg {
				return router.ReplaceScreenMsg{Screen: next}
			}
		}
		var cmd tea.Cmd
		w.picker, cmd = w.picker.Update(msg)
		return w, cmd
	}

	return w, nil
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	banner := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render(bannerArt)
	sections = append(sections, banner, "")

	switch w.step {
	case stepName:
		sections = append(sections,
			theme.Body.Render("Hi there! Who's playing today?"),
			"",
			w.input.View(),
		)
	case stepDifficulty:
		sections = append(sections,
			theme.Body.Render("Nice to meet you, "+w.player+"! Pick a starting level:"),
			"",
			w.picker.View(),
			theme.Hint.Render("The game adjusts as you play."),
		)
	}

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
