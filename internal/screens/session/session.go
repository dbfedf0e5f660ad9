// Package session renders the live play screen: one problem at a time,
// answer entry, decision feedback, and progress.
package session

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/priyad/mathventure/internal/router"
	"github.com/priyad/mathventure/internal/screen"
	"github.com/priyad/mathventure/internal/screens/summary"
	sess "github.com/priyad/mathventure/internal/session"
	"github.com/priyad/mathventure/internal/ui/components"
	"github.com/priyad/mathventure/internal/ui/layout"
)

// tierNames maps difficulty tiers to display labels.
var tierNames = map[int]string{
	1: "Easy",
	2: "Medium",
	3: "Hard",
}

// SessionScreen drives one play session.
type SessionScreen struct {
	game  *sess.Session
	input components.TextInput

	started       bool
	questionStart time.Time
	elapsed       time.Duration
	feedback      *sess.Feedback
	showFeedback  bool
	confirmQuit   bool
	submitting    bool
	errMsg        string
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.StatusProvider = (*SessionScreen)(nil)

// New creates a SessionScreen around a prepared (unstarted) session.
func New(game *sess.Session) *SessionScreen {
	return &SessionScreen{
		game:  game,
		input: components.NewTextInput("Type your answer...", true, 12),
	}
}

func (s *SessionScreen) Init() tea.Cmd {
	return tea.Batch(s.startSession(), s.input.Init(), tickCmd())
}

func (s *SessionScreen) Title() string {
	return "Practice"
}

// Status shows the player and the live tier in the header.
func (s *SessionScreen) Status() string {
	tier := tierNames[s.game.Difficulty()]
	return tier + " ★"
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	if s.confirmQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if s.showFeedback {
		return []layout.KeyHint{
			{Key: "any key", Description: "Continue"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionReadyMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.started = true
		s.questionStart = time.Now()
		return s, nil

	case answerMsg:
		return s.handleAnswer(msg)

	case finishedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		sum := msg.Summary
		return s, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: summary.New(sum)}
		}

	case timerTickMsg:
		if s.started && !s.showFeedback && !s.confirmQuit {
			s.elapsed = time.Since(s.questionStart)
		}
		return s, tickCmd()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.acceptingInput() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	return s, nil
}

func (s *SessionScreen) acceptingInput() bool {
	return s.started && !s.showFeedback && !s.confirmQuit && !s.submitting && s.errMsg == ""
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	// Error state: any key ends the session.
	if s.errMsg != "" {
		return s, tea.Quit
	}

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.confirmQuit = false
			return s, s.finishSession()
		case "n", "N", "esc":
			s.confirmQuit = false
			s.questionStart = time.Now().Add(-s.elapsed)
		}
		return s, nil
	}

	// Feedback overlay: any key moves on.
	if s.showFeedback {
		s.showFeedback = false
		s.feedback = nil
		if s.game.Done() {
			return s, s.finishSession()
		}
		s.input.Reset()
		s.questionStart = time.Now()
		s.elapsed = 0
		return s, s.input.Init()
	}

	if !s.started || s.submitting {
		return s, nil
	}

	switch key {
	case "esc":
		s.confirmQuit = true
		return s, nil
	case "enter":
		return s.submit()
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *SessionScreen) submit() (screen.Screen, tea.Cmd) {
	raw := strings.TrimSpace(s.input.Value())
	if raw == "" {
		return s, nil
	}
	s.submitting = true
	elapsed := time.Since(s.questionStart)

	game := s.game
	return s, func() tea.Msg {
		fb, err := game.HandleAnswer(context.Background(), raw, elapsed)
		return answerMsg{Feedback: fb, Err: err}
	}
}

func (s *SessionScreen) handleAnswer(msg answerMsg) (screen.Screen, tea.Cmd) {
	s.submitting = false
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	s.feedback = msg.Feedback
	s.showFeedback = true
	s.input.Submit(msg.Feedback.Correct)
	return s, nil
}

func (s *SessionScreen) startSession() tea.Cmd {
	game := s.game
	return func() tea.Msg {
		return sessionReadyMsg{Err: game.Start(context.Background())}
	}
}

func (s *SessionScreen) finishSession() tea.Cmd {
	game := s.game
	return func() tea.Msg {
		sum, err := game.Finish(context.Background())
		return finishedMsg{Summary: sum, Err: err}
	}
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
