package session

import (
	"time"

	sess "github.com/priyad/mathventure/internal/session"
)

// sessionReadyMsg reports the outcome of starting the session.
type sessionReadyMsg struct {
	Err error
}

// answerMsg carries the feedback for a submitted answer.
type answerMsg struct {
	Feedback *sess.Feedback
	Err      error
}

// finishedMsg carries the final summary.
type finishedMsg struct {
	Summary sess.Summary
	Err     error
}

// timerTickMsg drives the on-screen elapsed clock.
type timerTickMsg time.Time
