package exam

import (
	"time"

	"github.com/abhisek/prepgd/internal/questiongen"
)

// questionsReadyMsg is sent when question generation resolves. The
// token ties the result to one Begin call so a set that arrives after
// a reset is thrown away.
type questionsReadyMsg struct {
	Token     uint64
	Questions []questiongen.Question
	Err       error
}

// clockTickMsg drives the one-second countdown while the exam is active.
type clockTickMsg time.Time
