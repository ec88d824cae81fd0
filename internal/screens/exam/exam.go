package exam

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	tea "charm.land/bubbletea/v2"

	core "github.com/abhisek/prepgd/internal/exam"
	"github.com/abhisek/prepgd/internal/questiongen"
	"github.com/abhisek/prepgd/internal/router"
	"github.com/abhisek/prepgd/internal/screen"
	"github.com/abhisek/prepgd/internal/screens/results"
	"github.com/abhisek/prepgd/internal/store"
	"github.com/abhisek/prepgd/internal/ui/layout"
)

// AttemptRecorder appends finished attempts to the exam history.
type AttemptRecorder interface {
	AppendAttempt(a store.Attempt) error
}

// ExamScreen runs one exam attempt: loading, answering, palette
// navigation and the submit/quit confirmations.
type ExamScreen struct {
	session   *core.Session
	generator questiongen.Generator
	history   AttemptRecorder
	cfg       core.Config

	started    time.Time
	paletteOn  bool
	jumpBuffer string

	confirmSubmit bool
	confirmQuit   bool
	errMsg        string
}

var _ screen.Screen = (*ExamScreen)(nil)
var _ screen.KeyHintProvider = (*ExamScreen)(nil)
var _ screen.EscGuard = (*ExamScreen)(nil)

// New creates an ExamScreen that will start a fresh attempt with cfg.
func New(session *core.Session, generator questiongen.Generator, history AttemptRecorder, cfg core.Config) *ExamScreen {
	return &ExamScreen{
		session:   session,
		generator: generator,
		history:   history,
		cfg:       cfg,
	}
}

// Resume creates an ExamScreen over an already-restored active session.
func Resume(session *core.Session, generator questiongen.Generator, history AttemptRecorder) *ExamScreen {
	return &ExamScreen{
		session:   session,
		generator: generator,
		history:   history,
		cfg:       session.Config(),
		started:   time.Now(),
	}
}

func (s *ExamScreen) Init() tea.Cmd {
	if s.session.Status() == core.StatusActive {
		// Resumed attempt: the question set is already in place.
		return tickClock()
	}
	token := s.session.Begin(s.cfg)
	return s.generate(token)
}

func (s *ExamScreen) Title() string {
	return "Exam"
}

// BlocksEsc keeps the router from popping a live attempt; Esc is
// answered with a quit confirmation instead.
func (s *ExamScreen) BlocksEsc() bool {
	return s.session.Status() == core.StatusActive
}

func (s *ExamScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.confirmSubmit:
		return []layout.KeyHint{
			{Key: "Y", Description: "Submit"},
			{Key: "N", Description: "Keep going"},
		}
	case s.confirmQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "Abandon exam"},
			{Key: "N", Description: "Keep going"},
		}
	case s.paletteOn:
		return []layout.KeyHint{
			{Key: "0-9", Description: "Question number"},
			{Key: "Enter", Description: "Go"},
			{Key: "P", Description: "Close palette"},
		}
	case s.session.Status() == core.StatusLoading:
		return []layout.KeyHint{
			{Key: "Ctrl+C", Description: "Quit"},
		}
	default:
		return []layout.KeyHint{
			{Key: "1-4", Description: "Answer"},
			{Key: "←→", Description: "Navigate"},
			{Key: "C", Description: "Clear"},
			{Key: "M", Description: "Mark"},
			{Key: "P", Description: "Palette"},
			{Key: "S", Description: "Submit"},
			{Key: "Esc", Description: "Abandon"},
		}
	}
}

// generate resolves the question set off the event loop and reports
// back with the session token it belongs to.
func (s *ExamScreen) generate(token uint64) tea.Cmd {
	return func() tea.Msg {
		qs, err := s.generator.Generate(context.Background(), questiongen.Input{
			Subject:    s.cfg.Subject,
			Topic:      s.cfg.Topic,
			Difficulty: s.cfg.Difficulty,
			Count:      s.cfg.Count,
		})
		return questionsReadyMsg{Token: token, Questions: qs, Err: err}
	}
}

func tickClock() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return clockTickMsg(t)
	})
}

func (s *ExamScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionsReadyMsg:
		return s.handleQuestionsReady(msg)
	case clockTickMsg:
		return s.handleClockTick()
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *ExamScreen) handleQuestionsReady(msg questionsReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.session.Abort(msg.Token)
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	if !s.session.Activate(msg.Token, msg.Questions) {
		// Reset happened while generating; the set is stale.
		return s, nil
	}
	s.started = time.Now()
	return s, tickClock()
}

func (s *ExamScreen) handleClockTick() (screen.Screen, tea.Cmd) {
	if s.session.Status() != core.StatusActive {
		// The clock stops with the session.
		return s, nil
	}
	s.session.Tick()
	if s.session.Status() == core.StatusFinished {
		// Time ran out and the tick auto-submitted.
		return s.finish()
	}
	return s, tickClock()
}

func (s *ExamScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		if key == "esc" || key == "enter" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil
	}

	if s.session.Status() != core.StatusActive {
		return s, nil
	}

	switch {
	case s.confirmSubmit:
		return s.handleConfirmSubmit(key)
	case s.confirmQuit:
		return s.handleConfirmQuit(key)
	case s.paletteOn:
		return s.handlePaletteKey(key)
	}

	current, hasCurrent := s.session.Current()

	switch key {
	case "1", "2", "3", "4":
		if !hasCurrent {
			return s, nil
		}
		option := int(key[0] - '1')
		if option < len(current.Options) {
			s.session.SetAnswer(current.ID, option)
		}
	case "c":
		if hasCurrent {
			s.session.ClearAnswer(current.ID)
		}
	case "m":
		if hasCurrent {
			s.session.ToggleMark(current.ID)
		}
	case "left", "h":
		s.session.Prev()
	case "right", "l":
		s.session.Next()
	case "p":
		s.paletteOn = true
		s.jumpBuffer = ""
	case "s", "enter":
		s.confirmSubmit = true
	case "esc":
		s.confirmQuit = true
	}

	return s, nil
}

func (s *ExamScreen) handleConfirmSubmit(key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "y", "Y", "enter":
		s.confirmSubmit = false
		s.session.Submit()
		return s.finish()
	case "n", "N", "esc":
		s.confirmSubmit = false
	}
	return s, nil
}

func (s *ExamScreen) handleConfirmQuit(key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "y", "Y":
		s.confirmQuit = false
		s.session.Reset()
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "n", "N", "esc":
		s.confirmQuit = false
	}
	return s, nil
}

func (s *ExamScreen) handlePaletteKey(key string) (screen.Screen, tea.Cmd) {
	switch {
	case key >= "0" && key <= "9" && len(key) == 1:
		if len(s.jumpBuffer) < 3 {
			s.jumpBuffer += key
		}
	case key == "backspace":
		if len(s.jumpBuffer) > 0 {
			s.jumpBuffer = s.jumpBuffer[:len(s.jumpBuffer)-1]
		}
	case key == "enter":
		if n, err := strconv.Atoi(s.jumpBuffer); err == nil {
			s.session.Jump(n - 1)
		}
		s.paletteOn = false
		s.jumpBuffer = ""
	case key == "p", key == "esc":
		s.paletteOn = false
		s.jumpBuffer = ""
	}
	return s, nil
}

// finish records the attempt and swaps in the results screen.
func (s *ExamScreen) finish() (screen.Screen, tea.Cmd) {
	res := s.session.Result()
	if s.history != nil && res != nil {
		duration := 0
		if !s.started.IsZero() {
			duration = int(time.Since(s.started).Seconds())
		}
		attempt := store.Attempt{
			Mode:          string(s.cfg.Mode),
			Subject:       s.cfg.Subject,
			Topic:         s.cfg.Topic,
			Difficulty:    s.cfg.Difficulty,
			QuestionCount: len(s.session.Questions()),
			Score:         res.Score,
			Correct:       res.CorrectCount,
			Wrong:         res.WrongCount,
			Skipped:       res.Skipped,
			DurationSec:   duration,
		}
		if err := s.history.AppendAttempt(attempt); err != nil {
			slog.Warn("failed to record attempt history", "error", err)
		}
	}

	resultScreen := results.New(s.session)
	return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: resultScreen} }
}
