package exam

import (
	"context"
	"log/slog"

	"github.com/abhisek/prepgd/internal/questiongen"
	"github.com/abhisek/prepgd/internal/scoring"
	"github.com/abhisek/prepgd/internal/stats"
)

// Status is the session state machine's state variable. Transitions
// follow idle -> loading -> active -> finished -> idle.
type Status string

const (
	StatusIdle     Status = "idle"
	StatusLoading  Status = "loading"
	StatusActive   Status = "active"
	StatusFinished Status = "finished"
)

// VisitState tracks how far the aspirant got with one question. An
// absent entry means unvisited. Once a question has been seen it never
// reverts to unvisited, even after clearing the answer.
type VisitState string

const (
	VisitVisited  VisitState = "visited"
	VisitAnswered VisitState = "answered"
)

// Store persists session artifacts between runs. A nil Store disables
// persistence; write failures are logged and never abort a transition.
type Store interface {
	SaveQuestionCache(qs []questiongen.Question) error
	ClearQuestionCache() error
	SaveSnapshot(snap Snapshot) error
	ClearSnapshot() error
}

// Recorder folds a finished attempt into persisted statistics.
type Recorder interface {
	Update(results []stats.Result) (stats.UserStats, error)
}

// Session owns one exam attempt from start to reset. It is not safe
// for concurrent use; the TUI event loop is its single caller.
type Session struct {
	store    Store
	recorder Recorder

	// token rises on every Begin and Reset so a generation result that
	// lands after a reset is recognized as stale and discarded.
	token uint64

	status    Status
	config    Config
	questions []questiongen.Question
	index     int
	answers   map[string]int
	marked    map[string]bool
	visits    map[string]VisitState
	timer     int
	result    *scoring.Result
}

// NewSession creates an idle session. store and recorder may be nil in
// tests.
func NewSession(store Store, recorder Recorder) *Session {
	s := &Session{store: store, recorder: recorder}
	s.clear()
	return s
}

func (s *Session) clear() {
	s.status = StatusIdle
	s.config = Config{}
	s.questions = nil
	s.index = 0
	s.answers = make(map[string]int)
	s.marked = make(map[string]bool)
	s.visits = make(map[string]VisitState)
	s.timer = 0
	s.result = nil
}

// Begin clears any prior attempt and moves to loading. The returned
// token must be passed to Activate or Abort by the continuation that
// resolves question generation.
func (s *Session) Begin(cfg Config) uint64 {
	s.clear()
	s.status = StatusLoading
	s.config = cfg
	s.token++
	return s.token
}

// Activate commits a generated question set and starts the clock. It
// reports false when the token is stale or the session left loading in
// the meantime, in which case the questions are discarded.
func (s *Session) Activate(token uint64, qs []questiongen.Question) bool {
	if token != s.token || s.status != StatusLoading {
		return false
	}

	s.questions = qs
	s.status = StatusActive
	s.timer = s.config.Count * SecondsPerQuestion
	s.index = 0
	if len(qs) > 0 {
		s.visits[qs[0].ID] = VisitVisited
	}

	if s.store != nil {
		if err := s.store.SaveQuestionCache(qs); err != nil {
			slog.Warn("failed to cache question set", "error", err)
		}
	}
	s.saveSnapshot()
	return true
}

// Abort abandons a loading session, returning it to idle. Stale tokens
// are ignored.
func (s *Session) Abort(token uint64) {
	if token != s.token || s.status != StatusLoading {
		return
	}
	s.clear()
}

// Start runs Begin, generate and Activate as one synchronous call.
// Callers that need the loading state drive the three steps themselves.
func (s *Session) Start(ctx context.Context, gen questiongen.Generator, cfg Config) error {
	token := s.Begin(cfg)

	qs, err := gen.Generate(ctx, questiongen.Input{
		Subject:    cfg.Subject,
		Topic:      cfg.Topic,
		Difficulty: cfg.Difficulty,
		Count:      cfg.Count,
	})
	if err != nil {
		s.Abort(token)
		return err
	}

	s.Activate(token, qs)
	return nil
}

// SetAnswer records a selection and marks the question answered.
// Replaces any prior selection for the same question.
func (s *Session) SetAnswer(questionID string, optionIndex int) {
	if s.status != StatusActive {
		return
	}
	s.answers[questionID] = optionIndex
	s.visits[questionID] = VisitAnswered
	s.saveSnapshot()
}

// ClearAnswer removes a selection. The question stays visited.
func (s *Session) ClearAnswer(questionID string) {
	if s.status != StatusActive {
		return
	}
	delete(s.answers, questionID)
	s.visits[questionID] = VisitVisited
	s.saveSnapshot()
}

// ToggleMark flips the question's review mark. Independent of whether
// it is answered.
func (s *Session) ToggleMark(questionID string) {
	if s.status != StatusActive {
		return
	}
	if s.marked[questionID] {
		delete(s.marked, questionID)
	} else {
		s.marked[questionID] = true
	}
	s.saveSnapshot()
}

// Jump moves directly to the question at index i. Out-of-range targets
// are ignored.
func (s *Session) Jump(i int) {
	if s.status != StatusActive || i < 0 || i >= len(s.questions) {
		return
	}
	s.setIndex(i)
}

// Next advances one question, stopping at the last index.
func (s *Session) Next() {
	if s.status != StatusActive || s.index >= len(s.questions)-1 {
		return
	}
	s.setIndex(s.index + 1)
}

// Prev retreats one question, stopping at index 0.
func (s *Session) Prev() {
	if s.status != StatusActive || s.index <= 0 {
		return
	}
	s.setIndex(s.index - 1)
}

// setIndex moves the cursor and marks the destination visited unless
// it is already answered.
func (s *Session) setIndex(i int) {
	s.index = i
	id := s.questions[i].ID
	if s.visits[id] != VisitAnswered {
		s.visits[id] = VisitVisited
	}
	s.saveSnapshot()
}

// Tick advances the countdown by one second. Reaching zero submits the
// attempt as part of the same tick; further ticks are no-ops.
func (s *Session) Tick() {
	if s.status != StatusActive || s.timer <= 0 {
		return
	}
	s.timer--
	if s.timer == 0 {
		s.Submit()
	}
}

// Submit scores the attempt, folds it into statistics and moves to
// finished. Calling outside active is a no-op, so a timer expiry and a
// manual submit cannot double-score.
func (s *Session) Submit() {
	if s.status != StatusActive {
		return
	}

	result := scoring.Score(s.questions, s.answers)
	s.result = &result
	s.status = StatusFinished
	s.timer = 0

	if s.recorder != nil {
		results := make([]stats.Result, len(s.questions))
		for i, q := range s.questions {
			results[i] = stats.Result{Topic: q.Topic, Correct: result.Analysis[i].IsCorrect}
		}
		if _, err := s.recorder.Update(results); err != nil {
			slog.Warn("failed to update topic statistics", "error", err)
		}
	}

	s.saveSnapshot()
}

// Reset discards the attempt, evicts the cached question set and
// returns to idle. Any in-flight generation becomes stale.
func (s *Session) Reset() {
	s.clear()
	s.token++

	if s.store != nil {
		if err := s.store.ClearQuestionCache(); err != nil {
			slog.Warn("failed to clear question cache", "error", err)
		}
		if err := s.store.ClearSnapshot(); err != nil {
			slog.Warn("failed to clear session snapshot", "error", err)
		}
	}
}

// Status returns the current state machine state.
func (s *Session) Status() Status { return s.status }

// Config returns the parameters the attempt was started with.
func (s *Session) Config() Config { return s.config }

// Questions returns the active question set.
func (s *Session) Questions() []questiongen.Question { return s.questions }

// Index returns the current question position.
func (s *Session) Index() int { return s.index }

// Current returns the question at the cursor, or false when the set is
// empty.
func (s *Session) Current() (questiongen.Question, bool) {
	if s.index < 0 || s.index >= len(s.questions) {
		return questiongen.Question{}, false
	}
	return s.questions[s.index], true
}

// Timer returns the seconds remaining.
func (s *Session) Timer() int { return s.timer }

// AnswerFor returns the selected option for a question, if any.
func (s *Session) AnswerFor(questionID string) (int, bool) {
	opt, ok := s.answers[questionID]
	return opt, ok
}

// IsMarked reports whether the question is marked for review.
func (s *Session) IsMarked(questionID string) bool { return s.marked[questionID] }

// VisitOf returns the question's visit state; the zero value means
// unvisited.
func (s *Session) VisitOf(questionID string) VisitState { return s.visits[questionID] }

// AnsweredCount returns the number of questions with a selection.
func (s *Session) AnsweredCount() int { return len(s.answers) }

// Result returns the scored outcome, nil before submission.
func (s *Session) Result() *scoring.Result { return s.result }
