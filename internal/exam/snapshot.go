package exam

import (
	"log/slog"
	"sort"

	"github.com/abhisek/prepgd/internal/questiongen"
	"github.com/abhisek/prepgd/internal/scoring"
)

// Snapshot is the persisted view of a session. It deliberately
// excludes the question set, which is cached separately so navigation
// steps do not rewrite the full payload, and the timer, which is
// recomputed on restore.
type Snapshot struct {
	CurrentQuestionIndex int                   `json:"currentQuestionIndex"`
	Answers              map[string]int        `json:"answers"`
	MarkedForReview      []string              `json:"markedForReview"`
	VisitStatus          map[string]VisitState `json:"visitStatus"`
	ExamStatus           Status                `json:"examStatus"`
	ResultAnalysis       *scoring.Result       `json:"resultAnalysis,omitempty"`
}

func (s *Session) snapshot() Snapshot {
	answers := make(map[string]int, len(s.answers))
	for id, opt := range s.answers {
		answers[id] = opt
	}
	visits := make(map[string]VisitState, len(s.visits))
	for id, v := range s.visits {
		visits[id] = v
	}
	marked := make([]string, 0, len(s.marked))
	for id := range s.marked {
		marked = append(marked, id)
	}
	sort.Strings(marked)

	return Snapshot{
		CurrentQuestionIndex: s.index,
		Answers:              answers,
		MarkedForReview:      marked,
		VisitStatus:          visits,
		ExamStatus:           s.status,
		ResultAnalysis:       s.result,
	}
}

func (s *Session) saveSnapshot() {
	if s.store == nil {
		return
	}
	if err := s.store.SaveSnapshot(s.snapshot()); err != nil {
		slog.Warn("failed to save session snapshot", "error", err)
	}
}

// Restore rebuilds a session from a snapshot plus the cached question
// set. Only active and finished snapshots are worth restoring; anything
// else leaves the session idle. The countdown restarts at the full
// budget for the restored set since elapsed time is not persisted.
func (s *Session) Restore(snap Snapshot, qs []questiongen.Question) {
	if snap.ExamStatus != StatusActive && snap.ExamStatus != StatusFinished {
		return
	}
	if snap.ExamStatus == StatusActive && len(qs) == 0 {
		return
	}

	s.clear()
	s.status = snap.ExamStatus
	s.questions = qs
	s.result = snap.ResultAnalysis

	s.index = snap.CurrentQuestionIndex
	if s.index < 0 || s.index >= len(qs) {
		s.index = 0
	}
	for id, opt := range snap.Answers {
		s.answers[id] = opt
	}
	for _, id := range snap.MarkedForReview {
		s.marked[id] = true
	}
	for id, v := range snap.VisitStatus {
		s.visits[id] = v
	}

	if snap.ExamStatus == StatusActive {
		s.timer = len(qs) * SecondsPerQuestion
	}
	s.token++
}
