package exam

import (
	"context"
	"fmt"
	"testing"

	"github.com/abhisek/prepgd/internal/questiongen"
	"github.com/abhisek/prepgd/internal/stats"
)

type fakeStore struct {
	cached        []questiongen.Question
	cacheCleared  int
	snapshots     []Snapshot
	snapshotWipes int
}

func (f *fakeStore) SaveQuestionCache(qs []questiongen.Question) error {
	f.cached = qs
	return nil
}

func (f *fakeStore) ClearQuestionCache() error {
	f.cacheCleared++
	f.cached = nil
	return nil
}

func (f *fakeStore) SaveSnapshot(snap Snapshot) error {
	f.snapshots = append(f.snapshots, snap)
	return nil
}

func (f *fakeStore) ClearSnapshot() error {
	f.snapshotWipes++
	return nil
}

type fakeRecorder struct {
	updates [][]stats.Result
}

func (f *fakeRecorder) Update(results []stats.Result) (stats.UserStats, error) {
	f.updates = append(f.updates, results)
	return stats.DefaultUserStats(), nil
}

func testQuestions(n int) []questiongen.Question {
	qs := make([]questiongen.Question, n)
	for i := range qs {
		qs[i] = questiongen.Question{
			ID:           fmt.Sprintf("q%d", i+1),
			Text:         "Sample?",
			Options:      []string{"a", "b", "c", "d"},
			CorrectIndex: 1,
			Topic:        "General Knowledge",
		}
	}
	return qs
}

func activeSession(t *testing.T, n int) (*Session, *fakeStore, *fakeRecorder) {
	t.Helper()
	store := &fakeStore{}
	rec := &fakeRecorder{}
	s := NewSession(store, rec)
	cfg := Config{Mode: ModeDrill, Subject: "GK", Topic: "Rivers", Difficulty: DefaultDifficulty, Count: n}
	token := s.Begin(cfg)
	if got := s.Status(); got != StatusLoading {
		t.Fatalf("after Begin: status = %q, want loading", got)
	}
	if !s.Activate(token, testQuestions(n)) {
		t.Fatal("Activate rejected a fresh token")
	}
	return s, store, rec
}

func TestStartTransitionsAndTimer(t *testing.T) {
	s, store, _ := activeSession(t, 4)

	if s.Status() != StatusActive {
		t.Fatalf("status = %q, want active", s.Status())
	}
	if got, want := s.Timer(), 4*SecondsPerQuestion; got != want {
		t.Errorf("timer = %d, want %d", got, want)
	}
	if got := s.VisitOf("q1"); got != VisitVisited {
		t.Errorf("first question visit = %q, want visited", got)
	}
	if len(store.cached) != 4 {
		t.Errorf("question cache holds %d items, want 4", len(store.cached))
	}
}

func TestStartSynchronous(t *testing.T) {
	s := NewSession(&fakeStore{}, &fakeRecorder{})
	gen := questiongen.New(nil, questiongen.DefaultConfig())

	cfg := Config{Mode: ModeFull, Subject: FullMockSubject, Topic: FullMockTopic, Count: 3}
	if err := s.Start(context.Background(), gen, cfg); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if s.Status() != StatusActive {
		t.Fatalf("status = %q, want active", s.Status())
	}
	if len(s.Questions()) != 3 {
		t.Errorf("got %d questions, want 3", len(s.Questions()))
	}
}

func TestStaleTokenDiscarded(t *testing.T) {
	s := NewSession(&fakeStore{}, &fakeRecorder{})

	token := s.Begin(Config{Count: 2})
	s.Reset()

	if s.Activate(token, testQuestions(2)) {
		t.Fatal("Activate accepted a token from before Reset")
	}
	if s.Status() != StatusIdle {
		t.Errorf("status = %q, want idle", s.Status())
	}
	if len(s.Questions()) != 0 {
		t.Errorf("stale questions were committed")
	}
}

func TestRestartSupersedesPendingStart(t *testing.T) {
	s := NewSession(&fakeStore{}, &fakeRecorder{})

	stale := s.Begin(Config{Count: 2})
	fresh := s.Begin(Config{Count: 3})

	if s.Activate(stale, testQuestions(2)) {
		t.Fatal("stale token was accepted")
	}
	if !s.Activate(fresh, testQuestions(3)) {
		t.Fatal("fresh token was rejected")
	}
	if len(s.Questions()) != 3 {
		t.Errorf("got %d questions, want 3", len(s.Questions()))
	}
}

func TestAnswerAndVisitTracking(t *testing.T) {
	s, _, _ := activeSession(t, 3)

	s.SetAnswer("q1", 2)
	if opt, ok := s.AnswerFor("q1"); !ok || opt != 2 {
		t.Fatalf("AnswerFor(q1) = %d, %v", opt, ok)
	}
	if got := s.VisitOf("q1"); got != VisitAnswered {
		t.Errorf("visit = %q, want answered", got)
	}

	// Replacing a selection keeps the answered state.
	s.SetAnswer("q1", 0)
	if opt, _ := s.AnswerFor("q1"); opt != 0 {
		t.Errorf("replacement selection not recorded")
	}

	s.ClearAnswer("q1")
	if _, ok := s.AnswerFor("q1"); ok {
		t.Error("answer survived ClearAnswer")
	}
	if got := s.VisitOf("q1"); got != VisitVisited {
		t.Errorf("visit after clear = %q, want visited", got)
	}
}

func TestClearAnswerNeverRevertsToUnvisited(t *testing.T) {
	s, _, _ := activeSession(t, 3)

	// q3 was never current and never answered.
	s.ClearAnswer("q3")
	if got := s.VisitOf("q3"); got != VisitVisited {
		t.Errorf("visit = %q, want visited", got)
	}
}

func TestToggleMarkIndependentOfAnswer(t *testing.T) {
	s, _, _ := activeSession(t, 2)

	s.ToggleMark("q2")
	if !s.IsMarked("q2") {
		t.Fatal("mark not set")
	}
	s.SetAnswer("q2", 1)
	if !s.IsMarked("q2") {
		t.Error("answering cleared the review mark")
	}
	s.ToggleMark("q2")
	if s.IsMarked("q2") {
		t.Error("mark not cleared by second toggle")
	}
}

func TestNavigationClampsAndMarksVisited(t *testing.T) {
	s, _, _ := activeSession(t, 3)

	s.Prev()
	if s.Index() != 0 {
		t.Errorf("Prev at first question moved to %d", s.Index())
	}

	s.Next()
	if s.Index() != 1 {
		t.Fatalf("index = %d, want 1", s.Index())
	}
	if got := s.VisitOf("q2"); got != VisitVisited {
		t.Errorf("visit of q2 = %q, want visited", got)
	}

	s.Next()
	s.Next()
	if s.Index() != 2 {
		t.Errorf("Next at last question moved to %d", s.Index())
	}

	s.Jump(0)
	if s.Index() != 0 {
		t.Errorf("Jump(0) landed at %d", s.Index())
	}
	s.Jump(99)
	if s.Index() != 0 {
		t.Errorf("out-of-range Jump moved the cursor to %d", s.Index())
	}
}

func TestJumpDoesNotDowngradeAnswered(t *testing.T) {
	s, _, _ := activeSession(t, 2)

	s.SetAnswer("q2", 1)
	s.Jump(1)
	if got := s.VisitOf("q2"); got != VisitAnswered {
		t.Errorf("visit = %q, want answered after revisiting", got)
	}
}

func TestTimerExpirySubmitsExactlyOnce(t *testing.T) {
	s, _, rec := activeSession(t, 2)
	s.SetAnswer("q1", 1)

	total := s.Timer()
	for i := 0; i < total; i++ {
		s.Tick()
	}

	if s.Status() != StatusFinished {
		t.Fatalf("status = %q, want finished", s.Status())
	}
	if s.Timer() != 0 {
		t.Errorf("timer = %d, want 0", s.Timer())
	}
	if len(rec.updates) != 1 {
		t.Fatalf("recorder updated %d times, want 1", len(rec.updates))
	}

	// Lingering ticks after expiry must not re-score.
	s.Tick()
	s.Tick()
	if len(rec.updates) != 1 {
		t.Errorf("extra ticks re-scored the attempt")
	}
}

func TestSubmitScoresAndRecords(t *testing.T) {
	s, _, rec := activeSession(t, 3)
	s.SetAnswer("q1", 1) // correct
	s.SetAnswer("q2", 0) // wrong, q3 skipped

	s.Submit()

	res := s.Result()
	if res == nil {
		t.Fatal("no result after submit")
	}
	if res.CorrectCount != 1 || res.WrongCount != 1 || res.Skipped != 1 {
		t.Errorf("counts = %d/%d/%d, want 1/1/1", res.CorrectCount, res.WrongCount, res.Skipped)
	}
	if res.Score != 1.75 {
		t.Errorf("score = %v, want 1.75", res.Score)
	}

	if len(rec.updates) != 1 {
		t.Fatalf("recorder updated %d times, want 1", len(rec.updates))
	}
	if got := len(rec.updates[0]); got != 3 {
		t.Errorf("recorder got %d results, want 3", got)
	}

	// Double submit must not double-score.
	s.Submit()
	if len(rec.updates) != 1 {
		t.Error("second Submit re-scored the attempt")
	}
}

func TestMutatorsIgnoredOutsideActive(t *testing.T) {
	s := NewSession(&fakeStore{}, &fakeRecorder{})

	s.SetAnswer("q1", 1)
	s.ToggleMark("q1")
	s.Tick()
	s.Submit()

	if s.Status() != StatusIdle {
		t.Fatalf("status = %q, want idle", s.Status())
	}
	if _, ok := s.AnswerFor("q1"); ok {
		t.Error("answer recorded while idle")
	}
}

func TestResetReturnsToIdleAndEvictsCache(t *testing.T) {
	s, store, _ := activeSession(t, 2)
	s.SetAnswer("q1", 1)
	s.ToggleMark("q2")
	s.Submit()

	s.Reset()

	if s.Status() != StatusIdle {
		t.Fatalf("status = %q, want idle", s.Status())
	}
	if len(s.Questions()) != 0 || s.AnsweredCount() != 0 || s.IsMarked("q2") || s.Result() != nil {
		t.Error("session state survived Reset")
	}
	if store.cacheCleared != 1 {
		t.Errorf("question cache cleared %d times, want 1", store.cacheCleared)
	}
	if store.snapshotWipes != 1 {
		t.Errorf("snapshot cleared %d times, want 1", store.snapshotWipes)
	}
}

func TestActivateWithEmptySetIsDegenerate(t *testing.T) {
	store := &fakeStore{}
	s := NewSession(store, &fakeRecorder{})
	token := s.Begin(Config{Count: 0})

	if !s.Activate(token, nil) {
		t.Fatal("Activate rejected an empty set")
	}
	if s.Status() != StatusActive {
		t.Fatalf("status = %q, want active", s.Status())
	}
	if _, ok := s.Current(); ok {
		t.Error("Current reported a question for an empty set")
	}

	// Navigation in the degenerate state must not panic.
	s.Next()
	s.Prev()
	s.Jump(0)
}

func TestSnapshotRoundTrip(t *testing.T) {
	s, store, _ := activeSession(t, 3)
	s.SetAnswer("q1", 2)
	s.ToggleMark("q3")
	s.Next()

	snap := store.snapshots[len(store.snapshots)-1]
	if snap.ExamStatus != StatusActive {
		t.Fatalf("snapshot status = %q, want active", snap.ExamStatus)
	}
	if snap.CurrentQuestionIndex != 1 {
		t.Errorf("snapshot index = %d, want 1", snap.CurrentQuestionIndex)
	}

	restored := NewSession(&fakeStore{}, &fakeRecorder{})
	restored.Restore(snap, testQuestions(3))

	if restored.Status() != StatusActive {
		t.Fatalf("restored status = %q, want active", restored.Status())
	}
	if opt, ok := restored.AnswerFor("q1"); !ok || opt != 2 {
		t.Errorf("restored answer = %d, %v", opt, ok)
	}
	if !restored.IsMarked("q3") {
		t.Error("review mark lost in restore")
	}
	if restored.Index() != 1 {
		t.Errorf("restored index = %d, want 1", restored.Index())
	}
	if got, want := restored.Timer(), 3*SecondsPerQuestion; got != want {
		t.Errorf("restored timer = %d, want %d", got, want)
	}
}

func TestRestoreIgnoresIdleSnapshot(t *testing.T) {
	s := NewSession(&fakeStore{}, &fakeRecorder{})
	s.Restore(Snapshot{ExamStatus: StatusIdle}, nil)
	if s.Status() != StatusIdle {
		t.Errorf("status = %q, want idle", s.Status())
	}

	s.Restore(Snapshot{ExamStatus: StatusActive}, nil)
	if s.Status() != StatusIdle {
		t.Errorf("active snapshot with no questions restored anyway")
	}
}
