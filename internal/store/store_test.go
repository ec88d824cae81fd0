package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/abhisek/prepgd/internal/exam"
	"github.com/abhisek/prepgd/internal/llm"
	"github.com/abhisek/prepgd/internal/questiongen"
	"github.com/abhisek/prepgd/internal/stats"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSettingsRoundTrip(t *testing.T) {
	s := openTestStore(t)

	got, err := s.Settings()
	if err != nil {
		t.Fatalf("Settings: %v", err)
	}
	if got != (Settings{}) {
		t.Errorf("fresh store settings = %+v, want zero value", got)
	}

	want := Settings{APIKey: "sk-test", Provider: "groq", Model: "llama-3.3-70b-versatile"}
	if err := s.SaveSettings(want); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}
	got, err = s.Settings()
	if err != nil {
		t.Fatalf("Settings: %v", err)
	}
	if got != want {
		t.Errorf("settings = %+v, want %+v", got, want)
	}
}

func TestUserStatsDefaultsWhenAbsent(t *testing.T) {
	s := openTestStore(t)

	us, err := s.LoadUserStats()
	if err != nil {
		t.Fatalf("LoadUserStats: %v", err)
	}
	if us.TopicStats == nil {
		t.Fatal("TopicStats map not initialized")
	}
	if us.OverallAccuracy != 0 {
		t.Errorf("overall accuracy = %v, want 0", us.OverallAccuracy)
	}
}

func TestUserStatsRoundTrip(t *testing.T) {
	s := openTestStore(t)

	us := stats.DefaultUserStats()
	us.TopicStats["Rivers of India"] = stats.TopicStat{Correct: 3, Total: 4, Accuracy: 75}
	us.OverallAccuracy = 75
	if err := s.SaveUserStats(us); err != nil {
		t.Fatalf("SaveUserStats: %v", err)
	}

	got, err := s.LoadUserStats()
	if err != nil {
		t.Fatalf("LoadUserStats: %v", err)
	}
	ts, ok := got.TopicStats["Rivers of India"]
	if !ok || ts.Correct != 3 || ts.Total != 4 {
		t.Errorf("topic stat = %+v, ok=%v", ts, ok)
	}
}

func TestCorruptRecordTreatedAsAbsent(t *testing.T) {
	s := openTestStore(t)

	_, err := s.DB().Exec(
		`INSERT INTO records (key, value) VALUES (?, ?)`,
		"user_stats", `{"overallAccuracy": not json`,
	)
	if err != nil {
		t.Fatalf("seed corrupt record: %v", err)
	}

	us, err := s.LoadUserStats()
	if err != nil {
		t.Fatalf("LoadUserStats on corrupt record: %v", err)
	}
	if us.TopicStats == nil || len(us.TopicStats) != 0 {
		t.Errorf("corrupt record did not fall back to defaults: %+v", us)
	}
}

func TestQuestionCacheLifecycle(t *testing.T) {
	s := openTestStore(t)

	if qs, err := s.QuestionCache(); err != nil || qs != nil {
		t.Fatalf("fresh cache = %v, %v", qs, err)
	}

	set := []questiongen.Question{
		{ID: "q1", Text: "2+2?", Options: []string{"3", "4"}, CorrectIndex: 1, Topic: "Elementary Mathematics"},
	}
	if err := s.SaveQuestionCache(set); err != nil {
		t.Fatalf("SaveQuestionCache: %v", err)
	}
	qs, err := s.QuestionCache()
	if err != nil {
		t.Fatalf("QuestionCache: %v", err)
	}
	if len(qs) != 1 || qs[0].ID != "q1" || qs[0].CorrectIndex != 1 {
		t.Errorf("cache round-trip mismatch: %+v", qs)
	}

	if err := s.ClearQuestionCache(); err != nil {
		t.Fatalf("ClearQuestionCache: %v", err)
	}
	if qs, _ := s.QuestionCache(); qs != nil {
		t.Errorf("cache survived clear: %+v", qs)
	}
}

func TestSnapshotLifecycle(t *testing.T) {
	s := openTestStore(t)

	if _, ok, err := s.SessionSnapshot(); err != nil || ok {
		t.Fatalf("fresh store has a snapshot: ok=%v err=%v", ok, err)
	}

	snap := exam.Snapshot{
		CurrentQuestionIndex: 2,
		Answers:              map[string]int{"q1": 1},
		MarkedForReview:      []string{"q3"},
		VisitStatus:          map[string]exam.VisitState{"q1": exam.VisitAnswered},
		ExamStatus:           exam.StatusActive,
	}
	if err := s.SaveSnapshot(snap); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	got, ok, err := s.SessionSnapshot()
	if err != nil || !ok {
		t.Fatalf("SessionSnapshot: ok=%v err=%v", ok, err)
	}
	if got.CurrentQuestionIndex != 2 || got.Answers["q1"] != 1 || got.ExamStatus != exam.StatusActive {
		t.Errorf("snapshot round-trip mismatch: %+v", got)
	}

	if err := s.ClearSnapshot(); err != nil {
		t.Fatalf("ClearSnapshot: %v", err)
	}
	if _, ok, _ := s.SessionSnapshot(); ok {
		t.Error("snapshot survived clear")
	}
}

func TestAttemptHistoryOrderAndLimit(t *testing.T) {
	s := openTestStore(t)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		err := s.AppendAttempt(Attempt{
			Mode:          "drill",
			Subject:       "Elementary Mathematics",
			Topic:         "Percentages",
			Difficulty:    "Medium",
			QuestionCount: 10,
			Score:         float64(i),
			TakenAt:       base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("AppendAttempt: %v", err)
		}
	}

	attempts, err := s.ListAttempts(0)
	if err != nil {
		t.Fatalf("ListAttempts: %v", err)
	}
	if len(attempts) != 3 {
		t.Fatalf("got %d attempts, want 3", len(attempts))
	}
	if attempts[0].Score != 2 {
		t.Errorf("newest attempt score = %v, want 2", attempts[0].Score)
	}
	if attempts[0].ID == "" {
		t.Error("attempt ID was not filled in")
	}

	limited, err := s.ListAttempts(2)
	if err != nil {
		t.Fatalf("ListAttempts(2): %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("got %d attempts with limit 2", len(limited))
	}

	if err := s.ClearHistory(); err != nil {
		t.Fatalf("ClearHistory: %v", err)
	}
	if attempts, _ := s.ListAttempts(0); len(attempts) != 0 {
		t.Error("history survived clear")
	}
}

func TestEventRepoAppendsRequests(t *testing.T) {
	s := openTestStore(t)

	repo := s.EventRepo()
	err := repo.AppendLLMRequest(context.Background(), llm.RequestEvent{
		Provider:     "groq",
		Model:        "llama-3.3-70b-versatile",
		Purpose:      "question-gen",
		InputTokens:  120,
		OutputTokens: 900,
		LatencyMs:    1500,
		Success:      true,
	})
	if err != nil {
		t.Fatalf("AppendLLMRequest: %v", err)
	}

	var count int
	if err := s.DB().QueryRow(`SELECT COUNT(*) FROM llm_requests`).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("llm_requests rows = %d, want 1", count)
	}
}

func TestLoggingProviderWritesRequestRow(t *testing.T) {
	s := openTestStore(t)

	provider := llm.NewMockProvider(llm.MockResponse{Content: []byte(`{}`)})
	logged := llm.WithLogging(provider, s.EventRepo())

	ctx := llm.WithPurpose(context.Background(), "question-gen")
	if _, err := logged.Generate(ctx, llm.Request{}); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	var purpose string
	if err := s.DB().QueryRow(`SELECT purpose FROM llm_requests`).Scan(&purpose); err != nil {
		t.Fatalf("read request row: %v", err)
	}
	if purpose != "question-gen" {
		t.Errorf("purpose = %q, want %q", purpose, "question-gen")
	}
}
