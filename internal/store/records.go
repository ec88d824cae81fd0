package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/abhisek/prepgd/internal/exam"
	"github.com/abhisek/prepgd/internal/questiongen"
	"github.com/abhisek/prepgd/internal/stats"
)

// Record keys. Each key maps to one JSON document in the records table,
// mirroring the logical records of the app: provider settings, lifetime
// user statistics, the active question cache and the session snapshot.
const (
	recordSettings        = "settings"
	recordUserStats       = "user_stats"
	recordQuestionCache   = "question_cache"
	recordSessionSnapshot = "session_snapshot"
)

// Settings is the persisted provider configuration.
type Settings struct {
	APIKey   string `json:"apiKey"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
}

// getRecord loads the record for key into v. It returns false when the
// record is absent. A corrupt record is treated as absent: the caller
// falls back to its documented default shape and the corruption is only
// logged, never propagated.
func (s *Store) getRecord(key string, v any) (bool, error) {
	var raw string
	err := s.db.QueryRow(`SELECT value FROM records WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read record %q: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		slog.Warn("discarding corrupt record", "key", key, "err", err)
		return false, nil
	}
	return true, nil
}

func (s *Store) putRecord(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode record %q: %w", key, err)
	}
	_, err = s.db.Exec(
		`INSERT INTO records (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, string(raw),
	)
	if err != nil {
		return fmt.Errorf("write record %q: %w", key, err)
	}
	return nil
}

func (s *Store) deleteRecord(key string) error {
	if _, err := s.db.Exec(`DELETE FROM records WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete record %q: %w", key, err)
	}
	return nil
}

// Settings returns the persisted settings, or the zero value when none
// have been saved yet.
func (s *Store) Settings() (Settings, error) {
	var st Settings
	if _, err := s.getRecord(recordSettings, &st); err != nil {
		return Settings{}, err
	}
	return st, nil
}

// SaveSettings persists the settings record.
func (s *Store) SaveSettings(st Settings) error {
	return s.putRecord(recordSettings, st)
}

// LoadUserStats returns the lifetime user statistics. Absent or corrupt
// state yields the empty default shape. Implements stats.Store.
func (s *Store) LoadUserStats() (stats.UserStats, error) {
	us := stats.DefaultUserStats()
	ok, err := s.getRecord(recordUserStats, &us)
	if err != nil {
		return stats.DefaultUserStats(), err
	}
	if !ok || us.TopicStats == nil {
		return stats.DefaultUserStats(), nil
	}
	return us, nil
}

// SaveUserStats persists the user statistics record. Implements stats.Store.
func (s *Store) SaveUserStats(us stats.UserStats) error {
	return s.putRecord(recordUserStats, us)
}

// QuestionCache returns the cached question set for the active session,
// or nil when no cache exists.
func (s *Store) QuestionCache() ([]questiongen.Question, error) {
	var qs []questiongen.Question
	ok, err := s.getRecord(recordQuestionCache, &qs)
	if err != nil || !ok {
		return nil, err
	}
	return qs, nil
}

// SaveQuestionCache stores the generated question set. The cache is a
// separate record from the session snapshot so that per-navigation
// snapshot writes stay small. Implements exam.Store.
func (s *Store) SaveQuestionCache(qs []questiongen.Question) error {
	return s.putRecord(recordQuestionCache, qs)
}

// ClearQuestionCache evicts the cached question set. Implements exam.Store.
func (s *Store) ClearQuestionCache() error {
	return s.deleteRecord(recordQuestionCache)
}

// SessionSnapshot returns the persisted session snapshot, if any.
func (s *Store) SessionSnapshot() (exam.Snapshot, bool, error) {
	var snap exam.Snapshot
	ok, err := s.getRecord(recordSessionSnapshot, &snap)
	if err != nil || !ok {
		return exam.Snapshot{}, false, err
	}
	return snap, true, nil
}

// SaveSnapshot persists the session snapshot record. Implements exam.Store.
func (s *Store) SaveSnapshot(snap exam.Snapshot) error {
	return s.putRecord(recordSessionSnapshot, snap)
}

// ClearSnapshot removes the session snapshot record. Implements exam.Store.
func (s *Store) ClearSnapshot() error {
	return s.deleteRecord(recordSessionSnapshot)
}
