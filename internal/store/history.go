package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Attempt is one submitted exam recorded in the history table.
type Attempt struct {
	ID            string
	Mode          string
	Subject       string
	Topic         string
	Difficulty    string
	QuestionCount int
	Score         float64
	Correct       int
	Wrong         int
	Skipped       int
	DurationSec   int
	TakenAt       time.Time
}

// AppendAttempt records a submitted exam. An empty ID is filled in.
func (s *Store) AppendAttempt(a Attempt) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.TakenAt.IsZero() {
		a.TakenAt = time.Now()
	}
	_, err := s.db.Exec(
		`INSERT INTO exam_attempts
		 (id, mode, subject, topic, difficulty, question_count, score, correct, wrong, skipped, duration_sec, taken_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Mode, a.Subject, a.Topic, a.Difficulty, a.QuestionCount,
		a.Score, a.Correct, a.Wrong, a.Skipped, a.DurationSec, a.TakenAt,
	)
	if err != nil {
		return fmt.Errorf("append attempt: %w", err)
	}
	return nil
}

// ListAttempts returns the most recent attempts, newest first.
// limit <= 0 means no limit.
func (s *Store) ListAttempts(limit int) ([]Attempt, error) {
	query := `SELECT id, mode, subject, topic, difficulty, question_count, score, correct, wrong, skipped, duration_sec, taken_at
		 FROM exam_attempts ORDER BY taken_at DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()

	var attempts []Attempt
	for rows.Next() {
		var a Attempt
		if err := rows.Scan(
			&a.ID, &a.Mode, &a.Subject, &a.Topic, &a.Difficulty, &a.QuestionCount,
			&a.Score, &a.Correct, &a.Wrong, &a.Skipped, &a.DurationSec, &a.TakenAt,
		); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}

// ClearHistory deletes all recorded attempts.
func (s *Store) ClearHistory() error {
	_, err := s.db.Exec(`DELETE FROM exam_attempts`)
	return err
}
