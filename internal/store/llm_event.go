package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/abhisek/prepgd/internal/llm"
)

// EventRepo returns an llm.EventRepo backed by the llm_requests table.
func (s *Store) EventRepo() llm.EventRepo {
	return &eventRepo{db: s.db}
}

type eventRepo struct {
	db *sql.DB
}

var _ llm.EventRepo = (*eventRepo)(nil)

func (r *eventRepo) AppendLLMRequest(ctx context.Context, ev llm.RequestEvent) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO llm_requests
		 (provider, model, purpose, input_tokens, output_tokens, latency_ms, success, error_message, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.Provider, ev.Model, ev.Purpose,
		ev.InputTokens, ev.OutputTokens, ev.LatencyMs,
		ev.Success, ev.ErrorMessage, time.Now(),
	)
	return err
}
