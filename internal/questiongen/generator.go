package questiongen

import (
	"context"
)

// Generator produces a question set for the given exam parameters.
// Implementations never return more than Input.Count questions.
type Generator interface {
	Generate(ctx context.Context, input Input) ([]Question, error)
}

// Config controls the behavior of the LLM generator.
type Config struct {
	// MaxTokens is the token budget for the LLM response. Question sets
	// are long, so the budget scales with the request at call time when
	// this is too small.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// Report receives generation failures that were downgraded to the
	// fallback set. Defaults to an slog warning when nil.
	Report func(error)
}

// DefaultConfig returns a Config with recommended defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   4096,
		Temperature: 0.7,
	}
}
