package questiongen

import (
	"context"
	"log/slog"

	"github.com/abhisek/prepgd/internal/llm"
)

// fallbackQuestions covers one question per exam section. They are
// served when no provider is configured or generation fails, so a
// session can always start.
var fallbackQuestions = []Question{
	{
		ID:           "fallback-1",
		Text:         "The river Ganga originates from which glacier?",
		Options:      []string{"Gangotri", "Yamunotri", "Siachen", "Pindari"},
		CorrectIndex: 0,
		Explanation:  "The Ganga originates from the Gangotri glacier in Uttarakhand.",
		Topic:        "General Knowledge",
	},
	{
		ID:           "fallback-2",
		Text:         "If Rahul buys a shirt for Rs. 500 and sells it for Rs. 550, what is his profit percentage?",
		Options:      []string{"10%", "15%", "20%", "5%"},
		CorrectIndex: 0,
		Explanation:  "Profit = 550 - 500 = Rs. 50. Profit % = (50/500) * 100 = 10%.",
		Topic:        "Elementary Mathematics",
	},
	{
		ID:           "fallback-3",
		Text:         "Which pattern series correctly completes: 2, 5, 10, 17, ?",
		Options:      []string{"24", "26", "25", "27"},
		CorrectIndex: 1,
		Explanation:  "The pattern is n^2 + 1. 1^2+1=2, 2^2+1=5... 5^2+1=26.",
		Topic:        "General Intelligence & Reasoning",
	},
	{
		ID:           "fallback-4",
		Text:         "Select the synonym of 'ABANDON'.",
		Options:      []string{"Keep", "Forsake", "Cherish", "Enlarge"},
		CorrectIndex: 1,
		Explanation:  "Abandon means to leave or forsake.",
		Topic:        "English/Hindi",
	},
	{
		ID:           "fallback-5",
		Text:         "Who was the first President of India?",
		Options:      []string{"Jawaharlal Nehru", "Dr. Rajendra Prasad", "B.R. Ambedkar", "Sardar Patel"},
		CorrectIndex: 1,
		Explanation:  "Dr. Rajendra Prasad was the first President of India.",
		Topic:        "General Knowledge",
	},
}

// FallbackSet returns up to count built-in questions in fixed order.
func FallbackSet(count int) []Question {
	if count <= 0 {
		return nil
	}
	if count > len(fallbackQuestions) {
		count = len(fallbackQuestions)
	}
	out := make([]Question, count)
	copy(out, fallbackQuestions[:count])
	return out
}

// fallbackGenerator always serves the built-in set.
type fallbackGenerator struct{}

func (fallbackGenerator) Generate(_ context.Context, input Input) ([]Question, error) {
	return FallbackSet(input.Count), nil
}

// fallbackDecorator tries the primary generator and falls back to the
// built-in set when it fails.
type fallbackDecorator struct {
	primary Generator
	report  func(error)
}

// WithFallback wraps gen so any generation error is reported and
// answered with the built-in question set instead.
func WithFallback(gen Generator, report func(error)) Generator {
	if report == nil {
		report = func(err error) {
			slog.Warn("question generation failed, using fallback set", "error", err)
		}
	}
	return &fallbackDecorator{primary: gen, report: report}
}

func (d *fallbackDecorator) Generate(ctx context.Context, input Input) ([]Question, error) {
	questions, err := d.primary.Generate(ctx, input)
	if err != nil {
		d.report(err)
		return FallbackSet(input.Count), nil
	}
	return questions, nil
}

// New builds the standard generator stack. A nil provider means no
// credential is configured and the fallback set is served directly.
func New(provider llm.Provider, cfg Config) Generator {
	if provider == nil {
		return fallbackGenerator{}
	}
	return WithFallback(NewLLM(provider, cfg), cfg.Report)
}
