package questiongen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/abhisek/prepgd/internal/llm"
)

// LLMGenerator implements Generator using an LLM provider. It builds
// the generation prompt, normalizes whatever shape the model returns
// and validates the result. Callers normally wrap it with WithFallback
// so a failure never reaches the session.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// NewLLM creates an LLMGenerator with the given provider and config.
func NewLLM(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// Generate produces up to input.Count questions.
func (g *LLMGenerator) Generate(ctx context.Context, input Input) ([]Question, error) {
	if input.Count <= 0 {
		return nil, nil
	}

	ctx = llm.WithPurpose(ctx, "question-gen")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input)},
		},
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	questions, err := normalize(resp.Content)
	if err != nil {
		return nil, err
	}

	// Schema check on the accepted set. Anything the lenient schema
	// rejects would misbehave during the exam (bad correctIndex etc).
	buf, err := json.Marshal(questions)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := llm.ValidateJSON(QuestionSetSchema, buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	for i := range questions {
		if questions[i].ID == "" {
			questions[i].ID = uuid.New().String()
		}
		if questions[i].Topic == "" {
			questions[i].Topic = input.Topic
		}
	}

	if len(questions) > input.Count {
		questions = questions[:input.Count]
	}
	return questions, nil
}
