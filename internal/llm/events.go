package llm

import "context"

// RequestEvent captures one LLM API call for the request log.
type RequestEvent struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// EventRepo receives request events from the logging decorator. The
// interface lives on the consumer side so the persistence layer stays
// free to depend on domain packages.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, ev RequestEvent) error
}
