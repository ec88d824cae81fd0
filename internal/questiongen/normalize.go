package questiongen

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// Error kinds reported by response handling. Both are downgraded to the
// fallback set by the fallback decorator; they surface only in logs.
var (
	// ErrMalformedResponse means no matcher could locate a question
	// array in the provider's output.
	ErrMalformedResponse = errors.New("malformed generation response")

	// ErrValidation means a located array contained items without a
	// usable options sequence.
	ErrValidation = errors.New("generated questions failed validation")
)

// matcher is one response-shape strategy. Matchers are tried in order;
// the first to return ok wins. Each returns the candidate question
// array as a decoded JSON value.
type matcher interface {
	name() string
	match(v any) ([]any, bool)
}

// matchers in priority order: a bare array, an object with a
// "questions" field, a single question object, and finally a scan of
// the object's values for anything question-array shaped.
var matchers = []matcher{
	arrayMatcher{},
	questionsFieldMatcher{},
	singleQuestionMatcher{},
	valueScanMatcher{},
}

type arrayMatcher struct{}

func (arrayMatcher) name() string { return "array" }

func (arrayMatcher) match(v any) ([]any, bool) {
	arr, ok := v.([]any)
	return arr, ok
}

type questionsFieldMatcher struct{}

func (questionsFieldMatcher) name() string { return "questions-field" }

func (questionsFieldMatcher) match(v any) ([]any, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	arr, ok := obj["questions"].([]any)
	return arr, ok
}

type singleQuestionMatcher struct{}

func (singleQuestionMatcher) name() string { return "single-question" }

func (singleQuestionMatcher) match(v any) ([]any, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	if _, hasQ := obj["question"]; !hasQ {
		return nil, false
	}
	if _, hasOpts := obj["options"].([]any); !hasOpts {
		return nil, false
	}
	return []any{obj}, true
}

type valueScanMatcher struct{}

func (valueScanMatcher) name() string { return "value-scan" }

// match scans the object's values for the first non-empty array whose
// first element looks like a question. Keys are visited in sorted order
// so the result is deterministic. Inner arrays such as a stray top-level
// "options" list do not qualify because their elements are strings.
func (valueScanMatcher) match(v any) ([]any, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		arr, ok := obj[k].([]any)
		if !ok || len(arr) == 0 {
			continue
		}
		first, ok := arr[0].(map[string]any)
		if !ok {
			continue
		}
		if _, hasQ := first["question"]; hasQ {
			return arr, true
		}
	}
	return nil, false
}

// normalize extracts a question sequence from a raw provider payload,
// trying each matcher in order.
func normalize(raw json.RawMessage) ([]Question, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	var arr []any
	matched := false
	for _, m := range matchers {
		if a, ok := m.match(parsed); ok {
			arr = a
			matched = true
			break
		}
	}
	if !matched {
		return nil, fmt.Errorf("%w: no question array found", ErrMalformedResponse)
	}

	// Round-trip the matched array into typed questions.
	buf, err := json.Marshal(arr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	var questions []Question
	if err := json.Unmarshal(buf, &questions); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if err := validateItems(questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// validateItems enforces the one hard requirement on generated items:
// every question must carry an options sequence.
func validateItems(questions []Question) error {
	for i, q := range questions {
		if len(q.Options) == 0 {
			return fmt.Errorf("%w: item %d has no options", ErrValidation, i)
		}
	}
	return nil
}
