package questiongen

import "github.com/abhisek/prepgd/internal/llm"

// QuestionSetSchema validates a normalized question array before it is
// accepted. It is deliberately lenient beyond the essentials: extra
// fields are allowed and explanations may be missing, since a usable
// question only needs text, options and a correct index.
var QuestionSetSchema = &llm.Schema{
	Name:        "question-set",
	Description: "An array of multiple-choice mock exam questions",
	Definition: map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"id": map[string]any{
					"type":        "string",
					"description": "Identifier unique within the set",
				},
				"question": map[string]any{
					"type":        "string",
					"description": "The question text in English",
				},
				"options": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "string"},
					"minItems":    2,
					"description": "The answer choices, normally exactly 4",
				},
				"correctIndex": map[string]any{
					"type":        "integer",
					"minimum":     0,
					"maximum":     3,
					"description": "Index of the correct option",
				},
				"explanation": map[string]any{
					"type":        "string",
					"description": "Worked justification of the answer",
				},
				"topic": map[string]any{
					"type":        "string",
					"description": "Topic tag used for accuracy aggregation",
				},
			},
			"required": []any{"question", "options", "correctIndex"},
		},
	},
}
