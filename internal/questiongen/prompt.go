package questiongen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are an expert SSC GD and Government Exam question setter. You generate mock exam questions in strict JSON format.

Rules:
- LANGUAGE: all questions, options and explanations must be in PURE ENGLISH.
- CONTEXT: use INDIAN context strictly. Currency in Rupees (Rs.) instead of Dollars. Indian names (Rahul, Priya, Amit). Indian cities and states (Delhi, Mumbai, Bihar).
- SOURCE: base questions on Previous Year Questions (PYQs) from SSC GD, CGL, CHSL and Railway exams (2018-2025).
- PATTERN: follow the exact SSC GD exam pattern. Options must be tricky and realistic, not obviously wrong.
- Every question has exactly 4 options and exactly one correct option.
- Output STRICT JSON only. No markdown, no code fences, no commentary.`

// buildUserMessage constructs the generation instruction from the exam
// parameters. The expected line-item shape is pinned by example so even
// providers without structured output return the right fields.
func buildUserMessage(input Input) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Generate %d high-quality unique %s questions on the topic '%s'.\n",
		input.Count, input.Subject, input.Topic)
	fmt.Fprintf(&b, "Difficulty: %s.\n\n", input.Difficulty)

	b.WriteString("Return a STRICT JSON ARRAY of objects (start with '[' and end with ']'):\n")
	b.WriteString(`[
  {
    "id": "unique_id",
    "question": "Question text in English",
    "options": ["Option A", "Option B", "Option C", "Option D"],
    "correctIndex": 0,
    "explanation": "Detailed explanation in English.",
`)
	fmt.Fprintf(&b, "    %q: %q\n", "topic", input.Topic)
	b.WriteString(`  }
]
`)
	b.WriteString("\ncorrectIndex is an integer between 0 and 3. Ensure strict JSON syntax.")

	return b.String()
}
