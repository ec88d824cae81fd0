package questiongen

// Question is a single multiple-choice item as served during an exam.
// The JSON tags match both the provider wire format and the local
// question cache record, so a generated set round-trips unchanged.
type Question struct {
	// ID is unique within a generated set. If the provider omits it,
	// the generator assigns one.
	ID string `json:"id"`

	// Text is the question prompt shown to the aspirant.
	Text string `json:"question"`

	// Options holds the four answer choices in display order.
	Options []string `json:"options"`

	// CorrectIndex is the index into Options of the right answer (0-3).
	CorrectIndex int `json:"correctIndex"`

	// Explanation is a short worked justification shown on the results
	// screen.
	Explanation string `json:"explanation"`

	// Topic tags the question for accuracy aggregation, e.g.
	// "Elementary Mathematics".
	Topic string `json:"topic"`
}

// Input holds the exam parameters a question set is generated for.
type Input struct {
	Subject    string
	Topic      string
	Difficulty string

	// Count is the number of questions requested. The generated set is
	// truncated to at most Count items; it may be shorter if the
	// provider returns fewer.
	Count int
}
