// Package scoring computes the session score and per-question breakdown
// at submission time, using the standard SSC marking scheme.
package scoring

import "github.com/abhisek/prepgd/internal/questiongen"

// Marking scheme: +2 per correct answer, 0.25 deducted per wrong answer,
// no marks lost on skipped questions.
const (
	MarksPerCorrect  = 2.0
	NegativePerWrong = 0.25
)

// Verdict records the outcome for a single question. It deliberately
// omits the question text so that repeated snapshot persistence of a
// result stays cheap.
type Verdict struct {
	ID             string `json:"id"`
	SelectedOption *int   `json:"selectedOption,omitempty"`
	IsCorrect      bool   `json:"isCorrect"`
	IsSkipped      bool   `json:"isSkipped"`
}

// Result is the full scored outcome of one attempt. Analysis preserves
// the original question order.
type Result struct {
	Score        float64   `json:"score"`
	CorrectCount int       `json:"correctCount"`
	WrongCount   int       `json:"wrongCount"`
	Skipped      int       `json:"skipped"`
	Analysis     []Verdict `json:"analysis"`
}

// Score grades the attempt. Questions absent from answers count as
// skipped; Skipped is derived from the totals so the three counts always
// sum to len(questions).
func Score(questions []questiongen.Question, answers map[string]int) Result {
	res := Result{Analysis: make([]Verdict, 0, len(questions))}

	for _, q := range questions {
		selected, answered := answers[q.ID]

		v := Verdict{ID: q.ID, IsSkipped: !answered}
		if answered {
			sel := selected
			v.SelectedOption = &sel
			v.IsCorrect = selected == q.CorrectIndex
			if v.IsCorrect {
				res.CorrectCount++
			} else {
				res.WrongCount++
			}
		}
		res.Analysis = append(res.Analysis, v)
	}

	res.Skipped = len(questions) - res.CorrectCount - res.WrongCount
	res.Score = float64(res.CorrectCount)*MarksPerCorrect - float64(res.WrongCount)*NegativePerWrong
	return res
}

// MaxScore returns the highest achievable score for n questions.
func MaxScore(n int) float64 {
	return float64(n) * MarksPerCorrect
}
