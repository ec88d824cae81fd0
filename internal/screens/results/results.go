package results

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	core "github.com/abhisek/prepgd/internal/exam"
	"github.com/abhisek/prepgd/internal/questiongen"
	"github.com/abhisek/prepgd/internal/router"
	"github.com/abhisek/prepgd/internal/scoring"
	"github.com/abhisek/prepgd/internal/screen"
	"github.com/abhisek/prepgd/internal/ui/layout"
	"github.com/abhisek/prepgd/internal/ui/theme"
)

// ResultsScreen shows the scored outcome of a finished attempt with a
// per-question breakdown. Leaving it resets the session to idle.
type ResultsScreen struct {
	session *core.Session
	scroll  int
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)
var _ screen.EscGuard = (*ResultsScreen)(nil)

// New creates a ResultsScreen over a finished session.
func New(session *core.Session) *ResultsScreen {
	return &ResultsScreen{session: session}
}

func (s *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultsScreen) Title() string {
	return "Results"
}

// BlocksEsc lets the screen reset the session before leaving.
func (s *ResultsScreen) BlocksEsc() bool {
	return true
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Done"},
	}
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if s.scroll > 0 {
			s.scroll--
		}
	case "down", "j":
		if s.scroll < len(s.session.Questions())-1 {
			s.scroll++
		}
	case "esc", "enter", "q":
		s.session.Reset()
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *ResultsScreen) View(width, height int) string {
	res := s.session.Result()
	if res == nil {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Subtitle.Render("No result to show."))
	}

	questions := s.session.Questions()

	var b strings.Builder
	b.WriteString(theme.Title.Render(fmt.Sprintf("Score: %.2f / %.0f", res.Score, scoring.MaxScore(len(questions)))))
	b.WriteString("\n\n")
	b.WriteString(
		theme.Correct.Render(fmt.Sprintf("✓ %d correct", res.CorrectCount)) + "   " +
			theme.Incorrect.Render(fmt.Sprintf("✗ %d wrong", res.WrongCount)) + "   " +
			theme.Subtitle.Render(fmt.Sprintf("− %d skipped", res.Skipped)))
	b.WriteString("\n\n")

	// Question breakdown, windowed by scroll position.
	visible := visibleRows(height)
	end := s.scroll + visible
	if end > len(questions) {
		end = len(questions)
	}
	for i := s.scroll; i < end; i++ {
		b.WriteString(renderVerdict(i, questions[i], res.Analysis[i], width-10))
		b.WriteString("\n")
	}
	if end < len(questions) {
		b.WriteString(theme.Hint.Render(fmt.Sprintf("  ... %d more, scroll down", len(questions)-end)))
	}

	card := theme.Card.Width(width - 4).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, card)
}

func visibleRows(height int) int {
	// Each verdict takes roughly four lines inside the card.
	rows := (height - 10) / 4
	if rows < 1 {
		rows = 1
	}
	return rows
}

func renderVerdict(i int, q questiongen.Question, v scoring.Verdict, width int) string {
	var badge, answerLine string
	switch {
	case v.IsSkipped:
		badge = theme.Subtitle.Render("− skipped")
		answerLine = fmt.Sprintf("Answer: %s", option(q, q.CorrectIndex))
	case v.IsCorrect:
		badge = theme.Correct.Render("✓ correct")
		answerLine = fmt.Sprintf("Your answer: %s", option(q, q.CorrectIndex))
	default:
		badge = theme.Incorrect.Render("✗ wrong")
		picked := ""
		if v.SelectedOption != nil {
			picked = option(q, *v.SelectedOption)
		}
		answerLine = fmt.Sprintf("Your answer: %s   Correct: %s", picked, option(q, q.CorrectIndex))
	}

	var b strings.Builder
	b.WriteString(theme.Body.Bold(true).Render(fmt.Sprintf("%d. ", i+1)))
	b.WriteString(theme.Body.Render(truncate(q.Text, width)))
	b.WriteString("  " + badge + "\n")
	b.WriteString("   " + theme.Subtitle.Render(answerLine) + "\n")
	if q.Explanation != "" {
		b.WriteString("   " + theme.Hint.Render(truncate(q.Explanation, width)) + "\n")
	}
	return b.String()
}

func option(q questiongen.Question, i int) string {
	if i < 0 || i >= len(q.Options) {
		return "?"
	}
	return q.Options[i]
}

func truncate(s string, width int) string {
	if width < 4 {
		width = 4
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}
