package exam

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	core "github.com/abhisek/prepgd/internal/exam"
	"github.com/abhisek/prepgd/internal/ui/components"
	"github.com/abhisek/prepgd/internal/ui/layout"
	"github.com/abhisek/prepgd/internal/ui/theme"
)

const paletteColumns = 10

// lowTimeThreshold switches the clock to the warning color.
const lowTimeThreshold = 60

func (s *ExamScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return centered(width, height, theme.Incorrect.Render("Could not start the exam")+
			"\n\n"+theme.Body.Render(s.errMsg)+
			"\n\n"+theme.Hint.Render("Press Esc to go back"))
	case s.session.Status() == core.StatusLoading:
		return centered(width, height, theme.Title.Render("Generating questions...")+
			"\n\n"+theme.Hint.Render(fmt.Sprintf("%s · %s · %d questions", s.cfg.Subject, s.cfg.Topic, s.cfg.Count)))
	case s.confirmSubmit:
		return s.renderConfirm(width, height, "Submit the exam?",
			fmt.Sprintf("%d of %d answered", s.session.AnsweredCount(), len(s.session.Questions())))
	case s.confirmQuit:
		return s.renderConfirm(width, height, "Abandon this attempt?",
			"Answers will be discarded and nothing is scored")
	case s.paletteOn:
		return s.renderPalette(width, height)
	default:
		return s.renderQuestion(width, height)
	}
}

func centered(width, height int, content string) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *ExamScreen) renderConfirm(width, height int, question, detail string) string {
	card := theme.Card.Render(
		theme.Title.Render(question) + "\n\n" +
			theme.Subtitle.Render(detail) + "\n\n" +
			theme.Body.Render("[Y]es    [N]o"),
	)
	return centered(width, height, card)
}

func (s *ExamScreen) renderQuestion(width, height int) string {
	questions := s.session.Questions()
	if len(questions) == 0 {
		return centered(width, height,
			theme.Subtitle.Render("No questions in this set.")+
				"\n\n"+theme.Hint.Render("Press S to submit or Esc to abandon"))
	}

	q, _ := s.session.Current()
	idx := s.session.Index()

	clockStyle := theme.Body
	if s.session.Timer() <= lowTimeThreshold {
		clockStyle = lipgloss.NewStyle().Foreground(theme.Warning).Bold(true)
	}

	var b strings.Builder

	position := theme.Subtitle.Render(fmt.Sprintf("Question %d of %d", idx+1, len(questions)))
	clock := clockStyle.Render("⏱ " + layout.FormatClock(s.session.Timer()))
	topic := theme.Hint.Render(q.Topic)
	b.WriteString(position + "   " + clock + "   " + topic)
	if s.session.IsMarked(q.ID) {
		b.WriteString("   " + lipgloss.NewStyle().Foreground(theme.Marked).Render("● marked"))
	}
	b.WriteString("\n\n")

	b.WriteString(theme.Body.Bold(true).Width(width - 8).Render(q.Text))
	b.WriteString("\n\n")

	selected, hasAnswer := s.session.AnswerFor(q.ID)
	for i, opt := range q.Options {
		label := fmt.Sprintf("%d. %s", i+1, opt)
		if hasAnswer && i == selected {
			b.WriteString(theme.Selected.Render("  ▸ " + label))
		} else {
			b.WriteString(theme.Unselected.Render("    " + label))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(components.RenderPalette(s.paletteCells(), paletteColumns))
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render(components.PaletteLegend()))

	card := theme.Card.Width(width - 4).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (s *ExamScreen) renderPalette(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Question Palette"))
	b.WriteString("\n\n")
	b.WriteString(components.RenderPalette(s.paletteCells(), paletteColumns))
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render(components.PaletteLegend()))
	b.WriteString("\n\n")
	prompt := "Go to question: " + s.jumpBuffer
	b.WriteString(theme.Body.Render(prompt))

	card := theme.Card.Render(b.String())
	return centered(width, height, card)
}

// paletteCells maps per-question session state into palette cells.
func (s *ExamScreen) paletteCells() []components.PaletteCell {
	questions := s.session.Questions()
	cells := make([]components.PaletteCell, len(questions))
	for i, q := range questions {
		state := components.PaletteUnvisited
		switch s.session.VisitOf(q.ID) {
		case core.VisitVisited:
			state = components.PaletteVisited
		case core.VisitAnswered:
			state = components.PaletteAnswered
		}
		cells[i] = components.PaletteCell{
			Number:  i + 1,
			State:   state,
			Marked:  s.session.IsMarked(q.ID),
			Current: i == s.session.Index(),
		}
	}
	return cells
}
