package history

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepgd/internal/screen"
	"github.com/abhisek/prepgd/internal/store"
	"github.com/abhisek/prepgd/internal/ui/layout"
	"github.com/abhisek/prepgd/internal/ui/theme"
)

const pageSize = 50

// HistoryScreen lists past attempts, newest first.
type HistoryScreen struct {
	attempts []store.Attempt
	loadErr  error
	scroll   int
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a HistoryScreen backed by the attempt table.
func New(st *store.Store) *HistoryScreen {
	h := &HistoryScreen{}
	h.attempts, h.loadErr = st.ListAttempts(pageSize)
	return h
}

func (h *HistoryScreen) Init() tea.Cmd {
	return nil
}

func (h *HistoryScreen) Title() string {
	return "Exam History"
}

func (h *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (h *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return h, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if h.scroll > 0 {
			h.scroll--
		}
	case "down", "j":
		if h.scroll < len(h.attempts)-1 {
			h.scroll++
		}
	}
	return h, nil
}

func (h *HistoryScreen) View(width, height int) string {
	if h.loadErr != nil {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Incorrect.Render("Could not load history: "+h.loadErr.Error()))
	}
	if len(h.attempts) == 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Subtitle.Render("No attempts yet. Take your first mock!"))
	}

	var b strings.Builder
	header := fmt.Sprintf("%-12s %-10s %-26s %6s %4s %4s %5s",
		"DATE", "MODE", "TOPIC", "SCORE", "✓", "✗", "SKIP")
	b.WriteString(theme.Subtitle.Render(header))
	b.WriteString("\n")

	visible := height - 6
	if visible < 1 {
		visible = 1
	}
	end := h.scroll + visible
	if end > len(h.attempts) {
		end = len(h.attempts)
	}
	for _, a := range h.attempts[h.scroll:end] {
		topic := a.Topic
		if len(topic) > 26 {
			topic = topic[:23] + "..."
		}
		row := fmt.Sprintf("%-12s %-10s %-26s %6.2f %4d %4d %5d",
			a.TakenAt.Format("02 Jan 2006"), a.Mode, topic, a.Score, a.Correct, a.Wrong, a.Skipped)
		b.WriteString(theme.Body.Render(row))
		b.WriteString("\n")
	}
	if end < len(h.attempts) {
		b.WriteString(theme.Hint.Render(fmt.Sprintf("... %d more", len(h.attempts)-end)))
	}

	card := theme.Card.Width(width - 4).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, card)
}
