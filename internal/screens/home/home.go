package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	core "github.com/abhisek/prepgd/internal/exam"
	"github.com/abhisek/prepgd/internal/llm"
	"github.com/abhisek/prepgd/internal/questiongen"
	"github.com/abhisek/prepgd/internal/router"
	"github.com/abhisek/prepgd/internal/screen"
	examscreen "github.com/abhisek/prepgd/internal/screens/exam"
	"github.com/abhisek/prepgd/internal/screens/history"
	"github.com/abhisek/prepgd/internal/screens/settings"
	"github.com/abhisek/prepgd/internal/stats"
	"github.com/abhisek/prepgd/internal/store"
	"github.com/abhisek/prepgd/internal/ui/components"
	"github.com/abhisek/prepgd/internal/ui/layout"
	"github.com/abhisek/prepgd/internal/ui/theme"
)

// Deps are the collaborators the dashboard hands down to the screens
// it opens.
type Deps struct {
	Session    *core.Session
	Generator  questiongen.Generator
	Aggregator *stats.Aggregator
	Store      *store.Store
}

// HomeScreen is the dashboard: lifetime accuracy, weak and strong
// topic chips, and the practice mode menu.
type HomeScreen struct {
	deps Deps

	menu      components.Menu
	userStats stats.UserStats
	status    string

	// Subject drill form state.
	drillForm    bool
	drillFocus   int
	subjectIndex int
	topicInput   components.TextInput
	countInput   components.TextInput
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates the dashboard.
func New(deps Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}
	h.reloadStats()

	var items []components.MenuItem
	if deps.Session.Status() == core.StatusActive {
		items = append(items, components.MenuItem{Label: "RESUME EXAM", Action: h.resumeExam})
	}
	items = append(items,
		components.MenuItem{Label: "START FULL MOCK", Action: func() tea.Cmd {
			return h.startExam(core.ModeFull, "", "", 0)
		}},
		components.MenuItem{Label: "FIX WEAKNESS", Action: func() tea.Cmd {
			return h.startExam(core.ModeWeakness, "", "", 0)
		}},
		components.MenuItem{Label: "SUBJECT DRILL", Action: func() tea.Cmd {
			h.openDrillForm()
			return nil
		}},
		components.MenuItem{Label: "EXAM HISTORY", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(deps.Store)}
			}
		}},
		components.MenuItem{Label: "SETTINGS", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: settings.New(deps.Store)}
			}
		}},
		components.MenuItem{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	)

	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) reloadStats() {
	us, err := h.deps.Aggregator.Current()
	if err == nil {
		h.userStats = us
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Dashboard"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	if h.drillForm {
		return []layout.KeyHint{
			{Key: "Tab", Description: "Next field"},
			{Key: "←→", Description: "Subject"},
			{Key: "Enter", Description: "Start drill"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// hasCredential reports whether any provider key is configured, via
// settings or environment.
func (h *HomeScreen) hasCredential() bool {
	st, err := h.deps.Store.Settings()
	if err == nil && st.APIKey != "" {
		return true
	}
	return llm.ConfigFromEnv().HasCredential()
}

func (h *HomeScreen) resumeExam() tea.Cmd {
	if h.deps.Session.Status() != core.StatusActive {
		h.status = "No attempt to resume."
		return nil
	}
	return func() tea.Msg {
		return router.PushScreenMsg{
			Screen: examscreen.Resume(h.deps.Session, h.deps.Generator, h.deps.Store),
		}
	}
}

// startExam resolves the config for a mode and pushes the exam screen.
// Errors stay on the dashboard as a status line.
func (h *HomeScreen) startExam(mode core.Mode, subject, topic string, count int) tea.Cmd {
	if !h.hasCredential() {
		h.status = statusFromErr(core.ErrNoCredential) + " Set one in Settings first."
		return nil
	}

	h.reloadStats()
	cfg, err := core.ResolveConfig(mode, h.userStats, subject, topic, count)
	if err != nil {
		h.status = statusFromErr(err)
		return nil
	}

	h.status = ""
	h.drillForm = false
	return func() tea.Msg {
		return router.PushScreenMsg{
			Screen: examscreen.New(h.deps.Session, h.deps.Generator, h.deps.Store, cfg),
		}
	}
}

func (h *HomeScreen) openDrillForm() {
	h.drillForm = true
	h.drillFocus = 0
	h.subjectIndex = 0
	h.topicInput = components.NewTextInput("e.g. Percentage, Rivers of India...", false, 60)
	h.countInput = components.NewTextInput(fmt.Sprintf("%d-%d", core.MinDrillCount, core.MaxDrillCount), true, 2)
	h.status = ""
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if h.drillForm {
		return h.updateDrillForm(msg)
	}

	// Returning from a finished exam: pick up the new statistics.
	if _, ok := msg.(tea.KeyMsg); ok {
		h.reloadStats()
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) updateDrillForm(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return h, nil
	}

	switch kmsg.String() {
	case "esc":
		h.drillForm = false
		return h, nil
	case "tab", "down":
		h.drillFocus = (h.drillFocus + 1) % 3
		return h, nil
	case "shift+tab", "up":
		h.drillFocus = (h.drillFocus + 2) % 3
		return h, nil
	case "left":
		if h.drillFocus == 0 {
			h.subjectIndex = (h.subjectIndex + len(core.Subjects) - 1) % len(core.Subjects)
			return h, nil
		}
	case "right":
		if h.drillFocus == 0 {
			h.subjectIndex = (h.subjectIndex + 1) % len(core.Subjects)
			return h, nil
		}
	case "enter":
		count, err := h.countInput.NumericValue()
		if err != nil {
			count = core.MinDrillCount
		}
		return h, h.startExam(core.ModeDrill, core.Subjects[h.subjectIndex], strings.TrimSpace(h.topicInput.Value()), count)
	}

	var cmd tea.Cmd
	switch h.drillFocus {
	case 1:
		h.topicInput, cmd = h.topicInput.Update(msg)
	case 2:
		h.countInput, cmd = h.countInput.Update(msg)
	}
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	if h.drillForm {
		return h.viewDrillForm(width, height)
	}

	var sections []string

	sections = append(sections, theme.Title.Width(width).Render("SSC GD Exam Prep"))

	accuracy := theme.Card.Render(
		theme.Subtitle.Render("OVERALL ACCURACY") + "\n" +
			theme.Title.Render(fmt.Sprintf("%.1f%%", h.userStats.OverallAccuracy)))

	strong := renderChips("STRONG TOPICS", h.userStats.StrongTopics, theme.StrongChip,
		"No strong topics yet. Keep practicing!")
	weak := renderChips("WEAK TOPICS", h.userStats.WeakTopics, theme.WeakChip,
		"No weak topics found. Good job!")

	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, accuracy, "  ", strong, "  ", weak))
	sections = append(sections, h.menu.View())

	if h.status != "" {
		sections = append(sections, theme.Incorrect.Render("  "+h.status))
	}

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) viewDrillForm(width, height int) string {
	focusMark := func(i int) string {
		if h.drillFocus == i {
			return theme.Selected.Render("▸ ")
		}
		return "  "
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render("Subject Drill"))
	b.WriteString("\n\n")
	b.WriteString(focusMark(0) + theme.Body.Render("Subject:  ◂ "+core.Subjects[h.subjectIndex]+" ▸"))
	b.WriteString("\n\n")
	b.WriteString(focusMark(1) + theme.Body.Render("Topic:    ") + h.topicInput.View())
	b.WriteString("\n\n")
	b.WriteString(focusMark(2) + theme.Body.Render("Count:    ") + h.countInput.View())
	if h.status != "" {
		b.WriteString("\n\n" + theme.Incorrect.Render(h.status))
	}

	card := theme.Card.Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

// statusFromErr turns a lowercase error into a dashboard status line.
func statusFromErr(err error) string {
	msg := err.Error()
	return strings.ToUpper(msg[:1]) + msg[1:] + "."
}

func renderChips(label string, topics []string, chip lipgloss.Style, empty string) string {
	var body string
	if len(topics) == 0 {
		body = theme.Hint.Render(empty)
	} else {
		chips := make([]string, len(topics))
		for i, t := range topics {
			chips[i] = chip.Render(t)
		}
		body = lipgloss.JoinHorizontal(lipgloss.Top, chips...)
	}
	return theme.Card.Render(theme.Subtitle.Render(label) + "\n" + body)
}
