package app

import (
	"fmt"
	"log/slog"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	core "github.com/abhisek/prepgd/internal/exam"
	"github.com/abhisek/prepgd/internal/questiongen"
	"github.com/abhisek/prepgd/internal/router"
	"github.com/abhisek/prepgd/internal/screen"
	"github.com/abhisek/prepgd/internal/screens/home"
	"github.com/abhisek/prepgd/internal/stats"
	"github.com/abhisek/prepgd/internal/store"
	"github.com/abhisek/prepgd/internal/ui/layout"
)

// Options carries the wired dependencies into the TUI.
type Options struct {
	Store      *store.Store
	Aggregator *stats.Aggregator
	Generator  questiongen.Generator
	Version    string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router     *router.Router
	session    *core.Session
	aggregator *stats.Aggregator
	width      int
	height     int
}

// newAppModel wires the session, restores any interrupted attempt and
// builds the home screen.
func newAppModel(opts Options) AppModel {
	session := core.NewSession(opts.Store, opts.Aggregator)
	restoreSession(session, opts.Store)

	homeScreen := home.New(home.Deps{
		Session:    session,
		Generator:  opts.Generator,
		Aggregator: opts.Aggregator,
		Store:      opts.Store,
	})

	return AppModel{
		router:     router.New(homeScreen),
		session:    session,
		aggregator: opts.Aggregator,
	}
}

// restoreSession rebuilds an interrupted attempt from the snapshot and
// question cache. A finished snapshot is discarded; its score is
// already folded into the statistics.
func restoreSession(session *core.Session, st *store.Store) {
	snap, ok, err := st.SessionSnapshot()
	if err != nil || !ok {
		return
	}
	if snap.ExamStatus != core.StatusActive {
		return
	}
	qs, err := st.QuestionCache()
	if err != nil || len(qs) == 0 {
		return
	}
	session.Restore(snap, qs)
	slog.Info("restored interrupted exam attempt", "questions", len(qs))
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			// Screens guarding a live attempt handle Esc themselves.
			if guard, ok := m.router.Active().(screen.EscGuard); ok && guard.BlocksEsc() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.headerRight(), m.width)

	var footerHints []layout.KeyHint
	if provider, ok := active.(screen.KeyHintProvider); ok {
		footerHints = provider.KeyHints()
	}
	if footerHints == nil {
		if m.router.Depth() > 1 {
			footerHints = []layout.KeyHint{
				{Key: "Esc", Description: "Back"},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		} else {
			footerHints = []layout.KeyHint{
				{Key: "↑↓", Description: "Navigate"},
				{Key: "Enter", Description: "Select"},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// headerRight shows the countdown during an attempt, lifetime accuracy
// otherwise.
func (m AppModel) headerRight() string {
	if m.session.Status() == core.StatusActive {
		return "⏱ " + layout.FormatClock(m.session.Timer())
	}
	if us, err := m.aggregator.Current(); err == nil {
		return fmt.Sprintf("Acc %.1f%%", us.OverallAccuracy)
	}
	return ""
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
