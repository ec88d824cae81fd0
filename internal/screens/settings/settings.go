package settings

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepgd/internal/screen"
	"github.com/abhisek/prepgd/internal/store"
	"github.com/abhisek/prepgd/internal/ui/components"
	"github.com/abhisek/prepgd/internal/ui/layout"
	"github.com/abhisek/prepgd/internal/ui/theme"
)

// providers the settings screen can cycle through.
var providers = []string{"groq", "openai", "anthropic", "gemini"}

// SettingsScreen edits the persisted provider credential and model.
// Changes apply on the next exam start.
type SettingsScreen struct {
	store *store.Store

	focus         int
	providerIndex int
	keyInput      components.TextInput
	modelInput    components.TextInput
	status        string
}

var _ screen.Screen = (*SettingsScreen)(nil)
var _ screen.KeyHintProvider = (*SettingsScreen)(nil)

// New creates a SettingsScreen seeded from the stored settings.
func New(st *store.Store) *SettingsScreen {
	s := &SettingsScreen{store: st}

	current, _ := st.Settings()
	s.providerIndex = providerIndexOf(current.Provider)
	s.keyInput = components.NewTextInput("paste your API key", false, 200)
	s.modelInput = components.NewTextInput("provider default", false, 80)
	if current.APIKey != "" {
		s.keyInput.Model.SetValue(current.APIKey)
	}
	if current.Model != "" {
		s.modelInput.Model.SetValue(current.Model)
	}
	return s
}

func providerIndexOf(name string) int {
	for i, p := range providers {
		if p == name {
			return i
		}
	}
	return 0
}

func (s *SettingsScreen) Init() tea.Cmd {
	return s.keyInput.Init()
}

func (s *SettingsScreen) Title() string {
	return "Settings"
}

func (s *SettingsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "←→", Description: "Provider"},
		{Key: "Enter", Description: "Save"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SettingsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "tab", "down":
		s.focus = (s.focus + 1) % 3
		return s, nil
	case "shift+tab", "up":
		s.focus = (s.focus + 2) % 3
		return s, nil
	case "left":
		if s.focus == 0 {
			s.providerIndex = (s.providerIndex + len(providers) - 1) % len(providers)
			return s, nil
		}
	case "right":
		if s.focus == 0 {
			s.providerIndex = (s.providerIndex + 1) % len(providers)
			return s, nil
		}
	case "enter":
		return s, s.save()
	}

	var cmd tea.Cmd
	switch s.focus {
	case 1:
		s.keyInput, cmd = s.keyInput.Update(msg)
	case 2:
		s.modelInput, cmd = s.modelInput.Update(msg)
	}
	return s, cmd
}

func (s *SettingsScreen) save() tea.Cmd {
	err := s.store.SaveSettings(store.Settings{
		APIKey:   strings.TrimSpace(s.keyInput.Value()),
		Provider: providers[s.providerIndex],
		Model:    strings.TrimSpace(s.modelInput.Value()),
	})
	if err != nil {
		s.status = "Save failed: " + err.Error()
	} else {
		s.status = "Saved. Takes effect on the next exam."
	}
	return nil
}

func (s *SettingsScreen) View(width, height int) string {
	focusMark := func(i int) string {
		if s.focus == i {
			return theme.Selected.Render("▸ ")
		}
		return "  "
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render("Provider Settings"))
	b.WriteString("\n\n")
	b.WriteString(focusMark(0) + theme.Body.Render("Provider:  ◂ "+providers[s.providerIndex]+" ▸"))
	b.WriteString("\n\n")
	b.WriteString(focusMark(1) + theme.Body.Render("API key:   ") + s.keyInput.View())
	b.WriteString("\n\n")
	b.WriteString(focusMark(2) + theme.Body.Render("Model:     ") + s.modelInput.View())
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render("Environment variables (PREPGD_*) override these values."))
	if s.status != "" {
		b.WriteString("\n\n" + theme.Body.Render(s.status))
	}

	card := theme.Card.Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
