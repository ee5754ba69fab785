package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mdelacru/fichas/internal/deck"
	"github.com/mdelacru/fichas/internal/deckgen"
	"github.com/mdelacru/fichas/internal/history"
	"github.com/mdelacru/fichas/internal/mastery"
	"github.com/mdelacru/fichas/internal/router"
	"github.com/mdelacru/fichas/internal/screen"
	"github.com/mdelacru/fichas/internal/screens/home"
	"github.com/mdelacru/fichas/internal/store"
	"github.com/mdelacru/fichas/internal/ui/layout"
)

// Options carries the wired dependencies for a TUI run.
type Options struct {
	Backend    store.Backend
	Collection *deck.Collection
	Tracker    *mastery.Tracker
	History    *history.Store

	// Generator is nil when no LLM provider is configured; AI features are
	// hidden in that case.
	Generator *deckgen.Generator

	// Synced reports whether the remote backend accepted the last write.
	// Nil means local-only persistence.
	Synced func() bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	synced func() bool
	width  int
	height int
}

// newAppModel creates a new AppModel with the deck library screen.
func newAppModel(opts Options) AppModel {
	homeScreen := home.New(opts.Backend, opts.Collection, opts.Tracker, opts.History, opts.Generator)
	return AppModel{
		router: router.New(homeScreen),
		synced: opts.Synced,
	}
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

	status := "local"
	if m.synced != nil && m.synced() {
		status = "synced"
	}

	header := layout.RenderHeader(title, status, m.width)

	footerHints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		if hints := hp.KeyHints(); len(hints) > 0 {
			footerHints = hints
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
