package generate

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mdelacru/fichas/internal/deck"
	"github.com/mdelacru/fichas/internal/deckgen"
	"github.com/mdelacru/fichas/internal/router"
	"github.com/mdelacru/fichas/internal/screen"
	"github.com/mdelacru/fichas/internal/store"
	"github.com/mdelacru/fichas/internal/ui/components"
	"github.com/mdelacru/fichas/internal/ui/layout"
	"github.com/mdelacru/fichas/internal/ui/theme"
)

// generatedMsg carries the result of an async deck generation.
type generatedMsg struct {
	Deck *deck.Deck
	Err  error
}

// GenerateScreen prompts for a topic and builds a deck with the LLM.
type GenerateScreen struct {
	generator *deckgen.Generator
	backend   store.Backend
	col       *deck.Collection

	input   components.TextInput
	working bool
	errMsg  string
}

var _ screen.Screen = (*GenerateScreen)(nil)
var _ screen.KeyHintProvider = (*GenerateScreen)(nil)

// New creates the AI generation screen.
func New(generator *deckgen.Generator, backend store.Backend, col *deck.Collection) *GenerateScreen {
	return &GenerateScreen{
		generator: generator,
		backend:   backend,
		col:       col,
		input:     components.NewTextInput("e.g. the French Revolution, cell biology, Go concurrency...", 120),
	}
}

func (g *GenerateScreen) Init() tea.Cmd {
	return g.input.Init()
}

func (g *GenerateScreen) Title() string {
	return "Generate Deck"
}

func (g *GenerateScreen) KeyHints() []layout.KeyHint {
	if g.working {
		return []layout.KeyHint{{Key: "...", Description: "Generating"}}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Generate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (g *GenerateScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case generatedMsg:
		g.working = false
		if msg.Err != nil {
			g.errMsg = msg.Err.Error()
			return g, nil
		}
		g.col.AddDeck(msg.Deck)
		if err := g.backend.Save(context.Background(), g.col); err != nil {
			g.errMsg = "save failed: " + err.Error()
			return g, nil
		}
		return g, func() tea.Msg { return router.PopScreenMsg{} }

	case tea.KeyMsg:
		if g.working {
			return g, nil
		}
		switch msg.String() {
		case "esc":
			return g, func() tea.Msg { return router.PopScreenMsg{} }
		case "enter":
			topic := strings.TrimSpace(g.input.Value())
			if topic == "" {
				return g, nil
			}
			g.working = true
			g.errMsg = ""
			gen := g.generator
			return g, func() tea.Msg {
				d, err := gen.Generate(context.Background(), deckgen.Input{Topic: topic})
				return generatedMsg{Deck: d, Err: err}
			}
		}
	}

	var cmd tea.Cmd
	g.input, cmd = g.input.Update(msg)
	return g, cmd
}

func (g *GenerateScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("What do you want to study?"))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, g.input.View()))
	b.WriteString("\n\n")

	if g.working {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Italic(true).
			Render("Writing your cards..."))
	}

	if g.errMsg != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(fmt.Sprintf("Generation failed: %s", g.errMsg)))
	}

	return b.String()
}
