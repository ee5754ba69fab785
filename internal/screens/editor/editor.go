package editor

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mdelacru/fichas/internal/deck"
	"github.com/mdelacru/fichas/internal/router"
	"github.com/mdelacru/fichas/internal/screen"
	"github.com/mdelacru/fichas/internal/store"
	"github.com/mdelacru/fichas/internal/ui/components"
	"github.com/mdelacru/fichas/internal/ui/layout"
	"github.com/mdelacru/fichas/internal/ui/theme"
)

// field identifies which input has focus.
type field int

const (
	fieldTitle field = iota
	fieldCards
)

// EditorScreen authors a new deck, or re-authors an existing one: a title, a
// deck type, and one card per line in "term, definition" form.
type EditorScreen struct {
	backend store.Backend
	col     *deck.Collection
	editing *deck.Deck

	titleInput components.TextInput
	cardInput  components.TextInput
	focus      field
	deckType   deck.Type
	lines      []string
	errMsg     string
}

var _ screen.Screen = (*EditorScreen)(nil)
var _ screen.KeyHintProvider = (*EditorScreen)(nil)

// New creates the deck editor screen.
func New(backend store.Backend, col *deck.Collection) *EditorScreen {
	return &EditorScreen{
		backend:    backend,
		col:        col,
		titleInput: components.NewTextInput("Deck title...", 60),
		cardInput:  components.NewTextInput("term, definition", 200),
		focus:      fieldTitle,
		deckType:   deck.TypeFlashcard,
	}
}

// NewEdit creates the editor prefilled from an existing deck. Saving replaces
// the deck's cards wholesale and wipes its mastery state, since the
// regenerated card ids make the old known/unknown sets meaningless.
func NewEdit(backend store.Backend, col *deck.Collection, d *deck.Deck) *EditorScreen {
	e := New(backend, col)
	e.editing = d
	e.deckType = d.Type
	e.titleInput.SetValue(d.Title)
	for _, c := range d.Cards {
		e.lines = append(e.lines, c.Term+", "+c.Definition)
	}
	return e
}

func (e *EditorScreen) Init() tea.Cmd {
	e.cardInput.Blur()
	return e.titleInput.Init()
}

func (e *EditorScreen) Title() string {
	if e.editing != nil {
		return "Edit Deck"
	}
	return "New Deck"
}

func (e *EditorScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Add line"},
		{Key: "Tab", Description: "Switch field"},
		{Key: "Ctrl+T", Description: "Toggle type"},
		{Key: "Ctrl+S", Description: "Save deck"},
		{Key: "Esc", Description: "Cancel"},
	}
}

func (e *EditorScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return e.forward(msg)
	}

	switch kmsg.String() {
	case "esc":
		return e, func() tea.Msg { return router.PopScreenMsg{} }

	case "tab":
		if e.focus == fieldTitle {
			e.focus = fieldCards
			e.titleInput.Blur()
			return e, e.cardInput.Focus()
		}
		e.focus = fieldTitle
		e.cardInput.Blur()
		return e, e.titleInput.Focus()

	case "ctrl+t":
		if e.deckType == deck.TypeFlashcard {
			e.deckType = deck.TypeTest
		} else {
			e.deckType = deck.TypeFlashcard
		}
		return e, nil

	case "ctrl+s":
		return e.save()

	case "backspace":
		// With an empty input, backspace takes back the last added line.
		if e.focus == fieldCards && strings.TrimSpace(e.cardInput.Value()) == "" && len(e.lines) > 0 {
			e.lines = e.lines[:len(e.lines)-1]
			return e, nil
		}
		return e.forward(msg)

	case "enter":
		if e.focus == fieldTitle {
			e.focus = fieldCards
			e.titleInput.Blur()
			return e, e.cardInput.Focus()
		}
		line := strings.TrimSpace(e.cardInput.Value())
		if line != "" {
			e.lines = append(e.lines, line)
			e.cardInput.Reset()
		}
		return e, nil
	}

	return e.forward(msg)
}

func (e *EditorScreen) forward(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	if e.focus == fieldTitle {
		e.titleInput, cmd = e.titleInput.Update(msg)
	} else {
		e.cardInput, cmd = e.cardInput.Update(msg)
	}
	return e, cmd
}

// save parses the buffered lines into cards and persists the new deck.
func (e *EditorScreen) save() (screen.Screen, tea.Cmd) {
	title := strings.TrimSpace(e.titleInput.Value())
	if title == "" {
		e.errMsg = "the deck needs a title"
		return e, nil
	}

	// A half-typed line still counts.
	lines := e.lines
	if tail := strings.TrimSpace(e.cardInput.Value()); tail != "" {
		lines = append(lines, tail)
	}

	cards, err := deck.ParseCards(strings.Join(lines, "\n"))
	if err != nil {
		e.errMsg = "no valid cards: every line needs \"term, definition\""
		return e, nil
	}

	if e.editing != nil {
		e.editing.Title = title
		e.editing.Type = e.deckType
		e.editing.Replace(cards)
	} else {
		e.col.AddDeck(deck.New(title, e.deckType, cards))
	}
	if err := e.backend.Save(context.Background(), e.col); err != nil {
		e.errMsg = "save failed: " + err.Error()
		return e, nil
	}

	return e, func() tea.Msg { return router.PopScreenMsg{} }
}

func (e *EditorScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")

	label := func(text string, active bool) string {
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		if active {
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}
		return style.Render(text)
	}

	b.WriteString("  " + label("Title", e.focus == fieldTitle) + "\n")
	b.WriteString("  " + e.titleInput.View() + "\n\n")

	typeLabel := "flashcards (flip to reveal)"
	if e.deckType == deck.TypeTest {
		typeLabel = "quiz (multiple choice)"
	}
	b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.TextDim).Render("Type: ") +
		lipgloss.NewStyle().Foreground(theme.Accent).Render(typeLabel) + "\n\n")

	b.WriteString("  " + label(fmt.Sprintf("Cards (%d)", len(e.lines)), e.focus == fieldCards) + "\n")
	b.WriteString("  " + e.cardInput.View() + "\n\n")

	// Show the last few added lines so the author sees what landed.
	start := 0
	if len(e.lines) > 8 {
		start = len(e.lines) - 8
	}
	for _, line := range e.lines[start:] {
		b.WriteString("    " + lipgloss.NewStyle().Foreground(theme.Text).Render(truncate(line, width-8)) + "\n")
	}
	if start > 0 {
		b.WriteString("    " + theme.Hint.Render(fmt.Sprintf("...and %d more", start)) + "\n")
	}

	if e.errMsg != "" {
		b.WriteString("\n  " + lipgloss.NewStyle().Foreground(theme.Error).Render(e.errMsg) + "\n")
	}

	return b.String()
}

func truncate(s string, max int) string {
	r := []rune(s)
	if max < 4 || len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
