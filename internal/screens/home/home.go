package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mdelacru/fichas/internal/deck"
	"github.com/mdelacru/fichas/internal/deckgen"
	"github.com/mdelacru/fichas/internal/history"
	"github.com/mdelacru/fichas/internal/mastery"
	"github.com/mdelacru/fichas/internal/router"
	"github.com/mdelacru/fichas/internal/screen"
	"github.com/mdelacru/fichas/internal/screens/editor"
	"github.com/mdelacru/fichas/internal/screens/generate"
	historyscreen "github.com/mdelacru/fichas/internal/screens/history"
	"github.com/mdelacru/fichas/internal/screens/play"
	"github.com/mdelacru/fichas/internal/session"
	"github.com/mdelacru/fichas/internal/store"
	"github.com/mdelacru/fichas/internal/ui/layout"
	"github.com/mdelacru/fichas/internal/ui/theme"
)

// HomeScreen is the deck library: the list of decks with their mastery,
// and the entry point into every flow.
type HomeScreen struct {
	backend   store.Backend
	col       *deck.Collection
	tracker   *mastery.Tracker
	history   *history.Store
	generator *deckgen.Generator

	selected   int
	confirming bool // delete confirmation for the selected deck
	errMsg     string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates the deck library screen.
func New(backend store.Backend, col *deck.Collection, tracker *mastery.Tracker, hist *history.Store, generator *deckgen.Generator) *HomeScreen {
	return &HomeScreen{
		backend:   backend,
		col:       col,
		tracker:   tracker,
		history:   hist,
		generator: generator,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Library"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	if h.confirming {
		return []layout.KeyHint{
			{Key: "Y", Description: "Delete deck"},
			{Key: "N", Description: "Keep it"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Study"},
		{Key: "N", Description: "New deck"},
		{Key: "E", Description: "Edit"},
	}
	if h.generator != nil {
		hints = append(hints, layout.KeyHint{Key: "G", Description: "Generate"})
	}
	hints = append(hints,
		layout.KeyHint{Key: "H", Description: "History"},
		layout.KeyHint{Key: "D", Description: "Delete"},
		layout.KeyHint{Key: "Q", Description: "Quit"},
	)
	return hints
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return h, nil
	}
	h.clampSelection()

	if h.confirming {
		switch kmsg.String() {
		case "y", "Y":
			h.confirming = false
			return h, h.deleteSelected()
		case "n", "N", "esc":
			h.confirming = false
		}
		return h, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if h.selected > 0 {
			h.selected--
		}
	case "down", "j":
		if h.selected < len(h.col.Decks)-1 {
			h.selected++
		}
	case "enter":
		if d := h.selectedDeck(); d != nil {
			return h, func() tea.Msg {
				return router.PushScreenMsg{
					Screen: play.New(d, h.tracker, h.history),
				}
			}
		}
	case "n", "N":
		return h, func() tea.Msg {
			return router.PushScreenMsg{
				Screen: editor.New(h.backend, h.col),
			}
		}
	case "e", "E":
		if d := h.selectedDeck(); d != nil {
			return h, func() tea.Msg {
				return router.PushScreenMsg{
					Screen: editor.NewEdit(h.backend, h.col, d),
				}
			}
		}
	case "g", "G":
		if h.generator != nil {
			return h, func() tea.Msg {
				return router.PushScreenMsg{
					Screen: generate.New(h.generator, h.backend, h.col),
				}
			}
		}
	case "h", "H":
		if h.history != nil {
			return h, func() tea.Msg {
				return router.PushScreenMsg{
					Screen: historyscreen.New(h.history),
				}
			}
		}
	case "d", "D":
		if h.selectedDeck() != nil {
			h.confirming = true
		}
	case "q", "Q":
		return h, tea.Quit
	}

	return h, nil
}

func (h *HomeScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render("Fichas"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render("study your decks until every card sticks"))
	b.WriteString("\n\n")

	if len(h.col.Decks) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Italic(true).
			Render("No decks yet. Press N to create one."))
		return b.String()
	}

	h.clampSelection()
	for i, d := range h.col.Decks {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, h.renderDeckRow(d, i == h.selected)))
		b.WriteString("\n")
	}

	if h.confirming {
		if d := h.selectedDeck(); d != nil {
			b.WriteString("\n")
			b.WriteString(lipgloss.NewStyle().
				Width(width).
				Align(lipgloss.Center).
				Foreground(theme.Error).
				Bold(true).
				Render(fmt.Sprintf("Delete \"%s\"? [Y/N]", d.Title)))
		}
	}
	if h.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(h.errMsg))
	}

	return b.String()
}

// renderDeckRow formats one library line: marker, title, type tag, card count
// and mastery percentage.
func (h *HomeScreen) renderDeckRow(d *deck.Deck, active bool) string {
	marker := "  "
	if active {
		marker = "▸ "
	}

	typeTag := "cards"
	if d.Type == deck.TypeTest {
		typeTag = "quiz"
	}

	pct := session.DeckMastery(len(d.Stats.KnownIDs), len(d.Cards))
	subject := h.subjectName(d)

	line := fmt.Sprintf("%s%-28s %-6s %3d cards  %3.0f%%", marker, truncate(d.Title, 28), typeTag, len(d.Cards), pct)
	if subject != "" {
		line += "  " + subject
	}

	style := theme.Unselected
	if active {
		style = theme.Selected
	}
	return style.Render(line)
}

func (h *HomeScreen) subjectName(d *deck.Deck) string {
	if d.SubjectID == nil {
		return ""
	}
	for _, s := range h.col.Subjects {
		if s.ID == *d.SubjectID {
			return s.Name
		}
	}
	return ""
}

func (h *HomeScreen) selectedDeck() *deck.Deck {
	h.clampSelection()
	if h.selected < 0 || h.selected >= len(h.col.Decks) {
		return nil
	}
	return h.col.Decks[h.selected]
}

// clampSelection keeps the cursor valid after decks are added or removed by
// other screens sharing the collection.
func (h *HomeScreen) clampSelection() {
	if h.selected >= len(h.col.Decks) {
		h.selected = len(h.col.Decks) - 1
	}
	if h.selected < 0 {
		h.selected = 0
	}
}

func (h *HomeScreen) deleteSelected() tea.Cmd {
	d := h.selectedDeck()
	if d == nil {
		return nil
	}
	if err := h.col.RemoveDeck(d.ID); err != nil {
		h.errMsg = err.Error()
		return nil
	}
	h.clampSelection()
	if err := h.backend.Save(context.Background(), h.col); err != nil {
		h.errMsg = "save failed: " + err.Error()
	} else {
		h.errMsg = ""
	}
	return nil
}

// truncate shortens to max runes, not bytes, so accented titles never get a
// character cut in half.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
