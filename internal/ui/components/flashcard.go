package components

import (
	"charm.land/lipgloss/v2"

	"github.com/mdelacru/fichas/internal/deck"
	"github.com/mdelacru/fichas/internal/ui/theme"
)

// Flashcard renders a single card as a bordered box showing either the term
// or, when flipped, the definition.
type Flashcard struct {
	Card     *deck.Card
	Flipped  bool
	MaxWidth int
}

// NewFlashcard creates a flashcard display for the given card.
func NewFlashcard(c *deck.Card, flipped bool, maxWidth int) Flashcard {
	return Flashcard{Card: c, Flipped: flipped, MaxWidth: maxWidth}
}

// View renders the card box.
func (f Flashcard) View() string {
	if f.Card == nil {
		return ""
	}

	boxWidth := f.MaxWidth
	if boxWidth > 60 {
		boxWidth = 60
	}
	if boxWidth < 20 {
		boxWidth = 20
	}

	var face, label string
	var borderColor = theme.Border
	if f.Flipped {
		face = f.Card.Definition
		label = "definition"
		borderColor = theme.Secondary
	} else {
		face = f.Card.Term
		label = "term"
	}

	body := lipgloss.NewStyle().
		Width(boxWidth-6).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(!f.Flipped).
		Render(face)

	tag := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Italic(true).
		Render(label)

	return lipgloss.NewStyle().
		Width(boxWidth).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(1, 2).
		Render(tag + "\n\n" + body)
}
