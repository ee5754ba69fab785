package play

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/mdelacru/fichas/internal/session"
	"github.com/mdelacru/fichas/internal/ui/components"
	"github.com/mdelacru/fichas/internal/ui/theme"
)

func (p *PlayScreen) View(width, height int) string {
	if p.quitConfirm {
		return renderQuitConfirm(width)
	}

	switch p.engine.Phase() {
	case session.PhaseDeciding:
		return renderMasteryReached(width, p.engine.Deck().Title)
	case session.PhasePresenting:
		return p.renderCardView(width)
	case session.PhaseFinished:
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  Wrapping up...")
	}
	return ""
}

// renderCardView renders the progress line plus the active card.
func (p *PlayScreen) renderCardView(width int) string {
	card := p.engine.Current()
	if card == nil {
		return ""
	}
	prog := p.engine.Progress()

	var b strings.Builder

	roundInfo := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Round %d", p.engine.Rounds()))

	counts := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("known %d   missed %d   mastery %.0f%%",
			prog.KnownCount, prog.UnknownCount, prog.PercentMastery))

	infoLine := roundInfo
	pad := width - lipgloss.Width(roundInfo) - lipgloss.Width(counts) - 4
	if pad > 0 {
		infoLine += strings.Repeat(" ", pad) + counts
	}
	b.WriteString(infoLine)
	b.WriteString("\n")

	var frac float64
	if prog.TotalInDeck > 0 {
		frac = float64(prog.CompletedInRound) / float64(prog.TotalInDeck)
	}
	bar := components.NewProgressBar("", frac, false, width-8)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	if p.quizMode() {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, p.choice.View()))
		if p.choice.Submitted && card.Explanation != "" {
			b.WriteString("\n")
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				theme.Hint.Width(minInt(width-8, 70)).Render(card.Explanation)))
		}
	} else {
		fc := components.NewFlashcard(card, p.engine.Revealed(), width-8)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, fc.View()))
		if p.engine.Revealed() && card.Explanation != "" {
			b.WriteString("\n")
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				theme.Hint.Width(minInt(width-8, 70)).Render(card.Explanation)))
		}
	}

	if p.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(p.errMsg))
	}

	return b.String()
}

// renderMasteryReached renders the every-card-known decision.
func renderMasteryReached(width int, title string) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Accent).
		Bold(true).
		Render("Deck mastered!"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("You already know every card in \"%s\".", title)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Success).
		Render("[Y] Reset progress and study again"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] Back to the library"))

	return b.String()
}

// renderQuitConfirm renders the leave-session dialog.
func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("Leave this session?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Answered cards are already saved."))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Success).
		Render("[Y] Yes, leave"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] No, keep studying"))

	return b.String()
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
