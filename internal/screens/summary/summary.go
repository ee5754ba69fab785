package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mdelacru/fichas/internal/router"
	"github.com/mdelacru/fichas/internal/screen"
	"github.com/mdelacru/fichas/internal/session"
	"github.com/mdelacru/fichas/internal/ui/components"
	"github.com/mdelacru/fichas/internal/ui/layout"
	"github.com/mdelacru/fichas/internal/ui/theme"
)

// SummaryScreen displays the results of a finished study session.
type SummaryScreen struct {
	summary  session.Summary
	progress session.Progress

	// replay starts a fresh session over the same deck. resetAll clears
	// mastery first. Nil hides the replay actions.
	replay func(resetAll bool) tea.Msg
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a summary screen for a finished session.
func New(sum session.Summary, prog session.Progress, replay func(resetAll bool) tea.Msg) *SummaryScreen {
	return &SummaryScreen{summary: sum, progress: prog, replay: replay}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Complete"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Back to library"},
	}
	if s.replay != nil {
		hints = append(hints,
			layout.KeyHint{Key: "A", Description: "Study again"},
			layout.KeyHint{Key: "R", Description: "Restart from scratch"},
		)
	}
	return hints
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc", " ", "space":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "a", "A":
			if s.replay != nil {
				return s, func() tea.Msg { return s.replay(false) }
			}
		case "r", "R":
			if s.replay != nil {
				return s, func() tea.Msg { return s.replay(true) }
			}
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary

	var b strings.Builder
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Session complete!"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(sum.DeckTitle))
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	statsLine := fmt.Sprintf("Cards: %d        Rounds: %d        Time: %d:%02d",
		sum.Total, sum.Rounds, mins, secs)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(statsLine))
	b.WriteString("\n\n")

	bar := components.NewProgressBar("Mastery", s.progress.PercentMastery/100, true, minInt(width-8, 50))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	if sum.Rounds > 1 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Italic(true).
			Render(fmt.Sprintf("It took %d rounds to clear every card. They will stick.", sum.Rounds)))
	} else {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Success).
			Render("Perfect round. Every card on the first pass."))
	}

	return b.String()
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
