package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mdelacru/fichas/internal/history"
	"github.com/mdelacru/fichas/internal/router"
	"github.com/mdelacru/fichas/internal/screen"
	"github.com/mdelacru/fichas/internal/ui/layout"
	"github.com/mdelacru/fichas/internal/ui/theme"
)

type loadedMsg struct {
	Records []history.Record
	Err     error
}

// HistoryScreen lists past completed study sessions.
type HistoryScreen struct {
	store   *history.Store
	records []history.Record
	loaded  bool
	errMsg  string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(store *history.Store) *HistoryScreen {
	return &HistoryScreen{store: store}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		records, err := s.store.Recent(context.Background(), 50)
		return loadedMsg{Records: records, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.records = msg.Records
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.records) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No finished sessions yet. Go study!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for _, r := range s.records {
		dateStr := r.FinishedAt.Format("Jan 02, 2006")
		mins := int(r.Duration.Minutes())
		secs := int(r.Duration.Seconds()) % 60

		roundsStr := "1 round"
		if r.Rounds != 1 {
			roundsStr = fmt.Sprintf("%d rounds", r.Rounds)
		}

		line := fmt.Sprintf("  %s  %-28s %3d cards  %s  %d:%02d",
			dateStr, truncate(r.DeckTitle, 28), r.Total, roundsStr, mins, secs)

		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Text).Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}

func truncate(s string, max int) string {
	if max < 4 || len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
