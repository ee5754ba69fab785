package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mdelacru/fichas/internal/deck"
	"github.com/mdelacru/fichas/internal/ui/theme"
)

// MultiChoice is a multiple-choice selector over a card's options. After
// submission it locks and colors the correct and chosen answers.
type MultiChoice struct {
	Question    string
	Options     []deck.Option
	Selected    int
	Submitted   bool
	ChosenIndex int
}

// NewMultiChoice creates a selector for the given question and options.
func NewMultiChoice(question string, options []deck.Option) MultiChoice {
	return MultiChoice{
		Question:    question,
		Options:     options,
		Selected:    0,
		ChosenIndex: -1,
	}
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and selection.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		m.Submitted = true
		m.ChosenIndex = m.Selected
	}

	return m, nil
}

// Choose submits the option at index directly, for number-key shortcuts.
func (m MultiChoice) Choose(index int) MultiChoice {
	if m.Submitted || index < 0 || index >= len(m.Options) {
		return m
	}
	m.Selected = index
	m.Submitted = true
	m.ChosenIndex = index
	return m
}

// View renders the selector.
func (m MultiChoice) View() string {
	questionStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	s := questionStyle.Render(m.Question) + "\n\n"

	correct := -1
	for i, o := range m.Options {
		if o.IsCorrect {
			correct = i
			break
		}
	}

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !m.Submitted {
			prefix = "▸ "
		}

		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt.Text)

		if m.Submitted {
			switch {
			case i == correct:
				s += theme.Correct.Render(line) + "\n"
			case i == m.ChosenIndex:
				s += theme.Incorrect.Render(line) + "\n"
			default:
				s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
			}
		} else {
			if i == m.Selected {
				s += theme.Selected.Render(line) + "\n"
			} else {
				s += theme.Unselected.Render(line) + "\n"
			}
		}
	}

	return s
}

// IsCorrect returns true if the user chose the correct option.
func (m MultiChoice) IsCorrect() bool {
	if !m.Submitted {
		return false
	}
	return m.ChosenIndex >= 0 &&
		m.ChosenIndex < len(m.Options) &&
		m.Options[m.ChosenIndex].IsCorrect
}
