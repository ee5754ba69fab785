// Package screen holds the contract every screen in the app satisfies. The
// router owns a stack of these and the app shell wraps the active one in the
// shared header and footer chrome.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/mdelacru/fichas/internal/ui/layout"
)

// Screen is one full-window view: the library, a running session, the editor.
type Screen interface {
	// Init returns the command to run when the screen becomes active.
	Init() tea.Cmd

	// Update reacts to a message and returns the screen to keep showing.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the body; the header and footer are drawn around it.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider lets a screen put its own key hints in the footer. Screens
// without it get the default hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}
