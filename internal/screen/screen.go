package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/knowduel/internal/ui/layout"
)

// Screen is one page of the duel UI, hosted by the router stack.
type Screen interface {
	// Init returns the command to run when the screen becomes active.
	Init() tea.Cmd

	// Update handles a message and returns the updated screen.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the content area between header and footer.
	View(width, height int) string

	// Title names the screen in the header.
	Title() string
}

// KeyHintProvider is implemented by screens with their own footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider is implemented by screens that show a status line, such
// as the running score, on the right of the header.
type StatusProvider interface {
	Status() string
}
