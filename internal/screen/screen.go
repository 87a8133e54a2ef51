package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/pmoquiz/internal/flow"
	"github.com/abhisek/pmoquiz/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// SyncMsg asks the app to show the screen for the controller's current
// state. Screens send it after a transition they performed themselves.
type SyncMsg struct{}

// FinishedMsg reports that the quiz was finished. The app switches to the
// results screen and runs Request.
type FinishedMsg struct {
	Request flow.Request
}
