package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/stinglish/stinglish/internal/ui/layout"
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

// Closer is an optional interface for screens that hold resources, such
// as an in-flight request context. The router calls Close when the screen
// leaves the stack.
type Closer interface {
	Close()
}

// InputCapturer is an optional interface for screens with a focused text
// field. While it reports true, the app does not treat printable keys as
// global shortcuts.
type InputCapturer interface {
	CapturesInput() bool
}
