package session

import (
	"errors"

	"github.com/charmbracelet/lipgloss"
)

// ErrNoFile is returned when the host has no file associated with the
// primary view.
var ErrNoFile = errors.New("no file associated with the current view")

// View is a handle to one scrollable pane owned by the host. A handle may go
// stale at any time when the user closes the pane underneath it.
type View interface {
	// Topline returns the 0-based line currently shown at the top.
	Topline() int
	// SetTopline scrolls the view so line n is shown at the top.
	SetTopline(n int)
	// Live reports whether the pane behind the handle still exists.
	Live() bool
}

// Subscription is a cancellable registration for scroll notifications.
// Cancel is idempotent.
type Subscription interface {
	Cancel()
}

// Host is the narrow capability surface the sidebar needs from its editor or
// runtime environment. The core never talks to a concrete host directly.
type Host interface {
	// CurrentFilePath returns the path of the file shown in the primary
	// view, or "" when the view has no backing file.
	CurrentFilePath() (string, error)

	// RunBlame invokes the version-control tool on path and returns the raw
	// report lines. Blocking. On a non-zero exit the returned error carries
	// the tool's own output verbatim.
	RunBlame(path string) ([]string, error)

	// OpenPane creates a fixed-width, read-only secondary pane holding the
	// given display lines and returns its handle.
	OpenPane(width int, lines []string) (View, error)

	// HighlightLines applies an RGB background color to the half-open line
	// range [start, end) of a pane.
	HighlightLines(pane View, start, end int, color lipgloss.Color)

	// ClosePane destroys a pane. Closing an already-dead handle is a no-op.
	ClosePane(pane View)

	// SubscribeScroll registers fn to run after every scroll of view.
	// Scrolls of any other view must not invoke fn.
	SubscribeScroll(view View, fn func()) Subscription
}
