package platform

import (
	"image"

	"github.com/postpad/postpad/internal/model"
)

// Screen captures the display contents.
type Screen interface {
	// Capture grabs the primary display exactly once and returns it.
	Capture() (image.Image, error)
}

// Inputter simulates mouse and keyboard input.
type Inputter interface {
	Click(x, y int) error
	DoubleClick(x, y int) error

	// KeyTap presses a single key with optional modifiers, e.g.
	// KeyTap("a", "ctrl") or KeyTap("n").
	KeyTap(key string, mods ...string) error
}

// WindowQuery enumerates and manipulates OS windows.
//
// The matching rule applied on top of ListWindows lives in
// internal/winstate so it can be tested without a real window manager.
type WindowQuery interface {
	// ListWindows returns every window whose title contains the given
	// term (case-insensitive). An empty slice is not an error.
	ListWindows(titleTerm string) ([]model.Window, error)

	// Activate brings the window to the foreground.
	Activate(w model.Window) error

	// Close requests the window to close. Implementations may use the
	// platform close sequence (e.g. alt+f4 on the activated window).
	Close(w model.Window) error
}

// Clipboard reads and writes the system clipboard.
type Clipboard interface {
	GetText() (string, error)
	SetText(text string) error
}
