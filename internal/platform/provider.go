package platform

import (
	"fmt"
	"runtime"
)

// Provider bundles all platform backends for the current OS.
//
// A run of postpad assumes exclusive ownership of the input devices and
// the display: any concurrent actor moving the mouse, typing, or changing
// window focus invalidates every guarantee the controllers make.
type Provider struct {
	Screen      Screen
	Inputter    Inputter
	WindowQuery WindowQuery
	Clipboard   Clipboard
}

// ErrUnsupported is returned when no backend registered for this OS.
var ErrUnsupported = fmt.Errorf("postpad has no input backend on %s/%s", runtime.GOOS, runtime.GOARCH)

// NewProviderFunc is set by backend packages via init().
// See internal/platform/robot for the default robotgo registration.
var NewProviderFunc func() (*Provider, error)

// NewProvider returns a Provider for the current OS.
func NewProvider() (*Provider, error) {
	if NewProviderFunc == nil {
		return nil, ErrUnsupported
	}
	return NewProviderFunc()
}
