package robot

import "github.com/postpad/postpad/internal/platform"

func init() {
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		return &platform.Provider{
			Screen:      NewScreen(),
			Inputter:    NewInputter(),
			WindowQuery: NewWindowQuery(),
			Clipboard:   NewClipboard(),
		}, nil
	}
}
