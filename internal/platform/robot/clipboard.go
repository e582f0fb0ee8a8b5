package robot

import (
	"fmt"

	"github.com/go-vgo/robotgo"
)

// Clipboard implements platform.Clipboard using robotgo's clipboard access.
type Clipboard struct{}

// NewClipboard returns a new Clipboard instance.
func NewClipboard() *Clipboard {
	return &Clipboard{}
}

// GetText reads the current text content from the system clipboard.
func (c *Clipboard) GetText() (string, error) {
	text, err := robotgo.ReadAll()
	if err != nil {
		return "", fmt.Errorf("clipboard read: %w", err)
	}
	return text, nil
}

// SetText writes text to the system clipboard.
func (c *Clipboard) SetText(text string) error {
	if err := robotgo.WriteAll(text); err != nil {
		return fmt.Errorf("clipboard write: %w", err)
	}
	return nil
}
