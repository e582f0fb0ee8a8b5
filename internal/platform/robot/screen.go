package robot

import (
	"fmt"
	"image"

	"github.com/go-vgo/robotgo"
)

// Screen implements platform.Screen using robotgo's display capture.
type Screen struct{}

// NewScreen returns a new Screen instance.
func NewScreen() *Screen {
	return &Screen{}
}

// Capture grabs the primary display.
func (s *Screen) Capture() (image.Image, error) {
	img := robotgo.CaptureImg()
	if img == nil {
		return nil, fmt.Errorf("screen capture failed")
	}
	return img, nil
}
