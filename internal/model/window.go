package model

// Window represents an application window as reported by the OS backend.
// Bounds is [left, top, width, height] in screen pixels.
type Window struct {
	App     string `yaml:"app,omitempty"     json:"app,omitempty"`
	PID     int    `yaml:"pid"               json:"pid"`
	Title   string `yaml:"title"             json:"title"`
	Bounds  [4]int `yaml:"bounds"            json:"bounds"`
	Visible bool   `yaml:"visible"           json:"visible"`
}

// Center returns the geometric center of the window in screen coordinates.
func (w Window) Center() (int, int) {
	return w.Bounds[0] + w.Bounds[2]/2, w.Bounds[1] + w.Bounds[3]/2
}
