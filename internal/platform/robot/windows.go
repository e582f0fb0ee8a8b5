package robot

import (
	"fmt"
	"strings"

	"github.com/go-vgo/robotgo"

	"github.com/postpad/postpad/internal/model"
)

// WindowQuery implements platform.WindowQuery by walking the process list
// and reading each process's top-level window title.
type WindowQuery struct{}

// NewWindowQuery returns a new WindowQuery instance.
func NewWindowQuery() *WindowQuery {
	return &WindowQuery{}
}

// ListWindows returns one window per process whose title contains term
// (case-insensitive).
func (q *WindowQuery) ListWindows(term string) ([]model.Window, error) {
	procs, err := robotgo.Process()
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}

	termLower := strings.ToLower(term)
	var windows []model.Window
	for _, p := range procs {
		title := robotgo.GetTitle(p.Pid)
		if title == "" {
			continue
		}
		if term != "" && !strings.Contains(strings.ToLower(title), termLower) {
			continue
		}
		x, y, w, h := robotgo.GetBounds(p.Pid)
		windows = append(windows, model.Window{
			App:     p.Name,
			PID:     p.Pid,
			Title:   title,
			Bounds:  [4]int{x, y, w, h},
			Visible: w > 0 && h > 0,
		})
	}
	return windows, nil
}

// Activate brings the window's process to the foreground.
func (q *WindowQuery) Activate(w model.Window) error {
	if err := robotgo.ActivePid(w.PID); err != nil {
		return fmt.Errorf("activate pid %d: %w", w.PID, err)
	}
	return nil
}

// Close activates the window and sends the platform close chord.
func (q *WindowQuery) Close(w model.Window) error {
	if err := q.Activate(w); err != nil {
		return err
	}
	robotgo.MilliSleep(100)
	if err := robotgo.KeyTap("f4", "alt"); err != nil {
		return fmt.Errorf("close window %q: %w", w.Title, err)
	}
	return nil
}
