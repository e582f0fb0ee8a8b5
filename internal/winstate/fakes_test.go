package winstate

import (
	"fmt"
	"image"
	"strings"
	"sync"
	"time"

	"github.com/postpad/postpad/internal/config"
	"github.com/postpad/postpad/internal/model"
)

// fakeQuery is an in-memory window manager. Behavior hooks let tests
// simulate windows appearing and disappearing in response to input.
type fakeQuery struct {
	mu      sync.Mutex
	windows []model.Window
	listErr error

	onClose    func(w model.Window)
	activated  []string
	closeCalls []string
}

func (q *fakeQuery) ListWindows(term string) ([]model.Window, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.listErr != nil {
		return nil, q.listErr
	}
	var out []model.Window
	for _, w := range q.windows {
		if term == "" || strings.Contains(strings.ToLower(w.Title), strings.ToLower(term)) {
			out = append(out, w)
		}
	}
	return out, nil
}

func (q *fakeQuery) Activate(w model.Window) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.activated = append(q.activated, w.Title)
	return nil
}

func (q *fakeQuery) Close(w model.Window) error {
	q.mu.Lock()
	q.closeCalls = append(q.closeCalls, w.Title)
	hook := q.onClose
	q.mu.Unlock()
	if hook != nil {
		hook(w)
	}
	return nil
}

func (q *fakeQuery) setWindows(windows ...model.Window) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.windows = windows
}

func (q *fakeQuery) removeByTitle(title string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	var kept []model.Window
	for _, w := range q.windows {
		if w.Title != title {
			kept = append(kept, w)
		}
	}
	q.windows = kept
}

// fakeInput records synthetic input and triggers optional hooks.
type fakeInput struct {
	mu            sync.Mutex
	clicks        []image.Point
	doubleClicks  []image.Point
	keys          []string
	onDoubleClick func(x, y int)
	onKeyTap      func(key string, mods []string)
}

func (i *fakeInput) Click(x, y int) error {
	i.mu.Lock()
	i.clicks = append(i.clicks, image.Point{X: x, Y: y})
	i.mu.Unlock()
	return nil
}

func (i *fakeInput) DoubleClick(x, y int) error {
	i.mu.Lock()
	i.doubleClicks = append(i.doubleClicks, image.Point{X: x, Y: y})
	hook := i.onDoubleClick
	i.mu.Unlock()
	if hook != nil {
		hook(x, y)
	}
	return nil
}

func (i *fakeInput) KeyTap(key string, mods ...string) error {
	i.mu.Lock()
	combo := key
	if len(mods) > 0 {
		combo = strings.Join(mods, "+") + "+" + key
	}
	i.keys = append(i.keys, combo)
	hook := i.onKeyTap
	i.mu.Unlock()
	if hook != nil {
		hook(key, mods)
	}
	return nil
}

func (i *fakeInput) keyLog() []string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return append([]string(nil), i.keys...)
}

// fakeScreen serves a fixed capture to the icon matcher.
type fakeScreen struct {
	img image.Image
	err error
}

func (s *fakeScreen) Capture() (image.Image, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.img == nil {
		return nil, fmt.Errorf("no capture configured")
	}
	return s.img, nil
}

func testTiming() config.TimingConfig {
	return config.TimingConfig{
		LaunchTimeout:      50 * time.Millisecond,
		CloseTimeout:       50 * time.Millisecond,
		SaveDialogTimeout:  50 * time.Millisecond,
		DialogCloseTimeout: 50 * time.Millisecond,
		PollInterval:       time.Millisecond,
		Spacing:            0,
		LaunchRetries:      3,
		MaxPosts:           10,
	}
}

func notepadWindow(title string) model.Window {
	return model.Window{
		App:     "notepad",
		PID:     101,
		Title:   title,
		Bounds:  [4]int{100, 100, 600, 400},
		Visible: true,
	}
}
