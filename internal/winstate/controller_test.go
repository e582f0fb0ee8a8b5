package winstate

import (
	"image"
	"testing"

	"go.uber.org/zap"

	"github.com/postpad/postpad/internal/config"
	"github.com/postpad/postpad/internal/model"
	"github.com/postpad/postpad/internal/vision"
)

func pix(x, y int) uint8 {
	return uint8((x*7 + y*13 + (x*y)%31) % 251)
}

func patternImage(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Pix[y*img.Stride+x] = pix(x, y)
		}
	}
	return img
}

func iconTemplate(ox, oy, w, h int) vision.Template {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Pix[y*img.Stride+x] = pix(ox+x, oy+y)
		}
	}
	return vision.Template{Name: "icon.png", Gray: img}
}

func testMatchCfg() config.MatchConfig {
	return config.MatchConfig{Threshold: 0.8, FallbackThreshold: 0.7}
}

func newController(q *fakeQuery, in *fakeInput, screen *fakeScreen, templates []vision.Template, cache *vision.CoordCache) *Controller {
	logger := zap.NewNop()
	tracker := newTestTracker(q)
	matcher := vision.NewMatcher(screen, templates, logger)
	return NewController(tracker, matcher, cache, in, q, testMatchCfg(), testTiming(), logger)
}

func TestEnsureOpen_FindsIconAndLaunches(t *testing.T) {
	q := &fakeQuery{}
	in := &fakeInput{}
	in.onDoubleClick = func(x, y int) {
		q.setWindows(notepadWindow("Untitled - Notepad"))
	}
	screen := &fakeScreen{img: patternImage(140, 140)}
	cache := vision.NewCoordCache()

	c := newController(q, in, screen, []vision.Template{iconTemplate(100, 100, 20, 20)}, cache)
	if !c.EnsureOpen() {
		t.Fatal("expected launch to succeed")
	}

	if len(in.doubleClicks) != 1 {
		t.Fatalf("expected 1 double-click, got %d", len(in.doubleClicks))
	}
	if pt := in.doubleClicks[0]; pt.X != 110 || pt.Y != 110 {
		t.Errorf("double-clicked %v, want icon center (110,110)", pt)
	}

	cached, ok := cache.Get()
	if !ok || cached.X != 110 || cached.Y != 110 {
		t.Errorf("cache = %v ok=%v, want (110,110) true", cached, ok)
	}
}

func TestEnsureOpen_StaleCacheInvalidatedThenFreshMatchWins(t *testing.T) {
	q := &fakeQuery{}
	in := &fakeInput{}
	screen := &fakeScreen{img: patternImage(140, 140)}
	cache := vision.NewCoordCache()
	cache.Set(image.Point{X: 5, Y: 5}) // stale: clicking here does nothing

	// Only a double-click at the real icon center opens the window.
	in.onDoubleClick = func(x, y int) {
		if x == 110 && y == 110 {
			q.setWindows(notepadWindow("Untitled - Notepad"))
		}
	}

	c := newController(q, in, screen, []vision.Template{iconTemplate(100, 100, 20, 20)}, cache)
	if !c.EnsureOpen() {
		t.Fatal("expected launch to succeed via fresh match")
	}

	if len(in.doubleClicks) < 2 {
		t.Fatalf("expected cached click then fresh click, got %v", in.doubleClicks)
	}
	if first := in.doubleClicks[0]; first.X != 5 || first.Y != 5 {
		t.Errorf("first click %v, want the cached coordinate (5,5)", first)
	}

	cached, ok := cache.Get()
	if !ok || cached.X != 110 || cached.Y != 110 {
		t.Errorf("cache should hold the fresh coordinate, got %v ok=%v", cached, ok)
	}
}

func TestEnsureOpen_IconNeverFoundExhaustsRetries(t *testing.T) {
	q := &fakeQuery{}
	in := &fakeInput{}
	screen := &fakeScreen{img: patternImage(60, 60)}
	cache := vision.NewCoordCache()

	// Inverted pattern never clears either threshold.
	inv := image.NewGray(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			inv.Pix[y*inv.Stride+x] = 255 - pix(x, y)
		}
	}

	c := newController(q, in, screen, []vision.Template{{Name: "inv.png", Gray: inv}}, cache)
	if c.EnsureOpen() {
		t.Fatal("expected launch to fail")
	}
	if len(in.doubleClicks) != 0 {
		t.Errorf("no clicks expected without a match, got %v", in.doubleClicks)
	}
	if _, ok := cache.Get(); ok {
		t.Error("cache must stay empty after a failed launch")
	}
}

func TestEnsureClosed_NoWindowsSucceedsImmediately(t *testing.T) {
	q := &fakeQuery{}
	in := &fakeInput{}
	c := newController(q, in, &fakeScreen{}, nil, vision.NewCoordCache())

	if !c.EnsureClosed() {
		t.Fatal("expected immediate success with no windows")
	}
	if len(q.closeCalls) != 0 || len(in.keyLog()) != 0 {
		t.Error("no close requests or input expected")
	}
}

func TestEnsureClosed_GracefulCloseWithPromptDiscard(t *testing.T) {
	q := &fakeQuery{}
	q.setWindows(notepadWindow("Untitled - Notepad"))
	q.onClose = func(w model.Window) {
		q.removeByTitle(w.Title)
	}
	in := &fakeInput{}

	c := newController(q, in, &fakeScreen{}, nil, vision.NewCoordCache())
	if !c.EnsureClosed() {
		t.Fatal("expected close to succeed")
	}
	if len(q.closeCalls) != 1 {
		t.Errorf("expected 1 close request, got %d", len(q.closeCalls))
	}
	// The save prompt is answered with "don't save" after each request.
	keys := in.keyLog()
	if len(keys) == 0 || keys[0] != "n" {
		t.Errorf("expected a discard keypress, got %v", keys)
	}
}

func TestEnsureClosed_EscalatesToForcedClose(t *testing.T) {
	q := &fakeQuery{}
	q.setWindows(notepadWindow("stubborn.txt - Notepad"))
	in := &fakeInput{}
	in.onKeyTap = func(key string, mods []string) {
		if key == "f4" && len(mods) == 1 && mods[0] == "alt" {
			q.setWindows()
		}
	}

	c := newController(q, in, &fakeScreen{}, nil, vision.NewCoordCache())
	if !c.EnsureClosed() {
		t.Fatal("expected forced close to succeed")
	}

	var sawForce bool
	for _, k := range in.keyLog() {
		if k == "alt+f4" {
			sawForce = true
		}
	}
	if !sawForce {
		t.Error("expected alt+f4 escalation")
	}
	if len(q.activated) == 0 {
		t.Error("survivor should be activated before the forced close")
	}
}

func TestEnsureClosed_TimeoutReturnsFalse(t *testing.T) {
	q := &fakeQuery{}
	q.setWindows(notepadWindow("immortal.txt - Notepad"))
	in := &fakeInput{}

	c := newController(q, in, &fakeScreen{}, nil, vision.NewCoordCache())
	if c.EnsureClosed() {
		t.Fatal("expected failure when the window never goes away")
	}
}

func TestEnsureOpen_FallbackThresholdRescuesLaunch(t *testing.T) {
	q := &fakeQuery{}
	in := &fakeInput{}
	in.onDoubleClick = func(x, y int) {
		q.setWindows(notepadWindow("Untitled - Notepad"))
	}
	screen := &fakeScreen{img: patternImage(140, 140)}
	cache := vision.NewCoordCache()

	logger := zap.NewNop()
	tracker := newTestTracker(q)
	matcher := vision.NewMatcher(screen, []vision.Template{iconTemplate(100, 100, 20, 20)}, logger)

	// An unreachable primary threshold forces the lowered fallback pass
	// to do the matching.
	match := config.MatchConfig{Threshold: 1.01, FallbackThreshold: 0.8}
	c := NewController(tracker, matcher, cache, in, q, match, testTiming(), logger)

	if !c.EnsureOpen() {
		t.Fatal("expected the fallback pass to launch the app")
	}
	if pt, ok := cache.Get(); !ok || pt.X != 110 || pt.Y != 110 {
		t.Errorf("cache = %v ok=%v, want (110,110) true", pt, ok)
	}
}
