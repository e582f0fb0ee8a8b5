package winstate

import (
	"time"

	"go.uber.org/zap"

	"github.com/postpad/postpad/internal/config"
	"github.com/postpad/postpad/internal/platform"
	"github.com/postpad/postpad/internal/poll"
	"github.com/postpad/postpad/internal/vision"
)

// Controller drives the target application between the CLOSED and OPEN
// states. Both transitions are bounded by the configured timeouts and
// report success as a boolean; they never escalate to an error.
type Controller struct {
	tracker *Tracker
	matcher *vision.Matcher
	cache   *vision.CoordCache
	input   platform.Inputter
	query   platform.WindowQuery
	match   config.MatchConfig
	timing  config.TimingConfig
	logger  *zap.Logger
}

// NewController wires a controller from its collaborators.
func NewController(
	tracker *Tracker,
	matcher *vision.Matcher,
	cache *vision.CoordCache,
	input platform.Inputter,
	query platform.WindowQuery,
	match config.MatchConfig,
	timing config.TimingConfig,
	logger *zap.Logger,
) *Controller {
	return &Controller{
		tracker: tracker,
		matcher: matcher,
		cache:   cache,
		input:   input,
		query:   query,
		match:   match,
		timing:  timing,
		logger:  logger,
	}
}

// EnsureClosed drives the application to the CLOSED state. It succeeds
// immediately when no matching window exists; otherwise it requests a
// close per visible window, discards any save prompt, and escalates to a
// forced close chord when windows survive the first bounded wait.
func (c *Controller) EnsureClosed() bool {
	windows := c.tracker.Visible()
	if len(windows) == 0 {
		return true
	}

	c.logger.Info("closing existing windows", zap.Int("count", len(windows)))
	for _, w := range windows {
		if err := c.query.Close(w); err != nil {
			c.logger.Warn("close request failed", zap.String("title", w.Title), zap.Error(err))
		}
		c.pause()
		c.discardSavePrompt()
	}

	if poll.Until(c.timing.CloseTimeout, c.timing.PollInterval, func() bool {
		return !c.tracker.AnyVisible()
	}) {
		return true
	}

	// Escalate: alt+f4 on each survivor, again discarding save prompts.
	c.logger.Warn("windows still open, forcing close")
	for _, w := range c.tracker.Visible() {
		if err := c.query.Activate(w); err != nil {
			c.logger.Warn("activate failed", zap.String("title", w.Title), zap.Error(err))
			continue
		}
		c.pause()
		_ = c.input.KeyTap("f4", "alt")
		c.pause()
		c.discardSavePrompt()
	}

	closed := poll.Until(c.timing.CloseTimeout, c.timing.PollInterval, func() bool {
		return !c.tracker.AnyVisible()
	})
	if !closed {
		c.logger.Error("failed to close all windows within the timeout")
	}
	return closed
}

// EnsureOpen drives the application to the OPEN state. The cached icon
// coordinate is tried first; a verification failure invalidates it and
// falls back to a bounded number of fresh matching attempts, each
// followed by a double-click and a verification poll. A successful launch
// repopulates the cache with the coordinate that worked.
func (c *Controller) EnsureOpen() bool {
	if pt, ok := c.cache.Get(); ok {
		c.logger.Debug("trying cached icon coordinate", zap.Int("x", pt.X), zap.Int("y", pt.Y))
		_ = c.input.DoubleClick(pt.X, pt.Y)
		if c.verifyLaunched() {
			c.cache.Set(pt)
			return true
		}
		c.logger.Info("cached coordinate did not launch the app, invalidating")
		c.cache.Invalidate()
	}

	for attempt := 1; attempt <= c.timing.LaunchRetries; attempt++ {
		pt, ok := c.matcher.FindIcon(c.match.Threshold)
		if !ok {
			// Lowered-threshold fallback pass, per retry policy.
			pt, ok = c.matcher.FindIcon(c.match.FallbackThreshold)
		}
		if !ok {
			c.logger.Warn("icon not found",
				zap.Int("attempt", attempt),
				zap.Int("attempts", c.timing.LaunchRetries))
			c.pause()
			continue
		}

		_ = c.input.DoubleClick(pt.X, pt.Y)
		if c.verifyLaunched() {
			c.cache.Set(pt)
			return true
		}
		c.logger.Warn("window not visible after click", zap.Int("attempt", attempt))
	}
	return false
}

// verifyLaunched waits for any visible matching window.
func (c *Controller) verifyLaunched() bool {
	return poll.Until(c.timing.LaunchTimeout, c.timing.PollInterval, c.tracker.AnyVisible)
}

// discardSavePrompt answers a potential save-confirmation prompt with
// "don't save". Harmless when no prompt is up.
func (c *Controller) discardSavePrompt() {
	_ = c.input.KeyTap("n")
}

func (c *Controller) pause() {
	time.Sleep(c.timing.Spacing)
}
