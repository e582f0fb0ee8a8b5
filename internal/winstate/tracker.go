package winstate

import (
	"go.uber.org/zap"

	"github.com/postpad/postpad/internal/model"
	"github.com/postpad/postpad/internal/platform"
)

// Tracker lists the target application's windows through the platform
// window query, applying the title filter on top of the raw enumeration.
type Tracker struct {
	query  platform.WindowQuery
	filter Filter
	logger *zap.Logger
}

// NewTracker returns a tracker for the filter's target application.
func NewTracker(query platform.WindowQuery, filter Filter, logger *zap.Logger) *Tracker {
	return &Tracker{query: query, filter: filter, logger: logger}
}

// List returns all windows passing the title filter. Enumeration errors
// are logged and yield an empty result; window listing is retried by the
// surrounding poll loops, not here.
func (t *Tracker) List() []model.Window {
	all, err := t.query.ListWindows(t.filter.Target)
	if err != nil {
		t.logger.Warn("window enumeration failed", zap.Error(err))
		return nil
	}
	var matched []model.Window
	for _, w := range all {
		if t.filter.Matches(w.Title) {
			matched = append(matched, w)
		}
	}
	return matched
}

// Visible returns the matching windows that are currently visible.
func (t *Tracker) Visible() []model.Window {
	var visible []model.Window
	for _, w := range t.List() {
		if w.Visible {
			visible = append(visible, w)
		}
	}
	return visible
}

// AnyVisible reports whether at least one matching window is visible.
func (t *Tracker) AnyVisible() bool {
	return len(t.Visible()) > 0
}

// Dialog looks up a dialog window by exact title match.
func (t *Tracker) Dialog(title string) (model.Window, bool) {
	all, err := t.query.ListWindows(title)
	if err != nil {
		t.logger.Warn("dialog lookup failed", zap.String("title", title), zap.Error(err))
		return model.Window{}, false
	}
	for _, w := range all {
		if w.Title == title {
			return w, true
		}
	}
	return model.Window{}, false
}
