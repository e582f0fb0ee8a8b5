// Package winstate tracks the target application's windows and drives
// them to a known open or closed state with bounded retries.
package winstate

import "strings"

// Filter decides whether a window title belongs to the target application.
//
// Titles match when they equal the target or end with " - <target>"
// (case-insensitive). Titles containing any impostor substring are
// rejected even when they also match, so unrelated editors whose titles
// happen to contain the target term never count.
type Filter struct {
	Target    string
	Impostors []string
}

// Matches reports whether title identifies a target application window.
func (f Filter) Matches(title string) bool {
	lower := strings.ToLower(strings.TrimSpace(title))
	target := strings.ToLower(f.Target)

	for _, imp := range f.Impostors {
		if imp != "" && strings.Contains(lower, strings.ToLower(imp)) {
			return false
		}
	}
	return lower == target || strings.HasSuffix(lower, " - "+target)
}
