// Package poll provides the single bounded-wait primitive used by every
// retry loop in postpad. The deadline is computed once at entry; there are
// no unbounded waits anywhere in the codebase.
package poll

import "time"

// Until repeatedly evaluates cond every interval until it returns true or
// the timeout elapses. The condition is checked once before the first
// sleep, so an already-true condition returns immediately.
func Until(timeout, interval time.Duration, cond func() bool) bool {
	deadline := time.Now().Add(timeout)
	for {
		if cond() {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(interval)
	}
}
