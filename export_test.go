package seoflow

import "time"

// SetNow replaces the orchestrator's time source so tests can pin the
// committed directory name.
func SetNow(o *Orchestrator, fn func() time.Time) {
	o.now = fn
}
