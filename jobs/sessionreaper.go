package jobs

import (
	"context"
	"time"

	"banexport/review"
)

// SessionReaper evicts review sessions that are resolved or past their
// acceptance deadline.
type SessionReaper struct {
	Registry *review.Registry
}

func (r *SessionReaper) Enabled() bool {
	return true
}

func (r *SessionReaper) Duration() time.Duration {
	return 5 * time.Minute
}

func (r *SessionReaper) Name() string {
	return "session_reaper"
}

func (r *SessionReaper) Description() string {
	return "Evicts resolved and deadline-expired review sessions"
}

func (r *SessionReaper) Run(_ context.Context) error {
	r.Registry.Reap(time.Now())
	return nil
}
