package review

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"banexport/mapofmu"
)

// Action is one of the review buttons on a ban thread.
type Action string

const (
	ActionClaim Action = "claim"
	ActionPass  Action = "pass"
	ActionFail  Action = "fail"
)

// ErrUnknownSession means no live session exists for the ban id, either
// because it was never exported or because it has been reaped.
var ErrUnknownSession = errors.New("no active review for this ban")

// Registry owns the set of active review sessions, keyed by ban id.
// Dispatch serializes interactions per session while letting distinct
// sessions proceed concurrently.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	locks    *mapofmu.M[string]
	logger   *zap.Logger
}

func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		locks:    mapofmu.New[string](),
		logger:   logger,
	}
}

// Add registers a session, replacing any previous session for the same
// ban id.
func (r *Registry) Add(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[s.BanID] = s
}

func (r *Registry) Get(banID string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[banID]

	return s, ok
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions)
}

// Dispatch runs one interaction against the session for banID. The
// per-key lock guarantees a session never processes two interactions
// concurrently, which is what keeps the claim single-holder.
func (r *Registry) Dispatch(ctx context.Context, banID string, action Action, principal string) (Event, error) {
	s, ok := r.Get(banID)

	if !ok {
		return "", ErrUnknownSession
	}

	l := r.locks.Lock(banID)
	defer l.Unlock()

	switch action {
	case ActionClaim:
		return s.Claim(ctx, principal)
	case ActionPass:
		if err := s.ResolvePass(ctx, principal); err != nil {
			return "", err
		}

		return EventPassed, nil
	case ActionFail:
		if err := s.ResolveFail(ctx, principal); err != nil {
			return "", err
		}

		return EventFailed, nil
	default:
		return "", ErrUnknownSession
	}
}

// Reap drops every session that is resolved or past its acceptance
// deadline and returns how many were dropped.
func (r *Registry) Reap(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	var reaped int

	for banID, s := range r.sessions {
		// Session state is only read or written under the per-key
		// lock, same as Dispatch
		l := r.locks.Lock(banID)

		dead := s.Dead(now)

		l.Unlock()

		if dead {
			delete(r.sessions, banID)
			reaped++
		}
	}

	if reaped > 0 {
		r.logger.Info("Reaped dead review sessions", zap.Int("count", reaped), zap.Int("remaining", len(r.sessions)))
	}

	return reaped
}
