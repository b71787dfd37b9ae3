// Package review implements the per-ban review workflow: each exported
// ban gets a session that moves from pending through claimed to a
// terminal pass/fail resolution, driven by button interactions on the
// ban's discussion thread.
package review

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// How long a session accepts interactions after creation. Matches the
// thread's component collector lifetime in the messaging platform.
const AcceptWindow = 24 * time.Hour

type State string

const (
	StatePending  State = "pending"
	StateClaimed  State = "claimed"
	StateResolved State = "resolved"
)

type Outcome string

const (
	OutcomeNone Outcome = ""
	OutcomePass Outcome = "pass"
	OutcomeFail Outcome = "fail"
)

// Event is what a dispatched interaction actually did to the session.
type Event string

const (
	EventClaimed   Event = "claimed"
	EventUnclaimed Event = "unclaimed"
	EventPassed    Event = "passed"
	EventFailed    Event = "failed"
)

// Transition rejections. These surface to the acting user as an
// ephemeral notice and never change session state.
var (
	ErrAlreadyClaimed = errors.New("this ban is already claimed by another reviewer")
	ErrNotClaimant    = errors.New("only the claimer can unclaim")
	ErrResolved       = errors.New("this review has already been resolved")
	ErrExpired        = errors.New("this review is no longer accepting actions")
)

// ThreadController mutates the discussion thread bound to a session.
// All of its operations are best-effort side effects: failures are
// logged, never escalated into a rejected transition.
type ThreadController interface {
	AddMember(ctx context.Context, userID string) error
	RemoveMember(ctx context.Context, userID string) error

	// Close renames the thread with the given label prefix, removes its
	// interactive components and locks + archives it.
	Close(ctx context.Context, label string) error
}

// Unbanner expires the upstream ban when an audit fails.
type Unbanner interface {
	ExpireBan(ctx context.Context, banID string, expires time.Time) error
}

// Session is the review state machine for one exported ban.
//
// Sessions are not self-locking: callers must serialize transitions per
// session (the Registry does this via a per-key mutex). At most one
// non-null claimant exists at any time, and a resolved session never
// transitions again.
type Session struct {
	BanID     string
	State     State
	Claimant  string
	Outcome   Outcome
	CreatedAt time.Time
	Deadline  time.Time

	thread   ThreadController
	unbanner Unbanner
	logger   *zap.Logger
}

func NewSession(banID string, thread ThreadController, unbanner Unbanner, logger *zap.Logger) *Session {
	now := time.Now()

	return &Session{
		BanID:     banID,
		State:     StatePending,
		CreatedAt: now,
		Deadline:  now.Add(AcceptWindow),
		thread:    thread,
		unbanner:  unbanner,
		logger:    logger,
	}
}

func (s *Session) accepting() error {
	if s.State == StateResolved {
		return ErrResolved
	}

	if time.Now().After(s.Deadline) {
		return ErrExpired
	}

	return nil
}

// Claim takes the single-holder claim on the session. A claim by the
// current claimant is deliberately not idempotent: it is interpreted as
// an unclaim. A claim while someone else holds it is rejected.
func (s *Session) Claim(ctx context.Context, principal string) (Event, error) {
	if err := s.accepting(); err != nil {
		return "", err
	}

	if s.State == StateClaimed {
		if s.Claimant == principal {
			if err := s.Unclaim(ctx, principal); err != nil {
				return "", err
			}

			return EventUnclaimed, nil
		}

		return "", ErrAlreadyClaimed
	}

	s.State = StateClaimed
	s.Claimant = principal

	if err := s.thread.AddMember(ctx, principal); err != nil {
		s.logger.Warn("Failed to add claimant to thread", zap.String("banId", s.BanID), zap.String("userId", principal), zap.Error(err))
	}

	return EventClaimed, nil
}

// Unclaim releases the claim. Only the claimant may unclaim; anyone
// else is rejected with no state change.
func (s *Session) Unclaim(ctx context.Context, principal string) error {
	if err := s.accepting(); err != nil {
		return err
	}

	if s.State != StateClaimed || s.Claimant != principal {
		return ErrNotClaimant
	}

	s.State = StatePending
	s.Claimant = ""

	if err := s.thread.RemoveMember(ctx, principal); err != nil {
		s.logger.Warn("Failed to remove claimant from thread", zap.String("banId", s.BanID), zap.String("userId", principal), zap.Error(err))
	}

	return nil
}

// ResolvePass terminally resolves the session as an audit pass and
// closes the thread. No upstream mutation happens.
func (s *Session) ResolvePass(ctx context.Context, principal string) error {
	if err := s.accepting(); err != nil {
		return err
	}

	s.State = StateResolved
	s.Outcome = OutcomePass

	if err := s.thread.Close(ctx, "Audit Passed"); err != nil {
		s.logger.Warn("Failed to close thread after audit pass", zap.String("banId", s.BanID), zap.Error(err))
	}

	s.logger.Info("Ban audit passed", zap.String("banId", s.BanID), zap.String("userId", principal))

	return nil
}

// ResolveFail terminally resolves the session as an audit fail,
// expiring the upstream ban immediately. The local resolution commits
// even when the upstream mutation fails, so the thread is never
// stranded open.
func (s *Session) ResolveFail(ctx context.Context, principal string) error {
	if err := s.accepting(); err != nil {
		return err
	}

	if err := s.unbanner.ExpireBan(ctx, s.BanID, time.Now()); err != nil {
		s.logger.Error("Failed to unban via BattleMetrics", zap.String("banId", s.BanID), zap.Error(err))
	}

	s.State = StateResolved
	s.Outcome = OutcomeFail

	if err := s.thread.Close(ctx, "Audit Failed"); err != nil {
		s.logger.Warn("Failed to close thread after audit fail", zap.String("banId", s.BanID), zap.Error(err))
	}

	s.logger.Info("Ban audit failed, user unbanned", zap.String("banId", s.BanID), zap.String("userId", principal))

	return nil
}

// Dead reports whether the session can never accept another
// transition: it is resolved or its acceptance deadline has passed.
func (s *Session) Dead(now time.Time) bool {
	return s.State == StateResolved || now.After(s.Deadline)
}
