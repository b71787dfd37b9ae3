package review

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDispatchUnknownSession(t *testing.T) {
	r := NewRegistry(zap.NewNop())

	_, err := r.Dispatch(context.Background(), "nope", ActionClaim, "alice")

	assert.ErrorIs(t, err, ErrUnknownSession)
}

func TestDispatchActions(t *testing.T) {
	r := NewRegistry(zap.NewNop())

	s, _, unbanner := newTestSession()
	r.Add(s)

	event, err := r.Dispatch(context.Background(), "b1", ActionClaim, "alice")
	require.NoError(t, err)
	assert.Equal(t, EventClaimed, event)

	event, err = r.Dispatch(context.Background(), "b1", ActionFail, "alice")
	require.NoError(t, err)
	assert.Equal(t, EventFailed, event)
	assert.Equal(t, []string{"b1"}, unbanner.expired)
}

func TestDispatchSerializesClaims(t *testing.T) {
	r := NewRegistry(zap.NewNop())

	s, _, _ := newTestSession()
	r.Add(s)

	const claimers = 16

	events := make([]Event, claimers)
	errs := make([]error, claimers)

	var wg sync.WaitGroup

	for i := 0; i < claimers; i++ {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()
			events[i], errs[i] = r.Dispatch(context.Background(), "b1", ActionClaim, string(rune('a'+i)))
		}(i)
	}

	wg.Wait()

	// Exactly one claim wins, every other attempt is rejected
	var claimed, rejected int

	for i := 0; i < claimers; i++ {
		switch {
		case errs[i] == nil && events[i] == EventClaimed:
			claimed++
		case errs[i] != nil:
			assert.ErrorIs(t, errs[i], ErrAlreadyClaimed)
			rejected++
		}
	}

	assert.Equal(t, 1, claimed)
	assert.Equal(t, claimers-1, rejected)
	assert.Equal(t, StateClaimed, s.State)
	assert.NotEmpty(t, s.Claimant)
}

func TestReapConcurrentWithDispatch(t *testing.T) {
	r := NewRegistry(zap.NewNop())

	const sessions = 8

	for i := 0; i < sessions; i++ {
		r.Add(NewSession(fmt.Sprintf("b%d", i), &mockThread{}, &mockUnbanner{}, zap.NewNop()))
	}

	var wg sync.WaitGroup

	// Claim/unclaim toggles mutate session state while the reaper
	// reads it; run with -race
	for i := 0; i < sessions; i++ {
		banID := fmt.Sprintf("b%d", i)

		wg.Add(1)

		go func() {
			defer wg.Done()

			for j := 0; j < 50; j++ {
				_, _ = r.Dispatch(context.Background(), banID, ActionClaim, "alice")
			}
		}()
	}

	wg.Add(1)

	go func() {
		defer wg.Done()

		for j := 0; j < 50; j++ {
			r.Reap(time.Now())
		}
	}()

	wg.Wait()

	// Nothing was resolved or expired, so nothing reaps
	assert.Equal(t, sessions, r.Len())
}

func TestReap(t *testing.T) {
	r := NewRegistry(zap.NewNop())

	live, _, _ := newTestSession()
	r.Add(live)

	resolved := NewSession("b2", &mockThread{}, &mockUnbanner{}, zap.NewNop())
	require.NoError(t, resolved.ResolvePass(context.Background(), "alice"))
	r.Add(resolved)

	expired := NewSession("b3", &mockThread{}, &mockUnbanner{}, zap.NewNop())
	expired.Deadline = time.Now().Add(-time.Minute)
	r.Add(expired)

	assert.Equal(t, 2, r.Reap(time.Now()))
	assert.Equal(t, 1, r.Len())

	_, ok := r.Get("b1")
	assert.True(t, ok)

	_, err := r.Dispatch(context.Background(), "b2", ActionClaim, "alice")
	assert.ErrorIs(t, err, ErrUnknownSession)
}
