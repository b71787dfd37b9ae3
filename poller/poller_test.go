package poller

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"banexport/bm"
	"banexport/tracker"
)

type mockSource struct {
	ban *bm.Ban
	err error
}

func (m *mockSource) NewestBan(_ context.Context) (*bm.Ban, error) {
	return m.ban, m.err
}

type mockPoster struct {
	posted []string
}

func (m *mockPoster) Post(_ context.Context, ban *bm.Ban) error {
	m.posted = append(m.posted, ban.ID)
	return nil
}

func newTestPoller(t *testing.T, source *mockSource) (*Poller, *mockPoster, tracker.Repository) {
	t.Helper()

	repo := tracker.NewFileRepository(filepath.Join(t.TempDir(), "track.json"))
	poster := &mockPoster{}

	p := New(source, repo, poster, zap.NewNop())
	require.NoError(t, p.Init(context.Background()))

	return p, poster, repo
}

func TestPollPostsUnseenBanOnce(t *testing.T) {
	source := &mockSource{ban: &bm.Ban{ID: "b1"}}

	p, poster, repo := newTestPoller(t, source)

	require.NoError(t, p.Poll(context.Background()))
	assert.Equal(t, []string{"b1"}, poster.posted)

	// The same ban does not post twice
	require.NoError(t, p.Poll(context.Background()))
	assert.Equal(t, []string{"b1"}, poster.posted)

	// The cursor was persisted as it advanced
	banID, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "b1", banID)

	// A newer ban posts again
	source.ban = &bm.Ban{ID: "b2"}
	require.NoError(t, p.Poll(context.Background()))
	assert.Equal(t, []string{"b1", "b2"}, poster.posted)
}

func TestPollNoBans(t *testing.T) {
	p, poster, _ := newTestPoller(t, &mockSource{})

	require.NoError(t, p.Poll(context.Background()))
	assert.Empty(t, poster.posted)
}

func TestPollSourceError(t *testing.T) {
	source := &mockSource{err: &bm.UpstreamError{Status: 502, Body: "bad gateway"}}

	p, poster, _ := newTestPoller(t, source)

	assert.Error(t, p.Poll(context.Background()))
	assert.Empty(t, poster.posted)
}

func TestInitResumesFromRepository(t *testing.T) {
	repo := tracker.NewFileRepository(filepath.Join(t.TempDir(), "track.json"))
	require.NoError(t, repo.Save(context.Background(), "b7"))

	poster := &mockPoster{}
	p := New(&mockSource{ban: &bm.Ban{ID: "b7"}}, repo, poster, zap.NewNop())

	require.NoError(t, p.Init(context.Background()))
	require.NoError(t, p.Poll(context.Background()))

	// The previously seen ban is not re-posted after a restart
	assert.Empty(t, poster.posted)
}

func TestFlush(t *testing.T) {
	source := &mockSource{ban: &bm.Ban{ID: "b9"}}

	p, _, repo := newTestPoller(t, source)

	require.NoError(t, p.Poll(context.Background()))
	require.NoError(t, p.Flush(context.Background()))

	banID, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "b9", banID)
}
