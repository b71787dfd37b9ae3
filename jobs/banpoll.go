package jobs

import (
	"context"
	"time"

	"banexport/poller"
)

// BanPoll watches BattleMetrics for newly created bans.
type BanPoll struct {
	Poller *poller.Poller
}

func (b *BanPoll) Enabled() bool {
	return true
}

func (b *BanPoll) Duration() time.Duration {
	return time.Minute
}

func (b *BanPoll) Name() string {
	return "ban_poll"
}

func (b *BanPoll) Description() string {
	return "Polls BattleMetrics for new bans and opens review threads for them"
}

func (b *BanPoll) Run(ctx context.Context) error {
	return b.Poller.Poll(ctx)
}
