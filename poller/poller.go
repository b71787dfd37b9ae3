// Package poller watches BattleMetrics for newly created bans and
// opens a review thread for each one, tracking the last seen ban
// through an injected repository.
package poller

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"banexport/bm"
	"banexport/tracker"
)

// BanSource yields the most recently created upstream ban.
type BanSource interface {
	NewestBan(ctx context.Context) (*bm.Ban, error)
}

// Poster creates the review thread and session for one ban record.
type Poster interface {
	Post(ctx context.Context, ban *bm.Ban) error
}

type Poller struct {
	Source BanSource
	Repo   tracker.Repository
	Poster Poster
	Logger *zap.Logger

	lastSeen string
}

func New(source BanSource, repo tracker.Repository, poster Poster, logger *zap.Logger) *Poller {
	return &Poller{
		Source: source,
		Repo:   repo,
		Poster: poster,
		Logger: logger,
	}
}

// Init loads the last seen ban cursor from the repository. Call once on
// startup before the first Poll.
func (p *Poller) Init(ctx context.Context) error {
	banID, err := p.Repo.Load(ctx)

	if err != nil {
		return fmt.Errorf("failed to load ban cursor: %w", err)
	}

	p.lastSeen = banID

	return nil
}

// Poll runs one cycle: fetch the newest ban and, if it is one we have
// not seen, advance the cursor and post a review thread for it.
func (p *Poller) Poll(ctx context.Context) error {
	ban, err := p.Source.NewestBan(ctx)

	if err != nil {
		return fmt.Errorf("failed to poll for new bans: %w", err)
	}

	if ban == nil || ban.ID == p.lastSeen {
		return nil
	}

	p.lastSeen = ban.ID

	if err := p.Repo.Save(ctx, ban.ID); err != nil {
		p.Logger.Warn("Failed to persist ban cursor", zap.String("banId", ban.ID), zap.Error(err))
	}

	p.Logger.Info("New ban detected", zap.String("banId", ban.ID), zap.String("serverId", ban.ServerID()))

	if err := p.Poster.Post(ctx, ban); err != nil {
		return fmt.Errorf("failed to post new ban %s: %w", ban.ID, err)
	}

	return nil
}

// Flush persists the current cursor. Call on shutdown.
func (p *Poller) Flush(ctx context.Context) error {
	if p.lastSeen == "" {
		return nil
	}

	return p.Repo.Save(ctx, p.lastSeen)
}
