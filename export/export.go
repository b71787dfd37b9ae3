// Package export orchestrates one historical ban export run: fetch
// every ban for each requested server, filter by year/month, and post a
// review thread per surviving record until the posting limit is hit.
package export

import (
	"context"
	"fmt"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"go.uber.org/zap"

	"banexport/bm"
)

// Delay between successive thread creations, to avoid bursting the
// messaging platform's rate limits
const defaultPostDelay = 50 * time.Millisecond

// ValidationError is a bad filter input, rejected before any network
// activity.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// Options for one export run. Nil Year/Month/Limit mean unfiltered and
// unlimited; a provided value outside its range is rejected outright.
type Options struct {
	// Server IDs in the order they should be processed
	Servers []string

	// Resolved ban list ID, empty for all lists
	BanList string

	Year  *int
	Month *int
	Limit *int

	// "asc" or "desc" by ban creation time, defaults to asc
	Sort string
}

func (o *Options) Validate() error {
	if len(o.Servers) == 0 {
		return &ValidationError{Msg: "no servers to export from"}
	}

	if o.Year != nil && (*o.Year < 1970 || *o.Year > 3000) {
		return &ValidationError{Msg: fmt.Sprintf("year %d is out of range (1970-3000)", *o.Year)}
	}

	if o.Month != nil && (*o.Month < 1 || *o.Month > 12) {
		return &ValidationError{Msg: fmt.Sprintf("month %d is out of range (1-12)", *o.Month)}
	}

	if o.Limit != nil && *o.Limit <= 0 {
		return &ValidationError{Msg: "limit must be at least 1"}
	}

	if o.Sort != "" && o.Sort != "asc" && o.Sort != "desc" {
		return &ValidationError{Msg: fmt.Sprintf("invalid sort order %q", o.Sort)}
	}

	return nil
}

// Fetcher is the slice of the BattleMetrics client an export run needs.
type Fetcher interface {
	FetchAllBans(ctx context.Context, serverID string, banListID string, sortOrder string) ([]bm.Ban, error)
}

// Poster creates the review thread and session for one ban record.
type Poster interface {
	Post(ctx context.Context, ban *bm.Ban) error
}

type ServerReport struct {
	Fetched int
	Matched int
	Posted  int

	// Non-empty when the fetch for this server failed
	Err string
}

// RunResult aggregates one export run. Servers iterates in the
// caller-supplied server order.
type RunResult struct {
	Posted  int
	Servers *orderedmap.OrderedMap[string, *ServerReport]
}

type Orchestrator struct {
	Fetcher   Fetcher
	Poster    Poster
	Logger    *zap.Logger
	PostDelay time.Duration
}

func NewOrchestrator(fetcher Fetcher, poster Poster, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		Fetcher:   fetcher,
		Poster:    poster,
		Logger:    logger,
		PostDelay: defaultPostDelay,
	}
}

// Run executes one export batch. Servers are processed strictly
// sequentially in the given order; within a server, records post in
// fetch order. One server's fetch failure is recorded and the batch
// moves on; the posting limit short-circuits the whole batch the
// moment it is reached.
func (o *Orchestrator) Run(ctx context.Context, opts Options) (*RunResult, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	result := &RunResult{
		Servers: orderedmap.New[string, *ServerReport](),
	}

outer:
	for _, serverID := range opts.Servers {
		report := &ServerReport{}
		result.Servers.Set(serverID, report)

		bans, err := o.Fetcher.FetchAllBans(ctx, serverID, opts.BanList, opts.Sort)

		if err != nil {
			o.Logger.Error("Failed to fetch bans", zap.String("serverId", serverID), zap.Error(err))
			report.Err = err.Error()
			continue
		}

		report.Fetched = len(bans)

		for i := range bans {
			ban := &bans[i]

			createdAt, err := ban.CreatedAt()

			if err != nil {
				// Unparsable timestamps are skipped silently
				continue
			}

			if opts.Year != nil && createdAt.UTC().Year() != *opts.Year {
				continue
			}

			if opts.Month != nil && int(createdAt.UTC().Month()) != *opts.Month {
				continue
			}

			report.Matched++

			if err := o.Poster.Post(ctx, ban); err != nil {
				o.Logger.Error("Failed to post ban thread", zap.String("banId", ban.ID), zap.String("serverId", serverID), zap.Error(err))
				continue
			}

			report.Posted++
			result.Posted++

			if opts.Limit != nil && result.Posted >= *opts.Limit {
				break outer
			}

			if err := o.sleep(ctx); err != nil {
				return result, err
			}
		}
	}

	return result, nil
}

func (o *Orchestrator) sleep(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(o.PostDelay):
		return nil
	}
}
