package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"banexport/bm"
	"banexport/display"
	"banexport/review"
	"banexport/state"
)

// Threads auto-archive after a day, matching the session deadline
const threadAutoArchiveMinutes = 1440

// ForumPoster posts one review thread per ban into the configured
// forum channel and registers a review session for it. It serves both
// the export orchestrator and the ban poller.
type ForumPoster struct {
	Discord  *discordgo.Session
	ForumID  string
	SiteURL  string
	Registry *review.Registry
	Resolver display.Resolver
	Unbanner review.Unbanner
	Location *time.Location
	Logger   *zap.Logger
}

func NewForumPoster() *ForumPoster {
	return &ForumPoster{
		Discord:  state.Discord,
		ForumID:  state.Config.Channels.BanExportForum,
		SiteURL:  state.Config.BattleMetrics.SiteUrl,
		Registry: state.Registry,
		Resolver: state.BM,
		Unbanner: state.BM,
		Location: state.Location,
		Logger:   state.Logger.Named("poster"),
	}
}

func (p *ForumPoster) Post(ctx context.Context, ban *bm.Ban) error {
	summary := display.Normalize(ctx, ban, time.Now(), p.Resolver, p.Location)

	title := truncate(fmt.Sprintf("Ban: %s (%s)", summary.PlayerName, summary.Posted), 100)

	thread, err := p.Discord.ForumThreadStartComplex(p.ForumID, &discordgo.ThreadStart{
		Name:                title,
		AutoArchiveDuration: threadAutoArchiveMinutes,
	}, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{banEmbed(summary, p.SiteURL)},
		Components: banButtons(ban.ID, ""),
	})

	if err != nil {
		return fmt.Errorf("failed to create thread: %w", err)
	}

	p.Registry.Add(review.NewSession(ban.ID, &threadController{
		discord:  p.Discord,
		threadID: thread.ID,
		name:     title,
	}, p.Unbanner, p.Logger))

	return nil
}

// threadController exposes a single review thread to the session state
// machine.
type threadController struct {
	discord  *discordgo.Session
	threadID string
	name     string
}

func (t *threadController) AddMember(_ context.Context, userID string) error {
	return t.discord.ThreadMemberAdd(t.threadID, userID)
}

func (t *threadController) RemoveMember(_ context.Context, userID string) error {
	return t.discord.ThreadMemberRemove(t.threadID, userID)
}

func (t *threadController) Close(_ context.Context, label string) error {
	locked := true
	archived := true

	_, err := t.discord.ChannelEditComplex(t.threadID, &discordgo.ChannelEdit{
		Name:     truncate(label+" "+t.name, 100),
		Locked:   &locked,
		Archived: &archived,
	})

	if err != nil {
		return fmt.Errorf("failed to close thread: %w", err)
	}

	return nil
}
