package bot

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"

	"banexport/export"
	"banexport/state"
)

// exportOptions is what /exportoldbans parses out of the interaction.
type exportOptions struct {
	ServerNum *int
	BanList   string
	Year      *int
	Month     *int
	Limit     *int
	Sort      string
}

func parseExportOptions(options []*discordgo.ApplicationCommandInteractionDataOption) exportOptions {
	var opts exportOptions

	for _, opt := range options {
		switch opt.Name {
		case "server":
			v := int(opt.IntValue())
			opts.ServerNum = &v
		case "banlist":
			opts.BanList = opt.StringValue()
		case "year":
			v := int(opt.IntValue())
			opts.Year = &v
		case "month":
			v := int(opt.IntValue())
			opts.Month = &v
		case "limit":
			v := int(opt.IntValue())
			opts.Limit = &v
		case "sort":
			opts.Sort = opt.StringValue()
		}
	}

	return opts
}

func exportOldBansCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := parseExportOptions(i.ApplicationCommandData().Options)

	servers := state.Config.BattleMetrics.Servers

	if opts.ServerNum != nil {
		id, ok := state.Config.BattleMetrics.ServerAliases[strconv.Itoa(*opts.ServerNum)]

		if !ok {
			respondEphemeral(s, i, "❗ Unknown server number.")
			return
		}

		servers = []string{id}
	}

	var banListID string

	if opts.BanList != "" {
		var ok bool

		banListID, ok = state.Config.BattleMetrics.BanLists[opts.BanList]

		if !ok {
			respondEphemeral(s, i, "❗ Unknown ban list.")
			return
		}
	}

	runOpts := export.Options{
		Servers: servers,
		BanList: banListID,
		Year:    opts.Year,
		Month:   opts.Month,
		Limit:   opts.Limit,
		Sort:    opts.Sort,
	}

	// Reject bad filters before any network activity
	if err := runOpts.Validate(); err != nil {
		respondEphemeral(s, i, "❗ Invalid option(s) provided: "+err.Error())
		return
	}

	deferEphemeral(s, i)

	forum, err := s.Channel(state.Config.Channels.BanExportForum)

	if err != nil || forum.Type != discordgo.ChannelTypeGuildForum {
		editReply(s, i, "Error: the configured channel is not a forum.")
		return
	}

	editReply(s, i, "🔄 Fetching historical bans… please wait.")

	orch := export.NewOrchestrator(state.BM, NewForumPoster(), state.Logger.Named("export"))

	result, err := orch.Run(state.Context, runOpts)

	if err != nil {
		var validationErr *export.ValidationError

		if errors.As(err, &validationErr) {
			editReply(s, i, "❗ Invalid option(s) provided: "+validationErr.Msg)
		} else {
			editReply(s, i, "❗ Export failed: "+err.Error())
		}

		return
	}

	for pair := result.Servers.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value.Err != "" {
			followUp(s, i, fmt.Sprintf("❗ Fetch error for server `%s`: %s", pair.Key, pair.Value.Err))
		} else if pair.Value.Fetched == 0 {
			followUp(s, i, fmt.Sprintf("ℹ️ No bans for server `%s`.", pair.Key))
		}
	}

	editReply(s, i, fmt.Sprintf("✅ Done! Created %d threads.", result.Posted))
}
