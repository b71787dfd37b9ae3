package bot

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"banexport/state"
)

func banCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	var steamID, reason, serverID string

	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "steamid":
			steamID = opt.StringValue()
		case "reason":
			reason = opt.StringValue()
		case "serverid":
			serverID = opt.StringValue()
		}
	}

	deferEphemeral(s, i)

	banID, err := state.BM.CreateBan(state.Context, serverID, steamID, reason)

	if err != nil {
		editReply(s, i, "Failed to ban user: "+err.Error())
		return
	}

	editReply(s, i, fmt.Sprintf("User with SteamID %s has been banned on server %s for: %s (ban `%s`)", steamID, serverID, reason, banID))
}

func unbanCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	var banID string

	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "banid" {
			banID = opt.StringValue()
		}
	}

	deferEphemeral(s, i)

	err := state.BM.ExpireBan(state.Context, banID, time.Now())

	if err != nil {
		editReply(s, i, "Failed to unban user: "+err.Error())
		return
	}

	editReply(s, i, fmt.Sprintf("Ban %s has been expired (user unbanned).", banID))
}
