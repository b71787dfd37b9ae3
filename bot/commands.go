package bot

import (
	"fmt"
	"sort"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"banexport/state"
)

func commandDefs() []*discordgo.ApplicationCommand {
	var banListChoices []*discordgo.ApplicationCommandOptionChoice

	var banListNames []string

	for name := range state.Config.BattleMetrics.BanLists {
		banListNames = append(banListNames, name)
	}

	sort.Strings(banListNames)

	for _, name := range banListNames {
		banListChoices = append(banListChoices, &discordgo.ApplicationCommandOptionChoice{
			Name:  name,
			Value: name,
		})
	}

	return []*discordgo.ApplicationCommand{
		{
			Name:        "exportoldbans",
			Description: "Export historical bans from BattleMetrics",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "server",
					Description: "Server number",
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "banlist",
					Description: "Ban list type",
					Choices:     banListChoices,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "year",
					Description: "Year",
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "month",
					Description: "Month (1-12)",
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "limit",
					Description: "Max threads",
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "sort",
					Description: "Sort order",
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "Ascending", Value: "asc"},
						{Name: "Descending", Value: "desc"},
					},
				},
			},
		},
		{
			Name:        "ban",
			Description: "Ban a user via BattleMetrics",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "steamid",
					Description: "SteamID of the user to ban",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "reason",
					Description: "Reason for ban",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "serverid",
					Description: "BattleMetrics Server ID",
					Required:    true,
				},
			},
		},
		{
			Name:        "unban",
			Description: "Unban a user via BattleMetrics",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "banid",
					Description: "BattleMetrics Ban ID to unban",
					Required:    true,
				},
			},
		},
	}
}

// RegisterCommands overwrites the application's slash commands. With an
// empty guild id commands register globally.
func RegisterCommands() error {
	cmds := commandDefs()

	_, err := state.Discord.ApplicationCommandBulkOverwrite(state.Config.DiscordAuth.ClientID, state.Config.DiscordAuth.GuildID, cmds)

	if err != nil {
		return fmt.Errorf("failed to register slash commands: %w", err)
	}

	state.Logger.Info("Slash commands registered", zap.Int("count", len(cmds)))

	return nil
}
