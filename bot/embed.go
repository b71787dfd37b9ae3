package bot

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"banexport/display"
)

func banEmbed(summary display.Summary, siteURL string) *discordgo.MessageEmbed {
	fields := []*discordgo.MessageEmbedField{
		{Name: "Server", Value: fmt.Sprintf("%s (ID: %s)", summary.ServerName, summary.ServerID)},
		{Name: "Player", Value: summary.PlayerName},
		{Name: "SteamID", Value: summary.SteamID},
		{Name: "When", Value: summary.Posted, Inline: true},
		{Name: "Expires In", Value: summary.ExpiresIn, Inline: true},
		{Name: "Reason", Value: summary.Reason},
		{Name: "Notes", Value: summary.Notes},
	}

	if summary.BannedBy != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Banned By", Value: summary.BannedBy})
	}

	embed := &discordgo.MessageEmbed{
		Title:  "🚫 Ban Exported",
		URL:    siteURL + "/bans/" + summary.BanID,
		Fields: fields,
	}

	if !summary.CreatedAt.IsZero() {
		embed.Timestamp = summary.CreatedAt.Format(time.RFC3339)
	}

	return embed
}

// truncate caps s at max runes; thread titles cannot exceed 100.
func truncate(s string, max int) string {
	runes := []rune(s)

	if len(runes) <= max {
		return s
	}

	return string(runes[:max])
}
