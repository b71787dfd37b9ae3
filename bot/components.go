package bot

import (
	"strings"

	"github.com/bwmarrin/discordgo"

	"banexport/review"
)

const (
	claimPrefix = "claim_ban_"
	failPrefix  = "audit_failed_"
	passPrefix  = "audit_passed_"
)

// banButtons builds the review action row for a ban thread. A
// non-empty claimedBy swaps the claim button to its claimed state.
func banButtons(banID string, claimedBy string) []discordgo.MessageComponent {
	claimBtn := discordgo.Button{
		Label:    "Claim",
		Style:    discordgo.PrimaryButton,
		CustomID: claimPrefix + banID,
	}

	if claimedBy != "" {
		claimBtn.Label = "Claimed by " + claimedBy
		claimBtn.Style = discordgo.SuccessButton
	}

	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				claimBtn,
				discordgo.Button{
					Label:    "Audit failed",
					Style:    discordgo.DangerButton,
					CustomID: failPrefix + banID,
				},
				discordgo.Button{
					Label:    "Audit passed",
					Style:    discordgo.SuccessButton,
					CustomID: passPrefix + banID,
				},
			},
		},
	}
}

// parseCustomID maps a component custom id back to the review action
// and ban id it belongs to.
func parseCustomID(customID string) (review.Action, string, bool) {
	switch {
	case strings.HasPrefix(customID, claimPrefix):
		return review.ActionClaim, strings.TrimPrefix(customID, claimPrefix), true
	case strings.HasPrefix(customID, failPrefix):
		return review.ActionFail, strings.TrimPrefix(customID, failPrefix), true
	case strings.HasPrefix(customID, passPrefix):
		return review.ActionPass, strings.TrimPrefix(customID, passPrefix), true
	default:
		return "", "", false
	}
}
