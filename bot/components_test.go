package bot

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"banexport/review"
)

func TestParseCustomID(t *testing.T) {
	tests := []struct {
		customID string
		action   review.Action
		banID    string
		ok       bool
	}{
		{"claim_ban_123", review.ActionClaim, "123", true},
		{"audit_failed_123", review.ActionFail, "123", true},
		{"audit_passed_123", review.ActionPass, "123", true},
		{"something_else", "", "", false},
		{"", "", "", false},
	}

	for _, tt := range tests {
		action, banID, ok := parseCustomID(tt.customID)

		assert.Equal(t, tt.ok, ok, tt.customID)
		assert.Equal(t, tt.action, action)
		assert.Equal(t, tt.banID, banID)
	}
}

func TestBanButtons(t *testing.T) {
	components := banButtons("123", "")

	require.Len(t, components, 1)

	row, ok := components[0].(discordgo.ActionsRow)
	require.True(t, ok)
	require.Len(t, row.Components, 3)

	claim := row.Components[0].(discordgo.Button)
	assert.Equal(t, "Claim", claim.Label)
	assert.Equal(t, discordgo.PrimaryButton, claim.Style)
	assert.Equal(t, "claim_ban_123", claim.CustomID)

	fail := row.Components[1].(discordgo.Button)
	assert.Equal(t, "Audit failed", fail.Label)
	assert.Equal(t, discordgo.DangerButton, fail.Style)
}

func TestBanButtonsClaimed(t *testing.T) {
	components := banButtons("123", "dickdiver44")

	row := components[0].(discordgo.ActionsRow)
	claim := row.Components[0].(discordgo.Button)

	assert.Equal(t, "Claimed by dickdiver44", claim.Label)
	assert.Equal(t, discordgo.SuccessButton, claim.Style)

	// The ban id round-trips through the claimed button too
	action, banID, ok := parseCustomID(claim.CustomID)
	assert.True(t, ok)
	assert.Equal(t, review.ActionClaim, action)
	assert.Equal(t, "123", banID)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 100))

	long := make([]rune, 0, 150)
	for i := 0; i < 150; i++ {
		long = append(long, 'x')
	}

	assert.Len(t, []rune(truncate(string(long), 100)), 100)
}
