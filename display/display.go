// Package display turns raw BattleMetrics ban records into the
// display-ready summaries ban review threads are built from.
package display

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"banexport/bm"
)

const (
	Unknown          = "Unknown"
	NoReasonProvided = "No reason provided"
	NoNotesProvided  = "No notes provided"
)

// Resolver resolves BattleMetrics IDs into display names. Resolution is
// best-effort: implementations fall back to the raw ID and never error.
type Resolver interface {
	ServerName(ctx context.Context, serverID string) string
	UserName(ctx context.Context, userID string) string
}

type Summary struct {
	BanID      string
	ServerID   string
	ServerName string
	PlayerName string
	SteamID    string
	BannedBy   string
	Posted     string
	ExpiresIn  string
	Reason     string
	Notes      string
	CreatedAt  time.Time
}

var htmlTags = regexp.MustCompile(`<[^>]*>`)

// StripHTML removes markup from a free-text field, leaving plain text.
func StripHTML(s string) string {
	return strings.TrimSpace(htmlTags.ReplaceAllString(s, ""))
}

// Normalize derives a Summary from a ban record. Times are rendered in
// loc; remaining-time buckets are computed relative to now.
func Normalize(ctx context.Context, ban *bm.Ban, now time.Time, resolver Resolver, loc *time.Location) Summary {
	playerName, steamID := parseIdentifiers(ban.Attributes.Identifiers, ban.Meta.Player)

	serverName := StripHTML(resolver.ServerName(ctx, ban.ServerID()))

	if serverName == "" {
		serverName = ban.ServerID()
	}

	var bannedBy string

	if ban.BannedByID() != "" {
		bannedBy = StripHTML(resolver.UserName(ctx, ban.BannedByID()))
	}

	reason := StripHTML(ban.Attributes.Reason)

	if reason == "" {
		reason = NoReasonProvided
	}

	notes := StripHTML(ban.Attributes.Notes)

	if notes == "" {
		notes = NoNotesProvided
	}

	summary := Summary{
		BanID:      ban.ID,
		ServerID:   ban.ServerID(),
		ServerName: serverName,
		PlayerName: playerName,
		SteamID:    steamID,
		BannedBy:   bannedBy,
		Posted:     Unknown,
		Reason:     reason,
		Notes:      notes,
	}

	if createdAt, err := ban.CreatedAt(); err == nil {
		summary.CreatedAt = createdAt
		summary.Posted = createdAt.In(loc).Format("02/01/2006, 15:04:05")
	}

	expiresAt, err := ban.ExpiresAt()

	if err != nil {
		summary.ExpiresIn = Unknown
	} else {
		summary.ExpiresIn = ExpiresIn(now, expiresAt)
	}

	return summary
}

// parseIdentifiers resolves the player name and steamid from a ban's
// identity attributes. When the same identifier type appears more than
// once the last one wins; no ordering is assumed from upstream.
func parseIdentifiers(identifiers []bm.Identifier, fallbackName string) (string, string) {
	playerName := fallbackName

	if playerName == "" {
		playerName = Unknown
	}

	steamID := Unknown

	for _, id := range identifiers {
		if id.Identifier == "" {
			continue
		}

		switch strings.ToLower(id.Type) {
		case "name":
			playerName = id.Identifier
		case "steamid":
			steamID = id.Identifier
		}
	}

	return playerName, steamID
}

// ExpiresIn buckets the remaining time until expiry: "Perm" when no
// expiry is set, "Expired" once it has passed, otherwise minutes below
// an hour, hours below a day and days beyond, rounded to nearest.
func ExpiresIn(now time.Time, expiresAt *time.Time) string {
	if expiresAt == nil {
		return "Perm"
	}

	diff := expiresAt.Sub(now)

	switch {
	case diff <= 0:
		return "Expired"
	case diff < time.Hour:
		return fmt.Sprintf("%dm", int(math.Round(diff.Minutes())))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh", int(math.Round(diff.Hours())))
	default:
		return fmt.Sprintf("%dd", int(math.Round(diff.Hours()/24)))
	}
}
