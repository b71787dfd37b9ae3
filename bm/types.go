package bm

import "time"

// Ban is one ban record as returned by the BattleMetrics bans endpoint.
// Timestamps are kept as the raw strings the API sent; records whose
// timestamp fails to parse are filtered out by callers, not here.
type Ban struct {
	ID            string           `json:"id"`
	Type          string           `json:"type"`
	Attributes    BanAttributes    `json:"attributes"`
	Relationships BanRelationships `json:"relationships"`
	Meta          BanMeta          `json:"meta"`
}

type BanAttributes struct {
	Timestamp   string       `json:"timestamp"`
	Expires     string       `json:"expires"`
	Reason      string       `json:"reason"`
	Notes       string       `json:"notes"`
	Identifiers []Identifier `json:"identifiers"`
}

type Identifier struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}

type BanRelationships struct {
	Server Relation `json:"server"`
	User   Relation `json:"user"`
}

type Relation struct {
	Data RelationData `json:"data"`
}

type RelationData struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

type BanMeta struct {
	// Player name BattleMetrics resolved for the ban, if any
	Player string `json:"player"`
}

func (b *Ban) ServerID() string {
	return b.Relationships.Server.Data.ID
}

func (b *Ban) BannedByID() string {
	return b.Relationships.User.Data.ID
}

// CreatedAt parses the ban's creation timestamp.
func (b *Ban) CreatedAt() (time.Time, error) {
	return time.Parse(time.RFC3339, b.Attributes.Timestamp)
}

// ExpiresAt returns the ban's expiry time, or nil for a permanent ban.
func (b *Ban) ExpiresAt() (*time.Time, error) {
	if b.Attributes.Expires == "" {
		return nil, nil
	}

	t, err := time.Parse(time.RFC3339, b.Attributes.Expires)

	if err != nil {
		return nil, err
	}

	return &t, nil
}

type bansPage struct {
	Data  []Ban     `json:"data"`
	Links pageLinks `json:"links"`
}

type pageLinks struct {
	Next string `json:"next"`
}

type resource struct {
	Data resourceData `json:"data"`
}

type resourceData struct {
	ID         string             `json:"id"`
	Attributes resourceAttributes `json:"attributes"`
}

type resourceAttributes struct {
	Name     string `json:"name"`
	Nickname string `json:"nickname"`
}
