package bm

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/infinitybotlist/eureka/jsonimpl"
)

type banPayload struct {
	Data banPayloadData `json:"data"`
}

type banPayloadData struct {
	Type          string                   `json:"type"`
	ID            string                   `json:"id,omitempty"`
	Attributes    map[string]any           `json:"attributes"`
	Relationships *banPayloadRelationships `json:"relationships,omitempty"`
}

type banPayloadRelationships struct {
	Server Relation `json:"server"`
}

// ExpireBan sets a ban's expiry, effecting an unban when the time is in
// the past or now.
func (c *Client) ExpireBan(ctx context.Context, banID string, expires time.Time) error {
	payload := banPayload{
		Data: banPayloadData{
			Type: "ban",
			ID:   banID,
			Attributes: map[string]any{
				"expires": expires.UTC().Format(time.RFC3339),
			},
		},
	}

	var body bytes.Buffer

	err := jsonimpl.MarshalToWriter(&body, payload)

	if err != nil {
		return fmt.Errorf("failed to marshal expire payload: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPatch, c.APIUrl+"/bans/"+banID, &body)

	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.HTTP.Do(req)

	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &UpstreamError{
			Status: resp.StatusCode,
			Body:   readBody(resp),
		}
	}

	return nil
}

// CreateBan creates a new ban for a steamid on a server and returns the
// new ban's ID.
func (c *Client) CreateBan(ctx context.Context, serverID string, steamID string, reason string) (string, error) {
	payload := banPayload{
		Data: banPayloadData{
			Type: "ban",
			Attributes: map[string]any{
				"reason": reason,
				"identifiers": []Identifier{
					{
						Type:       "steamid",
						Identifier: steamID,
					},
				},
			},
			Relationships: &banPayloadRelationships{
				Server: Relation{
					Data: RelationData{
						Type: "server",
						ID:   serverID,
					},
				},
			},
		},
	}

	var body bytes.Buffer

	err := jsonimpl.MarshalToWriter(&body, payload)

	if err != nil {
		return "", fmt.Errorf("failed to marshal ban payload: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, c.APIUrl+"/bans", &body)

	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.HTTP.Do(req)

	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &UpstreamError{
			Status: resp.StatusCode,
			Body:   readBody(resp),
		}
	}

	var created resource

	err = jsonimpl.UnmarshalReader(resp.Body, &created)

	if err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return created.Data.ID, nil
}
