package bm

import (
	"context"
	"net/http"

	"github.com/infinitybotlist/eureka/jsonimpl"
	"go.uber.org/zap"
)

// ServerName resolves a server's display name. Lookup failure is a
// degradation, not an error: the raw server ID is returned instead.
func (c *Client) ServerName(ctx context.Context, serverID string) string {
	name, err := c.lookupName(ctx, c.APIUrl+"/servers/"+serverID)

	if err != nil {
		c.Logger.Warn("Failed to resolve server name, falling back to ID", zap.String("serverId", serverID), zap.Error(err))
		return serverID
	}

	return name
}

// UserName resolves a BattleMetrics user's display name, falling back
// to the raw user ID on any failure.
func (c *Client) UserName(ctx context.Context, userID string) string {
	name, err := c.lookupName(ctx, c.APIUrl+"/users/"+userID)

	if err != nil {
		c.Logger.Warn("Failed to resolve user name, falling back to ID", zap.String("userId", userID), zap.Error(err))
		return userID
	}

	return name
}

func (c *Client) lookupName(ctx context.Context, resourceURL string) (string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, resourceURL, nil)

	if err != nil {
		return "", err
	}

	resp, err := c.HTTP.Do(req)

	if err != nil {
		return "", err
	}

	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &UpstreamError{
			Status: resp.StatusCode,
			Body:   readBody(resp),
		}
	}

	var res resource

	err = jsonimpl.UnmarshalReader(resp.Body, &res)

	if err != nil {
		return "", err
	}

	if res.Data.Attributes.Name != "" {
		return res.Data.Attributes.Name, nil
	}

	if res.Data.Attributes.Nickname != "" {
		return res.Data.Attributes.Nickname, nil
	}

	return "", &UpstreamError{
		Status: resp.StatusCode,
		Body:   "resource has no display name",
	}
}
