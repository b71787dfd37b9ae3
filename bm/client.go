// Package bm is a small BattleMetrics API client covering the endpoints
// the ban export flow needs: paginated ban listing, server/user display
// name lookup and ban mutation.
package bm

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Minimum delay between successive page fetches, per the BattleMetrics
// rate limit guidance
const defaultPageDelay = 300 * time.Millisecond

type Client struct {
	APIUrl string
	Token  string
	Logger *zap.Logger
	HTTP   *http.Client

	// Delay applied after every page fetch, including the last one
	PageDelay time.Duration
}

func New(apiUrl string, token string, logger *zap.Logger) *Client {
	return &Client{
		APIUrl: strings.TrimSuffix(apiUrl, "/"),
		Token:  token,
		Logger: logger,
		HTTP: &http.Client{
			Timeout: 30 * time.Second,
		},
		PageDelay: defaultPageDelay,
	}
}

func (c *Client) newRequest(ctx context.Context, method string, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)

	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Content-Type", "application/json")

	return req, nil
}

// sleep waits for the configured page delay unless the context
// is cancelled first.
func (c *Client) sleep(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(c.PageDelay):
		return nil
	}
}
