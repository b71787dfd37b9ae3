package bm

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/infinitybotlist/eureka/jsonimpl"
)

// FetchAllBans fetches every ban for a server, following the
// server-supplied next cursor until the result set is exhausted.
//
// banListID scopes the fetch to one ban list when non-empty. sortOrder
// is "asc" or "desc" by ban creation time.
//
// The fetch is atomic-or-failed: a non-success status or a malformed
// page on any request discards everything accumulated so far and
// returns an *UpstreamError.
func (c *Client) FetchAllBans(ctx context.Context, serverID string, banListID string, sortOrder string) ([]Ban, error) {
	u, err := url.Parse(c.APIUrl + "/bans")

	if err != nil {
		return nil, fmt.Errorf("failed to parse bans URL: %w", err)
	}

	q := u.Query()
	q.Set("filter[server]", serverID)

	if banListID != "" {
		q.Set("filter[banList]", banListID)
	}

	if sortOrder == "desc" {
		q.Set("sort", "-timestamp")
	} else {
		q.Set("sort", "timestamp")
	}

	q.Set("page[size]", "100")
	q.Set("include", "user")
	u.RawQuery = q.Encode()

	var allBans []Ban

	next := u.String()

	for next != "" {
		page, err := c.fetchBansPage(ctx, next)

		if err != nil {
			return nil, err
		}

		allBans = append(allBans, page.Data...)

		next = ""

		if page.Links.Next != "" {
			if strings.HasPrefix(page.Links.Next, "http") {
				next = page.Links.Next
			} else {
				next = c.APIUrl + page.Links.Next
			}
		}

		// Rate limit, applies after the final page too
		if err := c.sleep(ctx); err != nil {
			return nil, err
		}
	}

	return allBans, nil
}

// NewestBan fetches the single most recently created ban across all
// servers the token can see, or nil when there are none.
func (c *Client) NewestBan(ctx context.Context) (*Ban, error) {
	u, err := url.Parse(c.APIUrl + "/bans")

	if err != nil {
		return nil, fmt.Errorf("failed to parse bans URL: %w", err)
	}

	q := u.Query()
	q.Set("sort", "-timestamp")
	q.Set("page[size]", "1")
	u.RawQuery = q.Encode()

	page, err := c.fetchBansPage(ctx, u.String())

	if err != nil {
		return nil, err
	}

	if len(page.Data) == 0 {
		return nil, nil
	}

	ban := page.Data[0]

	return &ban, nil
}

func (c *Client) fetchBansPage(ctx context.Context, pageURL string) (*bansPage, error) {
	req, err := c.newRequest(ctx, http.MethodGet, pageURL, nil)

	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.HTTP.Do(req)

	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{
			Status: resp.StatusCode,
			Body:   readBody(resp),
		}
	}

	var page bansPage

	err = jsonimpl.UnmarshalReader(resp.Body, &page)

	if err != nil {
		return nil, &UpstreamError{
			Status: resp.StatusCode,
			Body:   "malformed response: " + err.Error(),
		}
	}

	// Fail closed on records the rest of the pipeline cannot use
	for i := range page.Data {
		if page.Data[i].ID == "" || page.Data[i].ServerID() == "" {
			return nil, &UpstreamError{
				Status: resp.StatusCode,
				Body:   fmt.Sprintf("malformed ban record at index %d", i),
			}
		}
	}

	return &page, nil
}

func readBody(resp *http.Response) string {
	if resp.Body == nil {
		return "<no body>"
	}

	bytes, err := io.ReadAll(resp.Body)

	if err != nil {
		return "<no body>"
	}

	return string(bytes)
}
