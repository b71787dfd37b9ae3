package bm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpireBan(t *testing.T) {
	expires := time.Date(2023, 6, 1, 15, 4, 5, 0, time.UTC)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/bans/12345", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var payload struct {
			Data struct {
				Type       string `json:"type"`
				ID         string `json:"id"`
				Attributes struct {
					Expires string `json:"expires"`
				} `json:"attributes"`
			} `json:"data"`
		}

		require.NoError(t, json.Unmarshal(body, &payload))
		assert.Equal(t, "ban", payload.Data.Type)
		assert.Equal(t, "12345", payload.Data.ID)
		assert.Equal(t, "2023-06-01T15:04:05Z", payload.Data.Attributes.Expires)

		fmt.Fprint(w, `{"data": {"id": "12345"}}`)
	}))

	defer srv.Close()

	require.NoError(t, newTestClient(srv).ExpireBan(context.Background(), "12345", expires))
}

func TestExpireBanUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, "no permission")
	}))

	defer srv.Close()

	err := newTestClient(srv).ExpireBan(context.Background(), "12345", time.Now())

	var upstreamErr *UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, http.StatusForbidden, upstreamErr.Status)
	assert.Equal(t, "no permission", upstreamErr.Body)
}

func TestCreateBan(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/bans", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var payload struct {
			Data struct {
				Type       string `json:"type"`
				Attributes struct {
					Reason      string       `json:"reason"`
					Identifiers []Identifier `json:"identifiers"`
				} `json:"attributes"`
				Relationships struct {
					Server Relation `json:"server"`
				} `json:"relationships"`
			} `json:"data"`
		}

		require.NoError(t, json.Unmarshal(body, &payload))
		assert.Equal(t, "cheating", payload.Data.Attributes.Reason)
		require.Len(t, payload.Data.Attributes.Identifiers, 1)
		assert.Equal(t, "steamid", payload.Data.Attributes.Identifiers[0].Type)
		assert.Equal(t, "76561198000000000", payload.Data.Attributes.Identifiers[0].Identifier)
		assert.Equal(t, "23928693", payload.Data.Relationships.Server.Data.ID)

		fmt.Fprint(w, `{"data": {"id": "ustvnew"}}`)
	}))

	defer srv.Close()

	banID, err := newTestClient(srv).CreateBan(context.Background(), "23928693", "76561198000000000", "cheating")

	require.NoError(t, err)
	assert.Equal(t, "ustvnew", banID)
}
