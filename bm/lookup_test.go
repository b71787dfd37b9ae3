package bm

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServerName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/servers/23928693", r.URL.Path)
		fmt.Fprint(w, `{"data": {"id": "23928693", "attributes": {"name": "Main Server #1"}}}`)
	}))

	defer srv.Close()

	assert.Equal(t, "Main Server #1", newTestClient(srv).ServerName(context.Background(), "23928693"))
}

func TestServerNameFallsBackToID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	defer srv.Close()

	// Lookup failure degrades to the raw ID, never errors
	assert.Equal(t, "23928693", newTestClient(srv).ServerName(context.Background(), "23928693"))
}

func TestUserName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/42", r.URL.Path)
		fmt.Fprint(w, `{"data": {"id": "42", "attributes": {"nickname": "admin44"}}}`)
	}))

	defer srv.Close()

	assert.Equal(t, "admin44", newTestClient(srv).UserName(context.Background(), "42"))
}

func TestUserNameFallsBackToID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": {"id": "42", "attributes": {}}}`)
	}))

	defer srv.Close()

	assert.Equal(t, "42", newTestClient(srv).UserName(context.Background(), "42"))
}
