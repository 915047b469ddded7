package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jawafdehi/jawaf"
)

func TestGetEntity(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		assert.Equal(t, "/entities/Q42", r.URL.Path)
		assert.Equal(t, "jawaf-core", r.Header.Get("User-Agent"))
		_ = json.NewEncoder(w).Encode(jawaf.EntityMetadata{
			ID:          "Q42",
			DisplayName: "Port Director",
			Aliases:     []string{"The Director"},
		})
	}))
	defer server.Close()

	c := New(server.URL)

	meta, err := c.GetEntity(context.Background(), "Q42")
	require.NoError(t, err)
	assert.Equal(t, "Port Director", meta.DisplayName)

	// Second lookup is served from cache.
	meta, err = c.GetEntity(context.Background(), "Q42")
	require.NoError(t, err)
	assert.Equal(t, []string{"The Director"}, meta.Aliases)
	assert.Equal(t, 1, hits)
}

func TestGetEntityErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unknown entity", http.StatusNotFound)
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.GetEntity(context.Background(), "Q404")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestGetEntityUnreachable(t *testing.T) {
	c := New("http://127.0.0.1:1")
	_, err := c.GetEntity(context.Background(), "Q42")
	assert.Error(t, err)
}
