// Package client talks to the external entity-lookup oracle: a read-only
// service that returns entity metadata by canonical identifier. Responses
// are cached; the oracle is never consulted on write paths.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"

	"github.com/jawafdehi/jawaf"
)

const defaultTimeout = 3 * time.Second

type Client struct {
	client    *http.Client
	cache     *cache.Cache
	userAgent string
	endpoint  string
}

func New(endpoint string) *Client {
	httpClient := http.Client{
		Timeout: defaultTimeout,
	}

	c := &Client{
		client:    &httpClient,
		cache:     cache.New(10*time.Minute, 15*time.Minute),
		userAgent: "jawaf-core",
		endpoint:  endpoint,
	}
	httpClient.Transport = c
	return c
}

func (c *Client) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", c.userAgent)
	return http.DefaultTransport.RoundTrip(req)
}

// GetEntity resolves metadata for an external entity identifier.
func (c *Client) GetEntity(ctx context.Context, externalID string) (jawaf.EntityMetadata, error) {
	cacheKey := "entity:" + externalID
	if cached, found := c.cache.Get(cacheKey); found {
		return cached.(jawaf.EntityMetadata), nil
	}

	var meta jawaf.EntityMetadata
	path := "/entities/" + url.PathEscape(externalID)
	if err := c.httpRequest(ctx, http.MethodGet, path, &meta); err != nil {
		return jawaf.EntityMetadata{}, err
	}

	c.cache.Set(cacheKey, meta, cache.DefaultExpiration)
	return meta, nil
}

func (c *Client) httpRequest(ctx context.Context, method, path string, response any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, nil)
	if err != nil {
		return errors.Wrap(err, "build oracle request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "oracle request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "read oracle response")
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("oracle returned %d: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, response); err != nil {
		return errors.Wrap(err, "decode oracle response")
	}
	return nil
}
