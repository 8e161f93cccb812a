// Package client talks to the dashboard's envelope API.
//
// [APIClient] is the HTTP implementation used by the CLI and TUI. [Local] serves the same calls from an
// in-process Spotify client, which is how the dashboard renders search partials without a loopback request.
package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/desertthunder/spotdash/internal/envelope"
	"github.com/desertthunder/spotdash/internal/services"
)

// SearchLimit is the number of items requested per search.
const SearchLimit = 10

// Empty is the data of a response that carries none.
type Empty struct{}

// Health is the data returned by /healthz.
type Health struct {
	Status string `json:"status"`
}

// API is the set of dashboard calls the controller depends on.
type API interface {
	Player(ctx context.Context, action services.PlayerAction) envelope.Result[Empty]
	Search(ctx context.Context, query string, kind services.SearchType) envelope.Result[services.SpotifySearchResults]
}

var _ API = (*APIClient)(nil)

// APIClient makes requests to a running dashboard service.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
	cookieName string
	sessionID  string
}

// Option configures an [APIClient].
type Option func(*APIClient)

// WithSession sends sessionID in the named cookie on every request.
func WithSession(cookieName, sessionID string) Option {
	return func(c *APIClient) {
		c.cookieName = cookieName
		c.sessionID = sessionID
	}
}

// New creates an API client for the dashboard at baseURL.
func New(baseURL string, httpClient *http.Client, opts ...Option) *APIClient {
	if baseURL == "" {
		baseURL = "http://127.0.0.1:8888"
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	c := &APIClient{baseURL: baseURL, httpClient: httpClient}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the dashboard address requests are sent to.
func (c *APIClient) BaseURL() string {
	return c.baseURL
}

// Player sends POST /player/{action}.
func (c *APIClient) Player(ctx context.Context, action services.PlayerAction) envelope.Result[Empty] {
	return call[Empty](ctx, c, http.MethodPost, "/player/"+url.PathEscape(string(action)))
}

// Search sends GET /search?q=<query>&type=<kind>.
func (c *APIClient) Search(ctx context.Context, query string, kind services.SearchType) envelope.Result[services.SpotifySearchResults] {
	q := url.Values{}
	q.Set("q", query)
	q.Set("type", string(kind))
	return call[services.SpotifySearchResults](ctx, c, http.MethodGet, "/search?"+q.Encode())
}

// Health sends GET /healthz.
func (c *APIClient) Health(ctx context.Context) envelope.Result[Health] {
	return call[Health](ctx, c, http.MethodGet, "/healthz")
}

// call performs one request and decodes the envelope. Transport failures become Err results.
func call[T any](ctx context.Context, c *APIClient, method, path string) envelope.Result[T] {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return envelope.Err[T](fmt.Sprintf("failed to create request: %v", err))
	}
	req.Header.Set("Accept", "application/json")

	if c.sessionID != "" {
		req.AddCookie(&http.Cookie{Name: c.cookieName, Value: c.sessionID})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return envelope.Err[T](fmt.Sprintf("request failed: %v", err))
	}
	defer resp.Body.Close()

	return envelope.Decode[T](resp.Body)
}
