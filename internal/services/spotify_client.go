package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/desertthunder/spotdash/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

// APIError is a non-2xx response from the Spotify Web API.
type APIError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Reason  string `json:"reason,omitempty"`
}

// Error returns Spotify's message so it can be shown to the user verbatim.
func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("spotify API error: status %d", e.Status)
}

// Unwrap maps the response onto a shared sentinel error.
func (e *APIError) Unwrap() error {
	switch {
	case e.Status == http.StatusUnauthorized:
		return shared.ErrTokenExpired
	case e.Reason == "NO_ACTIVE_DEVICE":
		return shared.ErrNoActiveDevice
	default:
		return shared.ErrAPIRequest
	}
}

// playerEndpoints maps actions to their Web API method and path.
var playerEndpoints = map[PlayerAction]struct {
	method string
	path   string
}{
	ActionPlay:     {http.MethodPut, "/me/player/play"},
	ActionPause:    {http.MethodPut, "/me/player/pause"},
	ActionNext:     {http.MethodPost, "/me/player/next"},
	ActionPrevious: {http.MethodPost, "/me/player/previous"},
}

// spotifyClient implements [Client] for a single user's token.
type spotifyClient struct {
	baseURL    string
	httpClient *http.Client
	tokens     oauth2.TokenSource
	limiter    *rate.Limiter
}

// Token returns the current token, refreshing it first if it has expired.
func (c *spotifyClient) Token() (*oauth2.Token, error) {
	token, err := c.tokens.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrTokenExpired, err)
	}
	return token, nil
}

// doRequest performs an authenticated HTTP request to the Spotify API and decodes the body into result when non-nil.
func (c *spotifyClient) doRequest(ctx context.Context, method, endpoint string, result any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			return fmt.Errorf("%w: %v", shared.ErrTokenExpired, err)
		}
		return fmt.Errorf("%w: request failed: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}

	if result == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", shared.ErrAPIRequest, err)
	}

	return nil
}

func decodeAPIError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var wrapper struct {
		Error APIError `json:"error"`
	}
	apiErr := &APIError{Status: resp.StatusCode}
	if err := json.Unmarshal(body, &wrapper); err == nil && wrapper.Error.Message != "" {
		apiErr.Message = wrapper.Error.Message
		apiErr.Reason = wrapper.Error.Reason
	}

	return apiErr
}

func clampLimit(limit, max int) int {
	if limit <= 0 {
		return 20
	}
	if limit > max {
		return max
	}
	return limit
}

// UserProfile retrieves the current authenticated user's profile.
func (c *spotifyClient) UserProfile(ctx context.Context) (*SpotifyUser, error) {
	var user SpotifyUser
	if err := c.doRequest(ctx, http.MethodGet, "/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UserPlaylists retrieves the current user's playlists with pagination.
func (c *spotifyClient) UserPlaylists(ctx context.Context, limit, offset int) (*SpotifyPaginatedPlaylists, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(clampLimit(limit, 50)))
	q.Set("offset", strconv.Itoa(offset))

	var page SpotifyPaginatedPlaylists
	if err := c.doRequest(ctx, http.MethodGet, "/me/playlists?"+q.Encode(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// TopArtists retrieves the user's top artists for term.
func (c *spotifyClient) TopArtists(ctx context.Context, limit int, term TimeRange) (*SpotifyPage[SpotifyArtist], error) {
	var page SpotifyPage[SpotifyArtist]
	if err := c.doRequest(ctx, http.MethodGet, topEndpoint("artists", limit, term), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// TopTracks retrieves the user's top tracks for term.
func (c *spotifyClient) TopTracks(ctx context.Context, limit int, term TimeRange) (*SpotifyPage[SpotifyTrack], error) {
	var page SpotifyPage[SpotifyTrack]
	if err := c.doRequest(ctx, http.MethodGet, topEndpoint("tracks", limit, term), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func topEndpoint(kind string, limit int, term TimeRange) string {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(clampLimit(limit, 50)))
	q.Set("time_range", string(term))
	return "/me/top/" + kind + "?" + q.Encode()
}

// RecentlyPlayed retrieves the user's most recently played tracks.
func (c *spotifyClient) RecentlyPlayed(ctx context.Context, limit int) (*SpotifyPage[SpotifyPlayHistory], error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(clampLimit(limit, 50)))

	var page SpotifyPage[SpotifyPlayHistory]
	if err := c.doRequest(ctx, http.MethodGet, "/me/player/recently-played?"+q.Encode(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Search queries the catalogue for tracks or artists.
func (c *spotifyClient) Search(ctx context.Context, query string, kind SearchType, limit int) (*SpotifySearchResults, error) {
	if query == "" {
		return nil, fmt.Errorf("%w: empty search query", shared.ErrInvalidInput)
	}

	q := url.Values{}
	q.Set("q", query)
	q.Set("type", string(kind))
	q.Set("limit", strconv.Itoa(clampLimit(limit, 50)))

	var results SpotifySearchResults
	if err := c.doRequest(ctx, http.MethodGet, "/search?"+q.Encode(), &results); err != nil {
		return nil, err
	}
	return &results, nil
}

// Player sends a playback command to the user's active device.
func (c *spotifyClient) Player(ctx context.Context, action PlayerAction) error {
	ep, ok := playerEndpoints[action]
	if !ok {
		return fmt.Errorf("%w: unknown player action %q", shared.ErrInvalidArgument, action)
	}
	return c.doRequest(ctx, ep.method, ep.path, nil)
}
