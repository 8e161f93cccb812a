// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/spotdash/internal/services"
	"golang.org/x/oauth2"
)

// MockSpotifyClient is a test double for [services.Client].
//
// Each method returns the matching field; Err, when set, is returned by every call instead.
type MockSpotifyClient struct {
	User      *services.SpotifyUser
	Playlists *services.SpotifyPaginatedPlaylists
	Artists   *services.SpotifyPage[services.SpotifyArtist]
	Tracks    *services.SpotifyPage[services.SpotifyTrack]
	Recent    *services.SpotifyPage[services.SpotifyPlayHistory]
	Results   *services.SpotifySearchResults
	Tok       *oauth2.Token
	Err       error

	mu    sync.Mutex
	calls []string
}

var _ services.Client = (*MockSpotifyClient)(nil)

func (m *MockSpotifyClient) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
}

// Calls returns the names of the methods called so far, in order.
func (m *MockSpotifyClient) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *MockSpotifyClient) Player(ctx context.Context, action services.PlayerAction) error {
	m.record("Player:" + string(action))
	return m.Err
}

func (m *MockSpotifyClient) Search(ctx context.Context, query string, kind services.SearchType, limit int) (*services.SpotifySearchResults, error) {
	m.record("Search:" + query + ":" + string(kind))
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Results == nil {
		return &services.SpotifySearchResults{}, nil
	}
	return m.Results, nil
}

func (m *MockSpotifyClient) UserProfile(ctx context.Context) (*services.SpotifyUser, error) {
	m.record("UserProfile")
	if m.Err != nil {
		return nil, m.Err
	}
	if m.User == nil {
		return &services.SpotifyUser{}, nil
	}
	return m.User, nil
}

func (m *MockSpotifyClient) UserPlaylists(ctx context.Context, limit, offset int) (*services.SpotifyPaginatedPlaylists, error) {
	m.record("UserPlaylists")
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Playlists == nil {
		return &services.SpotifyPaginatedPlaylists{}, nil
	}
	return m.Playlists, nil
}

func (m *MockSpotifyClient) TopArtists(ctx context.Context, limit int, term services.TimeRange) (*services.SpotifyPage[services.SpotifyArtist], error) {
	m.record("TopArtists:" + string(term))
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Artists == nil {
		return &services.SpotifyPage[services.SpotifyArtist]{}, nil
	}
	return m.Artists, nil
}

func (m *MockSpotifyClient) TopTracks(ctx context.Context, limit int, term services.TimeRange) (*services.SpotifyPage[services.SpotifyTrack], error) {
	m.record("TopTracks:" + string(term))
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Tracks == nil {
		return &services.SpotifyPage[services.SpotifyTrack]{}, nil
	}
	return m.Tracks, nil
}

func (m *MockSpotifyClient) RecentlyPlayed(ctx context.Context, limit int) (*services.SpotifyPage[services.SpotifyPlayHistory], error) {
	m.record("RecentlyPlayed")
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Recent == nil {
		return &services.SpotifyPage[services.SpotifyPlayHistory]{}, nil
	}
	return m.Recent, nil
}

func (m *MockSpotifyClient) Token() (*oauth2.Token, error) {
	if m.Tok == nil {
		return &oauth2.Token{AccessToken: "mock_access_token", TokenType: "Bearer"}, nil
	}
	return m.Tok, nil
}

// MockOAuthService is a test double for [services.OAuthService] that hands out [MockSpotifyClient].
type MockOAuthService struct {
	Spotify     *MockSpotifyClient
	ExchangeErr error
	Exchanged   *oauth2.Token
}

var _ services.OAuthService = (*MockOAuthService)(nil)

func (m *MockOAuthService) GetAuthURL(state string) string {
	return "https://accounts.spotify.com/authorize?state=" + state
}

func (m *MockOAuthService) GetOAuthConfig() *oauth2.Config {
	return &oauth2.Config{ClientID: "mock"}
}

func (m *MockOAuthService) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	if m.ExchangeErr != nil {
		return nil, m.ExchangeErr
	}
	if m.Exchanged != nil {
		return m.Exchanged, nil
	}
	return &oauth2.Token{AccessToken: "access_" + code, RefreshToken: "refresh_" + code, TokenType: "Bearer"}, nil
}

func (m *MockOAuthService) Client(ctx context.Context, token *oauth2.Token) services.Client {
	if m.Spotify == nil {
		m.Spotify = &MockSpotifyClient{}
	}
	return m.Spotify
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
