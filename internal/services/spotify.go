// Spotify Web API implementation of [OAuthService] and [Client]
//
// Spotify API response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	spotifyAuthURL  = "https://accounts.spotify.com/authorize"
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"

	defaultRedirectURI = "http://127.0.0.1:8888/callback"
)

// Scopes requested at login. Covers playback control, top items, recently played and playlists.
var Scopes = []string{
	"user-read-playback-state",
	"user-modify-playback-state",
	"user-read-currently-playing",
	"user-top-read",
	"ugc-image-upload",
	"app-remote-control",
	"streaming",
	"playlist-read-private",
	"playlist-read-collaborative",
	"user-follow-read",
	"user-read-playback-position",
	"user-read-recently-played",
	"user-library-read",
}

type followers struct {
	Total int `json:"total"`
}

// SpotifyUser represents a Spotify user profile.
type SpotifyUser struct {
	ID          string         `json:"id"`
	DisplayName string         `json:"display_name"`
	Email       string         `json:"email,omitempty"`
	Country     string         `json:"country,omitempty"`
	Product     string         `json:"product,omitempty"` // premium, free, etc.
	Followers   followers      `json:"followers"`
	Images      []SpotifyImage `json:"images"`
}

// SpotifyImage represents an image resource.
type SpotifyImage struct {
	URL    string `json:"url"`
	Height int    `json:"height,omitempty"`
	Width  int    `json:"width,omitempty"`
}

// SpotifyTrack represents a Spotify track.
type SpotifyTrack struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Artists    []SpotifyArtist `json:"artists"`
	Album      SpotifyAlbum    `json:"album"`
	DurationMS int             `json:"duration_ms"`
	Explicit   bool            `json:"explicit"`
	Popularity int             `json:"popularity"`
	URI        string          `json:"uri"`
}

// SpotifyArtist represents a Spotify artist.
type SpotifyArtist struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Genres []string       `json:"genres,omitempty"`
	Images []SpotifyImage `json:"images,omitempty"`
	URI    string         `json:"uri"`
}

// SpotifyAlbum represents a Spotify album.
type SpotifyAlbum struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Artists     []SpotifyArtist `json:"artists,omitempty"`
	ReleaseDate string          `json:"release_date,omitempty"`
	Images      []SpotifyImage  `json:"images"`
	URI         string          `json:"uri"`
}

// Owner is the owner of a playlist.
type Owner struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// SpotifyPage is Spotify's paging object.
type SpotifyPage[T any] struct {
	Href     string  `json:"href"`
	Items    []T     `json:"items"`
	Limit    int     `json:"limit"`
	Offset   int     `json:"offset"`
	Total    int     `json:"total"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
}

// SpotifyPlayHistory is one entry of the recently played list.
type SpotifyPlayHistory struct {
	Track    SpotifyTrack `json:"track"`
	PlayedAt string       `json:"played_at"`
}

type simplePlaylistTrack struct {
	Total int `json:"total"`
}

// SpotifySimplePlaylist represents a simplified playlist object (used in lists).
type SpotifySimplePlaylist struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Owner       Owner               `json:"owner"`
	Public      bool                `json:"public"`
	Tracks      simplePlaylistTrack `json:"tracks"`
	Images      []SpotifyImage      `json:"images"`
	URI         string              `json:"uri"`
}

// SpotifyPaginatedPlaylists represents a paginated response of playlists.
type SpotifyPaginatedPlaylists = SpotifyPage[SpotifySimplePlaylist]

// SpotifySearchResults is the body of GET /search. Only the collections that were requested are present.
type SpotifySearchResults struct {
	Tracks  *SpotifyPage[SpotifyTrack]  `json:"tracks,omitempty"`
	Artists *SpotifyPage[SpotifyArtist] `json:"artists,omitempty"`
}

// Option customises a [SpotifyService].
type Option func(*SpotifyService)

// WithBaseURL points API requests somewhere other than api.spotify.com.
func WithBaseURL(u string) Option {
	return func(s *SpotifyService) { s.baseURL = u }
}

// WithEndpoint overrides the OAuth authorize and token URLs.
func WithEndpoint(e oauth2.Endpoint) Option {
	return func(s *SpotifyService) { s.config.Endpoint = e }
}

// WithHTTPClient sets the base transport used for both token and API requests.
func WithHTTPClient(c *http.Client) Option {
	return func(s *SpotifyService) { s.httpClient = c }
}

// WithRateLimit limits outbound API requests to perSecond with the given burst.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(s *SpotifyService) { s.limiter = rate.NewLimiter(rate.Limit(perSecond), burst) }
}

var _ OAuthService = (*SpotifyService)(nil)

// SpotifyService implements [OAuthService] for the Spotify accounts service.
type SpotifyService struct {
	config     *oauth2.Config
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewSpotifyService creates a new Spotify service with the given OAuth2 credentials.
func NewSpotifyService(credentials map[string]string, opts ...Option) (*SpotifyService, error) {
	clientID, ok := credentials["client_id"]
	if !ok || clientID == "" {
		return nil, fmt.Errorf("missing client_id in credentials")
	}

	clientSecret, ok := credentials["client_secret"]
	if !ok || clientSecret == "" {
		return nil, fmt.Errorf("missing client_secret in credentials")
	}

	redirectURI, ok := credentials["redirect_uri"]
	if !ok || redirectURI == "" {
		redirectURI = defaultRedirectURI
	}

	s := &SpotifyService{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURI,
			Scopes:       Scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:  spotifyAuthURL,
				TokenURL: spotifyTokenURL,
			},
		},
		baseURL:    spotifyBaseURL,
		httpClient: http.DefaultClient,
		limiter:    rate.NewLimiter(rate.Limit(10), 5),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

func (s *SpotifyService) Name() string {
	return "Spotify"
}

// GetAuthURL returns the OAuth2 authorization URL for user login.
func (s *SpotifyService) GetAuthURL(state string) string {
	return s.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// GetOAuthConfig exposes the OAuth2 configuration, used by the CLI callback server.
func (s *SpotifyService) GetOAuthConfig() *oauth2.Config {
	return s.config
}

// Exchange trades an authorization code for a token.
func (s *SpotifyService) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := s.config.Exchange(s.oauthContext(ctx), code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange auth code: %w", err)
	}
	return token, nil
}

// Client returns a [Client] acting as the owner of token.
//
// The token source refreshes the token when it expires; the refreshed value is available from [Client.Token].
func (s *SpotifyService) Client(ctx context.Context, token *oauth2.Token) Client {
	ctx = s.oauthContext(ctx)
	ts := s.config.TokenSource(ctx, token)
	return &spotifyClient{
		baseURL:    s.baseURL,
		httpClient: oauth2.NewClient(ctx, ts),
		tokens:     ts,
		limiter:    s.limiter,
	}
}

// oauthContext makes oauth2 use the service's HTTP client for token requests.
func (s *SpotifyService) oauthContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)
}
