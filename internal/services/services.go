// package services defines the Spotify Web API client used by the dashboard
package services

import (
	"context"
	"fmt"

	"github.com/desertthunder/spotdash/internal/shared"
	"golang.org/x/oauth2"
)

// PlayerAction is a playback command accepted by POST /player/{action}.
type PlayerAction string

const (
	ActionPlay     PlayerAction = "play"
	ActionPause    PlayerAction = "pause"
	ActionNext     PlayerAction = "next"
	ActionPrevious PlayerAction = "previous"
)

// PlayerActions lists every action in button order.
var PlayerActions = []PlayerAction{ActionPlay, ActionPause, ActionPrevious, ActionNext}

// ParsePlayerAction validates a raw action name.
func ParsePlayerAction(s string) (PlayerAction, error) {
	switch a := PlayerAction(s); a {
	case ActionPlay, ActionPause, ActionNext, ActionPrevious:
		return a, nil
	}
	return "", fmt.Errorf("%w: unknown player action %q", shared.ErrInvalidArgument, s)
}

// SearchType selects which item collection a search returns.
type SearchType string

const (
	SearchTrack  SearchType = "track"
	SearchArtist SearchType = "artist"
)

// ParseSearchType validates a raw search type. Empty input defaults to [SearchTrack].
func ParseSearchType(s string) (SearchType, error) {
	switch t := SearchType(s); t {
	case "":
		return SearchTrack, nil
	case SearchTrack, SearchArtist:
		return t, nil
	}
	return "", fmt.Errorf("%w: unsupported search type %q", shared.ErrInvalidArgument, s)
}

// TimeRange is the window Spotify uses for top artists and tracks.
type TimeRange string

const (
	ShortTerm  TimeRange = "short_term"
	MediumTerm TimeRange = "medium_term"
	LongTerm   TimeRange = "long_term"
)

// TimeRanges lists every range in selector order.
var TimeRanges = []TimeRange{ShortTerm, MediumTerm, LongTerm}

// ParseTimeRange validates a raw term. Empty or unknown input falls back to [ShortTerm].
func ParseTimeRange(s string) TimeRange {
	for _, t := range TimeRanges {
		if string(t) == s {
			return t
		}
	}
	return ShortTerm
}

// Player controls playback on the user's active device.
type Player interface {
	Player(ctx context.Context, action PlayerAction) error
}

// Searcher runs catalogue searches.
type Searcher interface {
	Search(ctx context.Context, query string, kind SearchType, limit int) (*SpotifySearchResults, error)
}

// Library reads the signed-in user's profile and listening data.
type Library interface {
	UserProfile(ctx context.Context) (*SpotifyUser, error)
	UserPlaylists(ctx context.Context, limit, offset int) (*SpotifyPaginatedPlaylists, error)
	TopArtists(ctx context.Context, limit int, term TimeRange) (*SpotifyPage[SpotifyArtist], error)
	TopTracks(ctx context.Context, limit int, term TimeRange) (*SpotifyPage[SpotifyTrack], error)
	RecentlyPlayed(ctx context.Context, limit int) (*SpotifyPage[SpotifyPlayHistory], error)
}

// Client is the per-user Spotify API surface.
type Client interface {
	Player
	Searcher
	Library

	// Token returns the current token, refreshed if it had expired.
	Token() (*oauth2.Token, error)
}

// OAuthService performs the authorization code flow and hands out per-user clients.
type OAuthService interface {
	GetAuthURL(state string) string
	GetOAuthConfig() *oauth2.Config
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	Client(ctx context.Context, token *oauth2.Token) Client
}
