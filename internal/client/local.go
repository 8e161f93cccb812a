package client

import (
	"context"

	"github.com/desertthunder/spotdash/internal/envelope"
	"github.com/desertthunder/spotdash/internal/services"
)

var _ API = (*Local)(nil)

// Local implements [API] on top of a Spotify client in the same process.
type Local struct {
	spotify services.Client
}

// NewLocal wraps a per-user Spotify client.
func NewLocal(spotify services.Client) *Local {
	return &Local{spotify: spotify}
}

func (l *Local) Player(ctx context.Context, action services.PlayerAction) envelope.Result[Empty] {
	if err := l.spotify.Player(ctx, action); err != nil {
		return envelope.FromError[Empty](err)
	}
	return envelope.Ok(Empty{})
}

func (l *Local) Search(ctx context.Context, query string, kind services.SearchType) envelope.Result[services.SpotifySearchResults] {
	results, err := l.spotify.Search(ctx, query, kind, SearchLimit)
	if err != nil {
		return envelope.FromError[services.SpotifySearchResults](err)
	}
	return envelope.Ok(*results)
}
