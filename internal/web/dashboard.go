package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/desertthunder/spotdash/internal/client"
	"github.com/desertthunder/spotdash/internal/controller"
	"github.com/desertthunder/spotdash/internal/envelope"
	"github.com/desertthunder/spotdash/internal/services"
	"github.com/desertthunder/spotdash/internal/shared"
	"golang.org/x/sync/errgroup"
)

// MsgQueryRequired is the API response for a search without q.
const MsgQueryRequired = "Query parameter 'q' is required."

// overview is everything the overview page shows.
type overview struct {
	User      *services.SpotifyUser
	Term      services.TimeRange
	Terms     []termLink
	Playlists listSection[services.SpotifySimplePlaylist]
	Artists   listSection[services.SpotifyArtist]
	Tracks    listSection[services.SpotifyTrack]
	Recent    []services.SpotifyPlayHistory
}

type termLink struct {
	Label  string
	Href   string
	Active bool
}

// listSection splits a list into the rows shown up front and the rows behind "Show N more".
type listSection[T any] struct {
	Visible []T
	More    []T
	Section *controller.Section
}

func newListSection[T any](kind string, items []T) listSection[T] {
	if len(items) <= PreviewRows {
		return listSection[T]{Visible: items, Section: controller.NewSection(kind, 0)}
	}
	return listSection[T]{
		Visible: items[:PreviewRows],
		More:    items[PreviewRows:],
		Section: controller.NewSection(kind, len(items)-PreviewRows),
	}
}

// fetchOverview loads the overview data concurrently. The first failure cancels the rest.
func fetchOverview(ctx context.Context, spotify services.Client, term services.TimeRange) (*overview, error) {
	var (
		user      *services.SpotifyUser
		playlists *services.SpotifyPaginatedPlaylists
		artists   *services.SpotifyPage[services.SpotifyArtist]
		tracks    *services.SpotifyPage[services.SpotifyTrack]
		recent    *services.SpotifyPage[services.SpotifyPlayHistory]
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		user, err = spotify.UserProfile(gctx)
		return err
	})
	g.Go(func() (err error) {
		playlists, err = spotify.UserPlaylists(gctx, PlaylistLimit, 0)
		return err
	})
	g.Go(func() (err error) {
		artists, err = spotify.TopArtists(gctx, TopLimit, term)
		return err
	})
	g.Go(func() (err error) {
		tracks, err = spotify.TopTracks(gctx, TopLimit, term)
		return err
	})
	g.Go(func() (err error) {
		recent, err = spotify.RecentlyPlayed(gctx, RecentLimit)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &overview{
		User:      user,
		Term:      term,
		Playlists: newListSection("playlists", playlists.Items),
		Artists:   newListSection("artists", artists.Items),
		Tracks:    newListSection("tracks", tracks.Items),
		Recent:    recent.Items,
	}, nil
}

// Overview renders the dashboard page for the ?term= time range.
func (a *App) Overview(w http.ResponseWriter, r *http.Request, s *userSession) {
	term := services.ParseTimeRange(r.URL.Query().Get("term"))

	data, err := fetchOverview(r.Context(), s.spotify, term)
	if err != nil {
		a.logger.Error("failed to load overview", "session", s.session.ID(), "error", err)
		a.renderError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	for _, t := range services.TimeRanges {
		href, err := controller.WithTerm(r.URL.String(), t)
		if err != nil {
			href = "?term=" + string(t)
		}
		data.Terms = append(data.Terms, termLink{Label: controller.TermLabel(t), Href: href, Active: t == term})
	}

	a.render(w, "overview.html", http.StatusOK, data)
}

// Search answers GET /search?q=&type= with the raw Spotify payload.
func (a *App) Search(w http.ResponseWriter, r *http.Request, s *userSession) {
	q := r.URL.Query().Get("q")
	if q == "" {
		envelope.WriteError(w, MsgQueryRequired, http.StatusBadRequest)
		return
	}

	kind, err := services.ParseSearchType(r.URL.Query().Get("type"))
	if err != nil {
		envelope.WriteError(w, fmt.Sprintf("Unsupported search type %q.", r.URL.Query().Get("type")), http.StatusBadRequest)
		return
	}

	results, err := s.spotify.Search(r.Context(), q, kind, SearchLimit)
	if err != nil {
		a.logger.Warn("search failed", "query", q, "type", kind, "error", err)
		envelope.WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	envelope.WriteSuccess(w, results)
}

// SearchResults runs the controller's search flow server-side and returns the results panel markup.
func (a *App) SearchResults(w http.ResponseWriter, r *http.Request, s *userSession) {
	ctrl := controller.New(client.NewLocal(s.spotify), controller.WithLogger(a.logger))

	panel, err := ctrl.PerformSearch(r.Context(), r.URL.Query().Get("q"), r.URL.Query().Get("type"))
	if err != nil {
		panel = controller.Panel{State: controller.PanelError, Message: err.Error()}
	}

	a.writePanel(w, panel)
}

// Player answers POST /player/{action}.
func (a *App) Player(w http.ResponseWriter, r *http.Request, s *userSession) {
	action, err := services.ParsePlayerAction(r.PathValue("action"))
	if err != nil {
		envelope.WriteError(w, "Unknown player action.", http.StatusNotFound)
		return
	}

	if err := s.spotify.Player(r.Context(), action); err != nil {
		level := a.logger.Error
		if errors.Is(err, shared.ErrNoActiveDevice) {
			level = a.logger.Warn
		}
		level("player action failed", "action", action, "error", err)
		envelope.WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	envelope.WriteSuccess(w, nil)
}

// Health answers GET /healthz.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	envelope.WriteSuccess(w, client.Health{Status: "ok"})
}
