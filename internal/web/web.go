// Package web implements the dashboard: Spotify sign-in, the overview page and the envelope API.
//
// # Routes
//
//	GET  /                  → redirect to /overview or /login
//	GET  /login             → Spotify authorize redirect with a state cookie
//	GET  /callback          → code exchange, session creation
//	GET  /logout            → session deletion
//	GET  /overview          → profile, playlists, top items for ?term=, recently played
//	GET  /search            → envelope API, raw Spotify search payload
//	GET  /search/results    → HTML partial for the results panel
//	POST /player/{action}   → envelope API, playback control
//	GET  /healthz           → envelope API, liveness
//
// # Sessions
//
// A signed-in user is a row in the sessions table; its id is the value of the session cookie. Requests that
// need Spotify resolve the cookie, build a per-user client from the stored token, and write the token back if
// the client refreshed it. Pages redirect to /login when there is no session; API routes answer 401.
//
// # Templates
//
// Pages are html/template files embedded from templates/. The browser binds player buttons and search with
// htmx attributes, show-more blocks are <details> elements, and term changes are plain links.
package web

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotdash/internal/models"
	"github.com/desertthunder/spotdash/internal/server"
	"github.com/desertthunder/spotdash/internal/services"
	"github.com/desertthunder/spotdash/internal/shared"
)

const (
	// DefaultCookieName is the session cookie used when none is configured.
	DefaultCookieName = "spotify_dashboard_session"

	stateCookieName = "spotify_oauth_state"
	stateCookieAge  = 600
)

// Overview fetch sizes.
const (
	PlaylistLimit = 15
	TopLimit      = 10
	RecentLimit   = 5
	SearchLimit   = 10
	// PreviewRows is the number of rows an overview section shows before "Show N more".
	PreviewRows = 5
)

// Options configures an [App].
type Options struct {
	OAuth         services.OAuthService
	Sessions      models.Repository[*models.Session]
	Logger        *log.Logger
	CookieName    string
	SecureCookies bool
}

// App serves the dashboard.
type App struct {
	oauth         services.OAuthService
	sessions      models.Repository[*models.Session]
	logger        *log.Logger
	cookieName    string
	secureCookies bool
	pages         *pages
}

// New creates the dashboard application.
func New(opts Options) (*App, error) {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.CookieName == "" {
		opts.CookieName = DefaultCookieName
	}

	p, err := loadPages()
	if err != nil {
		return nil, err
	}

	return &App{
		oauth:         opts.OAuth,
		sessions:      opts.Sessions,
		logger:        shared.WithLogger(opts.Logger, "component", "web"),
		cookieName:    opts.CookieName,
		secureCookies: opts.SecureCookies,
		pages:         p,
	}, nil
}

// Routes returns the dashboard's router with logging and recovery middleware applied.
func (a *App) Routes() http.Handler {
	router := server.NewBasicRouter()
	router.Use(server.Recoverer(a.logger), server.RequestLogger(a.logger))

	router.Get("/{$}", a.Index)
	router.Get("/login", a.Login)
	router.Get("/callback", a.Callback)
	router.Get("/logout", a.Logout)
	router.Get("/healthz", a.Health)

	router.Get("/overview", a.page(a.Overview))
	router.Get("/search", a.api(a.Search))
	router.Get("/search/results", a.partial(a.SearchResults))
	router.Post("/player/{action}", a.api(a.Player))

	return router
}
