package web

import (
	"errors"
	"net/http"

	"github.com/desertthunder/spotdash/internal/controller"
	"github.com/desertthunder/spotdash/internal/envelope"
	"github.com/desertthunder/spotdash/internal/models"
	"github.com/desertthunder/spotdash/internal/services"
	"github.com/desertthunder/spotdash/internal/shared"
)

// MsgAuthFailed is the API response for requests without a valid session.
const MsgAuthFailed = "Authentication failed."

// userSession is a resolved session and a Spotify client acting for it.
type userSession struct {
	session *models.Session
	spotify services.Client
}

type sessionHandler func(w http.ResponseWriter, r *http.Request, s *userSession)

// session resolves the request's session cookie.
func (a *App) session(r *http.Request) (*userSession, error) {
	cookie, err := r.Cookie(a.cookieName)
	if err != nil || cookie.Value == "" {
		return nil, shared.ErrNotAuthenticated
	}

	sess, err := a.sessions.Get(cookie.Value)
	if err != nil {
		if !errors.Is(err, shared.ErrSessionNotFound) {
			a.logger.Error("failed to load session", "error", err)
		}
		return nil, shared.ErrNotAuthenticated
	}

	return &userSession{
		session: sess,
		spotify: a.oauth.Client(r.Context(), sess.Token()),
	}, nil
}

// persistToken writes the client's token back when the token source refreshed it.
func (a *App) persistToken(s *userSession) {
	token, err := s.spotify.Token()
	if err != nil {
		a.logger.Warn("failed to read session token", "session", s.session.ID(), "error", err)
		return
	}
	if token.AccessToken == s.session.AccessToken() {
		return
	}

	s.session.SetToken(token)
	if err := a.sessions.Update(s.session); err != nil {
		a.logger.Error("failed to persist refreshed token", "session", s.session.ID(), "error", err)
		return
	}
	a.logger.Debug("persisted refreshed token", "session", s.session.ID())
}

func (a *App) withSession(next sessionHandler, unauthorized http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := a.session(r)
		if err != nil {
			unauthorized(w, r)
			return
		}
		next(w, r, s)
		a.persistToken(s)
	}
}

// page requires a session and redirects to /login without one.
func (a *App) page(next sessionHandler) http.HandlerFunc {
	return a.withSession(next, func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/login", http.StatusFound)
	})
}

// api requires a session and answers 401 with an envelope without one.
func (a *App) api(next sessionHandler) http.HandlerFunc {
	return a.withSession(next, func(w http.ResponseWriter, r *http.Request) {
		envelope.WriteError(w, MsgAuthFailed, http.StatusUnauthorized)
	})
}

// partial requires a session and renders an inline error panel without one.
func (a *App) partial(next sessionHandler) http.HandlerFunc {
	return a.withSession(next, func(w http.ResponseWriter, r *http.Request) {
		a.writePanel(w, controller.Panel{State: controller.PanelError, Message: MsgAuthFailed})
	})
}

func (a *App) setSessionCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     a.cookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   a.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (a *App) clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   a.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
