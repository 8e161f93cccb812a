package web

import (
	"net/http"

	"github.com/desertthunder/spotdash/internal/models"
	"github.com/desertthunder/spotdash/internal/shared"
)

// Index sends signed-in users to the overview and everyone else to login.
func (a *App) Index(w http.ResponseWriter, r *http.Request) {
	if _, err := a.session(r); err != nil {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	http.Redirect(w, r, "/overview", http.StatusFound)
}

// Login starts the authorization code flow.
func (a *App) Login(w http.ResponseWriter, r *http.Request) {
	state, err := shared.GenerateState()
	if err != nil {
		a.logger.Error("failed to generate state", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   stateCookieAge,
		HttpOnly: true,
		Secure:   a.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, a.oauth.GetAuthURL(state), http.StatusFound)
}

// Callback completes the authorization code flow and creates a session.
func (a *App) Callback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	cookie, err := r.Cookie(stateCookieName)
	if err != nil || cookie.Value == "" || cookie.Value != query.Get("state") {
		a.logger.Warn("oauth state mismatch")
		http.Error(w, "Invalid state parameter", http.StatusBadRequest)
		return
	}
	a.clearCookie(w, stateCookieName)

	code := query.Get("code")
	if code == "" {
		a.logger.Warn("authorization failed", "error", query.Get("error"))
		http.Error(w, "Authorization failed", http.StatusBadRequest)
		return
	}

	token, err := a.oauth.Exchange(r.Context(), code)
	if err != nil {
		a.logger.Error("token exchange failed", "error", err)
		http.Error(w, "Token exchange failed", http.StatusInternalServerError)
		return
	}

	session := models.NewSession(token)
	if err := a.sessions.Create(session); err != nil {
		a.logger.Error("failed to create session", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.logger.Info("signed in", "session", session.ID())
	a.setSessionCookie(w, session.ID())
	http.Redirect(w, r, "/overview", http.StatusFound)
}

// Logout deletes the session and clears its cookie.
func (a *App) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(a.cookieName); err == nil && cookie.Value != "" {
		if err := a.sessions.Delete(cookie.Value); err != nil {
			a.logger.Debug("logout without live session", "error", err)
		}
	}

	a.clearCookie(w, a.cookieName)
	http.Redirect(w, r, "/login", http.StatusFound)
}
