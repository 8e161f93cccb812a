package server

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"sync"

	"github.com/desertthunder/spotdash/internal/shared"
	"golang.org/x/oauth2"
)

// CallbackPath is where the login flow expects Spotify to redirect.
const CallbackPath = "/callback"

// Exchanger trades an authorization code for a token.
type Exchanger interface {
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
}

// outcome is what the single accepted callback produced.
type outcome struct {
	token *oauth2.Token
	err   error
}

// OAuthHandler accepts exactly one authorization code callback for the CLI login flow.
type OAuthHandler struct {
	exchanger Exchanger
	state     string

	mu     sync.Mutex
	served bool
	done   chan outcome
}

// NewOAuthHandler creates a handler that checks state and exchanges the code with exchanger.
func NewOAuthHandler(exchanger Exchanger, state string) *OAuthHandler {
	return &OAuthHandler{
		exchanger: exchanger,
		state:     state,
		done:      make(chan outcome, 1),
	}
}

func (h *OAuthHandler) Routes() []string {
	return []string{CallbackPath}
}

var resultPage = template.Must(template.New("result").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>{{.Title}}</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
               display: flex; align-items: center; justify-content: center; height: 100vh;
               margin: 0; background: #121212; }
        .card { text-align: center; background: #181818; padding: 2rem; border-radius: 8px; }
        h1 { margin: 0 0 1rem 0; color: {{if .OK}}#1DB954{{else}}#f87171{{end}}; }
        p { color: #b3b3b3; margin: 0; }
    </style>
</head>
<body>
    <div class="card">
        <h1>{{if .OK}}✓{{else}}✗{{end}} {{.Title}}</h1>
        <p>{{.Detail}}</p>
    </div>
</body>
</html>
`))

type pageData struct {
	OK     bool
	Title  string
	Detail string
}

func writePage(w http.ResponseWriter, code int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	resultPage.Execute(w, data)
}

// ServeHTTP validates state, exchanges the code and reports the outcome to [OAuthHandler.Wait].
// Later callbacks are rejected.
func (h *OAuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	replay := h.served
	h.served = true
	h.mu.Unlock()
	if replay {
		writePage(w, http.StatusBadRequest, pageData{Title: "Callback already processed", Detail: "Return to the terminal."})
		return
	}

	query := r.URL.Query()
	if query.Get("state") != h.state {
		h.finish(outcome{err: fmt.Errorf("%w: state mismatch", shared.ErrInvalidState)})
		writePage(w, http.StatusBadRequest, pageData{Title: "Invalid state parameter", Detail: "Start the login again."})
		return
	}

	code := query.Get("code")
	if code == "" {
		h.finish(outcome{err: fmt.Errorf("%w: %s %s", shared.ErrAuthFailed, query.Get("error"), query.Get("error_description"))})
		writePage(w, http.StatusBadRequest, pageData{Title: "Authorization failed", Detail: query.Get("error")})
		return
	}

	token, err := h.exchanger.Exchange(r.Context(), code)
	if err != nil {
		h.finish(outcome{err: fmt.Errorf("%w: token exchange failed: %v", shared.ErrAuthFailed, err)})
		writePage(w, http.StatusInternalServerError, pageData{Title: "Token exchange failed", Detail: "See the terminal for details."})
		return
	}

	h.finish(outcome{token: token})
	writePage(w, http.StatusOK, pageData{OK: true, Title: "Authorization Successful", Detail: "You can close this window and return to the terminal."})
}

func (h *OAuthHandler) finish(o outcome) {
	h.done <- o
}

// Wait blocks until the callback has been handled or ctx ends.
func (h *OAuthHandler) Wait(ctx context.Context) (*oauth2.Token, error) {
	select {
	case o := <-h.done:
		if o.err != nil {
			return nil, o.err
		}
		if o.token == nil {
			return nil, fmt.Errorf("%w: no token received", shared.ErrAuthFailed)
		}
		return o.token, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", shared.ErrTimeout, ctx.Err())
	}
}
