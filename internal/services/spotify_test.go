package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/spotdash/internal/shared"
	"golang.org/x/oauth2"
)

var testCredentials = map[string]string{
	"client_id":     "test_client_id",
	"client_secret": "test_client_secret",
}

func validToken() *oauth2.Token {
	return &oauth2.Token{AccessToken: "test_access_token", TokenType: "Bearer", Expiry: time.Now().Add(time.Hour)}
}

// newTestClient points a Client at handler and returns it with the backing server.
func newTestClient(t *testing.T, handler http.HandlerFunc) Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	srv, err := NewSpotifyService(testCredentials, WithBaseURL(server.URL), WithRateLimit(1000, 100))
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}

	return srv.Client(context.Background(), validToken())
}

func TestSpotifyService(t *testing.T) {
	t.Run("NewSpotifyService", func(t *testing.T) {
		t.Run("With Valid Credentials", func(t *testing.T) {
			srv, err := NewSpotifyService(map[string]string{
				"client_id":     "test_client_id",
				"client_secret": "test_client_secret",
				"redirect_uri":  "http://localhost:9999/callback",
			})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if srv.Name() != "Spotify" {
				t.Errorf("expected service name 'Spotify', got %s", srv.Name())
			}
			if srv.config.RedirectURL != "http://localhost:9999/callback" {
				t.Errorf("unexpected redirect URL %s", srv.config.RedirectURL)
			}
		})

		t.Run("Missing Client ID", func(t *testing.T) {
			if _, err := NewSpotifyService(map[string]string{"client_secret": "s"}); err == nil {
				t.Error("expected error for missing client_id")
			}
		})

		t.Run("Missing Client Secret", func(t *testing.T) {
			if _, err := NewSpotifyService(map[string]string{"client_id": "c"}); err == nil {
				t.Error("expected error for missing client_secret")
			}
		})

		t.Run("Default Redirect URI", func(t *testing.T) {
			srv, err := NewSpotifyService(testCredentials)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if srv.config.RedirectURL != defaultRedirectURI {
				t.Errorf("expected default redirect URI, got %s", srv.config.RedirectURL)
			}
		})
	})

	t.Run("Get AuthURL", func(t *testing.T) {
		srv, err := NewSpotifyService(testCredentials)
		if err != nil {
			t.Fatalf("failed to create service: %v", err)
		}

		authURL := srv.GetAuthURL("test_state")

		if !strings.Contains(authURL, "accounts.spotify.com") {
			t.Error("auth URL should contain Spotify domain")
		}
		if !strings.Contains(authURL, "test_client_id") {
			t.Error("auth URL should contain client_id")
		}
		if !strings.Contains(authURL, "test_state") {
			t.Error("auth URL should contain state")
		}
		if !strings.Contains(authURL, "user-modify-playback-state") {
			t.Error("auth URL should request playback scopes")
		}
	})

	t.Run("Exchange", func(t *testing.T) {
		tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := r.ParseForm(); err != nil {
				t.Errorf("failed to parse form: %v", err)
			}
			if r.Form.Get("code") != "the_code" {
				t.Errorf("expected code the_code, got %s", r.Form.Get("code"))
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"access_token":"new_access","refresh_token":"new_refresh","token_type":"Bearer","expires_in":3600}`))
		}))
		defer tokenServer.Close()

		srv, err := NewSpotifyService(testCredentials, WithEndpoint(oauth2.Endpoint{
			AuthURL:  tokenServer.URL + "/authorize",
			TokenURL: tokenServer.URL + "/token",
		}))
		if err != nil {
			t.Fatalf("failed to create service: %v", err)
		}

		token, err := srv.Exchange(context.Background(), "the_code")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if token.AccessToken != "new_access" || token.RefreshToken != "new_refresh" {
			t.Errorf("unexpected token %+v", token)
		}
	})
}

func TestSpotifyClient(t *testing.T) {
	t.Run("Sends Bearer Token", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("Authorization"); got != "Bearer test_access_token" {
				t.Errorf("unexpected Authorization header %q", got)
			}
			if r.URL.Path != "/me" {
				t.Errorf("expected /me, got %s", r.URL.Path)
			}
			json.NewEncoder(w).Encode(SpotifyUser{ID: "u1", DisplayName: "Listener"})
		})

		user, err := client.UserProfile(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if user.DisplayName != "Listener" {
			t.Errorf("expected display name Listener, got %s", user.DisplayName)
		}
	})

	t.Run("Search", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			if r.URL.Path != "/search" {
				t.Errorf("expected /search, got %s", r.URL.Path)
			}
			if q.Get("q") != "blue monday" || q.Get("type") != "track" || q.Get("limit") != "10" {
				t.Errorf("unexpected query %v", q)
			}
			w.Write([]byte(`{"tracks":{"items":[{"name":"Blue Monday","album":{"images":[{"url":"x.jpg"}]},"artists":[{"name":"New Order"}]}]}}`))
		})

		results, err := client.Search(context.Background(), "blue monday", SearchTrack, 10)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if results.Tracks == nil || len(results.Tracks.Items) != 1 {
			t.Fatalf("expected one track, got %+v", results.Tracks)
		}
		if results.Artists != nil {
			t.Error("artists should be absent for a track search")
		}
		track := results.Tracks.Items[0]
		if track.Name != "Blue Monday" || track.Artists[0].Name != "New Order" || track.Album.Images[0].URL != "x.jpg" {
			t.Errorf("unexpected track %+v", track)
		}
	})

	t.Run("Search Empty Query", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected")
		})

		if _, err := client.Search(context.Background(), "", SearchTrack, 10); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("Top Items Use Time Range", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/me/top/artists" {
				t.Errorf("expected /me/top/artists, got %s", r.URL.Path)
			}
			if r.URL.Query().Get("time_range") != "long_term" {
				t.Errorf("expected long_term, got %s", r.URL.Query().Get("time_range"))
			}
			w.Write([]byte(`{"items":[{"name":"Kraftwerk","genres":["electronic"]}],"total":1}`))
		})

		page, err := client.TopArtists(context.Background(), 10, LongTerm)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(page.Items) != 1 || page.Items[0].Genres[0] != "electronic" {
			t.Errorf("unexpected page %+v", page)
		}
	})

	t.Run("Player Endpoints", func(t *testing.T) {
		tc := []struct {
			action PlayerAction
			method string
			path   string
		}{
			{ActionPlay, http.MethodPut, "/me/player/play"},
			{ActionPause, http.MethodPut, "/me/player/pause"},
			{ActionNext, http.MethodPost, "/me/player/next"},
			{ActionPrevious, http.MethodPost, "/me/player/previous"},
		}

		for _, tt := range tc {
			t.Run(string(tt.action), func(t *testing.T) {
				client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
					if r.Method != tt.method || r.URL.Path != tt.path {
						t.Errorf("expected %s %s, got %s %s", tt.method, tt.path, r.Method, r.URL.Path)
					}
					w.WriteHeader(http.StatusNoContent)
				})

				if err := client.Player(context.Background(), tt.action); err != nil {
					t.Errorf("expected no error, got %v", err)
				}
			})
		}
	})

	t.Run("Player Unknown Action", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected")
		})

		if err := client.Player(context.Background(), "rewind"); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("No Active Device", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":{"status":404,"message":"No active device","reason":"NO_ACTIVE_DEVICE"}}`))
		})

		err := client.Player(context.Background(), ActionPlay)
		if !errors.Is(err, shared.ErrNoActiveDevice) {
			t.Errorf("expected ErrNoActiveDevice, got %v", err)
		}
		if err.Error() != "No active device" {
			t.Errorf("expected Spotify message, got %q", err.Error())
		}
	})

	t.Run("Unauthorized Maps To Token Expired", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":{"status":401,"message":"The access token expired"}}`))
		})

		_, err := client.UserProfile(context.Background())
		if !errors.Is(err, shared.ErrTokenExpired) {
			t.Errorf("expected ErrTokenExpired, got %v", err)
		}
	})

	t.Run("Non JSON Error Body", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "upstream exploded", http.StatusBadGateway)
		})

		_, err := client.UserProfile(context.Background())
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
		if !strings.Contains(err.Error(), "502") {
			t.Errorf("expected status in message, got %q", err.Error())
		}
	})

	t.Run("Refreshes Expired Token", func(t *testing.T) {
		var refreshed bool
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/token":
				refreshed = true
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"access_token":"refreshed","token_type":"Bearer","expires_in":3600}`))
			case "/me":
				if got := r.Header.Get("Authorization"); got != "Bearer refreshed" {
					t.Errorf("expected refreshed token, got %q", got)
				}
				w.Write([]byte(`{"id":"u1"}`))
			default:
				t.Errorf("unexpected path %s", r.URL.Path)
			}
		}))
		defer server.Close()

		srv, err := NewSpotifyService(testCredentials,
			WithBaseURL(server.URL),
			WithEndpoint(oauth2.Endpoint{TokenURL: server.URL + "/token"}),
		)
		if err != nil {
			t.Fatalf("failed to create service: %v", err)
		}

		expired := &oauth2.Token{AccessToken: "stale", RefreshToken: "r", Expiry: time.Now().Add(-time.Hour)}
		client := srv.Client(context.Background(), expired)

		if _, err := client.UserProfile(context.Background()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !refreshed {
			t.Error("expected token endpoint to be called")
		}

		token, err := client.Token()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if token.AccessToken != "refreshed" {
			t.Errorf("expected refreshed token, got %s", token.AccessToken)
		}
		if token.RefreshToken != "r" {
			t.Errorf("refresh token should carry over, got %q", token.RefreshToken)
		}
	})
}

func TestParsers(t *testing.T) {
	t.Run("ParsePlayerAction", func(t *testing.T) {
		for _, a := range PlayerActions {
			if got, err := ParsePlayerAction(string(a)); err != nil || got != a {
				t.Errorf("ParsePlayerAction(%q) = %q, %v", a, got, err)
			}
		}
		if _, err := ParsePlayerAction("stop"); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("ParseSearchType", func(t *testing.T) {
		if got, _ := ParseSearchType(""); got != SearchTrack {
			t.Errorf("empty type should default to track, got %q", got)
		}
		if got, _ := ParseSearchType("artist"); got != SearchArtist {
			t.Errorf("expected artist, got %q", got)
		}
		if _, err := ParseSearchType("podcast"); err == nil {
			t.Error("expected error for unsupported type")
		}
	})

	t.Run("ParseTimeRange", func(t *testing.T) {
		if ParseTimeRange("medium_term") != MediumTerm {
			t.Error("expected medium_term")
		}
		if ParseTimeRange("forever") != ShortTerm {
			t.Error("unknown term should fall back to short_term")
		}
	})
}
