package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/desertthunder/spotdash/internal/services"
	tu "github.com/desertthunder/spotdash/internal/testing"
)

func TestAPIClient(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		t.Run("With Empty BaseURL", func(t *testing.T) {
			c := New("", nil)

			if c.BaseURL() != "http://127.0.0.1:8888" {
				t.Errorf("expected default base URL, got %s", c.BaseURL())
			}
			if c.httpClient != http.DefaultClient {
				t.Error("expected http.DefaultClient to be used")
			}
		})

		t.Run("With Custom Client", func(t *testing.T) {
			custom := &http.Client{}
			c := New("http://example.com", custom)

			if c.httpClient != custom {
				t.Error("expected custom client to be used")
			}
		})
	})

	t.Run("Player", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("expected POST, got %s", r.Method)
				}
				if r.URL.Path != "/player/next" {
					t.Errorf("expected /player/next, got %s", r.URL.Path)
				}
				w.Write([]byte(`{"success":true,"data":{}}`))
			}))
			defer server.Close()

			result := New(server.URL, nil).Player(context.Background(), services.ActionNext)
			if !result.OK() {
				t.Errorf("expected success, got %q", result.Message())
			}
		})

		t.Run("Failure Message", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"success":false,"error":{"message":"No active device"}}`))
			}))
			defer server.Close()

			result := New(server.URL, nil).Player(context.Background(), services.ActionPlay)
			if result.OK() {
				t.Fatal("expected failure")
			}
			if result.Message() != "No active device" {
				t.Errorf("expected 'No active device', got %q", result.Message())
			}
		})

		t.Run("Transport Failure", func(t *testing.T) {
			httpClient := &http.Client{Transport: tu.NewMockRoundTripper(nil, errors.New("connection refused"))}

			result := New("http://example.com", httpClient).Player(context.Background(), services.ActionPause)
			if result.OK() {
				t.Fatal("expected failure")
			}
			if !strings.Contains(result.Message(), "connection refused") {
				t.Errorf("expected transport error in message, got %q", result.Message())
			}
		})

		t.Run("Unreadable Body", func(t *testing.T) {
			httpClient := &http.Client{Transport: tu.NewMockRoundTripper(&http.Response{
				StatusCode: http.StatusOK,
				Body:       &tu.FCloser{},
				Header:     make(http.Header),
			}, nil)}

			result := New("http://example.com", httpClient).Player(context.Background(), services.ActionPlay)
			if result.OK() {
				t.Fatal("expected failure")
			}
			if !strings.HasPrefix(result.Message(), "invalid response") {
				t.Errorf("unexpected message %q", result.Message())
			}
		})
	})

	t.Run("Search", func(t *testing.T) {
		t.Run("Encodes Query And Sends Session", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/search" {
					t.Errorf("expected /search, got %s", r.URL.Path)
				}
				if got := r.URL.Query().Get("q"); got != "blue monday & co" {
					t.Errorf("query not round-tripped, got %q", got)
				}
				if got := r.URL.Query().Get("type"); got != "track" {
					t.Errorf("expected type track, got %q", got)
				}

				cookie, err := r.Cookie("spotify_dashboard_session")
				if err != nil || cookie.Value != "session-123" {
					t.Errorf("expected session cookie, got %v, %v", cookie, err)
				}

				w.Write([]byte(`{"success":true,"data":{"tracks":{"items":[{"name":"Blue Monday","artists":[{"name":"New Order"}],"album":{"images":[{"url":"x.jpg"}]}}]}}}`))
			}))
			defer server.Close()

			c := New(server.URL, nil, WithSession("spotify_dashboard_session", "session-123"))
			data, err := c.Search(context.Background(), "blue monday & co", services.SearchTrack).Unwrap()
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if data.Tracks == nil || len(data.Tracks.Items) != 1 {
				t.Fatalf("expected one track, got %+v", data.Tracks)
			}
			if data.Tracks.Items[0].Artists[0].Name != "New Order" {
				t.Errorf("unexpected track %+v", data.Tracks.Items[0])
			}
		})

		t.Run("No Session Cookie When Unset", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if len(r.Cookies()) != 0 {
					t.Errorf("expected no cookies, got %v", r.Cookies())
				}
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"success":false,"error":{"message":"Authentication failed."}}`))
			}))
			defer server.Close()

			result := New(server.URL, nil).Search(context.Background(), "x", services.SearchArtist)
			if result.Message() != "Authentication failed." {
				t.Errorf("unexpected message %q", result.Message())
			}
		})
	})

	t.Run("Health", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"success":true,"data":{"status":"ok"}}`))
		}))
		defer server.Close()

		health, err := New(server.URL, nil).Health(context.Background()).Unwrap()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if health.Status != "ok" {
			t.Errorf("expected status ok, got %s", health.Status)
		}
	})
}

func TestLocal(t *testing.T) {
	t.Run("Player", func(t *testing.T) {
		spotify := &tu.MockSpotifyClient{}
		if r := NewLocal(spotify).Player(context.Background(), services.ActionPrevious); !r.OK() {
			t.Errorf("expected success, got %q", r.Message())
		}

		calls := spotify.Calls()
		if len(calls) != 1 || calls[0] != "Player:previous" {
			t.Errorf("unexpected calls %v", calls)
		}
	})

	t.Run("Player Error", func(t *testing.T) {
		spotify := &tu.MockSpotifyClient{Err: errors.New("No active device")}
		r := NewLocal(spotify).Player(context.Background(), services.ActionPlay)
		if r.OK() || r.Message() != "No active device" {
			t.Errorf("unexpected result %q", r.Message())
		}
	})

	t.Run("Search", func(t *testing.T) {
		spotify := &tu.MockSpotifyClient{Results: &services.SpotifySearchResults{
			Artists: &services.SpotifyPage[services.SpotifyArtist]{Items: []services.SpotifyArtist{{Name: "Kraftwerk"}}},
		}}

		data, err := NewLocal(spotify).Search(context.Background(), "kraft", services.SearchArtist).Unwrap()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if data.Artists.Items[0].Name != "Kraftwerk" {
			t.Errorf("unexpected data %+v", data)
		}
	})
}
