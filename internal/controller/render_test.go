package controller

import (
	"strings"
	"testing"

	"github.com/desertthunder/spotdash/internal/services"
)

func TestItems(t *testing.T) {
	t.Run("Artist Subtitle Is First Genre", func(t *testing.T) {
		a := ArtistItem{Artist: services.SpotifyArtist{
			Name:   "Kraftwerk",
			Genres: []string{"electronic", "krautrock"},
			Images: []services.SpotifyImage{{URL: "k.jpg"}, {URL: "k2.jpg"}},
		}}

		if a.Subtitle() != "electronic" || a.Thumbnail() != "k.jpg" {
			t.Errorf("unexpected item %q %q", a.Subtitle(), a.Thumbnail())
		}
	})

	t.Run("Fallbacks", func(t *testing.T) {
		items := []Item{
			TrackItem{Track: services.SpotifyTrack{Name: "Untitled"}},
			ArtistItem{Artist: services.SpotifyArtist{Name: "Nobody"}},
		}

		for _, it := range items {
			if it.Thumbnail() != "" {
				t.Errorf("%s: expected no thumbnail, got %q", it.Name(), it.Thumbnail())
			}
			if it.Subtitle() != Placeholder {
				t.Errorf("%s: expected placeholder, got %q", it.Name(), it.Subtitle())
			}
		}
	})

	t.Run("ItemsFor Missing Collection", func(t *testing.T) {
		if items := ItemsFor(services.SpotifySearchResults{}, services.SearchArtist); len(items) != 0 {
			t.Errorf("expected no items, got %d", len(items))
		}
	})
}

func TestRenderHTML(t *testing.T) {
	t.Run("Messages", func(t *testing.T) {
		tc := []struct {
			name  string
			panel Panel
			want  string
		}{
			{"Validation", Panel{State: PanelValidation, Message: MsgEnterTerm}, `<p class="text-red-400">Enter a search term.</p>`},
			{"Loading", Panel{State: PanelLoading, Message: MsgSearching}, `<p>Searching...</p>`},
			{"Empty", Panel{State: PanelEmpty, Message: MsgNoResults}, `<p>No results found.</p>`},
			{"Error", Panel{State: PanelError, Message: "boom"}, `<p class="text-red-400">boom</p>`},
			{"Idle", Panel{}, ``},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				got, err := RenderHTML(tt.panel)
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				if got != tt.want {
					t.Errorf("expected %q, got %q", tt.want, got)
				}
			})
		}
	})

	t.Run("Rows", func(t *testing.T) {
		p := Panel{State: PanelResults, Type: services.SearchTrack, Items: ItemsFor(blueMonday(), services.SearchTrack)}

		got, err := RenderHTML(p)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		for _, want := range []string{`src="x.jpg"`, "Blue Monday", "New Order", "bg-gray-700"} {
			if !strings.Contains(got, want) {
				t.Errorf("expected %q in %s", want, got)
			}
		}
	})

	t.Run("Missing Image Uses Glyph", func(t *testing.T) {
		p := Panel{State: PanelResults, Type: services.SearchArtist, Items: []Item{ArtistItem{Artist: services.SpotifyArtist{Name: "Nobody"}}}}

		got, _ := RenderHTML(p)
		if strings.Contains(got, "<img") {
			t.Error("expected no img element")
		}
		if !strings.Contains(got, IconGlyph) || !strings.Contains(got, Placeholder) {
			t.Errorf("expected glyph and placeholder, got %s", got)
		}
	})

	t.Run("Escapes Values", func(t *testing.T) {
		p := Panel{State: PanelResults, Items: []Item{TrackItem{Track: services.SpotifyTrack{Name: "<script>alert(1)</script>"}}}}

		got, _ := RenderHTML(p)
		if strings.Contains(got, "<script>") {
			t.Errorf("expected escaped name, got %s", got)
		}
		if !strings.Contains(got, "&lt;script&gt;") {
			t.Errorf("expected entity-escaped name, got %s", got)
		}
	})
}
