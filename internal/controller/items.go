package controller

import "github.com/desertthunder/spotdash/internal/services"

const (
	// IconGlyph stands in for a missing thumbnail.
	IconGlyph = "♪"
	// Placeholder stands in for a missing subtitle.
	Placeholder = "—"
)

// Item is one search result row: a [TrackItem] or an [ArtistItem].
type Item interface {
	// Thumbnail is the first image URL, or "" when the item has no images.
	Thumbnail() string
	Name() string
	// Subtitle is the first artist (tracks) or first genre (artists), or [Placeholder].
	Subtitle() string

	item()
}

// TrackItem is a search result of type track.
type TrackItem struct {
	Track services.SpotifyTrack
}

func (t TrackItem) item() {}

func (t TrackItem) Thumbnail() string { return firstImage(t.Track.Album.Images) }
func (t TrackItem) Name() string      { return t.Track.Name }

func (t TrackItem) Subtitle() string {
	if len(t.Track.Artists) > 0 && t.Track.Artists[0].Name != "" {
		return t.Track.Artists[0].Name
	}
	return Placeholder
}

// ArtistItem is a search result of type artist.
type ArtistItem struct {
	Artist services.SpotifyArtist
}

func (a ArtistItem) item() {}

func (a ArtistItem) Thumbnail() string { return firstImage(a.Artist.Images) }
func (a ArtistItem) Name() string      { return a.Artist.Name }

func (a ArtistItem) Subtitle() string {
	if len(a.Artist.Genres) > 0 && a.Artist.Genres[0] != "" {
		return a.Artist.Genres[0]
	}
	return Placeholder
}

func firstImage(images []services.SpotifyImage) string {
	if len(images) == 0 {
		return ""
	}
	return images[0].URL
}

// ItemsFor selects the collection matching kind from a search payload.
func ItemsFor(data services.SpotifySearchResults, kind services.SearchType) []Item {
	var items []Item
	switch kind {
	case services.SearchArtist:
		if data.Artists == nil {
			return nil
		}
		for _, a := range data.Artists.Items {
			items = append(items, ArtistItem{Artist: a})
		}
	default:
		if data.Tracks == nil {
			return nil
		}
		for _, t := range data.Tracks.Items {
			items = append(items, TrackItem{Track: t})
		}
	}
	return items
}
