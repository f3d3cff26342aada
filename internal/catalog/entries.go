// Package catalog loads artists, songs, and albums from the database and
// builds the normalized in-memory entries the response cascade matches
// against.
package catalog

import (
	"fmt"

	"github.com/vibesync/chatbot-engine/internal/textnorm"
)

// ArtistEntry is a catalog artist with precomputed match fields.
type ArtistEntry struct {
	ID             string
	Name           string
	Bio            string
	Genres         []string
	Followers      int
	Image          string
	NormalizedName string
	MatchKey       string
	URL            string
}

// SongEntry is a catalog song with precomputed match fields.
type SongEntry struct {
	ID          string
	Title       string
	Artist      string
	ArtistID    string
	Album       string
	ReleaseYear string
	Duration    string
	Genres      []string
	Lyrics      string
	AudioURL    string
	Image       string
	TitleNorm   string
	MatchKey    string
	URL         string
}

// AlbumEntry is a catalog album with precomputed match fields.
type AlbumEntry struct {
	ID          string
	Title       string
	ArtistID    string
	ReleaseYear string
	Image       string
	TitleNorm   string
	MatchKey    string
	URL         string
}

func newArtistEntry(rec ArtistRecord, siteBaseURL string) ArtistEntry {
	return ArtistEntry{
		ID:             rec.ID,
		Name:           rec.Name,
		Bio:            rec.Bio,
		Genres:         rec.Genres,
		Followers:      rec.Followers,
		Image:          rec.Image,
		NormalizedName: textnorm.NormalizeLoose(rec.Name),
		MatchKey:       textnorm.NormalizeTight(rec.Name),
		URL:            fmt.Sprintf("%s/artist/%s", siteBaseURL, rec.ID),
	}
}

func newSongEntry(rec SongRecord, siteBaseURL string) SongEntry {
	return SongEntry{
		ID:          rec.ID,
		Title:       rec.Title,
		Artist:      rec.Artist,
		ArtistID:    rec.ArtistID,
		Album:       rec.Album,
		ReleaseYear: rec.ReleaseYear,
		Duration:    rec.Duration,
		Genres:      rec.Genres,
		Lyrics:      rec.Lyrics,
		AudioURL:    rec.AudioURL,
		Image:       rec.CoverArt,
		TitleNorm:   textnorm.NormalizeLoose(rec.Title),
		MatchKey:    textnorm.NormalizeTight(rec.Title),
		URL:         fmt.Sprintf("%s/song/%s", siteBaseURL, rec.ID),
	}
}

func newAlbumEntry(rec AlbumRecord, siteBaseURL string) AlbumEntry {
	return AlbumEntry{
		ID:          rec.ID,
		Title:       rec.Title,
		ArtistID:    rec.ArtistID,
		ReleaseYear: rec.ReleaseYear,
		Image:       rec.CoverImage,
		TitleNorm:   textnorm.NormalizeLoose(rec.Title),
		MatchKey:    textnorm.NormalizeTight(rec.Title),
		URL:         fmt.Sprintf("%s/album/%s", siteBaseURL, rec.ID),
	}
}
