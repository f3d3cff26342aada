package catalog

import (
	"context"
	"sync/atomic"

	"github.com/vibesync/chatbot-engine/internal/observability"
	"github.com/vibesync/chatbot-engine/internal/textnorm"
)

// Snapshot is an immutable view of the catalog taken at one point in time.
// Entries are never mutated after construction, so a Snapshot can be shared
// across goroutines freely.
type Snapshot struct {
	Artists []ArtistEntry
	Songs   []SongEntry
	Albums  []AlbumEntry
}

// Builder builds snapshots from a Source. Read failures on any collection
// are logged and degrade that collection to empty rather than failing the
// whole build.
type Builder struct {
	source      Source
	siteBaseURL string
	logger      *observability.Logger
}

// NewBuilder creates a Builder.
func NewBuilder(source Source, siteBaseURL string, logger *observability.Logger) *Builder {
	return &Builder{
		source:      source,
		siteBaseURL: siteBaseURL,
		logger:      logger.WithComponent("catalog"),
	}
}

// Build fetches all three collections and returns a fresh Snapshot.
func (b *Builder) Build(ctx context.Context) *Snapshot {
	snap := &Snapshot{}

	artists, err := b.source.Artists(ctx)
	if err != nil {
		b.logger.Error().Err(err).Msg("artist read failed, using empty set")
		artists = nil
	}
	for _, rec := range artists {
		snap.Artists = append(snap.Artists, newArtistEntry(rec, b.siteBaseURL))
	}

	songs, err := b.source.Songs(ctx)
	if err != nil {
		b.logger.Error().Err(err).Msg("song read failed, using empty set")
		songs = nil
	}
	for _, rec := range songs {
		snap.Songs = append(snap.Songs, newSongEntry(rec, b.siteBaseURL))
	}

	albums, err := b.source.Albums(ctx)
	if err != nil {
		b.logger.Error().Err(err).Msg("album read failed, using empty set")
		albums = nil
	}
	for _, rec := range albums {
		snap.Albums = append(snap.Albums, newAlbumEntry(rec, b.siteBaseURL))
	}

	return snap
}

// SongsByArtist returns the songs associated with an artist, matched either
// by normalized artist name or by artist ID. Catalog order is preserved.
func (s *Snapshot) SongsByArtist(artistName, artistID string) []SongEntry {
	nameNorm := textnorm.NormalizeLoose(artistName)

	var out []SongEntry
	for _, song := range s.Songs {
		if song.Artist != "" && textnorm.NormalizeLoose(song.Artist) == nameNorm {
			out = append(out, song)
			continue
		}
		if song.ArtistID != "" && artistID != "" && song.ArtistID == artistID {
			out = append(out, song)
		}
	}
	return out
}

// ArtistByID returns the artist with the given ID, or nil.
func (s *Snapshot) ArtistByID(id string) *ArtistEntry {
	if id == "" {
		return nil
	}
	for i := range s.Artists {
		if s.Artists[i].ID == id {
			return &s.Artists[i]
		}
	}
	return nil
}

// ArtistForSong resolves the artist entry for a song, first by
// case-insensitive name, then by artist ID. Returns nil when neither
// resolves.
func (s *Snapshot) ArtistForSong(song SongEntry) *ArtistEntry {
	nameNorm := textnorm.NormalizeLoose(song.Artist)
	for i := range s.Artists {
		a := &s.Artists[i]
		if song.Artist != "" && textnorm.NormalizeLoose(a.Name) == nameNorm {
			return a
		}
		if song.ArtistID != "" && a.ID == song.ArtistID {
			return a
		}
	}
	return nil
}

// Holder publishes the most recent snapshot with an atomic pointer swap so
// readers never observe a half-built catalog.
type Holder struct {
	current atomic.Pointer[Snapshot]
}

// NewHolder creates a Holder seeded with an empty snapshot.
func NewHolder() *Holder {
	h := &Holder{}
	h.current.Store(&Snapshot{})
	return h
}

// Publish replaces the current snapshot.
func (h *Holder) Publish(snap *Snapshot) {
	if snap == nil {
		return
	}
	h.current.Store(snap)
}

// Current returns the latest published snapshot.
func (h *Holder) Current() *Snapshot {
	return h.current.Load()
}
