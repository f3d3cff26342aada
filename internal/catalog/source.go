package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// ArtistRecord is a raw artist row before normalization.
type ArtistRecord struct {
	ID        string
	Name      string
	Bio       string
	Genres    []string
	Followers int
	Image     string
}

// SongRecord is a raw song row before normalization.
type SongRecord struct {
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
	CoverArt    string
}

// AlbumRecord is a raw album row before normalization.
type AlbumRecord struct {
	ID          string
	Title       string
	ArtistID    string
	ReleaseYear string
	CoverImage  string
}

// Source supplies catalog records. Implementations must be safe for
// concurrent use.
type Source interface {
	Artists(ctx context.Context) ([]ArtistRecord, error)
	Songs(ctx context.Context) ([]SongRecord, error)
	Albums(ctx context.Context) ([]AlbumRecord, error)
}

// SQLSource reads the catalog from a SQL database. Genre lists are stored
// as JSON text columns.
type SQLSource struct {
	db *sql.DB
}

// NewSQLSource creates a SQLSource over db.
func NewSQLSource(db *sql.DB) *SQLSource {
	return &SQLSource{db: db}
}

var _ Source = (*SQLSource)(nil)

// Artists returns all artist rows.
func (s *SQLSource) Artists(ctx context.Context) ([]ArtistRecord, error) {
	query := `
		SELECT id, name, COALESCE(bio, ''), COALESCE(genres, '[]'),
		       COALESCE(followers, 0), COALESCE(image, '')
		FROM artists
		ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query artists: %w", err)
	}
	defer rows.Close()

	var out []ArtistRecord
	for rows.Next() {
		var rec ArtistRecord
		var genresJSON string
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Bio, &genresJSON, &rec.Followers, &rec.Image); err != nil {
			return nil, fmt.Errorf("scan artist: %w", err)
		}
		rec.Genres = decodeGenres(genresJSON)
		out = append(out, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate artists: %w", err)
	}
	return out, nil
}

// Songs returns all song rows.
func (s *SQLSource) Songs(ctx context.Context) ([]SongRecord, error) {
	query := `
		SELECT id, title, COALESCE(artist, ''), COALESCE(artist_id, ''),
		       COALESCE(album, ''), COALESCE(release_year, ''), COALESCE(duration, ''),
		       COALESCE(genres, '[]'), COALESCE(lyrics, ''), COALESCE(audio_url, ''),
		       COALESCE(cover_art, '')
		FROM songs
		ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query songs: %w", err)
	}
	defer rows.Close()

	var out []SongRecord
	for rows.Next() {
		var rec SongRecord
		var genresJSON string
		if err := rows.Scan(&rec.ID, &rec.Title, &rec.Artist, &rec.ArtistID,
			&rec.Album, &rec.ReleaseYear, &rec.Duration,
			&genresJSON, &rec.Lyrics, &rec.AudioURL, &rec.CoverArt); err != nil {
			return nil, fmt.Errorf("scan song: %w", err)
		}
		rec.Genres = decodeGenres(genresJSON)
		out = append(out, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate songs: %w", err)
	}
	return out, nil
}

// Albums returns all album rows.
func (s *SQLSource) Albums(ctx context.Context) ([]AlbumRecord, error) {
	query := `
		SELECT id, title, COALESCE(artist_id, ''), COALESCE(release_year, ''),
		       COALESCE(cover_image, '')
		FROM albums
		ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query albums: %w", err)
	}
	defer rows.Close()

	var out []AlbumRecord
	for rows.Next() {
		var rec AlbumRecord
		if err := rows.Scan(&rec.ID, &rec.Title, &rec.ArtistID, &rec.ReleaseYear, &rec.CoverImage); err != nil {
			return nil, fmt.Errorf("scan album: %w", err)
		}
		out = append(out, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate albums: %w", err)
	}
	return out, nil
}

// decodeGenres parses a JSON array column, tolerating malformed values.
func decodeGenres(raw string) []string {
	if raw == "" || raw == "[]" {
		return nil
	}
	var genres []string
	if err := json.Unmarshal([]byte(raw), &genres); err != nil {
		return nil
	}
	return genres
}
