package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibesync/chatbot-engine/internal/observability"
)

type fakeSource struct {
	artists []ArtistRecord
	songs   []SongRecord
	albums  []AlbumRecord

	artistsErr error
	songsErr   error
	albumsErr  error
}

func (f *fakeSource) Artists(ctx context.Context) ([]ArtistRecord, error) {
	return f.artists, f.artistsErr
}

func (f *fakeSource) Songs(ctx context.Context) ([]SongRecord, error) {
	return f.songs, f.songsErr
}

func (f *fakeSource) Albums(ctx context.Context) ([]AlbumRecord, error) {
	return f.albums, f.albumsErr
}

func testSource() *fakeSource {
	return &fakeSource{
		artists: []ArtistRecord{
			{ID: "a1", Name: "Sơn Tùng M-TP", Bio: "Ca sĩ kiêm nhạc sĩ.", Genres: []string{"v-pop"}},
			{ID: "a2", Name: "Đen Vâu", Genres: []string{"rap"}},
		},
		songs: []SongRecord{
			{ID: "s1", Title: "Chạy Ngay Đi", Artist: "Sơn Tùng M-TP", ArtistID: "a1", Genres: []string{"v-pop"}},
			{ID: "s2", Title: "Lối Nhỏ", Artist: "", ArtistID: "a2", Genres: []string{"rap"}},
			{ID: "s3", Title: "Nơi Này Có Anh", Artist: "son tung m-tp", ArtistID: "", Genres: []string{"ballad"}},
		},
		albums: []AlbumRecord{
			{ID: "al1", Title: "Sky Tour", ArtistID: "a1", ReleaseYear: "2020"},
		},
	}
}

func build(t *testing.T, src Source) *Snapshot {
	t.Helper()
	b := NewBuilder(src, "http://localhost:3000", observability.Nop())
	return b.Build(context.Background())
}

func TestBuild_NormalizedFields(t *testing.T) {
	snap := build(t, testSource())

	require.Len(t, snap.Artists, 2)
	a := snap.Artists[0]
	assert.Equal(t, "son tung m tp", a.NormalizedName)
	assert.Equal(t, "sontungmtp", a.MatchKey)
	assert.Equal(t, "http://localhost:3000/artist/a1", a.URL)

	require.Len(t, snap.Songs, 3)
	s := snap.Songs[0]
	assert.Equal(t, "chay ngay đi", s.TitleNorm)
	assert.Equal(t, "http://localhost:3000/song/s1", s.URL)

	require.Len(t, snap.Albums, 1)
	assert.Equal(t, "http://localhost:3000/album/al1", snap.Albums[0].URL)
}

func TestBuild_DegradesToEmptyOnReadError(t *testing.T) {
	src := testSource()
	src.songsErr = errors.New("connection refused")

	snap := build(t, src)

	assert.Len(t, snap.Artists, 2, "other collections still load")
	assert.Empty(t, snap.Songs)
	assert.Len(t, snap.Albums, 1)
}

func TestSongsByArtist(t *testing.T) {
	snap := build(t, testSource())

	byName := snap.SongsByArtist("Sơn Tùng M-TP", "a1")
	require.Len(t, byName, 2, "matches by normalized name and by artist ID")
	assert.Equal(t, "s1", byName[0].ID)
	assert.Equal(t, "s3", byName[1].ID, "name-only association still counts")

	byID := snap.SongsByArtist("Đen Vâu", "a2")
	require.Len(t, byID, 1)
	assert.Equal(t, "s2", byID[0].ID)

	assert.Empty(t, snap.SongsByArtist("Unknown", "zzz"))
}

func TestArtistForSong(t *testing.T) {
	snap := build(t, testSource())

	a := snap.ArtistForSong(snap.Songs[0])
	require.NotNil(t, a)
	assert.Equal(t, "a1", a.ID)

	a = snap.ArtistForSong(snap.Songs[1])
	require.NotNil(t, a, "resolved by artist ID when the name is empty")
	assert.Equal(t, "a2", a.ID)

	assert.Nil(t, snap.ArtistForSong(SongEntry{Title: "Orphan"}))
}

func TestHolder_PublishAndCurrent(t *testing.T) {
	h := NewHolder()
	require.NotNil(t, h.Current(), "seeded with an empty snapshot")
	assert.Empty(t, h.Current().Songs)

	snap := build(t, testSource())
	h.Publish(snap)
	assert.Same(t, snap, h.Current())

	h.Publish(nil)
	assert.Same(t, snap, h.Current(), "nil publish is ignored")
}
