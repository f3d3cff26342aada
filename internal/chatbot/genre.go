package chatbot

import (
	"fmt"
	"strings"

	"github.com/vibesync/chatbot-engine/internal/catalog"
	"github.com/vibesync/chatbot-engine/internal/textnorm"
)

// genreGroup maps a user-facing genre keyword to its catalog synonyms.
type genreGroup struct {
	key      string
	synonyms []string
}

// genreGroups is checked in declaration order; the first group with a
// synonym present in the lowercased prompt handles the request.
var genreGroups = []genreGroup{
	{"edm", []string{"dance", "dance-pop", "pop", "remix", "electronic", "edm"}},
	{"buồn", []string{"ballad", "sad", "r&b", "acoustic"}},
	{"thư giãn", []string{"chill", "relax", "lofi", "acoustic"}},
	{"love", []string{"love", "romantic", "pop", "r&b"}},
	{"rap", []string{"rap", "hiphop", "hip-hop"}},
	{"vietnamese", []string{"vietnamese", "v-pop", "việt", "vietnam"}},
	{"uk-us", []string{"english", "us-uk", "uk/us", "pop", "r&b", "dance-pop"}},
}

// genreAnswer handles genre-keyword recommendation queries. The reply lists
// songs grouped by artist, capped per artist and in total.
func (r *Responder) genreAnswer(prompt string, snap *catalog.Snapshot, language textnorm.Language) (string, bool) {
	lower := strings.ToLower(prompt)

	for _, group := range genreGroups {
		if !containsAny(lower, group.synonyms) {
			continue
		}

		normSynonyms := make(map[string]bool, len(group.synonyms))
		for _, syn := range group.synonyms {
			normSynonyms[textnorm.NormalizeLoose(syn)] = true
		}

		var matched []catalog.SongEntry
		for _, song := range snap.Songs {
			for _, g := range song.Genres {
				if normSynonyms[textnorm.NormalizeLoose(g)] {
					matched = append(matched, song)
					break
				}
			}
		}

		if len(matched) == 0 {
			return fmt.Sprintf("😥 Hiện không tìm thấy bài hát thuộc thể loại **%s**.", group.key), true
		}

		header := fmt.Sprintf("Một số bài hát thuộc thể loại **%s** bạn có thể thích:", group.key)
		if language == textnorm.LangEnglish {
			header = fmt.Sprintf("Some songs in the **%s** genre you might enjoy:", group.key)
		}

		var b strings.Builder
		b.WriteString("\n\n🎵 " + header + "\n")

		// Group by artist, preserving first-seen order.
		var artistOrder []string
		byArtist := make(map[string][]catalog.SongEntry)
		for _, song := range matched {
			if _, seen := byArtist[song.Artist]; !seen {
				artistOrder = append(artistOrder, song.Artist)
			}
			byArtist[song.Artist] = append(byArtist[song.Artist], song)
		}

		count := 0
	outer:
		for _, artist := range artistOrder {
			songs := byArtist[artist]
			if len(songs) > r.cfg.GenrePerArtist {
				songs = songs[:r.cfg.GenrePerArtist]
			}
			for _, song := range songs {
				fmt.Fprintf(&b, "- [%s](%s) – %s\n", song.Title, song.URL, artist)
				count++
				if count >= r.cfg.GenreSongCap {
					break outer
				}
			}
		}

		return b.String(), true
	}

	return "", false
}

func containsAny(s string, substrs []string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
