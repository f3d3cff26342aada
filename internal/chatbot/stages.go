package chatbot

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/vibesync/chatbot-engine/internal/catalog"
	"github.com/vibesync/chatbot-engine/internal/extract"
	"github.com/vibesync/chatbot-engine/internal/match"
	"github.com/vibesync/chatbot-engine/internal/textnorm"
)

const defaultCoverArt = "https://upload.wikimedia.org/wikipedia/commons/thumb/6/65/No-Image-Placeholder.svg/600px-No-Image-Placeholder.svg.png"

const bioTruncateLimit = 400

func artistCandidates(snap *catalog.Snapshot) []match.Candidate {
	out := make([]match.Candidate, 0, len(snap.Artists))
	for _, a := range snap.Artists {
		out = append(out, match.Candidate{
			Ref:    a,
			Fields: map[string]string{"name": a.Name, "matchKey": a.MatchKey},
		})
	}
	return out
}

func songCandidates(snap *catalog.Snapshot) []match.Candidate {
	out := make([]match.Candidate, 0, len(snap.Songs))
	for _, s := range snap.Songs {
		out = append(out, match.Candidate{
			Ref:    s,
			Fields: map[string]string{"titleNorm": s.TitleNorm, "matchKey": s.MatchKey},
		})
	}
	return out
}

func albumCandidates(snap *catalog.Snapshot) []match.Candidate {
	out := make([]match.Candidate, 0, len(snap.Albums))
	for _, a := range snap.Albums {
		out = append(out, match.Candidate{
			Ref:    a,
			Fields: map[string]string{"titleNorm": a.TitleNorm, "matchKey": a.MatchKey},
		})
	}
	return out
}

// quantityAnswer handles "N songs by artist" queries. Falls through when no
// artist-name fragment is captured or no artist matches it.
func (r *Responder) quantityAnswer(ctx context.Context, prompt string, snap *catalog.Snapshot) (string, bool) {
	q := extract.QuantityAndSubject(prompt)
	if q.Subject == "" {
		return "", false
	}

	best, _ := match.FindBest(q.Subject, artistCandidates(snap), []string{"name", "matchKey"}, r.cfg.MatchThreshold)
	if best == nil {
		return "", false
	}
	artist := best.Ref.(catalog.ArtistEntry)

	songs := snap.SongsByArtist(artist.Name, artist.ID)
	if len(songs) == 0 {
		return fmt.Sprintf("😥 Hiện không tìm thấy bài hát của nghệ sĩ **%s**.", artist.Name), true
	}

	limit := r.cfg.SongLimit
	if q.HasCount && q.Count > 0 {
		limit = q.Count
	}
	if limit > len(songs) {
		limit = len(songs)
	}
	limited := songs[:limit]

	var b strings.Builder
	if artist.Image != "" {
		fmt.Fprintf(&b, "![Ảnh nghệ sĩ](%s)\n\n", artist.Image)
	}

	introPrompt := fmt.Sprintf("Giới thiệu ngắn về nghệ sĩ %s và liệt kê %d bài hát nổi bật của họ.", artist.Name, limit)
	if intro, err := r.generate(ctx, introPrompt); err != nil {
		fmt.Fprintf(&b, "🎵 Dưới đây là %d bài hát của nghệ sĩ **%s**:\n\n", limit, artist.Name)
	} else if intro != "" {
		b.WriteString(intro + "\n\n")
	}

	for _, s := range limited {
		if s.Image != "" {
			fmt.Fprintf(&b, "![Ảnh bài hát](%s)\n", s.Image)
		}
		title := s.Title
		if title == "" {
			title = "Không rõ"
		}
		fmt.Fprintf(&b, "- [%s](%s) — %s\n\n", title, s.URL, s.Artist)
	}

	if artist.URL != "" {
		fmt.Fprintf(&b, "👉 Xem thêm: [%s](%s)", artist.Name, artist.URL)
	}
	return b.String(), true
}

// artistAnswer handles prompts that name an artist directly.
func (r *Responder) artistAnswer(ctx context.Context, prompt string, snap *catalog.Snapshot) (string, bool) {
	best, score := match.FindBest(prompt, artistCandidates(snap), []string{"name", "matchKey"}, r.cfg.MatchThreshold)
	if best == nil || score < r.cfg.MatchThreshold {
		return "", false
	}
	artist := best.Ref.(catalog.ArtistEntry)

	var b strings.Builder
	if artist.Image != "" {
		fmt.Fprintf(&b, "![Ảnh nghệ sĩ](%s)\n\n", artist.Image)
	}

	introPrompt := fmt.Sprintf("Giới thiệu ngắn về nghệ sĩ %s.", artist.Name)
	if artist.Bio != "" {
		introPrompt = fmt.Sprintf("Giới thiệu ngắn về nghệ sĩ %s.\nTiểu sử: %s", artist.Name, artist.Bio)
	}
	if intro, err := r.generate(ctx, introPrompt); err != nil {
		b.WriteString(artist.Name + "\n\n")
		if artist.Bio != "" {
			b.WriteString(artist.Bio + "\n\n")
		}
	} else {
		b.WriteString(intro + "\n\n")
	}

	songs := snap.SongsByArtist(artist.Name, artist.ID)
	if len(songs) > 0 {
		b.WriteString("🎵 Một số bài nổi bật:\n")
		limit := r.cfg.SongLimit
		if limit > len(songs) {
			limit = len(songs)
		}
		for _, s := range songs[:limit] {
			if s.Image != "" {
				fmt.Fprintf(&b, "![Ảnh bài](%s)\n", s.Image)
			}
			fmt.Fprintf(&b, "- [%s](%s)\n", s.Title, s.URL)
		}
	}

	if artist.URL != "" {
		fmt.Fprintf(&b, "\n👉 Xem thêm: [%s](%s)", artist.Name, artist.URL)
	}
	return b.String(), true
}

// songAnswer handles prompts that name a song.
func (r *Responder) songAnswer(ctx context.Context, prompt string, snap *catalog.Snapshot, language textnorm.Language) (string, bool) {
	best, score := match.FindBest(prompt, songCandidates(snap), []string{"titleNorm", "matchKey"}, r.cfg.MatchThreshold)
	if best == nil || score < r.cfg.MatchThreshold {
		return "", false
	}
	song := best.Ref.(catalog.SongEntry)

	title := song.Title
	if title == "" {
		title = "bài hát không rõ"
	}
	artistName := strings.TrimSpace(song.Artist)

	var bio string
	if a := snap.ArtistForSong(song); a != nil {
		bio = strings.TrimSpace(a.Bio)
	}
	if runes := []rune(bio); len(runes) > bioTruncateLimit {
		bio = string(runes[:bioTruncateLimit])
	}

	var descPrompt string
	switch {
	case artistName != "" && bio != "":
		if language == textnorm.LangVietnamese {
			descPrompt = fmt.Sprintf("Hãy giới thiệu ngắn bài hát '%s' của ca sĩ %s phát hành năm %s.\nThông tin nghệ sĩ: %s", title, artistName, song.ReleaseYear, bio)
		} else {
			descPrompt = fmt.Sprintf("Describe the song '%s' by artist %s, released in %s.\nArtist bio: %s", title, artistName, song.ReleaseYear, bio)
		}
	case artistName != "":
		if language == textnorm.LangVietnamese {
			descPrompt = fmt.Sprintf("Hãy giới thiệu ngắn bài hát '%s' của ca sĩ %s phát hành năm %s.", title, artistName, song.ReleaseYear)
		} else {
			descPrompt = fmt.Sprintf("Describe the song '%s' by artist %s, released in %s.", title, artistName, song.ReleaseYear)
		}
	default:
		if language == textnorm.LangVietnamese {
			descPrompt = fmt.Sprintf("Hãy mô tả ngắn bài hát '%s'.", title)
		} else {
			descPrompt = fmt.Sprintf("Describe the song '%s'.", title)
		}
	}

	// A failed generation falls back to the prompt text itself, matching
	// the original service's behavior.
	replyText, err := r.generate(ctx, descPrompt)
	if err != nil {
		replyText = descPrompt
	}

	var b strings.Builder
	if song.Image != "" {
		fmt.Fprintf(&b, "![Ảnh bài hát](%s)\n\n", song.Image)
	}
	b.WriteString(replyText)
	if song.ID != "" {
		if language == textnorm.LangVietnamese {
			fmt.Fprintf(&b, "\n\n👉 Nghe bài hát: [%s](%s)", title, song.URL)
		} else {
			fmt.Fprintf(&b, "\n\n👉 Listen to the song: [%s](%s)", title, song.URL)
		}
	}
	return b.String(), true
}

// albumAnswer handles prompts that name an album.
func (r *Responder) albumAnswer(ctx context.Context, prompt string, snap *catalog.Snapshot, language textnorm.Language) (string, bool) {
	best, score := match.FindBest(prompt, albumCandidates(snap), []string{"titleNorm", "matchKey"}, r.cfg.MatchThreshold)
	if best == nil || score < r.cfg.MatchThreshold {
		return "", false
	}
	album := best.Ref.(catalog.AlbumEntry)

	title := album.Title
	if title == "" {
		title = "album không rõ"
	}
	var artistName string
	if a := snap.ArtistByID(album.ArtistID); a != nil {
		artistName = a.Name
	}

	var descPrompt string
	if language == textnorm.LangVietnamese {
		descPrompt = fmt.Sprintf("Hãy giới thiệu về album '%s' của ca sĩ %s phát hành năm %s.", title, artistName, album.ReleaseYear)
	} else {
		descPrompt = fmt.Sprintf("Tell me about the album '%s' by artist %s, released in %s.", title, artistName, album.ReleaseYear)
	}

	reply, err := r.generate(ctx, descPrompt)
	if err != nil {
		r.logger.Error().Err(err).Msg("album introduction generation failed")
		if language == textnorm.LangVietnamese {
			reply = fmt.Sprintf("Album **%s** của ca sĩ **%s** phát hành năm %s.", title, artistName, album.ReleaseYear)
		} else {
			reply = fmt.Sprintf("The album **%s** by artist %s, released in %s.", title, artistName, album.ReleaseYear)
		}
	}

	if album.Image != "" {
		reply = fmt.Sprintf("![Ảnh album](%s)\n\n", album.Image) + reply
	}

	if language == textnorm.LangVietnamese {
		reply += fmt.Sprintf("\n\n👉 Bạn có thể xem thêm về album: [%s](%s)", title, album.URL)
	} else {
		reply += fmt.Sprintf("\n\n👉 You can learn more about the album: [%s](%s)", title, album.URL)
	}
	return reply, true
}

var (
	lyricStripRe = regexp.MustCompile(`(loi bai hat|lyric|loi|cau hat)`)
	lyricLineRe  = regexp.MustCompile(`\n|\[.*?\]`)
)

// lyricKeywords are matched against the normalized prompt.
var lyricKeywords = []string{"loi bai hat", "lyric", "loi", "cau hat"}

type lyricMatch struct {
	song  catalog.SongEntry
	score float64
}

// lyricAnswer searches song lyrics line by line for the prompt text.
func (r *Responder) lyricAnswer(normPrompt string, snap *catalog.Snapshot, language textnorm.Language) (string, bool) {
	explicit := containsAny(normPrompt, lyricKeywords)

	searchText := normPrompt
	if explicit {
		searchText = strings.TrimSpace(lyricStripRe.ReplaceAllString(normPrompt, ""))
	}
	if searchText == "" {
		return "", false
	}

	var matched []lyricMatch
	for _, song := range snap.Songs {
		if song.Lyrics == "" {
			continue
		}

		maxScore := 0.0
		for _, line := range lyricLineRe.Split(song.Lyrics, -1) {
			normLine := textnorm.NormalizeLoose(line)
			if normLine == "" {
				continue
			}
			if strings.Contains(normLine, searchText) {
				maxScore = 1.0
				break
			}
			if s := match.Ratio(searchText, normLine); s > maxScore {
				maxScore = s
			}
		}

		if maxScore > r.cfg.LyricThreshold {
			matched = append(matched, lyricMatch{song: song, score: maxScore})
		}
	}

	if len(matched) == 0 {
		return "", false
	}

	sort.SliceStable(matched, func(i, j int) bool { return matched[i].score > matched[j].score })
	if len(matched) > r.cfg.LyricTopN {
		matched = matched[:r.cfg.LyricTopN]
	}

	var b strings.Builder
	if explicit {
		if language == textnorm.LangVietnamese {
			b.WriteString("Dưới đây là lời bài hát phù hợp với bài hát bạn miêu tả:\n\n")
		} else {
			b.WriteString("Here are the lyrics matching your query:\n\n")
		}
	} else {
		if language == textnorm.LangVietnamese {
			b.WriteString("Dựa trên câu hỏi của bạn, đây là một số bài hát có lời liên quan:\n\n")
		} else {
			b.WriteString("Based on your query, here are some songs with related lyrics:\n\n")
		}
	}

	for _, m := range matched {
		cover := m.song.Image
		if cover == "" {
			cover = defaultCoverArt
		}
		fmt.Fprintf(&b, "![Ảnh bìa](%s)\n\n", cover)
		fmt.Fprintf(&b, "**%s - %s**\n\n👉 Nghe bài hát: [%s](%s)\n\n---\n\n", m.song.Title, m.song.Artist, m.song.Title, m.song.URL)
	}

	return strings.TrimSpace(b.String()), true
}
