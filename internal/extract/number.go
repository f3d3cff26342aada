// Package extract pulls quantities and entity-name fragments out of free-text
// prompts such as "cho tôi 5 bài của Sơn Tùng".
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/vibesync/chatbot-engine/internal/textnorm"
)

type numberWord struct {
	word  string
	value int
}

// numberWords maps Vietnamese number words one through twenty to integers,
// in both accented and unaccented spellings. Compound forms come first so
// that "mười một" resolves to 11 before the standalone "một" can claim it.
var numberWords = []numberWord{
	{"mười một", 11}, {"muoi mot", 11},
	{"mười hai", 12}, {"muoi hai", 12},
	{"mười ba", 13}, {"muoi ba", 13},
	{"mười bốn", 14}, {"muoi bon", 14},
	{"mười lăm", 15}, {"muoi lam", 15},
	{"mười sáu", 16}, {"muoi sau", 16},
	{"mười bảy", 17}, {"muoi bay", 17},
	{"mười tám", 18}, {"muoi tam", 18},
	{"mười chín", 19}, {"muoi chin", 19},
	{"hai mươi", 20}, {"hai muoi", 20},
	{"mười", 10}, {"muoi", 10},
	{"một", 1}, {"mot", 1},
	{"hai", 2},
	{"ba", 3},
	{"bốn", 4}, {"bon", 4},
	{"năm", 5}, {"nam", 5},
	{"sáu", 6}, {"sau", 6},
	{"bảy", 7}, {"bay", 7},
	{"tám", 8}, {"tam", 8},
	{"chín", 9}, {"chin", 9},
}

var digitsRe = regexp.MustCompile(`(\d+)`)

// Number extracts an integer from text: a literal digit sequence first,
// then the Vietnamese number-word table. Words are matched on whole tokens
// of the loosely normalized text, so "mười bài" yields 10 and never 3 via
// the "ba" substring of "bài".
func Number(text string) (int, bool) {
	if text == "" {
		return 0, false
	}
	if m := digitsRe.FindString(text); m != "" {
		if n, err := strconv.Atoi(m); err == nil {
			return n, true
		}
	}
	padded := " " + textnorm.NormalizeLoose(text) + " "
	for _, nw := range numberWords {
		if strings.Contains(padded, " "+textnorm.NormalizeLoose(nw.word)+" ") {
			return nw.value, true
		}
	}
	return 0, false
}

// Quantity is the outcome of parsing a "N songs by X" style prompt.
type Quantity struct {
	Count    int
	HasCount bool
	Subject  string // raw artist-name fragment, empty when none was captured
}

var (
	digitSongOfRe = regexp.MustCompile(`(\d+)\s*(?:bài|bai|ca khuc|bai hat)\s*(?:của|cua)\s+(.+)`)
	ofSubjectRe   = regexp.MustCompile(`(?:của|cua)\s+(.+)`)
)

// QuantityAndSubject parses prompts like "cho tôi 5 bài của Sơn Tùng" or
// "ba bài của Đen Vâu". Patterns are applied in priority order; the first
// match wins and later rules only run when earlier ones fail.
func QuantityAndSubject(prompt string) Quantity {
	if prompt == "" {
		return Quantity{}
	}
	text := strings.ToLower(prompt)

	if m := digitSongOfRe.FindStringSubmatch(text); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return Quantity{Count: n, HasCount: true, Subject: strings.TrimSpace(m[2])}
		}
	}

	for _, nw := range numberWords {
		if !strings.Contains(text, nw.word+" bài") && !strings.Contains(text, nw.word+" bai") {
			continue
		}
		wordRe := regexp.MustCompile(regexp.QuoteMeta(nw.word) + `\s*(?:bài|bai).*(?:của|cua)\s+(.+)`)
		if m := wordRe.FindStringSubmatch(text); m != nil {
			return Quantity{Count: nw.value, HasCount: true, Subject: strings.TrimSpace(m[1])}
		}
		if m := ofSubjectRe.FindStringSubmatch(text); m != nil {
			return Quantity{Count: nw.value, HasCount: true, Subject: strings.TrimSpace(m[1])}
		}
	}

	if m := ofSubjectRe.FindStringSubmatch(text); m != nil {
		q := Quantity{Subject: strings.TrimSpace(m[1])}
		if n, ok := Number(text); ok {
			q.Count = n
			q.HasCount = true
		}
		return q
	}

	if n, ok := Number(text); ok {
		return Quantity{Count: n, HasCount: true}
	}

	return Quantity{}
}
