// Package textnorm provides the text normalization used by the chatbot for
// matching Vietnamese and English prompts against catalog entries.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFD, drops combining marks, and recomposes.
// Note "đ" has no combining mark and survives, matching the upstream data.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// StripDiacritics removes combining diacritical marks from s.
func StripDiacritics(s string) string {
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		return s
	}
	return out
}

// NormalizeLoose lowercases, strips diacritics, replaces punctuation with
// spaces, and collapses runs of whitespace. Word characters (letters, digits,
// underscore) and spaces are preserved. Empty input yields "".
func NormalizeLoose(text string) string {
	if text == "" {
		return ""
	}
	s := StripDiacritics(strings.ToLower(text))
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// NormalizeTight lowercases, strips diacritics, and removes every character
// that is not a letter, digit, or underscore, including spaces. Used as a
// match key robust against spacing and punctuation variation.
func NormalizeTight(text string) string {
	if text == "" {
		return ""
	}
	s := StripDiacritics(strings.ToLower(text))
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Language is the detected prompt language.
type Language string

const (
	LangVietnamese Language = "vi"
	LangEnglish    Language = "en"
)

// DetectLanguage is a heuristic, not a general language detector: any
// Vietnamese accented letter forces "vi", plain Latin letters yield "en",
// everything else defaults to "vi".
func DetectLanguage(text string) Language {
	if text == "" {
		return LangVietnamese
	}
	hasLatin := false
	for _, r := range text {
		if (r >= 0x00E0 && r <= 0x1EF9) || (r >= 0x00C0 && r <= 0x1EF8) {
			return LangVietnamese
		}
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			hasLatin = true
		}
	}
	if hasLatin {
		return LangEnglish
	}
	return LangVietnamese
}
