package textnorm

import (
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLoose(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain ascii", "Hello There", "hello there"},
		{"vietnamese accents", "Sơn Tùng M-TP", "son tung m tp"},
		{"punctuation to space", "bài hát: 'Chúng Ta'!", "bai hat chung ta"},
		{"whitespace collapsed", "  nhiều   khoảng \t trắng ", "nhieu khoang trang"},
		{"digits kept", "top 10 bài hát", "top 10 bai hat"},
		{"underscore kept", "lo_fi", "lo_fi"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeLoose(tc.input))
		})
	}
}

func TestNormalizeLoose_Idempotent(t *testing.T) {
	inputs := []string{
		"Sơn Tùng M-TP",
		"lời bài hát là tôi yêu em mãi mãi",
		"Hello, world! 123",
		"",
	}
	for _, in := range inputs {
		once := NormalizeLoose(in)
		assert.Equal(t, once, NormalizeLoose(once), "NormalizeLoose must be idempotent for %q", in)
	}
}

func TestNormalizeTight(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"spaces removed", "Sơn Tùng M-TP", "sontungmtp"},
		{"punctuation removed", "Đen Vâu (Official)", "đenvauofficial"},
		{"digits kept", "Top 40", "top40"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeTight(tc.input))
		})
	}
}

func TestNormalizeTight_NoWhitespaceNoPunct(t *testing.T) {
	inputs := []string{
		"a b\tc\nd",
		"Chạy Ngay Đi!!!",
		"...---...",
		"mixed: ÁáẸệ 42",
	}
	for _, in := range inputs {
		got := NormalizeTight(in)
		for _, r := range got {
			assert.False(t, unicode.IsSpace(r), "no whitespace in %q", got)
			assert.False(t, unicode.IsPunct(r), "no punctuation in %q", got)
		}
	}
}

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		input string
		want  Language
	}{
		{"có bao nhiêu bài hát", LangVietnamese},
		{"á", LangVietnamese},
		{"ệ", LangVietnamese},
		{"hello there", LangEnglish},
		{"Sơn Tùng", LangVietnamese},
		{"12345", LangVietnamese},
		{"", LangVietnamese},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.want, DetectLanguage(tc.input))
		})
	}
}

func TestStripDiacritics(t *testing.T) {
	assert.Equal(t, "Son Tung", StripDiacritics("Sơn Tùng"))
	assert.True(t, strings.Contains(StripDiacritics("Đen"), "Đ"), "Đ carries no combining mark and is preserved")
}
