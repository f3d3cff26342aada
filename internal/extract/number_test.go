package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumber(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
		ok    bool
	}{
		{"digits", "5 bài của Sơn Tùng", 5, true},
		{"digits multi", "cho tôi 12 bài", 12, true},
		{"word muoi", "mười bài", 10, true},
		{"word accented", "năm bài hát", 5, true},
		{"word unaccented", "muoi lam bai", 15, true},
		{"compound before single", "mười một bài", 11, true},
		{"hai muoi", "hai mươi bài hát hay nhất", 20, true},
		{"no number", "bài hát hay", 0, false},
		{"empty", "", 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Number(tc.input)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestQuantityAndSubject(t *testing.T) {
	tests := []struct {
		name     string
		prompt   string
		count    int
		hasCount bool
		subject  string
	}{
		{"digits with subject", "cho tôi 5 bài của Sơn Tùng", 5, true, "sơn tùng"},
		{"digits tight", "5 bài của Sơn Tùng FTP", 5, true, "sơn tùng ftp"},
		{"word with subject", "ba bài của đen vâu", 3, true, "đen vâu"},
		{"generic of with number", "nhạc của đen vâu có 2 bản", 2, true, "đen vâu có 2 bản"},
		{"of without number", "nhạc của jack", 0, false, "jack"},
		{"number only", "cho tôi 7 bài hay", 7, true, ""},
		{"nothing", "xin chào", 0, false, ""},
		{"empty", "", 0, false, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := QuantityAndSubject(tc.prompt)
			assert.Equal(t, tc.hasCount, q.HasCount)
			if tc.hasCount {
				assert.Equal(t, tc.count, q.Count)
			}
			assert.Equal(t, tc.subject, q.Subject)
		})
	}
}
