package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func artistCandidates() []Candidate {
	names := []struct{ name, key string }{
		{"Sơn Tùng M-TP", "sontungmtp"},
		{"Đen Vâu", "đenvau"},
		{"Mỹ Tâm", "mytam"},
		{"Hòa Minzy", "hoaminzy"},
	}
	out := make([]Candidate, 0, len(names))
	for _, n := range names {
		out = append(out, Candidate{
			Ref:    n.name,
			Fields: map[string]string{"name": n.name, "matchKey": n.key},
		})
	}
	return out
}

func TestRatio(t *testing.T) {
	assert.Equal(t, 1.0, Ratio("abc", "abc"))
	assert.Equal(t, 0.0, Ratio("", "abc"))
	assert.Equal(t, 0.0, Ratio("abc", ""))
	assert.InDelta(t, 0.75, Ratio("abcd", "abcx"), 1e-9)
	assert.Greater(t, Ratio("son tung", "son tung mtp"), 0.7)
}

func TestFindBest_AccentInsensitive(t *testing.T) {
	best, score := FindBest("Son Tung", artistCandidates(), []string{"name", "matchKey"}, DefaultThreshold)
	require.NotNil(t, best)
	assert.Equal(t, "Sơn Tùng M-TP", best.Ref)
	assert.GreaterOrEqual(t, score, 0.6)
}

func TestFindBest_SubstringScoresOne(t *testing.T) {
	best, score := FindBest("cho tôi nghe nhạc đen vâu đi", artistCandidates(), []string{"name", "matchKey"}, DefaultThreshold)
	require.NotNil(t, best)
	assert.Equal(t, "Đen Vâu", best.Ref)
	assert.Equal(t, 1.0, score)
}

func TestFindBest_BelowThreshold(t *testing.T) {
	best, score := FindBest("zzzz qqqq", artistCandidates(), []string{"name", "matchKey"}, DefaultThreshold)
	assert.Nil(t, best)
	assert.Less(t, score, 0.6)
}

func TestFindBest_EmptyQuery(t *testing.T) {
	best, score := FindBest("", artistCandidates(), nil, DefaultThreshold)
	assert.Nil(t, best)
	assert.Equal(t, 0.0, score)
}

func TestFindBest_DefaultFieldsAndTies(t *testing.T) {
	cands := []Candidate{
		{Ref: "first", Fields: map[string]string{"title": "Chạy Ngay Đi"}},
		{Ref: "second", Fields: map[string]string{"title": "Chạy Ngay Đi"}},
	}
	best, score := FindBest("chạy ngay đi", cands, nil, DefaultThreshold)
	require.NotNil(t, best)
	assert.Equal(t, 1.0, score)
	assert.Equal(t, "first", best.Ref, "ties keep the first candidate")
}

func TestFindBest_SkipsEmptyFields(t *testing.T) {
	cands := []Candidate{
		{Ref: "nameless", Fields: map[string]string{"name": ""}},
		{Ref: "named", Fields: map[string]string{"name": "Mỹ Tâm"}},
	}
	best, _ := FindBest("my tam", cands, []string{"name"}, DefaultThreshold)
	require.NotNil(t, best)
	assert.Equal(t, "named", best.Ref)
}
