// Package match implements fuzzy entity matching over in-memory catalog
// candidates, combining substring containment with a character-level
// longest-matching-blocks similarity ratio.
package match

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/vibesync/chatbot-engine/internal/textnorm"
)

// DefaultThreshold is the acceptance score below which FindBest reports no match.
const DefaultThreshold = 0.6

// Candidate pairs an underlying catalog entry with its comparison fields.
type Candidate struct {
	Ref    any
	Fields map[string]string
}

// defaultFields is used when the caller does not name comparison fields.
var defaultFields = []string{"name", "title", "matchKey", "titleNorm"}

// Ratio computes the SequenceMatcher similarity ratio of two strings over
// their rune sequences, in [0,1]. Empty input scores 0.
func Ratio(a, b string) float64 {
	if a == "" || b == "" {
		return 0.0
	}
	return difflib.NewMatcher(splitRunes(a), splitRunes(b)).Ratio()
}

func splitRunes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// FindBest returns the best-scoring candidate for query, or nil when no
// candidate reaches the threshold. The score of the best candidate found is
// returned either way so callers can log near misses. Ties keep the first
// candidate encountered.
//
// Each configured field value is compared in two normalization modes: loose
// (spaces kept) and tight (spaces stripped). Substring containment in either
// direction and either mode scores 1.0; otherwise the higher of the two
// similarity ratios is used.
func FindBest(query string, candidates []Candidate, fields []string, threshold float64) (*Candidate, float64) {
	if query == "" {
		return nil, 0.0
	}
	if len(fields) == 0 {
		fields = defaultFields
	}

	qNorm := textnorm.NormalizeLoose(query)
	qMatch := textnorm.NormalizeTight(query)

	var best *Candidate
	bestScore := 0.0

	for i := range candidates {
		cand := &candidates[i]
		for _, f := range fields {
			val := cand.Fields[f]
			if val == "" {
				continue
			}
			score := scoreField(qNorm, qMatch, val)
			if score > bestScore {
				bestScore = score
				best = cand
			}
		}
	}

	if bestScore >= threshold {
		return best, bestScore
	}
	return nil, bestScore
}

func scoreField(qNorm, qMatch, value string) float64 {
	vNorm := textnorm.NormalizeLoose(value)
	vMatch := textnorm.NormalizeTight(value)

	if vNorm != "" && (strings.Contains(qNorm, vNorm) || strings.Contains(vNorm, qNorm)) {
		return 1.0
	}
	if vMatch != "" && (strings.Contains(qMatch, vMatch) || strings.Contains(vMatch, qMatch)) {
		return 1.0
	}

	score := Ratio(qNorm, vNorm)
	if s := Ratio(qMatch, vMatch); s > score {
		score = s
	}
	return score
}
