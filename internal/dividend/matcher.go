package dividend

import (
	"github.com/pmezard/go-difflib/difflib"
)

// DefaultCutoff is the minimum similarity ratio a name match must reach.
const DefaultCutoff = 0.6

// Matcher picks the candidate closest to query.
type Matcher interface {
	BestMatch(query string, candidates []string) (string, bool)
}

// RatioMatcher scores candidates by the sequence-matcher similarity ratio
// over characters. Matching is case-sensitive.
type RatioMatcher struct {
	Cutoff float64
}

// NewRatioMatcher returns a RatioMatcher; a cutoff outside (0,1] falls back
// to DefaultCutoff.
func NewRatioMatcher(cutoff float64) *RatioMatcher {
	if cutoff <= 0 || cutoff > 1 {
		cutoff = DefaultCutoff
	}
	return &RatioMatcher{Cutoff: cutoff}
}

// BestMatch returns the highest scoring candidate at or above the cutoff.
// Ties go to the lexically greater candidate.
func (m *RatioMatcher) BestMatch(query string, candidates []string) (string, bool) {
	sm := difflib.NewMatcher(nil, chars(query))

	var best string
	bestScore := -1.0
	for _, c := range candidates {
		sm.SetSeq1(chars(c))
		if sm.RealQuickRatio() < m.Cutoff || sm.QuickRatio() < m.Cutoff {
			continue
		}
		score := sm.Ratio()
		if score < m.Cutoff {
			continue
		}
		if score > bestScore || (score == bestScore && c > best) {
			best, bestScore = c, score
		}
	}
	return best, bestScore >= 0
}

func chars(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
