package dividend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatioMatcher_BestMatch(t *testing.T) {
	m := NewRatioMatcher(DefaultCutoff)

	got, ok := m.BestMatch("appel", []string{"ape", "apple", "peach", "puppy"})
	assert.True(t, ok)
	assert.Equal(t, "apple", got)
}

func TestRatioMatcher_Exact(t *testing.T) {
	m := NewRatioMatcher(DefaultCutoff)

	got, ok := m.BestMatch("BASF SE", []string{"ALLIANZ SE", "BASF SE"})
	assert.True(t, ok)
	assert.Equal(t, "BASF SE", got)
}

func TestRatioMatcher_CaseSensitive(t *testing.T) {
	m := NewRatioMatcher(DefaultCutoff)

	_, ok := m.BestMatch("basf se", []string{"BASF SE"})
	assert.False(t, ok)
}

func TestRatioMatcher_Cutoff(t *testing.T) {
	strict := NewRatioMatcher(0.9)
	_, ok := strict.BestMatch("appel", []string{"apple"})
	assert.False(t, ok, "ratio 0.8 is below a 0.9 cutoff")

	loose := NewRatioMatcher(0.5)
	got, ok := loose.BestMatch("appel", []string{"apple"})
	assert.True(t, ok)
	assert.Equal(t, "apple", got)
}

func TestRatioMatcher_InvalidCutoffDefaults(t *testing.T) {
	assert.InDelta(t, DefaultCutoff, NewRatioMatcher(0).Cutoff, 1e-9)
	assert.InDelta(t, DefaultCutoff, NewRatioMatcher(1.5).Cutoff, 1e-9)
}

func TestRatioMatcher_NoCandidates(t *testing.T) {
	_, ok := NewRatioMatcher(DefaultCutoff).BestMatch("anything", nil)
	assert.False(t, ok)
}
