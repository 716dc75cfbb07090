package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScanCleanText(t *testing.T) {
	f := NewContentFilter()

	for _, text := range []string{"", "   ", "what a lovely day", "classic assessment of the passage"} {
		res := f.Scan(text)
		assert.False(t, res.Detected, text)
		assert.Empty(t, res.MatchedTerms, text)
		assert.NotNil(t, res.MatchedTerms, text)
	}
}

func TestScanTierTwoDisabledByDefault(t *testing.T) {
	f := NewContentFilter()

	res := f.Scan("well shit, that is some bullshit")
	assert.False(t, res.Detected)
	assert.Empty(t, res.MatchedTerms)
	assert.False(t, f.Scan("well shit").Detected)
	assert.Equal(t, []int{1, 3, 4}, f.ActiveTiers())
}

func TestScanActiveTiersCaseInsensitive(t *testing.T) {
	f := NewContentFilter()

	res := f.Scan("You BASTARD, you absolute Bastard. Total ASSHOLE and a shit person")
	assert.True(t, res.Detected)
	assert.Equal(t, []string{"asshole", "bastard"}, res.MatchedTerms)
	assert.True(t, f.Scan("bastard!").Detected)
}

func TestScanCustomTiers(t *testing.T) {
	f := NewContentFilter(2, 2, 9)

	assert.Equal(t, []int{2}, f.ActiveTiers())
	res := f.Scan("oh shit")
	assert.True(t, res.Detected)
	assert.Equal(t, []string{"shit"}, res.MatchedTerms)
	assert.False(t, f.Scan("bastard").Detected)
}

func TestScanPrefersWholeWords(t *testing.T) {
	f := NewContentFilter(2)

	res := f.Scan("fucking fucker")
	assert.Equal(t, []string{"fucker", "fucking"}, res.MatchedTerms)
}

func TestActiveTiersIsACopy(t *testing.T) {
	f := NewContentFilter()
	tiers := f.ActiveTiers()
	tiers[0] = 2

	assert.Equal(t, []int{1, 3, 4}, f.ActiveTiers())
	assert.Equal(t, []int{1, 3, 4}, NewContentFilter().ActiveTiers())
	assert.False(t, f.Scan("well shit").Detected)
}
