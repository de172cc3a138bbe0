package quizdiversity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractKeywordsDeterministic(t *testing.T) {
	text := "What is the procedure for emergency PUSHING the throttle during FUMBLE recovery?"

	first := ExtractKeywords(text, 5)
	second := ExtractKeywords(text, 5)

	require.NotEmpty(t, first)
	assert.Equal(t, first, second)
}

func TestExtractKeywordsRemovesStopwordsAndShortTokens(t *testing.T) {
	keywords := ExtractKeywords("the quick brown fox is on an ox", 5)

	assert.NotContains(t, keywords, "the")
	assert.NotContains(t, keywords, "is")
	assert.NotContains(t, keywords, "on")
	assert.NotContains(t, keywords, "an")
	assert.NotContains(t, keywords, "ox") // below minimum length
	assert.ElementsMatch(t, []string{"quick", "brown", "fox"}, keywords)
}

func TestExtractKeywordsLowercases(t *testing.T) {
	keywords := ExtractKeywords("Emergency PUSHING during FUMBLE recovery", 5)

	assert.Contains(t, keywords, "pushing")
	assert.Contains(t, keywords, "fumble")
	assert.NotContains(t, keywords, "PUSHING")
}

func TestExtractKeywordsRanksByFrequency(t *testing.T) {
	keywords := ExtractKeywords("throttle climb throttle descent throttle climb", 5)

	require.Len(t, keywords, 3)
	assert.Equal(t, "throttle", keywords[0])
	assert.Equal(t, "climb", keywords[1])
	assert.Equal(t, "descent", keywords[2])
}

func TestExtractKeywordsBreaksTiesByFirstOccurrence(t *testing.T) {
	keywords := ExtractKeywords("alpha bravo charlie delta", 5)

	assert.Equal(t, []string{"alpha", "bravo", "charlie", "delta"}, keywords)
}

func TestExtractKeywordsLimitsToTopN(t *testing.T) {
	keywords := ExtractKeywords("alpha bravo charlie delta echo foxtrot golf", 3)

	assert.Len(t, keywords, 3)
}

func TestExtractKeywordsEmptyText(t *testing.T) {
	assert.Empty(t, ExtractKeywords("", 5))
	assert.Empty(t, ExtractKeywords("a an to of", 5))
}

func TestKeywordSet(t *testing.T) {
	set := KeywordSet([]string{"fuel", "capacity"})

	assert.Len(t, set, 2)
	_, ok := set["fuel"]
	assert.True(t, ok)
}
