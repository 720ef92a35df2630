package clips

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchIsCaseInsensitive(t *testing.T) {
	corpus := Default()

	upper := corpus.Search("KAWHI bounce", 3)
	lower := corpus.Search("kawhi bounce", 3)

	require.Equal(t, len(upper), len(lower))
	for i := range upper {
		assert.Equal(t, upper[i].ID, lower[i].ID)
	}
}

func TestSearchFindsKawhiBounce(t *testing.T) {
	corpus := Default()

	results := corpus.Search("tell me about the kawhi bounce shot", 2)

	require.NotEmpty(t, results)
	assert.Equal(t, "kawhi_bounce", results[0].ID)
}

func TestSearchRespectsMaxResults(t *testing.T) {
	corpus := Default()

	// "patriots" appears in several clips' keyword sets
	results := corpus.Search("patriots", 2)
	assert.LessOrEqual(t, len(results), 2)

	all := corpus.Search("patriots", 0)
	assert.Greater(t, len(all), 2)
}

func TestSearchMatchesOnKeywordSubstring(t *testing.T) {
	corpus := Default()

	for _, clip := range corpus.Search("lebron block in the 2016 finals", 5) {
		matched := false
		for _, keyword := range clip.Keywords {
			if strings.Contains("lebron block in the 2016 finals", strings.ToLower(keyword)) {
				matched = true
				break
			}
		}
		assert.True(t, matched, "clip %s returned without a matching keyword", clip.ID)
	}
}

func TestSearchNoMatch(t *testing.T) {
	corpus := Default()
	assert.Empty(t, corpus.Search("quantum chromodynamics", 3))
}

func TestByID(t *testing.T) {
	corpus := Default()

	clip := corpus.ByID("butt_fumble")
	require.NotNil(t, clip)
	assert.Equal(t, "The Butt Fumble (2012)", clip.Title)

	assert.Nil(t, corpus.ByID("no_such_clip"))
}

func TestAllKeywordsSortedAndUnique(t *testing.T) {
	corpus := Default()

	keywords := corpus.AllKeywords()
	require.NotEmpty(t, keywords)

	seen := make(map[string]bool)
	for i, kw := range keywords {
		assert.False(t, seen[kw], "duplicate keyword %q", kw)
		seen[kw] = true
		if i > 0 {
			assert.LessOrEqual(t, keywords[i-1], kw)
		}
	}
}
