package company

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ideaforge/internal/domain/research"
)

func TestQualityScore(t *testing.T) {
	tests := []struct {
		name  string
		url   string
		title string
		want  int
	}{
		{"default", "https://example.io/page", "Overview", 3},
		{"gov", "https://data.census.gov/x", "Census", 5},
		{"financial press", "https://www.bloomberg.com/a", "News", 5},
		{"tech news", "https://techcrunch.com/a", "Funding round", 4},
		{"blog", "https://medium.com/@x/post", "Thoughts", 2},
		{"forum", "https://www.reddit.com/r/x", "Thread", 1},
		{"financial doc boost", "https://example.io/ir", "Q3 Earnings call", 4},
		{"case study boost capped", "https://www.reuters.com/x", "Case study", 5},
		{"sponsored penalty", "https://example.io/ad", "Sponsored: best tools", 1},
		{"penalty floored", "https://reddit.com/r/x", "Promoted post", 1},
		{"boost then penalty", "https://techcrunch.com/x", "Sponsored ROI report", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, QualityScore(tt.url, tt.title))
		})
	}
}

func TestDomain(t *testing.T) {
	assert.Equal(t, "acme.com", Domain("https://www.acme.com/about"))
	assert.Equal(t, "unknown", Domain(""))
	assert.Equal(t, "unknown", Domain("not a url"))
}

func TestRankSources_SortedAndFiltered(t *testing.T) {
	mr := &research.MarketResearch{
		Sources: []research.SearchSource{
			{Title: "Blog", URL: "https://medium.com/a"},
			{Title: "Wiki", URL: "https://en.wikipedia.org/wiki/Acme"},
			{Title: "Forum", URL: "https://quora.com/q"},
			{Title: "Site", URL: "https://acme.io"},
		},
	}

	got, domains := RankSources(mr)
	if assert.Len(t, got, 3) {
		assert.Equal(t, []int{5, 3, 2}, []int{got[0].QualityScore, got[1].QualityScore, got[2].QualityScore})
		assert.Equal(t, "Unknown", got[0].DateAccessed)
	}
	assert.Equal(t, 3, domains)
}
