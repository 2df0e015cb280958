package ideaanalysis

import (
	"time"

	"ideaforge/internal/domain/research"
	"ideaforge/pkg/textclean"
)

// Sources collects attribution entries from solutions, trends and competitors,
// deduplicated by URL in that order
func Sources(mr *research.MarketResearch) []research.IdeaSource {
	accessed := "Unknown"
	if !mr.Timestamp.IsZero() {
		accessed = mr.Timestamp.Format(time.RFC3339)
	}

	out := []research.IdeaSource{}
	seen := map[string]bool{}
	add := func(kind, url, title string) {
		if url == "" || url == "N/A" || seen[url] {
			return
		}
		seen[url] = true
		out = append(out, research.IdeaSource{
			Type:         kind,
			Title:        textclean.Truncate(title, 150),
			URL:          url,
			DateAccessed: accessed,
		})
	}

	for _, s := range mr.ExistingSolutions {
		add("Implementation", s.URL, orDefault(s.Title, "Implementation Example"))
	}
	for _, t := range mr.Trends {
		add("Market Insight", t.Source, orDefault(t.Trend, "Market Analysis"))
	}
	for _, c := range mr.Competitors {
		add("Competitor", c.URL, orDefault(c.Title, "Competitor"))
	}
	return out
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
