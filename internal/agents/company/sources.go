package company

import (
	"net/url"
	"sort"
	"strings"
	"time"

	"ideaforge/internal/domain/research"
	"ideaforge/pkg/textclean"
)

const (
	minSourceQuality  = 2
	minUniqueDomains  = 3
	maxSourceTitleLen = 150
)

// authority tiers, checked in order; first match sets the base score
var authority = []struct {
	needles []string
	score   int
}{
	{[]string{".gov", ".edu", "wikipedia.org"}, 5},
	{[]string{"forbes.com", "bloomberg.com", "reuters.com", "wsj.com"}, 5},
	{[]string{"company.com", "corporate.", "official.", "inc.com"}, 5},
	{[]string{"techcrunch.com", "venturebeat.com", "businessinsider.com"}, 4},
	{[]string{"medium.com", "blog.", "substack.com"}, 2},
	{[]string{"reddit.com", "forum.", "quora.com"}, 1},
}

var (
	financialDocKeywords = []string{"annual report", "financial statement", "earnings", "quarterly"}
	caseStudyKeywords    = []string{"case study", "implementation", "roi", "return on investment"}
	sponsoredKeywords    = []string{"sponsored", "advertisement", "promoted"}
)

// QualityScore rates a source 1-5 from its URL authority and title
func QualityScore(rawURL, title string) int {
	u := strings.ToLower(rawURL)
	t := strings.ToLower(title)

	score := 3
	for _, tier := range authority {
		if containsAny(u, tier.needles) {
			score = tier.score
			break
		}
	}

	if containsAny(t, financialDocKeywords) || containsAny(t, caseStudyKeywords) {
		score = min(score+1, 5)
	}
	if containsAny(t, sponsoredKeywords) {
		score = max(score-2, 1)
	}
	return score
}

// Domain returns the host without a www. prefix, or "unknown"
func Domain(rawURL string) string {
	if rawURL == "" {
		return "unknown"
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return "unknown"
	}
	return strings.TrimPrefix(parsed.Host, "www.")
}

// RankSources dedupes the market research URLs, drops anything scoring under 2 and
// sorts by score, highest first. The second value is the number of unique domains.
func RankSources(mr *research.MarketResearch) ([]research.RankedSource, int) {
	accessed := "Unknown"
	if !mr.Timestamp.IsZero() {
		accessed = mr.Timestamp.Format(time.RFC3339)
	}

	seen := map[string]bool{}
	var out []research.RankedSource
	add := func(kind, rawURL, title string) {
		if rawURL == "" || rawURL == "N/A" || seen[rawURL] {
			return
		}
		seen[rawURL] = true
		out = append(out, research.RankedSource{
			Type:         kind,
			Title:        textclean.Truncate(textclean.CleanHTML(title), maxSourceTitleLen),
			URL:          rawURL,
			QualityScore: QualityScore(rawURL, title),
			Domain:       Domain(rawURL),
			DateAccessed: accessed,
		})
	}

	for _, s := range mr.ExistingSolutions {
		add("Company Information", s.URL, orDefault(s.Title, "Company Information"))
	}
	for _, t := range mr.Trends {
		add("Market Analysis", t.Source, orDefault(t.Trend, "Market Analysis"))
	}
	for _, s := range mr.Sources {
		title := s.Title
		if title == "" {
			title = orDefault(s.Snippet, "Research Source")
		}
		add("Research Source", s.URL, title)
	}

	filtered := make([]research.RankedSource, 0, len(out))
	for _, s := range out {
		if s.QualityScore >= minSourceQuality {
			filtered = append(filtered, s)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].QualityScore > filtered[j].QualityScore
	})

	domains := map[string]bool{}
	for _, s := range filtered {
		domains[s.Domain] = true
	}
	return filtered, len(domains)
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
