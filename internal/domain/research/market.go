package research

import "time"

// SearchSource is a raw web-search hit kept for attribution
type SearchSource struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// Finding is a categorized search result: an existing solution or a competitor
type Finding struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Relevance   string `json:"relevance"`
}

// Trend is a search result categorized as a market trend
type Trend struct {
	Trend       string `json:"trend"`
	Description string `json:"description"`
	Source      string `json:"source"`
	Impact      string `json:"impact"`
}

// Category is the classification bucket of one search result
type Category string

const (
	CategorySolution   Category = "solution"
	CategoryCompetitor Category = "competitor"
	CategoryTrend      Category = "trend"
)

// ParseCategory maps the first word of a classifier reply to a category, defaulting to trend
func ParseCategory(reply string) Category {
	word := firstWord(reply)
	switch Category(word) {
	case CategorySolution, CategoryCompetitor, CategoryTrend:
		return Category(word)
	}
	return CategoryTrend
}

// MarketResearch is the shared output of one web-search backed research call.
// Company and idea research both start from it.
type MarketResearch struct {
	Success           bool           `json:"success"`
	Error             string         `json:"error,omitempty"`
	Title             string         `json:"title"`
	Answer            string         `json:"answer"`
	MarketOverview    string         `json:"market_overview"`
	FullContent       string         `json:"full_content"`
	ExistingSolutions []Finding      `json:"existing_solutions"`
	Competitors       []Finding      `json:"competitors"`
	Trends            []Trend        `json:"trends"`
	Opportunities     []string       `json:"opportunities"`
	Challenges        []string       `json:"challenges"`
	Sources           []SearchSource `json:"sources"`
	// DroppedTasks counts results whose classification errored or timed out
	DroppedTasks int       `json:"dropped_tasks"`
	Timestamp    time.Time `json:"timestamp"`
}

// NewFailedMarketResearch returns a failed result with every list present and empty
func NewFailedMarketResearch(title, reason string) *MarketResearch {
	return &MarketResearch{
		Success:           false,
		Error:             reason,
		Title:             title,
		Answer:            reason,
		ExistingSolutions: []Finding{},
		Competitors:       []Finding{},
		Trends:            []Trend{},
		Opportunities:     []string{},
		Challenges:        []string{},
		Sources:           []SearchSource{},
	}
}

// Corpus returns the best available text to run extractions over
func (m *MarketResearch) Corpus() string {
	switch {
	case m.FullContent != "":
		return m.FullContent
	case m.Answer != "":
		return m.Answer
	}
	return m.MarketOverview
}

// FailureReason prefers the error and falls back to the answer text
func (m *MarketResearch) FailureReason() string {
	if m.Error != "" {
		return m.Error
	}
	return m.Answer
}
