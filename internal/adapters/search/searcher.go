package search

import (
	"context"

	"ideaforge/pkg/errors"
)

// Searcher runs one web search
type Searcher interface {
	Search(ctx context.Context, req Request) (*Response, error)
	Ready() bool
}

// Request is one search query
type Request struct {
	Query             string
	MaxResults        int
	Depth             string // "basic" or "advanced"
	IncludeAnswer     bool
	IncludeRawContent bool
}

// Result is one hit. RawContent is the full page text when requested.
type Result struct {
	Title      string  `json:"title"`
	URL        string  `json:"url"`
	Content    string  `json:"content"`
	RawContent string  `json:"raw_content"`
	Score      float64 `json:"score"`
}

// Response holds the synthesized answer and the hits
type Response struct {
	Query   string   `json:"query"`
	Answer  string   `json:"answer"`
	Results []Result `json:"results"`
}

var _ Searcher = Unavailable{}

// Unavailable is used when no search key is configured
type Unavailable struct{}

func (Unavailable) Search(context.Context, Request) (*Response, error) {
	return nil, errors.Wrap(errors.ErrUnavailable, "search API key not configured")
}

func (Unavailable) Ready() bool { return false }
