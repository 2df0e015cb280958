package search

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"ideaforge/internal/adapters/config"
	"ideaforge/internal/adapters/ratelimit"
	"ideaforge/internal/adapters/retry"
	"ideaforge/internal/metrics"
	"ideaforge/pkg/errors"
	"ideaforge/pkg/logger"
)

var _ Searcher = (*TavilyClient)(nil)

// TavilyClient calls the Tavily search API. A call is retried while it errors or
// comes back without results; the last non-nil response is kept.
type TavilyClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
	retry   *retry.Middleware
	limiter *ratelimit.Limiter
	log     *logger.Logger
}

// NewTavilyClient returns Unavailable when no key is configured
func NewTavilyClient(cfg config.SearchConfig) Searcher {
	if cfg.TavilyKey == "" || strings.HasPrefix(cfg.TavilyKey, "your_") {
		logger.Get().With("component", "tavily").Warn("TAVILY_API_KEY not set, web search disabled")
		return Unavailable{}
	}

	rc := retry.SearchConfig()
	if cfg.Attempts > 0 {
		rc.Attempts = cfg.Attempts
	}
	if cfg.RetryDelay > 0 {
		rc.InitialDelay = cfg.RetryDelay
		rc.MaxDelay = cfg.RetryDelay
	}

	return &TavilyClient{
		apiKey:  cfg.TavilyKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: 60 * time.Second},
		retry:   retry.New(rc),
		limiter: ratelimit.NewLimiter("tavily", cfg.RequestsPerMin),
		log:     logger.Get().With("component", "tavily"),
	}
}

// WithRetry replaces the retry middleware. Used by tests.
func (c *TavilyClient) WithRetry(m *retry.Middleware) *TavilyClient {
	c.retry = m
	return c
}

func (c *TavilyClient) Ready() bool { return true }

type tavilyRequest struct {
	APIKey            string `json:"api_key"`
	Query             string `json:"query"`
	SearchDepth       string `json:"search_depth,omitempty"`
	MaxResults        int    `json:"max_results,omitempty"`
	IncludeAnswer     bool   `json:"include_answer"`
	IncludeRawContent bool   `json:"include_raw_content"`
}

func (c *TavilyClient) Search(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	var last *Response
	err := c.retry.Do(ctx, func(attempt int) error {
		resp, err := c.searchOnce(ctx, req)
		if err != nil {
			c.log.Warnf("search attempt %d failed: %v", attempt, err)
			return err
		}
		last = resp
		if len(resp.Results) == 0 {
			return errors.ErrNoSearchResults
		}
		return nil
	})

	metrics.RecordSearch(time.Since(start), err)

	if last != nil {
		if err != nil {
			c.log.Warnf("search returned no results after retries, using last response: %v", err)
		}
		c.log.Infof("search returned %d results for %q", len(last.Results), req.Query)
		return last, nil
	}
	return nil, err
}

func (c *TavilyClient) searchOnce(ctx context.Context, req Request) (*Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	body, err := json.Marshal(tavilyRequest{
		APIKey:            c.apiKey,
		Query:             req.Query,
		SearchDepth:       req.Depth,
		MaxResults:        req.MaxResults,
		IncludeAnswer:     req.IncludeAnswer,
		IncludeRawContent: req.IncludeRawContent,
	})
	if err != nil {
		return nil, errors.Wrap(err, "marshal search request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "create HTTP request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, errors.Wrap(err, "send search request")
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read search response")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(errors.ErrExternal, "tavily API error (%d): %s", resp.StatusCode, string(respBody))
	}

	var out Response
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, errors.Wrap(err, "unmarshal search response")
	}
	return &out, nil
}
