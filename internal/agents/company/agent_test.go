package company

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ideaforge/internal/adapters/ai"
	"ideaforge/internal/domain/research"
	"ideaforge/pkg/errors"
)

type fakeMarket struct {
	result *research.MarketResearch
	calls  int
	title  string
}

func (f *fakeMarket) Research(_ context.Context, _, title string) *research.MarketResearch {
	f.calls++
	f.title = title
	return f.result
}

type fakeLLM struct {
	replies map[string]string
	errs    map[string]error
}

func (f *fakeLLM) Complete(_ context.Context, req ai.CompletionRequest) (*ai.Completion, error) {
	if err := f.errs[req.Operation]; err != nil {
		return nil, err
	}
	return &ai.Completion{Text: f.replies[req.Operation]}, nil
}
func (f *fakeLLM) Ready() bool   { return true }
func (f *fakeLLM) Name() string  { return "fake" }
func (f *fakeLLM) Model() string { return "fake" }

type memCache struct {
	data map[string][]byte
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (m *memCache) Get(_ context.Context, kind research.Kind, key string, dst any) error {
	raw, ok := m.data[string(kind)+":"+key]
	if !ok {
		return errors.ErrNotFound
	}
	return json.Unmarshal(raw, dst)
}

func (m *memCache) Set(_ context.Context, kind research.Kind, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.data[string(kind)+":"+key] = raw
	return nil
}

func acmeMarket() *research.MarketResearch {
	return &research.MarketResearch{
		Success:     true,
		Answer:      "Acme makes rockets.",
		FullContent: "Acme makes rockets and anvils. Revenue was $2B in 2024.",
		ExistingSolutions: []research.Finding{
			{Title: "Acme annual report 2024", URL: "https://investors.acme.com/report"},
		},
		Trends: []research.Trend{
			{Trend: "Rocket market", Source: "https://www.reuters.com/rockets"},
			{Trend: "Forum chatter", Source: "https://reddit.com/r/acme"},
		},
		Sources: []research.SearchSource{
			{Title: "Acme annual report 2024", URL: "https://investors.acme.com/report"},
			{Title: "", Snippet: "Blog post", URL: "https://blog.acme.io/post"},
			{Title: "N/A", URL: "N/A"},
		},
		Timestamp: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestAgent_Research(t *testing.T) {
	market := &fakeMarket{result: acmeMarket()}
	llm := &fakeLLM{replies: map[string]string{
		"company_description": "  Acme builds rockets.  ",
		"company_financials":  "```json\n{\"annual_revenue\": \"$2B\", \"revenue_growth\": 12, \"market_cap\": \"\", \"profitability\": \"profitable\"}\n```",
		"company_initiatives": "- Expanding reusable rocket production lines\n- short\n* Investing in AI-driven supply chain planning",
	}}

	out := NewAgent(market, llm, nil).Research(context.Background(), "Acme Corp")
	require.True(t, out.Success)

	assert.Equal(t, "Company Research: Acme Corp", market.title)
	assert.Equal(t, "Acme builds rockets.", out.WhatCompanyDoes)
	assert.Equal(t, "$2B", out.Financials.AnnualRevenue)
	assert.Equal(t, "12", out.Financials.RevenueGrowth)
	assert.Equal(t, "", out.Financials.RecentPerformance)
	assert.Equal(t, []string{
		"Expanding reusable rocket production lines",
		"Investing in AI-driven supply chain planning",
	}, out.CurrentInitiatives)

	// reddit scores 1 and is filtered; the duplicate URL is kept once
	require.Len(t, out.Sources, 3)
	assert.Equal(t, "reuters.com", out.Sources[0].Domain)
	assert.Equal(t, 5, out.Sources[0].QualityScore)
	assert.Equal(t, "https://investors.acme.com/report", out.Sources[1].URL)
	assert.Equal(t, 4, out.Sources[1].QualityScore)
	assert.Equal(t, "Company Information", out.Sources[1].Type)
	assert.Equal(t, 2, out.Sources[2].QualityScore)
	assert.Equal(t, "2025-03-01T00:00:00Z", out.Sources[0].DateAccessed)
}

func TestAgent_FinancialsFromProse(t *testing.T) {
	llm := &fakeLLM{replies: map[string]string{
		"company_financials": "The company does not disclose revenue figures publicly.",
	}}

	out := NewAgent(&fakeMarket{result: acmeMarket()}, llm, nil).Research(context.Background(), "Acme")
	require.True(t, out.Success)
	assert.Equal(t, research.Financials{}, out.Financials)
}

func TestAgent_ExtractionErrorsDegradeFields(t *testing.T) {
	llm := &fakeLLM{errs: map[string]error{
		"company_description": errors.ErrExternal,
		"company_financials":  errors.ErrExternal,
		"company_initiatives": errors.ErrExternal,
	}}

	out := NewAgent(&fakeMarket{result: acmeMarket()}, llm, nil).Research(context.Background(), "Acme")
	require.True(t, out.Success)
	assert.True(t, strings.HasPrefix(out.WhatCompanyDoes, "Error extracting company description"))
	assert.Contains(t, out.Financials.RecentPerformance, "Error extracting financial data")
	assert.Empty(t, out.Financials.AnnualRevenue)
	assert.Empty(t, out.CurrentInitiatives)
}

func TestAgent_MarketFailure(t *testing.T) {
	failed := research.NewFailedMarketResearch("Company Research: Acme", "Error during research: boom")
	out := NewAgent(&fakeMarket{result: failed}, &fakeLLM{}, nil).Research(context.Background(), "Acme")

	assert.False(t, out.Success)
	assert.Equal(t, "Error during research: boom", out.FailureReason())
	assert.NotNil(t, out.Sources)
}

func TestAgent_Cache(t *testing.T) {
	market := &fakeMarket{result: acmeMarket()}
	cache := newMemCache()
	agent := NewAgent(market, &fakeLLM{replies: map[string]string{"company_description": "Acme"}}, cache)

	first := agent.Research(context.Background(), "Acme Corp")
	second := agent.Research(context.Background(), " acme corp ")

	assert.Equal(t, 1, market.calls)
	assert.Equal(t, first.WhatCompanyDoes, second.WhatCompanyDoes)
}

func TestAgent_FailureNotCached(t *testing.T) {
	market := &fakeMarket{result: research.NewFailedMarketResearch("t", "down")}
	agent := NewAgent(market, &fakeLLM{}, newMemCache())

	agent.Research(context.Background(), "Acme")
	agent.Research(context.Background(), "Acme")
	assert.Equal(t, 2, market.calls)
}
