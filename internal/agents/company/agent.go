// Package company researches the organization an idea is being pitched to.
package company

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ideaforge/internal/adapters/ai"
	"ideaforge/internal/agents/jsonx"
	"ideaforge/internal/domain/research"
	"ideaforge/internal/metrics"
	"ideaforge/pkg/errors"
	"ideaforge/pkg/logger"
	"ideaforge/pkg/textclean"
)

const (
	maxCorpusChars    = 32000
	minInitiativeLen  = 30
	descriptionTokens = 800
)

// MarketResearcher runs the shared web research step
type MarketResearcher interface {
	Research(ctx context.Context, idea, title string) *research.MarketResearch
}

// Agent produces a CompanyResearch from one market research call plus extractions
type Agent struct {
	market MarketResearcher
	llm    ai.Completer
	cache  research.Cache // optional
	log    *logger.Logger
}

func NewAgent(market MarketResearcher, llm ai.Completer, cache research.Cache) *Agent {
	return &Agent{
		market: market,
		llm:    llm,
		cache:  cache,
		log:    logger.Get().With("component", "company_research"),
	}
}

// Research returns Success=false with the market research reason when the search fails.
// Sub-extraction failures only degrade their own field.
func (a *Agent) Research(ctx context.Context, companyName string) *research.CompanyResearch {
	key := research.CacheKey(companyName)
	if cached := a.fromCache(ctx, key); cached != nil {
		return cached
	}

	a.log.Infow("starting company research", "company", companyName)

	mr := a.market.Research(ctx, fmt.Sprintf(researchQuery, companyName), "Company Research: "+companyName)
	if mr == nil || !mr.Success {
		reason := "market research returned no result"
		answer := ""
		if mr != nil {
			reason = mr.FailureReason()
			answer = mr.Answer
		}
		a.log.Warnw("company research failed", "company", companyName, "reason", reason)
		return &research.CompanyResearch{
			Success:            false,
			CompanyName:        companyName,
			Answer:             answer,
			Error:              reason,
			Financials:         research.Financials{},
			CurrentInitiatives: []string{},
			Sources:            []research.RankedSource{},
		}
	}

	corpus := mr.Corpus()
	sources, domains := RankSources(mr)
	if domains < minUniqueDomains {
		a.log.Warnf("low source diversity: only %d unique domains", domains)
	}

	out := &research.CompanyResearch{
		Success:            true,
		CompanyName:        companyName,
		Answer:             mr.Answer,
		WhatCompanyDoes:    a.description(ctx, companyName, corpus),
		Financials:         a.financials(ctx, companyName, corpus).Value,
		CurrentInitiatives: a.initiatives(ctx, companyName, corpus),
		Sources:            sources,
		ResearchTimestamp:  mr.Timestamp,
	}
	if out.ResearchTimestamp.IsZero() {
		out.ResearchTimestamp = time.Now().UTC()
	}

	a.toCache(ctx, key, out)
	a.log.Infow("company research complete", "company", companyName,
		"initiatives", len(out.CurrentInitiatives), "sources", len(out.Sources))
	return out
}

func (a *Agent) description(ctx context.Context, companyName, corpus string) string {
	if corpus == "" {
		return fmt.Sprintf("Limited information available about %s.", companyName)
	}
	resp, err := a.llm.Complete(ctx, ai.CompletionRequest{
		Operation:   "company_description",
		Prompt:      fmt.Sprintf(descriptionPrompt, companyName, textclean.Truncate(corpus, maxCorpusChars)),
		Temperature: 0.7,
		MaxTokens:   descriptionTokens,
	})
	if err != nil {
		a.log.Warnf("company description extraction failed: %v", err)
		return fmt.Sprintf("Error extracting company description: %v", err)
	}
	return strings.TrimSpace(resp.Text)
}

// financialFields tolerates numbers where strings are expected
type financialFields struct {
	AnnualRevenue     research.FlexString `json:"annual_revenue"`
	RevenueGrowth     research.FlexString `json:"revenue_growth"`
	MarketCap         research.FlexString `json:"market_cap"`
	Profitability     research.FlexString `json:"profitability"`
	RecentPerformance research.FlexString `json:"recent_performance"`
}

func (a *Agent) financials(ctx context.Context, companyName, corpus string) jsonx.Outcome[research.Financials] {
	empty := research.Financials{}
	if corpus == "" {
		return jsonx.Default(empty, errors.Wrap(errors.ErrInvalidInput, "empty corpus"))
	}

	resp, err := a.llm.Complete(ctx, ai.CompletionRequest{
		Operation:   "company_financials",
		Prompt:      fmt.Sprintf(financialsPrompt, companyName, textclean.Truncate(corpus, maxCorpusChars)),
		Temperature: 0.3,
	})
	if err != nil {
		a.log.Warnf("financial extraction failed: %v", err)
		return jsonx.Default(research.Financials{
			RecentPerformance: fmt.Sprintf("Error extracting financial data: %v", err),
		}, err)
	}

	parsed := jsonx.Decode(resp.Text, financialFields{})
	if !parsed.OK() {
		a.log.Warnf("financial data not parseable, using empty default: %v", parsed.Err)
		return jsonx.Default(empty, parsed.Err)
	}
	f := parsed.Value
	return jsonx.Outcome[research.Financials]{Value: research.Financials{
		AnnualRevenue:     f.AnnualRevenue.String(),
		RevenueGrowth:     f.RevenueGrowth.String(),
		MarketCap:         f.MarketCap.String(),
		Profitability:     f.Profitability.String(),
		RecentPerformance: f.RecentPerformance.String(),
	}}
}

func (a *Agent) initiatives(ctx context.Context, companyName, corpus string) []string {
	if corpus == "" {
		return []string{}
	}
	resp, err := a.llm.Complete(ctx, ai.CompletionRequest{
		Operation:   "company_initiatives",
		Prompt:      fmt.Sprintf(initiativesPrompt, companyName, textclean.Truncate(corpus, maxCorpusChars)),
		Temperature: 0.5,
	})
	if err != nil {
		a.log.Warnf("initiative extraction failed: %v", err)
		return []string{}
	}

	out := []string{}
	for _, line := range strings.Split(resp.Text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) <= minInitiativeLen {
			continue
		}
		out = append(out, strings.TrimSpace(strings.TrimLeft(line, "-•*")))
	}
	return out
}

func (a *Agent) fromCache(ctx context.Context, key string) *research.CompanyResearch {
	if a.cache == nil {
		return nil
	}
	var cached research.CompanyResearch
	if err := a.cache.Get(ctx, research.KindCompany, key, &cached); err != nil {
		if !errors.Is(err, errors.ErrNotFound) {
			a.log.Warnf("company cache read: %v", err)
		}
		metrics.RecordCache(string(research.KindCompany), "miss")
		return nil
	}
	metrics.RecordCache(string(research.KindCompany), "hit")
	a.log.Debugw("company research served from cache", "key", key)
	return &cached
}

func (a *Agent) toCache(ctx context.Context, key string, v *research.CompanyResearch) {
	if a.cache == nil {
		return
	}
	if err := a.cache.Set(ctx, research.KindCompany, key, v); err != nil {
		a.log.Warnf("company cache write: %v", err)
	}
}
