// Package resource produces a team, timeline, infrastructure, risk and
// success-metric plan for an idea from the research gathered before it.
package resource

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"ideaforge/internal/adapters/ai"
	"ideaforge/internal/agents/jsonx"
	"ideaforge/internal/domain/research"
	"ideaforge/pkg/errors"
	"ideaforge/pkg/logger"
)

const (
	notConfigured = "DeepSeek API key not configured"
	temperature   = 0.7
	maxTokens     = 4000
	contextItems  = 3
)

// requiredKeys are always present on a successful estimate
var requiredKeys = []string{"team_resources", "timeline", "technical_infrastructure", "risks", "success_metrics"}

type Agent struct {
	llm ai.Completer
	log *logger.Logger
}

func NewAgent(llm ai.Completer) *Agent {
	return &Agent{
		llm: llm,
		log: logger.Get().With("component", "resource_estimation"),
	}
}

// Estimate never returns nil. Company and idea research only feed the prompt when they succeeded.
func (a *Agent) Estimate(
	ctx context.Context,
	company, title, description string,
	cr *research.CompanyResearch,
	ir *research.IdeaResearch,
) *research.ResourceEstimate {
	if a.llm == nil || !a.llm.Ready() {
		a.log.Error("completion backend not configured")
		return research.NewFailedEstimate(notConfigured)
	}

	a.log.Infow("starting resource estimation", "title", title, "company", company)

	resp, err := a.llm.Complete(ctx, ai.CompletionRequest{
		Operation:   "resource_estimate",
		System:      systemPrompt,
		Prompt:      buildPrompt(company, title, description, cr, ir),
		Temperature: temperature,
		MaxTokens:   maxTokens,
		JSONMode:    true,
	})
	if err != nil {
		a.log.Errorf("resource estimation failed: %v", err)
		return research.NewFailedEstimate(err.Error())
	}

	est, err := a.parse(resp.Text)
	if err != nil {
		a.log.Errorw("unparseable estimation response", "error", err, "response", resp.Text)
		return research.NewFailedEstimate(err.Error())
	}

	est.Success = true
	est.RawResponse = resp.Text
	a.log.Infow("resource estimation complete",
		"title", title,
		"roles", len(est.TeamResources),
		"phases", len(est.Timeline),
		"risks", len(est.Risks),
	)
	return est
}

func (a *Agent) parse(text string) (*research.ResourceEstimate, error) {
	raw, err := jsonx.Raw(text)
	if err != nil {
		return nil, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, errors.Wrap(errors.ErrNoJSON, "estimation response is not a JSON object")
	}
	for _, key := range requiredKeys {
		if _, ok := fields[key]; !ok {
			a.log.Warnf("key %q missing in estimation response", key)
		}
	}

	est := &research.ResourceEstimate{}
	for _, key := range requiredKeys {
		value, ok := fields[key]
		if !ok {
			continue
		}
		if err := decodeField(est, key, value); err != nil {
			a.log.Warnf("key %q has unexpected shape: %v", key, err)
		}
	}
	est.Normalize()
	return est, nil
}

// decodeField decodes each key on its own so one malformed list does not discard the others
func decodeField(est *research.ResourceEstimate, key string, value json.RawMessage) error {
	switch key {
	case "team_resources":
		return json.Unmarshal(value, &est.TeamResources)
	case "timeline":
		return json.Unmarshal(value, &est.Timeline)
	case "technical_infrastructure":
		return json.Unmarshal(value, &est.TechnicalInfrastructure)
	case "risks":
		return json.Unmarshal(value, &est.Risks)
	case "success_metrics":
		return json.Unmarshal(value, &est.SuccessMetrics)
	}
	return nil
}

func buildPrompt(company, title, description string, cr *research.CompanyResearch, ir *research.IdeaResearch) string {
	overview, size, initiatives := "N/A", "N/A", "N/A"
	if cr != nil && cr.Success {
		overview = orNA(cr.WhatCompanyDoes)
		size = orNA(cr.Financials.AnnualRevenue)
		initiatives = joinFirst(cr.CurrentInitiatives, contextItems)
	}

	implementations, benefits, challenges := 0, "N/A", "N/A"
	if ir != nil && ir.Success {
		implementations = len(ir.WhoIsImplementing)
		benefits = joinFirst(ir.ProsAndCons.Pros, contextItems)
		challenges = joinFirst(ir.ProsAndCons.Cons, contextItems)
	}

	return fmt.Sprintf(estimatePrompt,
		company, overview, size, initiatives,
		title, description,
		implementations, benefits, challenges,
	)
}

func joinFirst(items []string, n int) string {
	if len(items) == 0 {
		return "N/A"
	}
	if len(items) > n {
		items = items[:n]
	}
	return strings.Join(items, ", ")
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
