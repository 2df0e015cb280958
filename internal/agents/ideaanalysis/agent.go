// Package ideaanalysis researches how an idea is already being implemented in the
// market and whether it is workable as a proof of concept.
package ideaanalysis

import (
	"context"
	"fmt"
	"hash/fnv"
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

// input budgets per extraction
const (
	extractChars     = 32000
	workabilityChars = 20000
	suggestionChars  = 15000
)

type MarketResearcher interface {
	Research(ctx context.Context, idea, title string) *research.MarketResearch
}

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
		log:    logger.Get().With("component", "idea_research"),
	}
}

// Research runs one market research call and eight independent extractions over its corpus
func (a *Agent) Research(ctx context.Context, title, description string) *research.IdeaResearch {
	key := cacheKey(title, description)
	if cached := a.fromCache(ctx, key); cached != nil {
		return cached
	}

	a.log.Infow("starting idea research", "title", title)

	mr := a.market.Research(ctx, fmt.Sprintf(researchQuery, title, description), "Idea Research: "+title)
	if mr == nil || !mr.Success {
		reason := "market research returned no result"
		if mr != nil {
			reason = mr.FailureReason()
		}
		a.log.Warnw("idea research failed", "title", title, "reason", reason)
		return failed(title, reason)
	}

	corpus := mr.Corpus()
	workability := a.workability(ctx, title, description, corpus)

	out := &research.IdeaResearch{
		Success:               true,
		IdeaTitle:             title,
		ResearchTimestamp:     mr.Timestamp,
		WhoIsImplementing:     a.implementers(ctx, title, corpus),
		ProsAndCons:           a.prosCons(ctx, title, corpus).Value,
		UsefulInsights:        a.insights(ctx, title, corpus),
		ImplementationMetrics: a.implMetrics(ctx, title, corpus).Value,
		Workability:           workability.Value,
		POCApproaches:         a.approaches(ctx, title, description, corpus),
		Improvements:          a.improvements(ctx, title, description, corpus, workability.Value).Value,
		Sources:               Sources(mr),
	}
	if out.ResearchTimestamp.IsZero() {
		out.ResearchTimestamp = time.Now().UTC()
	}

	a.toCache(ctx, key, out)
	a.log.Infow("idea research complete",
		"title", title,
		"implementers", len(out.WhoIsImplementing),
		"verdict", out.Workability.Verdict,
		"approaches", len(out.POCApproaches),
	)
	return out
}

func failed(title, reason string) *research.IdeaResearch {
	return &research.IdeaResearch{
		Success:               false,
		Error:                 reason,
		IdeaTitle:             title,
		WhoIsImplementing:     []research.Implementer{},
		ProsAndCons:           emptyProsCons(),
		UsefulInsights:        []research.Insight{},
		ImplementationMetrics: emptyMetrics(),
		POCApproaches:         []research.POCApproach{},
		Improvements:          emptyImprovements(""),
		Sources:               []research.IdeaSource{},
	}
}

func (a *Agent) complete(ctx context.Context, op, prompt string, temperature float64) (string, error) {
	resp, err := a.llm.Complete(ctx, ai.CompletionRequest{
		Operation:   op,
		Prompt:      prompt,
		Temperature: temperature,
	})
	if err != nil {
		a.log.Warnf("%s extraction failed: %v", op, err)
		return "", err
	}
	return resp.Text, nil
}

type flexImplementer struct {
	Name        research.FlexString `json:"name"`
	Description research.FlexString `json:"description"`
	URL         research.FlexString `json:"url"`
}

// noneFound stands in when the completion found nobody
var noneFound = research.Implementer{
	Name:        "None Found",
	Description: "No direct existing implementations found in the current market research.",
	URL:         "N/A",
}

func (a *Agent) implementers(ctx context.Context, title, corpus string) []research.Implementer {
	if corpus == "" {
		return []research.Implementer{}
	}
	text, err := a.complete(ctx, "idea_implementers", fmt.Sprintf(implementersPrompt, title, textclean.Truncate(corpus, extractChars)), 0.5)
	if err != nil {
		return []research.Implementer{}
	}

	parsed := jsonx.Decode(text, []flexImplementer{})
	out := make([]research.Implementer, 0, len(parsed.Value))
	for _, f := range parsed.Value {
		out = append(out, research.Implementer{Name: f.Name.String(), Description: f.Description.String(), URL: f.URL.String()})
	}
	if len(out) == 0 {
		return []research.Implementer{noneFound}
	}
	return out
}

func emptyProsCons() research.ProsCons {
	return research.ProsCons{Pros: []string{}, Cons: []string{}}
}

func (a *Agent) prosCons(ctx context.Context, title, corpus string) jsonx.Outcome[research.ProsCons] {
	if corpus == "" {
		return jsonx.Default(emptyProsCons(), errors.ErrInvalidInput)
	}
	text, err := a.complete(ctx, "idea_pros_cons", fmt.Sprintf(prosConsPrompt, title, textclean.Truncate(corpus, extractChars)), 0.5)
	if err != nil {
		return jsonx.Default(emptyProsCons(), err)
	}
	out := jsonx.Decode(text, emptyProsCons())
	if out.Value.Pros == nil {
		out.Value.Pros = []string{}
	}
	if out.Value.Cons == nil {
		out.Value.Cons = []string{}
	}
	return out
}

type flexInsight struct {
	Type    research.FlexString `json:"type"`
	Insight research.FlexString `json:"insight"`
	Details research.FlexString `json:"details"`
	Source  research.FlexString `json:"source"`
}

func (a *Agent) insights(ctx context.Context, title, corpus string) []research.Insight {
	if corpus == "" {
		return []research.Insight{}
	}
	text, err := a.complete(ctx, "idea_insights", fmt.Sprintf(insightsPrompt, title, textclean.Truncate(corpus, extractChars)), 0.5)
	if err != nil {
		return []research.Insight{}
	}

	parsed := jsonx.Decode(text, []flexInsight{})
	out := make([]research.Insight, 0, len(parsed.Value))
	for _, f := range parsed.Value {
		out = append(out, research.Insight{
			Type:    f.Type.String(),
			Insight: f.Insight.String(),
			Details: f.Details.String(),
			Source:  f.Source.String(),
		})
	}
	return out
}

func emptyMetrics() research.ImplementationMetrics {
	return research.ImplementationMetrics{
		ImplementationTimelines: []string{},
		ScaleMetrics:            []string{},
		AdoptionRates:           []string{},
		TechnologyMaturity:      []string{},
	}
}

func (a *Agent) implMetrics(ctx context.Context, title, corpus string) jsonx.Outcome[research.ImplementationMetrics] {
	if corpus == "" {
		return jsonx.Default(emptyMetrics(), errors.ErrInvalidInput)
	}
	text, err := a.complete(ctx, "idea_metrics", fmt.Sprintf(metricsPrompt, title, textclean.Truncate(corpus, extractChars)), 0.5)
	if err != nil {
		return jsonx.Default(emptyMetrics(), err)
	}
	out := jsonx.Decode(text, emptyMetrics())
	m := &out.Value
	for _, list := range []*[]string{&m.ImplementationTimelines, &m.ScaleMetrics, &m.AdoptionRates, &m.TechnologyMaturity} {
		if *list == nil {
			*list = []string{}
		}
	}
	return out
}

func (a *Agent) workability(ctx context.Context, title, description, corpus string) jsonx.Outcome[research.Workability] {
	if corpus == "" {
		return jsonx.Default(research.Workability{
			IsWorkable:             true,
			Confidence:             research.ConfidenceLow,
			Verdict:                research.VerdictNeedsValidation,
			Reasoning:              "No market research data available to assess workability",
			SimilarImplementations: []string{},
			KeyChallenges:          []string{},
			SuccessFactors:         []string{},
		}, errors.ErrInvalidInput)
	}

	text, err := a.complete(ctx, "idea_workability",
		fmt.Sprintf(workabilityPrompt, title, description, textclean.Truncate(corpus, workabilityChars)), 0.3)
	if err != nil {
		return jsonx.Default(research.Workability{
			IsWorkable:             true,
			Confidence:             research.ConfidenceLow,
			Verdict:                research.VerdictWorkable,
			Reasoning:              fmt.Sprintf("Assessment failed: %v", err),
			SimilarImplementations: []string{},
			KeyChallenges:          []string{},
			SuccessFactors:         []string{},
		}, err)
	}

	out := jsonx.Decode(text, research.Workability{
		IsWorkable: true,
		Confidence: research.ConfidenceMedium,
		Verdict:    research.VerdictWorkable,
		Reasoning:  "Based on available research, this POC appears feasible",
	})
	if !out.OK() {
		out.Value = research.Workability{
			IsWorkable:             true,
			Confidence:             research.ConfidenceLow,
			Verdict:                research.VerdictWorkable,
			Reasoning:              "Assessment could not be parsed from the model reply",
			SimilarImplementations: []string{},
			KeyChallenges:          []string{},
			SuccessFactors:         []string{},
		}
	}
	out.Value = NormalizeWorkability(out.Value)
	return out
}

// NormalizeWorkability coerces the verdict and confidence into their allowed sets
// and replaces nil lists. An unknown verdict follows is_workable.
func NormalizeWorkability(w research.Workability) research.Workability {
	switch strings.ToUpper(strings.TrimSpace(w.Verdict)) {
	case research.VerdictWorkable:
		w.Verdict = research.VerdictWorkable
	case research.VerdictNotWorkable:
		w.Verdict = research.VerdictNotWorkable
	case research.VerdictNeedsValidation:
		w.Verdict = research.VerdictNeedsValidation
	default:
		if w.IsWorkable {
			w.Verdict = research.VerdictWorkable
		} else {
			w.Verdict = research.VerdictNotWorkable
		}
	}

	switch strings.ToLower(strings.TrimSpace(w.Confidence)) {
	case "high":
		w.Confidence = research.ConfidenceHigh
	case "medium":
		w.Confidence = research.ConfidenceMedium
	default:
		w.Confidence = research.ConfidenceLow
	}

	if w.SimilarImplementations == nil {
		w.SimilarImplementations = []string{}
	}
	if w.KeyChallenges == nil {
		w.KeyChallenges = []string{}
	}
	if w.SuccessFactors == nil {
		w.SuccessFactors = []string{}
	}
	return w
}

func emptyImprovements(overall string) research.Improvements {
	return research.Improvements{
		OverallRecommendation: overall,
		DoThisInstead:         []string{},
		AddTheseFeatures:      []string{},
		LearnFromOthers:       []string{},
		QuickWins:             []string{},
		AvoidTheseMistakes:    []string{},
		DifferentiationTips:   []string{},
	}
}

func (a *Agent) improvements(ctx context.Context, title, description, corpus string, w research.Workability) jsonx.Outcome[research.Improvements] {
	background := "No additional context"
	if corpus != "" {
		background = textclean.Truncate(corpus, suggestionChars)
	}
	workable := research.VerdictWorkable
	if !w.IsWorkable {
		workable = research.VerdictNotWorkable
	}

	text, err := a.complete(ctx, "idea_improvements", fmt.Sprintf(improvementsPrompt,
		title, description,
		bulletList(w.KeyChallenges, "None identified"),
		bulletList(w.SimilarImplementations, "None found"),
		background, workable,
	), 0.7)
	if err != nil {
		return jsonx.Default(emptyImprovements("Unable to generate improvement suggestions"), err)
	}

	out := jsonx.Decode(text, emptyImprovements("Focus on building a minimal viable POC first"))
	v := &out.Value
	for _, list := range []*[]string{&v.DoThisInstead, &v.AddTheseFeatures, &v.LearnFromOthers, &v.QuickWins, &v.AvoidTheseMistakes, &v.DifferentiationTips} {
		if *list == nil {
			*list = []string{}
		}
	}
	return out
}

func (a *Agent) approaches(ctx context.Context, title, description, corpus string) []research.POCApproach {
	background := "No additional context available"
	if corpus != "" {
		background = textclean.Truncate(corpus, suggestionChars)
	}
	text, err := a.complete(ctx, "idea_poc_approaches", fmt.Sprintf(approachesPrompt, title, description, background), 0.7)
	if err != nil {
		return []research.POCApproach{}
	}
	return jsonx.Decode(text, []research.POCApproach{}).Value
}

func bulletList(items []string, empty string) string {
	if len(items) == 0 {
		return empty
	}
	lines := make([]string, 0, len(items))
	for _, it := range items {
		lines = append(lines, "- "+it)
	}
	return strings.Join(lines, "\n")
}

func cacheKey(title, description string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.TrimSpace(description)))
	return fmt.Sprintf("%s_%08x", research.CacheKey(title), h.Sum32())
}

func (a *Agent) fromCache(ctx context.Context, key string) *research.IdeaResearch {
	if a.cache == nil {
		return nil
	}
	var cached research.IdeaResearch
	if err := a.cache.Get(ctx, research.KindIdea, key, &cached); err != nil {
		if !errors.Is(err, errors.ErrNotFound) {
			a.log.Warnf("idea cache read: %v", err)
		}
		metrics.RecordCache(string(research.KindIdea), "miss")
		return nil
	}
	metrics.RecordCache(string(research.KindIdea), "hit")
	return &cached
}

func (a *Agent) toCache(ctx context.Context, key string, v *research.IdeaResearch) {
	if a.cache == nil {
		return
	}
	if err := a.cache.Set(ctx, research.KindIdea, key, v); err != nil {
		a.log.Warnf("idea cache write: %v", err)
	}
}
