package ideaanalysis

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ideaforge/internal/adapters/ai"
	"ideaforge/internal/domain/research"
	"ideaforge/pkg/errors"
)

type fakeMarket struct {
	result *research.MarketResearch
	query  string
	title  string
}

func (f *fakeMarket) Research(_ context.Context, query, title string) *research.MarketResearch {
	f.query, f.title = query, title
	return f.result
}

type fakeLLM struct {
	replies map[string]string
	errs    map[string]error
	prompts map[string]string
}

func (f *fakeLLM) Complete(_ context.Context, req ai.CompletionRequest) (*ai.Completion, error) {
	if f.prompts == nil {
		f.prompts = map[string]string{}
	}
	f.prompts[req.Operation] = req.Prompt
	if err := f.errs[req.Operation]; err != nil {
		return nil, err
	}
	return &ai.Completion{Text: f.replies[req.Operation]}, nil
}
func (f *fakeLLM) Ready() bool   { return true }
func (f *fakeLLM) Name() string  { return "fake" }
func (f *fakeLLM) Model() string { return "fake" }

func chatbotMarket() *research.MarketResearch {
	return &research.MarketResearch{
		Success:     true,
		Answer:      "Support chatbots are mainstream.",
		FullContent: "Support chatbots are mainstream. Klarna cut handling time by 80%.",
		ExistingSolutions: []research.Finding{
			{Title: "Klarna AI assistant", URL: "https://klarna.com/ai"},
		},
		Competitors: []research.Finding{
			{Title: "Intercom Fin", URL: "https://intercom.com/fin"},
			{Title: "Dup", URL: "https://klarna.com/ai"},
		},
		Trends: []research.Trend{{Trend: "Chatbot growth", Source: "N/A"}},
	}
}

func TestAgent_Research(t *testing.T) {
	market := &fakeMarket{result: chatbotMarket()}
	llm := &fakeLLM{replies: map[string]string{
		"idea_implementers":   `[{"name": "Klarna", "description": "AI assistant handles 2/3 of chats", "url": "https://klarna.com"}]`,
		"idea_pros_cons":      "```json\n{\"pros\": [\"24/7 support\"], \"cons\": [\"hallucinations\"]}\n```",
		"idea_insights":       `[{"type": "Market Trend", "insight": "Automation cut costs", "details": 30, "source": ""}]`,
		"idea_metrics":        `{"adoption_rates": ["60% of enterprises"]}`,
		"idea_workability":    `{"is_workable": true, "confidence": "high", "verdict": "workable", "reasoning": "Proven", "key_challenges": ["data quality"]}`,
		"idea_improvements":   `{"overall_recommendation": "Start with FAQ deflection", "quick_wins": ["reuse help center"]}`,
		"idea_poc_approaches": `[{"approach_name": "RAG bot", "complexity": "Medium"}]`,
	}}

	out := NewAgent(market, llm, nil).Research(context.Background(), "Support Chatbot", "Answer tickets with AI")
	require.True(t, out.Success)

	assert.Equal(t, "Idea Research: Support Chatbot", market.title)
	assert.True(t, strings.HasPrefix(market.query, "Research market implementation of this idea: Support Chatbot"))

	require.Len(t, out.WhoIsImplementing, 1)
	assert.Equal(t, "Klarna", out.WhoIsImplementing[0].Name)
	assert.Equal(t, []string{"24/7 support"}, out.ProsAndCons.Pros)
	require.Len(t, out.UsefulInsights, 1)
	assert.Equal(t, "30", out.UsefulInsights[0].Details)
	assert.Equal(t, []string{"60% of enterprises"}, out.ImplementationMetrics.AdoptionRates)
	assert.NotNil(t, out.ImplementationMetrics.ScaleMetrics)

	assert.Equal(t, research.VerdictWorkable, out.Workability.Verdict)
	assert.Equal(t, research.ConfidenceHigh, out.Workability.Confidence)
	assert.Contains(t, llm.prompts["idea_improvements"], "- data quality")
	assert.Contains(t, llm.prompts["idea_improvements"], "None found")

	assert.Equal(t, "Start with FAQ deflection", out.Improvements.OverallRecommendation)
	assert.Equal(t, []string{"reuse help center"}, out.Improvements.QuickWins)
	assert.NotNil(t, out.Improvements.DoThisInstead)
	require.Len(t, out.POCApproaches, 1)
	assert.Equal(t, "RAG bot", out.POCApproaches[0].ApproachName)

	require.Len(t, out.Sources, 2)
	assert.Equal(t, "Implementation", out.Sources[0].Type)
	assert.Equal(t, "Competitor", out.Sources[1].Type)
	assert.Equal(t, "Unknown", out.Sources[1].DateAccessed)
}

func TestAgent_WorkabilityDefaults(t *testing.T) {
	tests := []struct {
		name           string
		reply          string
		err            error
		wantVerdict    string
		wantConfidence string
	}{
		{"prose reply", "It depends on many factors.", nil, research.VerdictWorkable, research.ConfidenceLow},
		{"parsed reply without confidence", `{"is_workable": true, "reasoning": "Several vendors ship this"}`, nil, research.VerdictWorkable, research.ConfidenceMedium},
		{"call error", "", errors.ErrExternal, research.VerdictWorkable, research.ConfidenceLow},
		{"unknown verdict follows flag", `{"is_workable": false, "verdict": "maybe", "confidence": "certain"}`, nil, research.VerdictNotWorkable, research.ConfidenceLow},
		{"needs validation", `{"verdict": "Needs Validation", "confidence": "Medium"}`, nil, research.VerdictNeedsValidation, research.ConfidenceMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			llm := &fakeLLM{
				replies: map[string]string{"idea_workability": tt.reply},
				errs:    map[string]error{"idea_workability": tt.err},
			}
			out := NewAgent(&fakeMarket{result: chatbotMarket()}, llm, nil).Research(context.Background(), "T", "D")
			require.True(t, out.Success)
			assert.Equal(t, tt.wantVerdict, out.Workability.Verdict)
			assert.Equal(t, tt.wantConfidence, out.Workability.Confidence)
			assert.NotNil(t, out.Workability.KeyChallenges)
		})
	}
}

func TestAgent_ExtractionDefaults(t *testing.T) {
	llm := &fakeLLM{
		replies: map[string]string{
			"idea_implementers": "Nobody is doing this yet.",
			"idea_pros_cons":    "no json here",
		},
		errs: map[string]error{
			"idea_insights":       errors.ErrExternal,
			"idea_improvements":   errors.ErrExternal,
			"idea_poc_approaches": errors.ErrExternal,
		},
	}

	out := NewAgent(&fakeMarket{result: chatbotMarket()}, llm, nil).Research(context.Background(), "T", "D")
	require.True(t, out.Success)

	require.Len(t, out.WhoIsImplementing, 1)
	assert.Equal(t, "None Found", out.WhoIsImplementing[0].Name)
	assert.Equal(t, research.ProsCons{Pros: []string{}, Cons: []string{}}, out.ProsAndCons)
	assert.Empty(t, out.UsefulInsights)
	assert.Equal(t, "Unable to generate improvement suggestions", out.Improvements.OverallRecommendation)
	assert.Empty(t, out.POCApproaches)
}

func TestAgent_ImplementerCallError(t *testing.T) {
	llm := &fakeLLM{errs: map[string]error{"idea_implementers": errors.ErrExternal}}
	out := NewAgent(&fakeMarket{result: chatbotMarket()}, llm, nil).Research(context.Background(), "T", "D")
	assert.Empty(t, out.WhoIsImplementing)
}

func TestAgent_MarketFailure(t *testing.T) {
	market := &fakeMarket{result: research.NewFailedMarketResearch("Idea Research: T", "search down")}
	out := NewAgent(market, &fakeLLM{}, nil).Research(context.Background(), "T", "D")

	assert.False(t, out.Success)
	assert.Equal(t, "search down", out.FailureReason())
	assert.NotNil(t, out.ProsAndCons.Pros)
}

func TestAgent_EmptyCorpus(t *testing.T) {
	market := &fakeMarket{result: &research.MarketResearch{Success: true}}
	llm := &fakeLLM{}
	out := NewAgent(market, llm, nil).Research(context.Background(), "T", "D")

	require.True(t, out.Success)
	assert.Equal(t, research.VerdictNeedsValidation, out.Workability.Verdict)
	assert.Equal(t, research.ConfidenceLow, out.Workability.Confidence)
	assert.Empty(t, out.WhoIsImplementing)
	assert.Contains(t, llm.prompts["idea_poc_approaches"], "No additional context available")
	_, asked := llm.prompts["idea_workability"]
	assert.False(t, asked)
}
