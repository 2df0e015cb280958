// Package scoring rates a saved idea from 0 to 100 with feedback.
package scoring

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"ideaforge/internal/adapters/ai"
	"ideaforge/internal/agents/jsonx"
	"ideaforge/internal/domain/idea"
	"ideaforge/internal/domain/research"
	"ideaforge/pkg/logger"
	"ideaforge/pkg/textclean"
)

const (
	notAvailable = "AI service not available"
	temperature  = 0.3
	sectionChars = 2000
)

const scorePrompt = `You are an expert idea evaluator. Evaluate the business idea and provide a score with feedback.

Idea Details:
- Title: %s
- Department: %s
- Content: %s

Evaluation Criteria:
1. Innovation (0-25 points)
2. Feasibility (0-25 points)
3. Business Impact (0-25 points)
4. Clarity (0-25 points)

Respond with JSON: {"score": 0-100, "feedback": "detailed feedback", "strengths": ["2-3 items"], "improvements": ["2-3 items"]}`

type Scorer struct {
	llm ai.Completer
	log *logger.Logger
}

func NewScorer(llm ai.Completer) *Scorer {
	return &Scorer{llm: llm, log: logger.Get().With("component", "idea_scorer")}
}

type flexScore struct {
	Score        research.FlexString   `json:"score"`
	Feedback     research.FlexString   `json:"feedback"`
	Strengths    []research.FlexString `json:"strengths"`
	Improvements []research.FlexString `json:"improvements"`
}

// Score evaluates one idea. The result is never nil.
func (s *Scorer) Score(ctx context.Context, i *idea.Idea) *research.Score {
	if s.llm == nil || !s.llm.Ready() {
		s.log.Error("scorer not ready")
		return &research.Score{Success: false, Error: notAvailable}
	}
	if i == nil {
		return &research.Score{Success: false, Error: "no idea to score"}
	}

	s.log.Infow("scoring idea", "title", i.Title)

	resp, err := s.llm.Complete(ctx, ai.CompletionRequest{
		Operation:   "idea_score",
		Prompt:      fmt.Sprintf(scorePrompt, i.Title, i.DepartmentOrDefault(), content(i)),
		Temperature: temperature,
		JSONMode:    true,
	})
	if err != nil {
		s.log.Errorf("scoring failed: %v", err)
		return &research.Score{Success: false, Error: err.Error()}
	}

	var parsed flexScore
	if err := jsonx.ExtractInto(resp.Text, &parsed); err != nil {
		s.log.Errorf("scoring response unparseable: %v", err)
		return &research.Score{Success: false, Error: err.Error()}
	}

	return &research.Score{
		Success:      true,
		Score:        clampScore(parsed.Score.Int()),
		Feedback:     parsed.Feedback.String(),
		Strengths:    strs(parsed.Strengths),
		Improvements: strs(parsed.Improvements),
	}
}

func content(i *idea.Idea) string {
	var parts []string
	if i.OriginalIdea != "" {
		parts = append(parts, "Original Idea: "+i.OriginalIdea)
	}
	if i.RephrasedIdea != "" {
		parts = append(parts, "Rephrased: "+i.RephrasedIdea)
	}
	if rd := i.ResearchData; !rd.Empty() {
		if rd.CompanyResearch != nil {
			parts = append(parts, "Company Context: "+section(rd.CompanyResearch))
		}
		if rd.IdeaResearch != nil {
			parts = append(parts, "Market Research: "+section(rd.IdeaResearch))
		}
		if rd.ResourceEstimation != nil {
			parts = append(parts, "Resource Estimate: "+section(rd.ResourceEstimation))
		}
	}
	if len(parts) == 0 {
		return "No content provided"
	}
	return strings.Join(parts, "\n")
}

func section(v any) string {
	raw, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return textclean.Truncate(string(raw), sectionChars)
}

func clampScore(n int) int {
	return min(max(n, 0), 100)
}

func strs(in []research.FlexString) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if v := strings.TrimSpace(s.String()); v != "" {
			out = append(out, v)
		}
	}
	return out
}
