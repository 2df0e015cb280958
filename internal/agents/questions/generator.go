// Package questions generates the short list of questions a POC builder has to
// answer before starting.
package questions

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"strings"

	"ideaforge/internal/adapters/ai"
	"ideaforge/internal/agents/jsonx"
	"ideaforge/internal/domain/research"
	"ideaforge/internal/metrics"
	"ideaforge/pkg/errors"
	"ideaforge/pkg/logger"
)

const (
	defaultCategory = "General"
	maxSolutions    = 15
	temperature     = 0.7
)

type Generator struct {
	llm   ai.Completer
	cache research.Cache // optional
	log   *logger.Logger
}

func NewGenerator(llm ai.Completer, cache research.Cache) *Generator {
	return &Generator{
		llm:   llm,
		cache: cache,
		log:   logger.Get().With("component", "question_generator"),
	}
}

// Generate returns up to research.MaxQuestions questions, or an empty slice on any failure
func (g *Generator) Generate(
	ctx context.Context,
	company, title, description string,
	cr *research.CompanyResearch,
	ir *research.IdeaResearch,
) []research.Question {
	if g.llm == nil || !g.llm.Ready() {
		g.log.Error("completion backend not available, cannot generate questions")
		return []research.Question{}
	}

	key := cacheKey(company, title, description)
	if cached := g.fromCache(ctx, key); cached != nil {
		return cached
	}

	resp, err := g.llm.Complete(ctx, ai.CompletionRequest{
		Operation:   "questions",
		Prompt:      fmt.Sprintf(generatePrompt, title, description, existingSolutions(ir)),
		Temperature: temperature,
	})
	if err != nil {
		g.log.Errorf("question generation failed: %v", err)
		return []research.Question{}
	}

	questions, err := Parse(resp.Text)
	if err != nil {
		g.log.Errorw("question generation returned no usable questions", "error", err, "response", resp.Text)
		return []research.Question{}
	}

	g.toCache(ctx, key, questions)
	g.log.Infow("generated questions", "title", title, "count", len(questions))
	return questions
}

type flexQuestion struct {
	Category  research.FlexString   `json:"category"`
	Question  research.FlexString   `json:"question"`
	Priority  research.FlexString   `json:"priority"`
	Key       research.FlexString   `json:"key"`
	FollowUps []research.FlexString `json:"follow_ups"`
}

// Parse validates a completion into at most research.MaxQuestions questions.
// Missing fields get positional defaults and unknown priorities become Must Answer.
func Parse(text string) ([]research.Question, error) {
	raw, err := jsonx.Raw(text)
	if err != nil {
		return nil, err
	}

	var items []flexQuestion
	if err := json.Unmarshal(raw, &items); err != nil {
		// {"questions": [...]} wrapper
		var wrapped struct {
			Questions []flexQuestion `json:"questions"`
		}
		if werr := json.Unmarshal(raw, &wrapped); werr != nil {
			return nil, errors.Wrap(errors.ErrNoJSON, "questions are not a JSON array")
		}
		items = wrapped.Questions
	}

	out := make([]research.Question, 0, research.MaxQuestions)
	for _, item := range items {
		if len(out) == research.MaxQuestions {
			break
		}
		body := strings.TrimSpace(item.Question.String())
		if body == "" {
			continue
		}

		q := research.Question{
			Category:  strings.TrimSpace(item.Category.String()),
			Question:  body,
			Priority:  strings.TrimSpace(item.Priority.String()),
			Key:       strings.TrimSpace(item.Key.String()),
			FollowUps: make([]string, 0, len(item.FollowUps)),
		}
		if q.Category == "" {
			q.Category = defaultCategory
		}
		if !research.ValidPriority(q.Priority) {
			q.Priority = research.PriorityMust
		}
		if q.Key == "" {
			q.Key = fmt.Sprintf("question_%d", len(out)+1)
		}
		for _, f := range item.FollowUps {
			if s := strings.TrimSpace(f.String()); s != "" {
				q.FollowUps = append(q.FollowUps, s)
			}
		}
		out = append(out, q)
	}

	if len(out) == 0 {
		return nil, errors.Wrap(errors.ErrInvalidInput, "no questions in response")
	}
	return out, nil
}

func existingSolutions(ir *research.IdeaResearch) string {
	if ir == nil || !ir.Success || len(ir.WhoIsImplementing) == 0 {
		return ""
	}
	impls := ir.WhoIsImplementing
	if len(impls) > maxSolutions {
		impls = impls[:maxSolutions]
	}
	lines := make([]string, 0, len(impls))
	for _, impl := range impls {
		lines = append(lines, fmt.Sprintf("- %s: %s", impl.Name, impl.Description))
	}
	return "\n" + strings.Join(lines, "\n")
}

func cacheKey(company, title, description string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.TrimSpace(description)))
	return fmt.Sprintf("%s_%08x", research.CacheKey(company, title), h.Sum32())
}

func (g *Generator) fromCache(ctx context.Context, key string) []research.Question {
	if g.cache == nil {
		return nil
	}
	var cached []research.Question
	if err := g.cache.Get(ctx, research.KindQuestions, key, &cached); err != nil {
		if !errors.Is(err, errors.ErrNotFound) {
			g.log.Warnf("questions cache read: %v", err)
		}
		metrics.RecordCache(string(research.KindQuestions), "miss")
		return nil
	}
	if len(cached) == 0 {
		return nil
	}
	metrics.RecordCache(string(research.KindQuestions), "hit")
	return cached
}

func (g *Generator) toCache(ctx context.Context, key string, qs []research.Question) {
	if g.cache == nil {
		return
	}
	if err := g.cache.Set(ctx, research.KindQuestions, key, qs); err != nil {
		g.log.Warnf("questions cache write: %v", err)
	}
}
