package research

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/semaphore"

	"ideaforge/internal/adapters/ai"
	"ideaforge/internal/adapters/search"
	"ideaforge/internal/domain/research"
	"ideaforge/internal/metrics"
	"ideaforge/pkg/logger"
	"ideaforge/pkg/textclean"
)

const (
	maxAnalysisChars = 32000
	maxAnswerChars   = 5000
	maxResults       = 5
	minBulletLen     = 20
)

// Config bounds the classification pool
type Config struct {
	Workers      int
	TaskTimeout  time.Duration
	BatchTimeout time.Duration
	MaxResults   int
	Depth        string
}

func (c Config) withDefaults() Config {
	if c.Workers <= 0 {
		c.Workers = 3
	}
	if c.TaskTimeout <= 0 {
		c.TaskTimeout = 30 * time.Second
	}
	if c.BatchTimeout <= 0 {
		c.BatchTimeout = 60 * time.Second
	}
	if c.MaxResults <= 0 || c.MaxResults > maxResults {
		c.MaxResults = maxResults
	}
	if c.Depth == "" {
		c.Depth = "advanced"
	}
	return c
}

// MarketResearcher runs one web search and turns the hits into categorized findings
type MarketResearcher struct {
	search search.Searcher
	llm    ai.Completer
	cfg    Config
	log    *logger.Logger
}

func NewMarketResearcher(s search.Searcher, llm ai.Completer, cfg Config) *MarketResearcher {
	return &MarketResearcher{
		search: s,
		llm:    llm,
		cfg:    cfg.withDefaults(),
		log:    logger.Get().With("component", "market_research"),
	}
}

// Research never returns an error; failures come back as Success=false with a reason
func (r *MarketResearcher) Research(ctx context.Context, idea, title string) *research.MarketResearch {
	if r.search == nil || !r.search.Ready() {
		r.log.Error("web search client not configured")
		return research.NewFailedMarketResearch(title,
			"Web search client could not be initialized. Check the TAVILY_API_KEY setting.")
	}

	r.log.Infow("starting market search", "title", title)

	resp, err := r.search.Search(ctx, search.Request{
		Query:             title + " market analysis competitors solutions trends opportunities challenges",
		MaxResults:        r.cfg.MaxResults,
		Depth:             r.cfg.Depth,
		IncludeAnswer:     true,
		IncludeRawContent: true,
	})
	if err != nil {
		r.log.Errorw("market search failed", "title", title, "error", err)
		return research.NewFailedMarketResearch(title, fmt.Sprintf("Error during research: %v", err))
	}

	out := &research.MarketResearch{
		Success:           true,
		Title:             title,
		Answer:            resp.Answer,
		MarketOverview:    resp.Answer,
		FullContent:       fullContent(resp),
		ExistingSolutions: []research.Finding{},
		Competitors:       []research.Finding{},
		Trends:            []research.Trend{},
		Opportunities:     []string{},
		Challenges:        []string{},
		Sources:           []research.SearchSource{},
		Timestamp:         time.Now().UTC(),
	}

	if out.Answer == "" && out.FullContent != "" {
		out.Answer = textclean.TruncateSmart(out.FullContent, maxAnswerChars)
		out.MarketOverview = out.Answer
	}

	if out.Answer != "" && r.llm.Ready() {
		out.Opportunities = r.bullets(ctx, "market_opportunities", opportunitiesPrompt, idea, out.Answer)
		out.Challenges = r.bullets(ctx, "market_challenges", challengesPrompt, idea, out.Answer)
	}

	if len(resp.Results) > 0 {
		r.categorize(ctx, resp.Results, idea, out)
	}

	r.log.Infow("market research complete",
		"title", title,
		"solutions", len(out.ExistingSolutions),
		"competitors", len(out.Competitors),
		"trends", len(out.Trends),
		"dropped", out.DroppedTasks,
	)
	return out
}

func fullContent(resp *search.Response) string {
	var parts []string
	if resp.Answer != "" {
		parts = append(parts, resp.Answer)
	}
	for _, res := range resp.Results {
		if res.Title == "" && res.Content == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("Source: %s\n%s\n", res.Title, res.Content))
	}
	return strings.Join(parts, "\n\n")
}

// classified is one pool slot; slots are merged in result order
type classified struct {
	done     bool
	source   research.SearchSource
	category research.Category
	summary  string
	url      string
	title    string
}

type taskResult struct {
	index int
	slot  classified
	err   error
}

// categorize classifies results through a bounded pool. A task whose classification
// call fails, that misses its deadline, or that panics is dropped and counted.
// Collection stops at the batch deadline even if a call ignores its context;
// a slot that has not reported by then is dropped.
func (r *MarketResearcher) categorize(ctx context.Context, results []search.Result, idea string, out *research.MarketResearch) {
	if len(results) > r.cfg.MaxResults {
		results = results[:r.cfg.MaxResults]
	}

	batchCtx, cancel := context.WithTimeout(ctx, r.cfg.BatchTimeout)
	defer cancel()

	sem := semaphore.NewWeighted(int64(r.cfg.Workers))
	// buffered for every task so no sender blocks once the collector has returned
	done := make(chan taskResult, len(results))

	go func() {
		for i, res := range results {
			if err := sem.Acquire(batchCtx, 1); err != nil {
				r.log.Warnf("classification batch deadline reached before task %d started", i)
				return
			}
			go r.runTask(batchCtx, sem, i, res, idea, done)
		}
	}()

	slots := make([]classified, len(results))
collect:
	for received := 0; received < len(results); received++ {
		select {
		case tr := <-done:
			if tr.err != nil {
				r.log.Warnf("classification task %d skipped: %v", tr.index, tr.err)
				continue
			}
			slots[tr.index] = tr.slot
		case <-batchCtx.Done():
			r.log.Warnf("classification batch timed out after %d of %d tasks", received, len(results))
			break collect
		}
	}

	for _, s := range slots {
		if !s.done {
			out.DroppedTasks++
			continue
		}
		out.Sources = append(out.Sources, s.source)
		switch s.category {
		case research.CategorySolution:
			out.ExistingSolutions = append(out.ExistingSolutions, research.Finding{
				Title: s.title, Description: s.summary, URL: s.url, Relevance: "Direct solution or tool",
			})
		case research.CategoryCompetitor:
			out.Competitors = append(out.Competitors, research.Finding{
				Title: s.title, Description: s.summary, URL: s.url, Relevance: "Market competitor",
			})
		default:
			out.Trends = append(out.Trends, research.Trend{
				Trend: s.title, Description: s.summary, Source: s.url, Impact: "Market trend",
			})
		}
	}

	metrics.RecordDroppedClassifications(out.DroppedTasks)
}

// runTask runs one classification under its own deadline. The pool slot is freed
// when the deadline passes, even if the call has not returned.
func (r *MarketResearcher) runTask(batchCtx context.Context, sem *semaphore.Weighted, i int, res search.Result, idea string, done chan<- taskResult) {
	defer sem.Release(1)

	taskCtx, cancelTask := context.WithTimeout(batchCtx, r.cfg.TaskTimeout)
	defer cancelTask()

	call := make(chan taskResult, 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				call <- taskResult{index: i, err: fmt.Errorf("panic: %v", p)}
			}
		}()
		slot, err := r.classifyOne(taskCtx, res, idea)
		call <- taskResult{index: i, slot: slot, err: err}
	}()

	select {
	case tr := <-call:
		if taskCtx.Err() != nil {
			tr = taskResult{index: i, err: taskCtx.Err()}
		}
		done <- tr
	case <-taskCtx.Done():
		done <- taskResult{index: i, err: taskCtx.Err()}
	}
}

func (r *MarketResearcher) classifyOne(ctx context.Context, res search.Result, idea string) (classified, error) {
	raw := textclean.CleanHTML(res.RawContent)
	content := textclean.CleanHTML(res.Content)

	text := raw
	if text == "" {
		text = content
	}
	text = textclean.TruncateSmart(text, maxAnalysisChars)

	title := textclean.CleanHTML(res.Title)
	slot := classified{
		done:   true,
		title:  title,
		url:    res.URL,
		source: research.SearchSource{Title: title, URL: res.URL, Snippet: textclean.TruncateSmart(content, 300)},
	}

	if !r.llm.Ready() {
		slot.category = research.CategoryTrend
		slot.summary = textclean.TruncateSmart(text, 500)
		return slot, nil
	}

	category, err := r.classify(ctx, title, text, idea)
	if err != nil {
		return classified{}, err
	}
	slot.category = category
	slot.summary = r.summarize(ctx, title, text, category, idea)
	return slot, nil
}

func (r *MarketResearcher) classify(ctx context.Context, title, text, idea string) (research.Category, error) {
	resp, err := r.llm.Complete(ctx, ai.CompletionRequest{
		Operation:   "classify_result",
		Prompt:      fmt.Sprintf(classifyPrompt, title, textclean.Truncate(text, maxAnalysisChars), idea),
		Temperature: 0,
		MaxTokens:   10,
	})
	if err != nil {
		return "", err
	}
	return research.ParseCategory(resp.Text), nil
}

func (r *MarketResearcher) summarize(ctx context.Context, title, text string, category research.Category, idea string) string {
	var prompt string
	switch category {
	case research.CategorySolution:
		prompt = fmt.Sprintf(summarizeSolutionPrompt, title, text, idea)
	case research.CategoryCompetitor:
		prompt = fmt.Sprintf(summarizeCompetitorPrompt, title, text)
	default:
		prompt = fmt.Sprintf(summarizeTrendPrompt, title, text)
	}

	resp, err := r.llm.Complete(ctx, ai.CompletionRequest{
		Operation:   "summarize_result",
		Prompt:      prompt,
		Temperature: 0.7,
	})
	if err != nil {
		r.log.Warnf("summary failed: %v", err)
		return fmt.Sprintf("[summary unavailable: %v]", err)
	}
	return strings.TrimSpace(resp.Text)
}

func (r *MarketResearcher) bullets(ctx context.Context, op, template, idea, answer string) []string {
	resp, err := r.llm.Complete(ctx, ai.CompletionRequest{
		Operation:   op,
		Prompt:      fmt.Sprintf(template, idea, textclean.Truncate(answer, maxAnalysisChars)),
		Temperature: 0.7,
	})
	if err != nil {
		r.log.Warnf("%s extraction failed: %v", op, err)
		return []string{}
	}
	return ParseBullets(resp.Text)
}

// ParseBullets keeps non-trivial lines with their bullet markers stripped
func ParseBullets(text string) []string {
	out := []string{}
	for _, line := range strings.Split(text, "\n") {
		if len(line) <= minBulletLen || strings.TrimSpace(line) == "" {
			continue
		}
		item := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-•*"))
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
