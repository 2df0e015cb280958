package research

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ideaforge/internal/adapters/ai"
	"ideaforge/internal/adapters/search"
	"ideaforge/pkg/errors"
)

type fakeSearcher struct {
	resp  *search.Response
	err   error
	ready bool
	req   search.Request
}

func (f *fakeSearcher) Search(_ context.Context, req search.Request) (*search.Response, error) {
	f.req = req
	return f.resp, f.err
}
func (f *fakeSearcher) Ready() bool { return f.ready }

type fakeLLM struct {
	ready    bool
	complete func(ctx context.Context, req ai.CompletionRequest) (*ai.Completion, error)
}

func (f *fakeLLM) Complete(ctx context.Context, req ai.CompletionRequest) (*ai.Completion, error) {
	return f.complete(ctx, req)
}
func (f *fakeLLM) Ready() bool   { return f.ready }
func (f *fakeLLM) Name() string  { return "fake" }
func (f *fakeLLM) Model() string { return "fake" }

func text(s string) (*ai.Completion, error) { return &ai.Completion{Text: s}, nil }

func threeResults() *search.Response {
	return &search.Response{
		Answer: "The market for AI chatbots is growing fast.",
		Results: []search.Result{
			{Title: "Zendesk AI", URL: "https://zendesk.com", Content: "Zendesk ships an AI agent.", RawContent: "<p>Zendesk ships an AI agent for support.</p>"},
			{Title: "Intercom", URL: "https://intercom.com", Content: "Intercom competes with Fin."},
			{Title: "Gartner report", URL: "https://gartner.com", Content: "Chatbot adoption grows 24% a year."},
		},
	}
}

func classifier(ctx context.Context, req ai.CompletionRequest) (*ai.Completion, error) {
	switch req.Operation {
	case "classify_result":
		switch {
		case strings.Contains(req.Prompt, "Title: Zendesk AI"):
			return text("Solution.")
		case strings.Contains(req.Prompt, "Title: Intercom"):
			return text("competitor")
		}
		return text("I think this is a trend")
	case "summarize_result":
		return text("  summary  ")
	case "market_opportunities":
		return text("- Mid-market support teams lack affordable automation\n- short\n* Multilingual support is underserved today")
	case "market_challenges":
		return text("• Data privacy regulation slows enterprise adoption")
	}
	return nil, errors.New("unexpected operation")
}

func TestMarketResearcher_Research(t *testing.T) {
	s := &fakeSearcher{ready: true, resp: threeResults()}
	r := NewMarketResearcher(s, &fakeLLM{ready: true, complete: classifier}, Config{})

	out := r.Research(context.Background(), "AI support bot", "Support Chatbot")
	require.True(t, out.Success)

	assert.Equal(t, "Support Chatbot market analysis competitors solutions trends opportunities challenges", s.req.Query)
	assert.Equal(t, 5, s.req.MaxResults)
	assert.Equal(t, "advanced", s.req.Depth)

	require.Len(t, out.ExistingSolutions, 1)
	assert.Equal(t, "Zendesk AI", out.ExistingSolutions[0].Title)
	assert.Equal(t, "summary", out.ExistingSolutions[0].Description)
	require.Len(t, out.Competitors, 1)
	assert.Equal(t, "Market competitor", out.Competitors[0].Relevance)
	require.Len(t, out.Trends, 1)
	assert.Equal(t, "https://gartner.com", out.Trends[0].Source)

	assert.Len(t, out.Sources, 3)
	assert.Equal(t, 0, out.DroppedTasks)
	assert.Equal(t, []string{
		"Mid-market support teams lack affordable automation",
		"Multilingual support is underserved today",
	}, out.Opportunities)
	assert.Len(t, out.Challenges, 1)
	assert.Contains(t, out.FullContent, "Source: Intercom")
}

func TestMarketResearcher_SearchNotReady(t *testing.T) {
	r := NewMarketResearcher(&fakeSearcher{}, &fakeLLM{ready: true, complete: classifier}, Config{})

	out := r.Research(context.Background(), "idea", "Title")
	assert.False(t, out.Success)
	assert.NotEmpty(t, out.FailureReason())
	assert.NotNil(t, out.ExistingSolutions)
}

func TestMarketResearcher_SearchError(t *testing.T) {
	s := &fakeSearcher{ready: true, err: errors.ErrExternal}
	r := NewMarketResearcher(s, &fakeLLM{ready: true, complete: classifier}, Config{})

	out := r.Research(context.Background(), "idea", "Title")
	assert.False(t, out.Success)
	assert.Contains(t, out.Answer, "Error during research")
}

func TestMarketResearcher_DropsTimedOutTasks(t *testing.T) {
	slow := func(ctx context.Context, req ai.CompletionRequest) (*ai.Completion, error) {
		if strings.Contains(req.Prompt, "Title: Intercom") {
			<-ctx.Done()
			return nil, ctx.Err()
		}
		return classifier(ctx, req)
	}

	s := &fakeSearcher{ready: true, resp: threeResults()}
	r := NewMarketResearcher(s, &fakeLLM{ready: true, complete: slow}, Config{
		Workers:      3,
		TaskTimeout:  50 * time.Millisecond,
		BatchTimeout: time.Second,
	})

	out := r.Research(context.Background(), "idea", "Support Chatbot")
	require.True(t, out.Success)
	assert.Equal(t, 1, out.DroppedTasks)
	assert.Empty(t, out.Competitors)
	assert.Len(t, out.ExistingSolutions, 1)
	assert.Len(t, out.Sources, 2)
}

func TestMarketResearcher_AbandonsCallsIgnoringContext(t *testing.T) {
	stuck := func(ctx context.Context, req ai.CompletionRequest) (*ai.Completion, error) {
		if strings.Contains(req.Prompt, "Title: Intercom") {
			time.Sleep(2 * time.Second)
			return text("competitor")
		}
		return classifier(ctx, req)
	}

	tests := []struct {
		name string
		cfg  Config
	}{
		{"task deadline", Config{Workers: 3, TaskTimeout: 50 * time.Millisecond, BatchTimeout: time.Second}},
		{"batch deadline", Config{Workers: 3, TaskTimeout: 10 * time.Second, BatchTimeout: 200 * time.Millisecond}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &fakeSearcher{ready: true, resp: threeResults()}
			r := NewMarketResearcher(s, &fakeLLM{ready: true, complete: stuck}, tt.cfg)

			start := time.Now()
			out := r.Research(context.Background(), "idea", "Support Chatbot")

			assert.Less(t, time.Since(start), 1500*time.Millisecond)
			require.True(t, out.Success)
			assert.Equal(t, 1, out.DroppedTasks)
			assert.Empty(t, out.Competitors)
			assert.Len(t, out.ExistingSolutions, 1)
			assert.Len(t, out.Trends, 1)
		})
	}
}

func TestMarketResearcher_ClassificationErrorDropsTask(t *testing.T) {
	failing := func(ctx context.Context, req ai.CompletionRequest) (*ai.Completion, error) {
		if req.Operation == "classify_result" && strings.Contains(req.Prompt, "Title: Gartner") {
			return nil, errors.ErrExternal
		}
		return classifier(ctx, req)
	}

	s := &fakeSearcher{ready: true, resp: threeResults()}
	out := NewMarketResearcher(s, &fakeLLM{ready: true, complete: failing}, Config{}).
		Research(context.Background(), "idea", "T")

	assert.Empty(t, out.Trends)
	assert.Len(t, out.ExistingSolutions, 1)
	assert.Len(t, out.Competitors, 1)
	assert.Equal(t, 1, out.DroppedTasks)
}

func TestMarketResearcher_NoCompleter(t *testing.T) {
	s := &fakeSearcher{ready: true, resp: &search.Response{
		Results: []search.Result{{Title: "Only", URL: "https://only.io", Content: "Plain content about the market."}},
	}}
	out := NewMarketResearcher(s, &fakeLLM{ready: false}, Config{}).Research(context.Background(), "idea", "T")

	require.True(t, out.Success)
	assert.Len(t, out.Trends, 1)
	assert.Empty(t, out.Opportunities)
	assert.Equal(t, "Source: Only\nPlain content about the market.\n", out.Answer)
}

func TestParseBullets(t *testing.T) {
	got := ParseBullets("Here are the items:\n- first opportunity line is long\n\n  * second one is also long enough\nok")
	assert.Equal(t, []string{
		"first opportunity line is long",
		"second one is also long enough",
	}, got)
	assert.Empty(t, ParseBullets(""))
}
