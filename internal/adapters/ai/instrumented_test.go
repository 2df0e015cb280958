package ai

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ideaforge/internal/adapters/config"
	"ideaforge/internal/adapters/ratelimit"
	"ideaforge/internal/domain/usage"
	"ideaforge/internal/domain/workflow"
	"ideaforge/pkg/errors"
)

type fakeCompleter struct {
	resp *Completion
	err  error
	reqs []CompletionRequest
}

func (f *fakeCompleter) Complete(_ context.Context, req CompletionRequest) (*Completion, error) {
	f.reqs = append(f.reqs, req)
	return f.resp, f.err
}
func (f *fakeCompleter) Ready() bool   { return true }
func (f *fakeCompleter) Name() string  { return "fake" }
func (f *fakeCompleter) Model() string { return "fake-model" }

type fakeUsageRepo struct {
	rows []*usage.Log
}

func (f *fakeUsageRepo) Store(_ context.Context, l *usage.Log) error {
	f.rows = append(f.rows, l)
	return nil
}

func TestInstrumented_RecordsUsage(t *testing.T) {
	next := &fakeCompleter{resp: &Completion{Text: "ok", Model: "fake-model", Usage: Usage{PromptTokens: 10, CompletionTokens: 2, TotalTokens: 12}}}
	repo := &fakeUsageRepo{}
	c := NewInstrumented(next, nil, repo)

	ctx := workflow.ContextWithKey(context.Background(), "acme_chatbot")
	resp, err := c.Complete(ctx, CompletionRequest{Operation: "questions", Prompt: "p"})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text)

	require.Len(t, repo.rows, 1)
	row := repo.rows[0]
	assert.Equal(t, "acme_chatbot", row.WorkflowKey)
	assert.Equal(t, "questions", row.Operation)
	assert.Equal(t, uint32(12), row.TotalTokens)
	assert.Equal(t, uint8(1), row.Success)
}

func TestInstrumented_RecordsFailure(t *testing.T) {
	next := &fakeCompleter{err: errors.ErrEmptyCompletion}
	repo := &fakeUsageRepo{}
	c := NewInstrumented(next, nil, repo)

	_, err := c.Complete(context.Background(), CompletionRequest{Operation: "estimate"})
	require.ErrorIs(t, err, errors.ErrEmptyCompletion)

	require.Len(t, repo.rows, 1)
	assert.Equal(t, uint8(0), repo.rows[0].Success)
	assert.Equal(t, "fake-model", repo.rows[0].Model)
	assert.NotEmpty(t, repo.rows[0].ErrorMessage)
}

func TestInstrumented_RateLimited(t *testing.T) {
	next := &fakeCompleter{resp: &Completion{Text: "ok"}}
	limiter := ratelimit.NewLimiter("fake", 1)
	c := NewInstrumented(next, limiter, nil)

	_, err := c.Complete(context.Background(), CompletionRequest{})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = c.Complete(ctx, CompletionRequest{})

	var rlErr *RateLimitError
	require.ErrorAs(t, err, &rlErr)
	assert.Equal(t, 1, rlErr.Limit)
	assert.Len(t, next.reqs, 1)
}

func TestNewFromConfig(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.AIConfig
		wantReady bool
		wantName  string
	}{
		{"deepseek without key", config.AIConfig{Provider: "deepseek"}, false, "unavailable"},
		{"openai without key", config.AIConfig{Provider: "openai"}, false, "unavailable"},
		{"deepseek", config.AIConfig{Provider: "deepseek", DeepSeekKey: "k", DeepSeekModel: "deepseek-chat"}, true, ProviderDeepSeek},
		{"openai", config.AIConfig{Provider: "openai", OpenAIKey: "k", OpenAIModel: "gpt-4o-mini"}, true, ProviderOpenAI},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewFromConfig(tt.cfg, nil)
			assert.Equal(t, tt.wantReady, c.Ready())
			assert.Equal(t, tt.wantName, c.Name())
		})
	}
}
