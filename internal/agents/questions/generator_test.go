package questions

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ideaforge/internal/adapters/ai"
	"ideaforge/internal/domain/research"
	"ideaforge/pkg/errors"
)

type fakeLLM struct {
	reply  string
	err    error
	calls  int
	prompt string
}

func (f *fakeLLM) Complete(_ context.Context, req ai.CompletionRequest) (*ai.Completion, error) {
	f.calls++
	f.prompt = req.Prompt
	if f.err != nil {
		return nil, f.err
	}
	return &ai.Completion{Text: f.reply}, nil
}
func (f *fakeLLM) Ready() bool   { return true }
func (f *fakeLLM) Name() string  { return "fake" }
func (f *fakeLLM) Model() string { return "fake" }

type memCache struct {
	data map[string][]byte
}

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

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []research.Question
	}{
		{
			name: "complete question",
			text: `[{"category": "Success Criteria", "question": "What proves it works?", "priority": "Should Answer", "key": "success_1", "follow_ups": ["How measured?"]}]`,
			want: []research.Question{
				{Category: "Success Criteria", Question: "What proves it works?", Priority: research.PriorityShould, Key: "success_1", FollowUps: []string{"How measured?"}},
			},
		},
		{
			name: "positional defaults",
			text: "Here you go:\n```json\n[{\"question\": \"Q1?\"}, {\"question\": \"Q2?\", \"priority\": \"Critical\"}]\n```",
			want: []research.Question{
				{Category: "General", Question: "Q1?", Priority: research.PriorityMust, Key: "question_1", FollowUps: []string{}},
				{Category: "General", Question: "Q2?", Priority: research.PriorityMust, Key: "question_2", FollowUps: []string{}},
			},
		},
		{
			name: "wrapped object",
			text: `{"questions": [{"question": "Which data?", "category": "Data & Inputs", "priority": "Nice to Have"}]}`,
			want: []research.Question{
				{Category: "Data & Inputs", Question: "Which data?", Priority: research.PriorityNice, Key: "question_1", FollowUps: []string{}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_CapsAtFive(t *testing.T) {
	text := `[{"question":"1"},{"question":"2"},{"question":"3"},{"question":"4"},{"question":"5"},{"question":"6"},{"question":"7"}]`
	got, err := Parse(text)
	require.NoError(t, err)
	require.Len(t, got, research.MaxQuestions)
	assert.Equal(t, "5", got[4].Question)
	assert.Equal(t, "question_5", got[4].Key)
}

func TestParse_Invalid(t *testing.T) {
	for _, text := range []string{"", "no questions today", `[]`, `[{"category": "General"}]`, `{"answer": 42}`} {
		_, err := Parse(text)
		assert.Error(t, err, text)
	}
}

func TestGenerator_Generate(t *testing.T) {
	llm := &fakeLLM{reply: `[{"category": "Problem & Use Case", "question": "Who files the tickets?", "priority": "Must Answer", "key": "problem_1", "follow_ups": []}]`}
	cache := &memCache{data: map[string][]byte{}}
	ir := &research.IdeaResearch{
		Success:           true,
		WhoIsImplementing: []research.Implementer{{Name: "Klarna", Description: "AI assistant"}},
	}

	g := NewGenerator(llm, cache)
	got := g.Generate(context.Background(), "Acme", "Support Chatbot", "Answer tickets", nil, ir)
	require.Len(t, got, 1)
	assert.Contains(t, llm.prompt, "- Klarna: AI assistant")
	assert.NotContains(t, llm.prompt, "Acme")

	again := g.Generate(context.Background(), "Acme", "Support Chatbot", "Answer tickets", nil, ir)
	assert.Equal(t, got, again)
	assert.Equal(t, 1, llm.calls)
}

func TestGenerator_Generate_Failures(t *testing.T) {
	tests := []struct {
		name string
		llm  ai.Completer
	}{
		{name: "not configured", llm: ai.Unavailable{}},
		{name: "api error", llm: &fakeLLM{err: errors.ErrExternal}},
		{name: "prose", llm: &fakeLLM{reply: "I would ask about data."}},
		{name: "empty list", llm: &fakeLLM{reply: "[]"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache := &memCache{data: map[string][]byte{}}
			got := NewGenerator(tt.llm, cache).Generate(context.Background(), "Acme", "Idea", "Desc", nil, nil)
			assert.NotNil(t, got)
			assert.Empty(t, got)
			assert.Empty(t, cache.data)
		})
	}
}
