package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ideaforge/pkg/errors"
)

func TestOpenAICompleter_Complete(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1700000000,
			"model": "gpt-4o-mini",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "[]"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 5, "completion_tokens": 1, "total_tokens": 6}
		}`))
	}))
	defer srv.Close()

	c := NewOpenAICompleter("key", srv.URL+"/", "gpt-4o-mini", 5*time.Second)
	resp, err := c.Complete(context.Background(), CompletionRequest{
		System:      "sys",
		Prompt:      "questions please",
		Temperature: 0.3,
		JSONMode:    true,
	})
	require.NoError(t, err)

	assert.Equal(t, "[]", resp.Text)
	assert.Equal(t, 5, resp.Usage.PromptTokens)
	assert.Equal(t, "gpt-4o-mini", body["model"])
	format, ok := body["response_format"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "json_object", format["type"])
}

func TestOpenAICompleter_NotReady(t *testing.T) {
	c := NewOpenAICompleter("", "", "", 0)
	assert.False(t, c.Ready())
	assert.Equal(t, "gpt-4o-mini", c.Model())

	_, err := c.Complete(context.Background(), CompletionRequest{Prompt: "x"})
	assert.ErrorIs(t, err, errors.ErrUnavailable)
}
