package ai

import (
	"context"
	"fmt"
)

// Provider names
const (
	ProviderDeepSeek = "deepseek"
	ProviderOpenAI   = "openai"
)

// Completer turns a system+user prompt pair into text
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (*Completion, error)
	// Ready reports whether the backend is configured; agents check it before building prompts
	Ready() bool
	Name() string
	Model() string
}

// CompletionRequest is one single-turn completion
type CompletionRequest struct {
	Operation   string // metrics / usage label, e.g. "company_financials"
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int
	JSONMode    bool
}

type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

type Completion struct {
	Text  string
	Model string
	Usage Usage
}

// RateLimitError is returned when the local limiter refuses a call
type RateLimitError struct {
	Provider string
	Limit    int
	Err      error
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit error for provider %s (limit: %d req/min): %v", e.Provider, e.Limit, e.Err)
}

func (e *RateLimitError) Unwrap() error {
	return e.Err
}
