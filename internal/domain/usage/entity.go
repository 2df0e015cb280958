package usage

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Log is one text-completion call
type Log struct {
	ID               uuid.UUID `ch:"id"`
	Timestamp        time.Time `ch:"timestamp"`
	Provider         string    `ch:"provider"`
	Model            string    `ch:"model"`
	Operation        string    `ch:"operation"`
	WorkflowKey      string    `ch:"workflow_key"`
	PromptTokens     uint32    `ch:"prompt_tokens"`
	CompletionTokens uint32    `ch:"completion_tokens"`
	TotalTokens      uint32    `ch:"total_tokens"`
	LatencyMs        uint32    `ch:"latency_ms"`
	Success          uint8     `ch:"success"`
	ErrorMessage     string    `ch:"error_message"`
}

// Repository stores usage logs
type Repository interface {
	Store(ctx context.Context, log *Log) error
}
