package ai

import (
	"context"
	"time"

	"github.com/google/uuid"

	"ideaforge/internal/adapters/ratelimit"
	"ideaforge/internal/domain/usage"
	"ideaforge/internal/domain/workflow"
	"ideaforge/internal/metrics"
	"ideaforge/pkg/logger"
)

var _ Completer = (*Instrumented)(nil)

// Instrumented throttles a Completer and records metrics and usage rows for each call
type Instrumented struct {
	next    Completer
	limiter *ratelimit.Limiter
	usage   usage.Repository // optional
	log     *logger.Logger
}

func NewInstrumented(next Completer, limiter *ratelimit.Limiter, usageRepo usage.Repository) *Instrumented {
	if limiter == nil {
		limiter = ratelimit.NewLimiter(next.Name(), 0)
	}
	return &Instrumented{
		next:    next,
		limiter: limiter,
		usage:   usageRepo,
		log:     logger.Get().With("component", "completer", "provider", next.Name()),
	}
}

func (c *Instrumented) Ready() bool   { return c.next.Ready() }
func (c *Instrumented) Name() string  { return c.next.Name() }
func (c *Instrumented) Model() string { return c.next.Model() }

func (c *Instrumented) Complete(ctx context.Context, req CompletionRequest) (*Completion, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		metrics.RecordRateLimited(req.Operation, c.next.Model())
		return nil, &RateLimitError{Provider: c.next.Name(), Limit: c.limiter.PerMinute(), Err: err}
	}

	start := time.Now()
	resp, err := c.next.Complete(ctx, req)
	latency := time.Since(start)

	var u Usage
	model := c.next.Model()
	if resp != nil {
		u = resp.Usage
		model = resp.Model
	}
	metrics.RecordCompletion(req.Operation, model, latency, u.PromptTokens, u.CompletionTokens, err)

	if err != nil {
		c.log.Warnw("completion failed", "operation", req.Operation, "latency", latency, "error", err)
	} else {
		c.log.Debugw("completion", "operation", req.Operation, "model", model,
			"prompt_tokens", u.PromptTokens, "completion_tokens", u.CompletionTokens, "latency", latency)
	}

	c.record(ctx, req, model, u, latency, err)
	return resp, err
}

func (c *Instrumented) record(ctx context.Context, req CompletionRequest, model string, u Usage, latency time.Duration, callErr error) {
	if c.usage == nil {
		return
	}

	row := &usage.Log{
		ID:               uuid.New(),
		Timestamp:        time.Now().UTC(),
		Provider:         c.next.Name(),
		Model:            model,
		Operation:        req.Operation,
		WorkflowKey:      workflow.KeyFromContext(ctx),
		PromptTokens:     uint32(u.PromptTokens),
		CompletionTokens: uint32(u.CompletionTokens),
		TotalTokens:      uint32(u.TotalTokens),
		LatencyMs:        uint32(latency.Milliseconds()),
		Success:          1,
	}
	if callErr != nil {
		row.Success = 0
		row.ErrorMessage = callErr.Error()
	}

	if err := c.usage.Store(ctx, row); err != nil {
		c.log.Warnf("store usage row: %v", err)
	}
}
