package redis

import (
	"context"
	"time"

	redisadapter "ideaforge/internal/adapters/redis"
	"ideaforge/internal/domain/workflow"
	"ideaforge/pkg/errors"
	"ideaforge/pkg/logger"
)

const workflowPrefix = "ideaforge:workflow:"

var _ workflow.StateStore = (*WorkflowStateCache)(nil)

// WorkflowStateCache keeps recent workflow results in Redis in front of an
// optional durable store. Saves go to the durable store first.
type WorkflowStateCache struct {
	client *redisadapter.Client
	next   workflow.StateStore
	ttl    time.Duration
	log    *logger.Logger
}

// NewWorkflowStateCache wraps next, which may be nil for a cache-only store
func NewWorkflowStateCache(client *redisadapter.Client, next workflow.StateStore, ttl time.Duration) *WorkflowStateCache {
	return &WorkflowStateCache{
		client: client,
		next:   next,
		ttl:    ttl,
		log:    logger.Get().With("component", "workflow_state_cache"),
	}
}

func (c *WorkflowStateCache) Save(ctx context.Context, result *workflow.Result) error {
	if result == nil {
		return errors.ErrInvalidInput
	}
	if c.next != nil {
		if err := c.next.Save(ctx, result); err != nil {
			return err
		}
	}

	key := workflow.Key(result.CompanyName, result.IdeaTitle)
	if err := c.client.Set(ctx, workflowPrefix+key, result, c.ttl); err != nil {
		if c.next == nil {
			return errors.Wrap(err, "cache workflow state")
		}
		c.log.Warnw("Failed to cache workflow state", "key", key, "error", err)
	}
	return nil
}

// Load serves from Redis and falls back to the durable store, refilling the cache
func (c *WorkflowStateCache) Load(ctx context.Context, key string) (*workflow.Result, error) {
	var result workflow.Result
	err := c.client.Get(ctx, workflowPrefix+key, &result)
	if err == nil {
		return &result, nil
	}
	if !errors.Is(err, errors.ErrNotFound) {
		c.log.Warnw("Workflow state cache read failed", "key", key, "error", err)
	}
	if c.next == nil {
		return nil, errors.Wrap(errors.ErrNotFound, "workflow state not found")
	}

	loaded, err := c.next.Load(ctx, key)
	if err != nil {
		return nil, err
	}
	if err := c.client.Set(ctx, workflowPrefix+key, loaded, c.ttl); err != nil {
		c.log.Debugw("Failed to refill workflow state cache", "key", key, "error", err)
	}
	return loaded, nil
}
