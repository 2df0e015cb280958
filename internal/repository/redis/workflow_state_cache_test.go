package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisadapter "ideaforge/internal/adapters/redis"
	"ideaforge/internal/domain/workflow"
	"ideaforge/internal/testsupport"
	"ideaforge/pkg/errors"
)

type memStore struct {
	saved map[string]*workflow.Result
	loads int
	err   error
}

func (m *memStore) Save(_ context.Context, r *workflow.Result) error {
	if m.err != nil {
		return m.err
	}
	if m.saved == nil {
		m.saved = map[string]*workflow.Result{}
	}
	m.saved[workflow.Key(r.CompanyName, r.IdeaTitle)] = r
	return nil
}

func (m *memStore) Load(_ context.Context, key string) (*workflow.Result, error) {
	m.loads++
	if r, ok := m.saved[key]; ok {
		return r, nil
	}
	return nil, errors.Wrap(errors.ErrNotFound, "workflow state not found")
}

func TestWorkflowStateCache_SaveNil(t *testing.T) {
	c := NewWorkflowStateCache(nil, nil, time.Hour)
	assert.True(t, errors.Is(c.Save(context.Background(), nil), errors.ErrInvalidInput))
}

func TestWorkflowStateCache_DurableFailureStopsSave(t *testing.T) {
	c := NewWorkflowStateCache(nil, &memStore{err: errors.New("db down")}, time.Hour)
	err := c.Save(context.Background(), workflow.NewResult("Acme", "Idea", ""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
}

func TestWorkflowStateCache_ReadThrough(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	rdb := testsupport.NewTestRedis(t)
	durable := &memStore{}
	c := NewWorkflowStateCache(redisadapter.NewFromRedis(rdb), durable, time.Hour)
	ctx := context.Background()

	result := workflow.NewResult("Acme Corp", "Smart Invoicing", "desc")
	result.Complete()
	require.NoError(t, c.Save(ctx, result))
	require.Contains(t, durable.saved, "acme_corp_smart_invoicing")

	got, err := c.Load(ctx, "acme_corp_smart_invoicing")
	require.NoError(t, err)
	assert.Equal(t, workflow.StepCompleted, got.CurrentStep)
	assert.Equal(t, 0, durable.loads, "served from redis")

	// evicted entries are read from the durable store and refilled
	require.NoError(t, rdb.Del(ctx, workflowPrefix+"acme_corp_smart_invoicing").Err())
	_, err = c.Load(ctx, "acme_corp_smart_invoicing")
	require.NoError(t, err)
	assert.Equal(t, 1, durable.loads)

	exists, err := rdb.Exists(ctx, workflowPrefix+"acme_corp_smart_invoicing").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), exists)
}

func TestWorkflowStateCache_CacheOnly(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	c := NewWorkflowStateCache(redisadapter.NewFromRedis(testsupport.NewTestRedis(t)), nil, time.Hour)

	_, err := c.Load(context.Background(), "missing_key")
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}
