package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ideaforge/internal/adapters/config"
	redisadapter "ideaforge/internal/adapters/redis"
	"ideaforge/internal/domain/research"
	"ideaforge/internal/testsupport"
	"ideaforge/pkg/errors"
)

var testCacheConfig = config.CacheConfig{
	CompanyResearchTTL: 168 * time.Hour,
	IdeaResearchTTL:    72 * time.Hour,
	QuestionsTTL:       0,
	DefaultTTL:         24 * time.Hour,
}

func TestResearchCache_TTL(t *testing.T) {
	c := NewResearchCache(nil, testCacheConfig)

	assert.Equal(t, 168*time.Hour, c.TTL(research.KindCompany))
	assert.Equal(t, 72*time.Hour, c.TTL(research.KindIdea))
	assert.Equal(t, 24*time.Hour, c.TTL(research.KindQuestions), "unset lifetime falls back to the default")
	assert.Equal(t, 24*time.Hour, c.TTL(research.Kind("other")))
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "ideaforge:research:company:acme", researchKey(research.KindCompany, "acme"))
	assert.Equal(t, "ideaforge:cache_stats:idea:hits", statsKey(research.KindIdea, "hits"))
}

func TestResearchCache_RoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	rdb := testsupport.NewTestRedis(t)
	c := NewResearchCache(redisadapter.NewFromRedis(rdb), testCacheConfig)
	ctx := context.Background()

	var miss research.CompanyResearch
	err := c.Get(ctx, research.KindCompany, "acme", &miss)
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	stored := research.CompanyResearch{Success: true, CompanyName: "Acme"}
	require.NoError(t, c.Set(ctx, research.KindCompany, "acme", stored))

	var got research.CompanyResearch
	require.NoError(t, c.Get(ctx, research.KindCompany, "acme", &got))
	assert.Equal(t, "Acme", got.CompanyName)
	assert.True(t, got.Success)

	ttl, err := rdb.TTL(ctx, researchKey(research.KindCompany, "acme")).Result()
	require.NoError(t, err)
	assert.InDelta(t, (168 * time.Hour).Seconds(), ttl.Seconds(), 5)

	stats, err := c.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{Hits: 1, Misses: 1}, stats[research.KindCompany])
	assert.Equal(t, Stats{}, stats[research.KindIdea])

	require.NoError(t, c.Invalidate(ctx, research.KindCompany, "acme"))
	assert.True(t, errors.Is(c.Get(ctx, research.KindCompany, "acme", &got), errors.ErrNotFound))
}
