// Package redis implements the research cache and the workflow state cache on Redis
package redis

import (
	"context"
	"time"

	"ideaforge/internal/adapters/config"
	redisadapter "ideaforge/internal/adapters/redis"
	"ideaforge/internal/domain/research"
	"ideaforge/internal/metrics"
	"ideaforge/pkg/errors"
	"ideaforge/pkg/logger"
)

const (
	researchPrefix = "ideaforge:research:"
	statsPrefix    = "ideaforge:cache_stats:"
)

var _ research.Cache = (*ResearchCache)(nil)

// ResearchCache stores successful research results as JSON with a lifetime per kind
type ResearchCache struct {
	client     *redisadapter.Client
	ttls       map[research.Kind]time.Duration
	defaultTTL time.Duration
	log        *logger.Logger
}

// NewResearchCache creates the cache with lifetimes from cfg
func NewResearchCache(client *redisadapter.Client, cfg config.CacheConfig) *ResearchCache {
	return &ResearchCache{
		client: client,
		ttls: map[research.Kind]time.Duration{
			research.KindCompany:   cfg.CompanyResearchTTL,
			research.KindIdea:      cfg.IdeaResearchTTL,
			research.KindQuestions: cfg.QuestionsTTL,
		},
		defaultTTL: cfg.DefaultTTL,
		log:        logger.Get().With("component", "research_cache"),
	}
}

// Get decodes the entry into dst. A miss returns errors.ErrNotFound.
func (c *ResearchCache) Get(ctx context.Context, kind research.Kind, key string, dst any) error {
	err := c.client.Get(ctx, researchKey(kind, key), dst)
	switch {
	case err == nil:
		c.count(ctx, kind, "hits")
		return nil
	case errors.Is(err, errors.ErrNotFound):
		c.count(ctx, kind, "misses")
		return errors.ErrNotFound
	}
	metrics.RecordCache(string(kind), "error")
	return errors.Wrapf(err, "read %s cache", kind)
}

// Set stores value with the lifetime of kind
func (c *ResearchCache) Set(ctx context.Context, kind research.Kind, key string, value any) error {
	if err := c.client.Set(ctx, researchKey(kind, key), value, c.TTL(kind)); err != nil {
		metrics.RecordCache(string(kind), "error")
		return errors.Wrapf(err, "write %s cache", kind)
	}
	metrics.RecordCache(string(kind), "write")
	return nil
}

// Invalidate drops one entry
func (c *ResearchCache) Invalidate(ctx context.Context, kind research.Kind, key string) error {
	if err := c.client.Delete(ctx, researchKey(kind, key)); err != nil {
		return errors.Wrapf(err, "invalidate %s cache", kind)
	}
	return nil
}

// TTL returns the lifetime used for kind
func (c *ResearchCache) TTL(kind research.Kind) time.Duration {
	if ttl, ok := c.ttls[kind]; ok && ttl > 0 {
		return ttl
	}
	return c.defaultTTL
}

// Stats is the hit/miss tally of one cache kind
type Stats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
}

// Stats reads the persisted hit and miss counters per kind
func (c *ResearchCache) Stats(ctx context.Context) (map[research.Kind]Stats, error) {
	kinds := []research.Kind{research.KindCompany, research.KindIdea, research.KindQuestions}
	keys := make([]string, 0, len(kinds)*2)
	for _, k := range kinds {
		keys = append(keys, statsKey(k, "hits"), statsKey(k, "misses"))
	}

	counters, err := c.client.Counters(ctx, keys...)
	if err != nil {
		return nil, errors.Wrap(err, "read cache stats")
	}

	out := make(map[research.Kind]Stats, len(kinds))
	for _, k := range kinds {
		out[k] = Stats{Hits: counters[statsKey(k, "hits")], Misses: counters[statsKey(k, "misses")]}
	}
	return out, nil
}

// count is best effort, a failed increment must not fail the lookup
func (c *ResearchCache) count(ctx context.Context, kind research.Kind, what string) {
	if _, err := c.client.Increment(ctx, statsKey(kind, what)); err != nil {
		c.log.Debugw("cache stats increment failed", "kind", kind, "error", err)
	}
}

func researchKey(kind research.Kind, key string) string {
	return researchPrefix + string(kind) + ":" + key
}

func statsKey(kind research.Kind, what string) string {
	return statsPrefix + string(kind) + ":" + what
}
