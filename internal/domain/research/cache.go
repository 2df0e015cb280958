package research

import (
	"context"
	"strings"
)

// Kind selects the cache namespace and its TTL
type Kind string

const (
	KindCompany   Kind = "company"
	KindIdea      Kind = "idea"
	KindQuestions Kind = "questions"
)

// Cache stores successful research results. Get returns errors.ErrNotFound on a miss.
type Cache interface {
	Get(ctx context.Context, kind Kind, key string, dst any) error
	Set(ctx context.Context, kind Kind, key string, value any) error
}

// CacheKey normalizes the parts the same way workflow keys are built
func CacheKey(parts ...string) string {
	norm := make([]string, 0, len(parts))
	for _, p := range parts {
		norm = append(norm, strings.ReplaceAll(strings.ToLower(strings.TrimSpace(p)), " ", "_"))
	}
	return strings.Join(norm, "_")
}
