package portfolio

import (
	"context"

	"ideaforge/internal/domain/idea"
	"ideaforge/pkg/errors"
)

// IdeaLister is the read side of the idea catalog
type IdeaLister interface {
	List(ctx context.Context, limit int) ([]idea.Idea, error)
}

// DefaultIdeaLimit bounds how many saved ideas one analysis reads
const DefaultIdeaLimit = 500

// Service loads the catalog and runs the engine over it on every call
type Service struct {
	ideas  IdeaLister
	engine *Engine
	limit  int
}

func NewService(ideas IdeaLister, engine *Engine, limit int) *Service {
	if limit <= 0 {
		limit = DefaultIdeaLimit
	}
	return &Service{ideas: ideas, engine: engine, limit: limit}
}

// Analyze reads the current catalog and derives fresh analytics
func (s *Service) Analyze(ctx context.Context) (*Analytics, error) {
	ideas, err := s.ideas.List(ctx, s.limit)
	if err != nil {
		return nil, errors.Wrap(err, "list ideas for portfolio")
	}
	return s.engine.Analyze(ideas), nil
}

// Engine exposes the underlying engine for ad-hoc analysis
func (s *Service) Engine() *Engine {
	return s.engine
}
