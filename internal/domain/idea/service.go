package idea

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"ideaforge/pkg/errors"
	"ideaforge/pkg/logger"
)

// DefaultListLimit bounds catalog listings
const DefaultListLimit = 50

// Service encapsulates catalog operations
type Service struct {
	repo Repository
	log  *logger.Logger
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, log: logger.Get().With("component", "idea_service")}
}

// Save creates the idea or updates the one with the same session id
func (s *Service) Save(ctx context.Context, idea *Idea) (*Idea, error) {
	if idea == nil {
		return nil, errors.ErrInvalidInput
	}
	if strings.TrimSpace(idea.SessionID) == "" {
		return nil, errors.NewValidationError("session_id", "is required", idea.SessionID)
	}
	if strings.TrimSpace(idea.Title) == "" {
		return nil, errors.NewValidationError("title", "is required", idea.Title)
	}
	if idea.AIScore != nil && (*idea.AIScore < 0 || *idea.AIScore > 100) {
		return nil, errors.NewValidationError("ai_score", "must be between 0 and 100", *idea.AIScore)
	}
	if idea.Status == "" {
		idea.Status = StatusSubmitted
	}
	if !idea.Status.Valid() {
		return nil, errors.NewValidationError("status", "unknown status", idea.Status)
	}
	if idea.Department == "" {
		idea.Department = DefaultDepartment
	}

	now := time.Now().UTC()
	existing, err := s.repo.GetBySession(ctx, idea.SessionID)
	switch {
	case err == nil:
		idea.ID = existing.ID
		idea.CreatedAt = existing.CreatedAt
	case errors.Is(err, errors.ErrNotFound):
		if idea.ID == uuid.Nil {
			idea.ID = uuid.New()
		}
		idea.CreatedAt = now
	default:
		return nil, errors.Wrap(err, "lookup idea")
	}
	idea.UpdatedAt = now

	if err := s.repo.Upsert(ctx, idea); err != nil {
		return nil, errors.Wrap(err, "save idea")
	}
	s.log.Infow("Idea saved", "session_id", idea.SessionID, "status", idea.Status)
	return idea, nil
}

func (s *Service) GetBySession(ctx context.Context, sessionID string) (*Idea, error) {
	if sessionID == "" {
		return nil, errors.ErrInvalidInput
	}
	idea, err := s.repo.GetBySession(ctx, sessionID)
	if err != nil {
		return nil, errors.Wrap(err, "get idea")
	}
	return idea, nil
}

// List returns ideas newest first
func (s *Service) List(ctx context.Context, limit int) ([]Idea, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	ideas, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, errors.Wrap(err, "list ideas")
	}
	return ideas, nil
}

func (s *Service) ListByStatus(ctx context.Context, status Status, limit int) ([]Idea, error) {
	if !status.Valid() {
		return nil, errors.NewValidationError("status", "unknown status", status)
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	ideas, err := s.repo.ListByStatus(ctx, status, limit)
	if err != nil {
		return nil, errors.Wrap(err, "list ideas by status")
	}
	return ideas, nil
}

// Review records a reviewer decision
func (s *Service) Review(ctx context.Context, sessionID string, status Status, feedback string) error {
	if !status.Valid() {
		return errors.NewValidationError("status", "unknown status", status)
	}
	if err := s.repo.UpdateStatus(ctx, sessionID, status, feedback); err != nil {
		return errors.Wrap(err, "review idea")
	}
	return nil
}

// MarkCompleted moves the idea to the completed status
func (s *Service) MarkCompleted(ctx context.Context, sessionID string) error {
	if err := s.repo.UpdateStatus(ctx, sessionID, StatusCompleted, ""); err != nil {
		return errors.Wrap(err, "mark idea completed")
	}
	return nil
}
