package idea

import "context"

// Repository stores ideas. Upsert keys on SessionID.
type Repository interface {
	Upsert(ctx context.Context, idea *Idea) error
	GetBySession(ctx context.Context, sessionID string) (*Idea, error)
	List(ctx context.Context, limit int) ([]Idea, error)
	ListByStatus(ctx context.Context, status Status, limit int) ([]Idea, error)
	UpdateStatus(ctx context.Context, sessionID string, status Status, feedback string) error
}
