// Package seeds builds catalog fixtures for integration tests
package seeds

import (
	"context"
	"database/sql"

	"ideaforge/pkg/logger"
)

// DBTX is the interface that both *sqlx.DB and *sqlx.Tx satisfy
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
}

// Seeder is the entry point for creating seed data
type Seeder struct {
	db  DBTX
	ctx context.Context
	log *logger.Logger
}

// New creates a new Seeder instance
func New(db DBTX) *Seeder {
	return &Seeder{
		db:  db,
		ctx: context.Background(),
		log: logger.Get().With("component", "seeds"),
	}
}

// WithContext sets the context for database operations
func (s *Seeder) WithContext(ctx context.Context) *Seeder {
	s.ctx = ctx
	return s
}

// Idea starts building an Idea entity
func (s *Seeder) Idea() *IdeaBuilder {
	return NewIdeaBuilder(s.db, s.ctx)
}
