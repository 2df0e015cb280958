package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver

	"ideaforge/internal/adapters/config"
	"ideaforge/pkg/errors"
)

// Client wraps sqlx.DB for the idea catalog and workflow state tables
type Client struct {
	db *sqlx.DB
}

// NewClient connects, configures the pool and verifies the connection
func NewClient(cfg config.PostgresConfig) (*Client, error) {
	db, err := sqlx.Connect("postgres", cfg.DSN())
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to postgres")
	}

	maxConns := cfg.MaxConns
	if maxConns <= 0 {
		maxConns = 10
	}
	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns / 2)
	db.SetConnMaxLifetime(time.Hour)
	db.SetConnMaxIdleTime(30 * time.Minute)

	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to ping postgres")
	}

	return &Client{db: db}, nil
}

func (c *Client) DB() *sqlx.DB {
	return c.db
}

func (c *Client) Close() error {
	return c.db.Close()
}

// Health checks database connectivity
func (c *Client) Health(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

// EnsureSchema creates the tables used by the repositories if they do not exist
func (c *Client) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := c.db.ExecContext(ctx, stmt); err != nil {
			return errors.Wrap(err, "apply schema")
		}
	}
	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS ideas (
		id               UUID PRIMARY KEY,
		session_id       TEXT NOT NULL UNIQUE,
		title            TEXT NOT NULL,
		original_idea    TEXT NOT NULL DEFAULT '',
		rephrased_idea   TEXT NOT NULL DEFAULT '',
		submitted_by     TEXT NOT NULL DEFAULT '',
		department       TEXT NOT NULL DEFAULT 'General',
		ai_score         INTEGER,
		ai_feedback      TEXT NOT NULL DEFAULT '',
		ai_strengths     JSONB NOT NULL DEFAULT '[]',
		ai_improvements  JSONB NOT NULL DEFAULT '[]',
		research_data    JSONB,
		status           TEXT NOT NULL DEFAULT 'submitted',
		reviewer_feedback TEXT NOT NULL DEFAULT '',
		created_at       TIMESTAMPTZ NOT NULL,
		updated_at       TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS ideas_status_idx ON ideas (status)`,
	`CREATE INDEX IF NOT EXISTS ideas_created_at_idx ON ideas (created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS workflow_states (
		state_key    TEXT PRIMARY KEY,
		company_name TEXT NOT NULL,
		idea_title   TEXT NOT NULL,
		current_step TEXT NOT NULL,
		success      BOOLEAN NOT NULL,
		payload      JSONB NOT NULL,
		updated_at   TIMESTAMPTZ NOT NULL
	)`,
}
