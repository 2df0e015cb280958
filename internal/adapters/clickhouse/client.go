package clickhouse

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"ideaforge/internal/adapters/config"
	"ideaforge/pkg/errors"
)

// Client wraps a ClickHouse connection. Only the AI usage log lives here.
type Client struct {
	conn driver.Conn
}

func NewClient(cfg config.ClickHouseConfig) (*Client, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.User,
			Password: cfg.Password,
		},
		Compression: &clickhouse.Compression{
			Method: clickhouse.CompressionLZ4,
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to clickhouse")
	}

	if err := conn.Ping(context.Background()); err != nil {
		return nil, errors.Wrap(err, "failed to ping clickhouse")
	}

	return &Client{conn: conn}, nil
}

func (c *Client) Conn() driver.Conn {
	return c.conn
}

func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) Health(ctx context.Context) error {
	return c.conn.Ping(ctx)
}

// Exec runs a statement without returning rows
func (c *Client) Exec(ctx context.Context, query string, args ...interface{}) error {
	return c.conn.Exec(ctx, query, args...)
}

// EnsureSchema creates the usage table if needed
func (c *Client) EnsureSchema(ctx context.Context) error {
	return c.conn.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS ai_usage (
			id            UUID,
			timestamp     DateTime64(3),
			provider      LowCardinality(String),
			model         LowCardinality(String),
			operation     LowCardinality(String),
			workflow_key  String,
			prompt_tokens UInt32,
			completion_tokens UInt32,
			total_tokens  UInt32,
			latency_ms    UInt32,
			success       UInt8,
			error_message String
		) ENGINE = MergeTree()
		ORDER BY (timestamp, operation)`)
}
