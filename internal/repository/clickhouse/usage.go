package clickhouse

import (
	"context"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"ideaforge/internal/domain/usage"
	"ideaforge/pkg/clickhouse"
	"ideaforge/pkg/errors"
)

var _ usage.Repository = (*UsageRepository)(nil)

const insertUsage = `
	INSERT INTO ai_usage (
		id, timestamp, provider, model, operation, workflow_key,
		prompt_tokens, completion_tokens, total_tokens,
		latency_ms, success, error_message
	)`

// UsageRepository buffers completion usage rows and inserts them in batches
type UsageRepository struct {
	conn   driver.Conn
	writer *clickhouse.BatchWriter[*usage.Log]
}

func NewUsageRepository(conn driver.Conn) *UsageRepository {
	r := &UsageRepository{conn: conn}
	r.writer = clickhouse.NewBatchWriter(clickhouse.BatchWriterConfig[*usage.Log]{
		FlushFunc:    r.insert,
		TableName:    "ai_usage",
		MaxBatchSize: 200,
		MaxAge:       5 * time.Second,
	})
	return r
}

func (r *UsageRepository) Start(ctx context.Context) { r.writer.Start(ctx) }

func (r *UsageRepository) Stop(ctx context.Context) error { return r.writer.Stop(ctx) }

// Store buffers the row; it reaches ClickHouse on the next flush
func (r *UsageRepository) Store(ctx context.Context, log *usage.Log) error {
	if log == nil {
		return errors.ErrInvalidInput
	}
	return r.writer.Add(ctx, log)
}

func (r *UsageRepository) insert(ctx context.Context, rows []*usage.Log) error {
	batch, err := r.conn.PrepareBatch(ctx, insertUsage)
	if err != nil {
		return errors.Wrap(err, "prepare ai_usage batch")
	}

	for _, l := range rows {
		if err := batch.Append(
			l.ID,
			l.Timestamp,
			l.Provider,
			l.Model,
			l.Operation,
			l.WorkflowKey,
			l.PromptTokens,
			l.CompletionTokens,
			l.TotalTokens,
			l.LatencyMs,
			l.Success,
			l.ErrorMessage,
		); err != nil {
			return errors.Wrap(err, "append ai_usage row")
		}
	}

	if err := batch.Send(); err != nil {
		return errors.Wrapf(err, "send ai_usage batch of %d", len(rows))
	}
	return nil
}
