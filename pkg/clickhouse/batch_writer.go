package clickhouse

import (
	"context"
	"sync"
	"time"

	"ideaforge/pkg/logger"
)

// FlushFunc inserts one batch of rows
type FlushFunc[T any] func(ctx context.Context, batch []T) error

// BatchWriter buffers rows in memory and hands them to FlushFunc in batches,
// either when the buffer fills or when the ticker fires.
type BatchWriter[T any] struct {
	flushFunc FlushFunc[T]
	table     string
	maxSize   int
	maxAge    time.Duration
	log       *logger.Logger

	mu        sync.Mutex
	buffer    []T
	lastFlush time.Time
	running   bool
	stopCh    chan struct{}
	wg        sync.WaitGroup
}

// BatchWriterConfig configures a BatchWriter
type BatchWriterConfig[T any] struct {
	FlushFunc    FlushFunc[T]
	TableName    string
	MaxBatchSize int           // default 200
	MaxAge       time.Duration // default 5s
}

// Stats is a point-in-time view of the writer
type Stats struct {
	Buffered     int
	LastFlushAge time.Duration
	Running      bool
}

// NewBatchWriter creates a writer; call Start to enable the periodic flush
func NewBatchWriter[T any](cfg BatchWriterConfig[T]) *BatchWriter[T] {
	if cfg.MaxBatchSize <= 0 {
		cfg.MaxBatchSize = 200
	}
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = 5 * time.Second
	}

	return &BatchWriter[T]{
		flushFunc: cfg.FlushFunc,
		table:     cfg.TableName,
		maxSize:   cfg.MaxBatchSize,
		maxAge:    cfg.MaxAge,
		buffer:    make([]T, 0, cfg.MaxBatchSize),
		lastFlush: time.Now(),
		stopCh:    make(chan struct{}),
		log:       logger.Get().With("component", "batch_writer", "table", cfg.TableName),
	}
}

// Start launches the background flush loop. Calling it twice is a no-op.
func (w *BatchWriter[T]) Start(ctx context.Context) {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.mu.Unlock()

	w.wg.Add(1)
	go w.loop(ctx)

	w.log.Infof("batch writer started (max_size=%d, max_age=%v)", w.maxSize, w.maxAge)
}

// Add buffers one row and flushes synchronously once the buffer is full
func (w *BatchWriter[T]) Add(ctx context.Context, row T) error {
	w.mu.Lock()
	w.buffer = append(w.buffer, row)
	full := len(w.buffer) >= w.maxSize
	w.mu.Unlock()

	if full {
		return w.Flush(ctx)
	}
	return nil
}

// Flush writes everything currently buffered
func (w *BatchWriter[T]) Flush(ctx context.Context) error {
	w.mu.Lock()
	if len(w.buffer) == 0 {
		w.mu.Unlock()
		return nil
	}
	batch := w.buffer
	w.buffer = make([]T, 0, w.maxSize)
	w.lastFlush = time.Now()
	w.mu.Unlock()

	start := time.Now()
	if err := w.flushFunc(ctx, batch); err != nil {
		w.log.Errorf("flush of %d rows to %s failed after %v: %v", len(batch), w.table, time.Since(start), err)
		return err
	}

	w.log.Debugf("flushed %d rows to %s in %v", len(batch), w.table, time.Since(start))
	return nil
}

func (w *BatchWriter[T]) loop(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.maxAge)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.finalFlush()
			return
		case <-w.stopCh:
			w.finalFlush()
			return
		case <-ticker.C:
			if err := w.Flush(ctx); err != nil {
				w.log.Warnf("periodic flush: %v", err)
			}
		}
	}
}

func (w *BatchWriter[T]) finalFlush() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := w.Flush(ctx); err != nil {
		w.log.Errorf("final flush: %v", err)
	}
}

// Stop flushes the remaining rows and waits for the loop to exit
func (w *BatchWriter[T]) Stop(ctx context.Context) error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return w.Flush(ctx)
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		w.log.Info("batch writer stopped")
		return nil
	case <-ctx.Done():
		w.log.Warn("batch writer stop timed out")
		return ctx.Err()
	}
}

// Stats reports the buffer state
func (w *BatchWriter[T]) Stats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return Stats{
		Buffered:     len(w.buffer),
		LastFlushAge: time.Since(w.lastFlush),
		Running:      w.running,
	}
}
