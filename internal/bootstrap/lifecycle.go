package bootstrap

import (
	"context"
	"sync"
	"time"

	chclient "ideaforge/internal/adapters/clickhouse"
	"ideaforge/internal/adapters/kafka"
	pgclient "ideaforge/internal/adapters/postgres"
	redisclient "ideaforge/internal/adapters/redis"
	"ideaforge/internal/api"
	chrepo "ideaforge/internal/repository/clickhouse"
	"ideaforge/internal/workers"
	"ideaforge/pkg/errors"
	"ideaforge/pkg/logger"
)

// Lifecycle manages graceful shutdown of components
type Lifecycle struct {
	shutdownTimeout time.Duration
}

// NewLifecycle creates a new lifecycle manager
func NewLifecycle() *Lifecycle {
	return &Lifecycle{
		shutdownTimeout: 60 * time.Second,
	}
}

// Components are the closable parts of a container. Any of them may be nil.
type Components struct {
	WG           *sync.WaitGroup
	HTTPServer   *api.Server
	Scheduler    *workers.Scheduler
	Usage        *chrepo.UsageRepository
	Producer     *kafka.Producer
	Postgres     *pgclient.Client
	ClickHouse   *chclient.Client
	Redis        *redisclient.Client
	ErrorTracker errors.Tracker
}

// Shutdown performs coordinated cleanup in order:
// 1. No new requests accepted
// 2. Workers finish cleanly
// 3. Buffered usage rows flushed
// 4. Producer closed
// 5. Errors and logs flushed
// 6. Database connections last (other components may need them)
func (l *Lifecycle) Shutdown(c Components, log *logger.Logger) {
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), l.shutdownTimeout)
	defer shutdownCancel()

	log.Info("[1/7] Stopping HTTP server...")
	if c.HTTPServer != nil {
		httpCtx, httpCancel := context.WithTimeout(shutdownCtx, 5*time.Second)
		if err := c.HTTPServer.Shutdown(httpCtx); err != nil {
			log.Errorw("HTTP server shutdown failed", "error", err)
		}
		httpCancel()
	}

	log.Info("[2/7] Stopping background workers...")
	if c.Scheduler != nil && c.Scheduler.IsRunning() {
		if err := c.Scheduler.Stop(); err != nil {
			log.Errorw("Workers shutdown failed", "error", err)
		} else {
			log.Info("Workers stopped")
		}
	}
	if c.WG != nil {
		l.waitForGoroutines(c.WG, 5*time.Second, log)
	}

	log.Info("[3/7] Flushing AI usage log...")
	if c.Usage != nil {
		if err := c.Usage.Stop(shutdownCtx); err != nil {
			log.Errorw("Usage writer stop failed", "error", err)
		}
	}

	log.Info("[4/7] Closing Kafka producer...")
	if c.Producer != nil {
		if err := c.Producer.Close(); err != nil {
			log.Errorw("Kafka producer close failed", "error", err)
		} else {
			log.Info("Kafka producer closed")
		}
	}

	log.Info("[5/7] Flushing error tracker...")
	l.flushErrorTracker(shutdownCtx, c.ErrorTracker, log)

	log.Info("[6/7] Syncing logs...")
	_ = logger.Sync()

	log.Info("[7/7] Closing database connections...")
	l.closeDatabases(c.Postgres, c.ClickHouse, c.Redis, log)

	log.Info("Graceful shutdown complete")
}

// waitForGoroutines waits for all goroutines with a timeout
func (l *Lifecycle) waitForGoroutines(wg *sync.WaitGroup, timeout time.Duration, log *logger.Logger) {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
		log.Warnw("Some goroutines did not finish within timeout", "timeout", timeout)
	}
}

// flushErrorTracker flushes the error tracker (Sentry, etc.)
func (l *Lifecycle) flushErrorTracker(ctx context.Context, tracker errors.Tracker, log *logger.Logger) {
	if tracker == nil {
		return
	}

	flushCtx, flushCancel := context.WithTimeout(ctx, 3*time.Second)
	defer flushCancel()

	if err := tracker.Flush(flushCtx); err != nil {
		log.Errorw("Error tracker flush failed", "error", err)
	}
}

// closeDatabases closes all database connections
func (l *Lifecycle) closeDatabases(
	pgClient *pgclient.Client,
	chClient *chclient.Client,
	redisClient *redisclient.Client,
	log *logger.Logger,
) {
	var dbErrors errors.MultiError

	if pgClient != nil {
		dbErrors.Add(errors.Wrap(pgClient.Close(), "postgres"))
	}
	if chClient != nil {
		dbErrors.Add(errors.Wrap(chClient.Close(), "clickhouse"))
	}
	if redisClient != nil {
		dbErrors.Add(errors.Wrap(redisClient.Close(), "redis"))
	}

	if dbErrors.HasErrors() {
		log.Errorw("Database close errors", "errors", dbErrors.Errors)
	} else {
		log.Info("Database connections closed")
	}
}
