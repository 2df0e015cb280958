package workers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"ideaforge/pkg/errors"
	"ideaforge/pkg/logger"
)

// DefaultShutdownTimeout bounds how long Stop waits for running iterations
const DefaultShutdownTimeout = 30 * time.Second

// Scheduler runs each enabled worker in its own goroutine on its interval
type Scheduler struct {
	workers         []Worker
	shutdownTimeout time.Duration
	ctx             context.Context
	cancel          context.CancelFunc
	wg              sync.WaitGroup
	mu              sync.RWMutex
	log             *logger.Logger
	started         bool
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		workers:         make([]Worker, 0),
		shutdownTimeout: DefaultShutdownTimeout,
		log:             logger.Get().With("component", "scheduler"),
	}
}

// WithShutdownTimeout overrides DefaultShutdownTimeout
func (s *Scheduler) WithShutdownTimeout(d time.Duration) *Scheduler {
	if d > 0 {
		s.shutdownTimeout = d
	}
	return s
}

// RegisterWorker adds a worker. Registration after Start is ignored.
func (s *Scheduler) RegisterWorker(w Worker) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		s.log.Warnw("Cannot register worker after scheduler has started", "worker", w.Name())
		return
	}

	s.workers = append(s.workers, w)
	s.log.Infow("Worker registered", "worker", w.Name(), "interval", w.Interval())
}

// Start launches every enabled worker. Each runs once immediately.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return errors.Wrapf(errors.ErrInternal, "scheduler already started")
	}
	s.started = true
	s.ctx, s.cancel = context.WithCancel(ctx)
	workers := append([]Worker(nil), s.workers...)
	s.mu.Unlock()

	s.log.Infow("Starting worker scheduler", "workers", len(workers))

	for _, worker := range workers {
		if !worker.Enabled() {
			s.log.Infow("Skipping disabled worker", "worker", worker.Name())
			continue
		}

		s.wg.Add(1)
		go s.runWorker(worker)
	}
	return nil
}

// Stop cancels the workers and waits for in-flight iterations
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return errors.Wrapf(errors.ErrInternal, "scheduler not started")
	}
	s.cancel()
	s.mu.Unlock()

	s.log.Info("Stopping worker scheduler...")

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	var shutdownErr error
	select {
	case <-done:
		s.log.Info("All workers stopped gracefully")
	case <-time.After(s.shutdownTimeout):
		s.log.Warnw("Worker shutdown timed out", "timeout", s.shutdownTimeout)
		shutdownErr = errors.Wrapf(errors.ErrTimeout, "shutdown timeout after %s", s.shutdownTimeout)
	}

	s.mu.Lock()
	s.started = false
	s.mu.Unlock()

	return shutdownErr
}

func (s *Scheduler) runWorker(worker Worker) {
	defer s.wg.Done()

	ticker := time.NewTicker(worker.Interval())
	defer ticker.Stop()

	s.executeWorker(worker)

	for {
		select {
		case <-s.ctx.Done():
			s.log.Debugw("Worker stopping", "worker", worker.Name())
			return
		case <-ticker.C:
			s.executeWorker(worker)
		}
	}
}

// executeWorker runs one iteration. A panic is recorded as a failed run.
func (s *Scheduler) executeWorker(worker Worker) {
	start := time.Now()
	tracked, _ := worker.(WorkerWithHealth)

	defer func() {
		if r := recover(); r != nil {
			s.log.Errorw("Worker panicked", "worker", worker.Name(), "panic", r)
			if tracked != nil {
				tracked.RecordError(fmt.Errorf("panic: %v", r), time.Since(start))
			}
		}
	}()

	err := worker.Run(s.ctx)
	duration := time.Since(start)
	if err != nil {
		s.log.Errorw("Worker execution failed", "worker", worker.Name(), "error", err, "duration", duration)
		if tracked != nil {
			tracked.RecordError(err, duration)
		}
		return
	}

	s.log.Debugw("Worker execution completed", "worker", worker.Name(), "duration", duration)
	if tracked != nil {
		tracked.RecordRun(duration)
	}
}

// GetWorkers returns the registered workers in registration order
func (s *Scheduler) GetWorkers() []Worker {
	s.mu.RLock()
	defer s.mu.RUnlock()

	workers := make([]Worker, len(s.workers))
	copy(workers, s.workers)
	return workers
}

// Health reports the run history of every worker that tracks one
func (s *Scheduler) Health() map[string]WorkerHealth {
	out := map[string]WorkerHealth{}
	for _, w := range s.GetWorkers() {
		if tracked, ok := w.(WorkerWithHealth); ok {
			out[w.Name()] = tracked.Health()
		}
	}
	return out
}

func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}
