package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"ideaforge/internal/workers"
	"ideaforge/pkg/logger"
)

// Checker is any dependency that can report its own reachability
type Checker interface {
	Health(ctx context.Context) error
}

// WorkerReporter exposes the run history of background workers
type WorkerReporter interface {
	Health() map[string]workers.WorkerHealth
}

// Handler provides health check endpoints
type Handler struct {
	log         *logger.Logger
	checkers    map[string]Checker
	workers     WorkerReporter
	startTime   time.Time
	serviceName string
	version     string
}

// New creates a health handler. Nil checkers are skipped so optional
// backends can be passed unconditionally.
func New(log *logger.Logger, serviceName, version string, checkers map[string]Checker) *Handler {
	active := make(map[string]Checker, len(checkers))
	for name, c := range checkers {
		if c != nil {
			active[name] = c
		}
	}
	return &Handler{
		log:         log.With("component", "health"),
		checkers:    active,
		startTime:   time.Now(),
		serviceName: serviceName,
		version:     version,
	}
}

// WithWorkers adds worker run history to the detailed health report
func (h *Handler) WithWorkers(w WorkerReporter) *Handler {
	h.workers = w
	return h
}

// HealthStatus represents the overall health status
type HealthStatus struct {
	Status      string                          `json:"status"` // "healthy", "degraded", "unhealthy"
	Service     string                          `json:"service"`
	Version     string                          `json:"version"`
	Uptime      string                          `json:"uptime"`
	Timestamp   string                          `json:"timestamp"`
	Checks      map[string]ComponentHealth      `json:"checks"`
	Workers     map[string]workers.WorkerHealth `json:"workers,omitempty"`
	ErrorDetail string                          `json:"error_detail,omitempty"`
}

// ComponentHealth represents health of a single component
type ComponentHealth struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time,omitempty"`
	Error        string `json:"error,omitempty"`
}

// HandleLiveness returns 200 OK if service is running
func (h *Handler) HandleLiveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// HandleReadiness fails when any dependency is unreachable
func (h *Handler) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks, healthy := h.runChecks(ctx)
	status := h.status(checks)

	code := http.StatusOK
	if healthy < len(checks) {
		status.Status = "unhealthy"
		code = http.StatusServiceUnavailable
		h.log.Warnw("Readiness check failed", "checks", checks)
	}
	writeJSON(w, code, status)
}

// HandleHealth returns detailed health status. Partial failure is degraded
// and still answers 200.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	checks, healthy := h.runChecks(ctx)
	status := h.status(checks)
	if h.workers != nil {
		status.Workers = h.workers.Health()
	}

	code := http.StatusOK
	switch {
	case len(checks) > 0 && healthy == 0:
		status.Status = "unhealthy"
		code = http.StatusServiceUnavailable
	case healthy < len(checks):
		status.Status = "degraded"
	}
	writeJSON(w, code, status)
}

func (h *Handler) status(checks map[string]ComponentHealth) HealthStatus {
	return HealthStatus{
		Status:    "healthy",
		Service:   h.serviceName,
		Version:   h.version,
		Uptime:    time.Since(h.startTime).String(),
		Timestamp: time.Now().Format(time.RFC3339),
		Checks:    checks,
	}
}

func (h *Handler) runChecks(ctx context.Context) (map[string]ComponentHealth, int) {
	names := make([]string, 0, len(h.checkers))
	for name := range h.checkers {
		names = append(names, name)
	}
	sort.Strings(names)

	checks := make(map[string]ComponentHealth, len(names))
	healthy := 0
	for _, name := range names {
		c := h.check(ctx, name, h.checkers[name])
		if c.Status == "healthy" {
			healthy++
		}
		checks[name] = c
	}
	return checks, healthy
}

func (h *Handler) check(ctx context.Context, name string, c Checker) ComponentHealth {
	start := time.Now()
	err := c.Health(ctx)
	elapsed := time.Since(start)

	if err != nil {
		h.log.Errorw("Health check failed", "check", name, "error", err, "elapsed", elapsed)
		return ComponentHealth{
			Status:       "unhealthy",
			ResponseTime: elapsed.String(),
			Error:        err.Error(),
		}
	}
	return ComponentHealth{Status: "healthy", ResponseTime: elapsed.String()}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
