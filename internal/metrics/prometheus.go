package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Worker metrics
	WorkerExecutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ideaforge_worker_executions_total",
			Help: "Total number of worker executions",
		},
		[]string{"worker", "status"}, // status: success|error
	)

	WorkerDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ideaforge_worker_duration_seconds",
			Help:    "Worker execution duration in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"worker"},
	)

	WorkerLastRun = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ideaforge_worker_last_run_timestamp",
			Help: "Unix timestamp of last worker execution",
		},
		[]string{"worker"},
	)

	// Text-completion metrics
	CompletionCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ideaforge_completion_calls_total",
			Help: "Total number of text-completion calls",
		},
		[]string{"operation", "model", "status"}, // status: success|error|rate_limited
	)

	CompletionLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ideaforge_completion_latency_seconds",
			Help:    "Text-completion latency in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 90},
		},
		[]string{"operation", "model"},
	)

	CompletionTokens = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ideaforge_completion_tokens_total",
			Help: "Total tokens consumed by completions",
		},
		[]string{"model", "type"}, // type: prompt|completion
	)

	// Web-search metrics
	SearchCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ideaforge_search_calls_total",
			Help: "Total number of web-search calls",
		},
		[]string{"status"},
	)

	SearchLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ideaforge_search_latency_seconds",
			Help:    "Web-search latency in seconds including retries",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30},
		},
	)

	// Workflow metrics
	WorkflowRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ideaforge_workflow_runs_total",
			Help: "Total workflow runs by outcome and the step they ended on",
		},
		[]string{"outcome", "step"}, // outcome: completed|failed
	)

	StageDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ideaforge_workflow_stage_duration_seconds",
			Help:    "Workflow stage duration in seconds",
			Buckets: []float64{1, 5, 10, 20, 30, 60, 90, 120, 180, 300},
		},
		[]string{"stage", "status"},
	)

	ClassificationDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ideaforge_classification_dropped_total",
			Help: "Search results dropped from categorization after a classification error or timeout",
		},
	)

	CacheRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ideaforge_research_cache_requests_total",
			Help: "Research cache lookups",
		},
		[]string{"kind", "result"}, // result: hit|miss|write|error
	)

	// Portfolio gauges, refreshed by the snapshot worker
	PortfolioIdeas = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ideaforge_portfolio_ideas",
			Help: "Saved ideas by status",
		},
		[]string{"status"},
	)

	PortfolioAvgScore = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "ideaforge_portfolio_avg_score",
			Help: "Average AI score across scored ideas",
		},
	)

	PortfolioProjectedValue = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "ideaforge_portfolio_net_value_usd",
			Help: "Sum of projected net value across non-rejected ideas",
		},
	)

	PortfolioRisk = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ideaforge_portfolio_risk_ideas",
			Help: "Ideas by risk tier",
		},
		[]string{"tier"},
	)

	EventsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ideaforge_events_published_total",
			Help: "Domain events published to Kafka",
		},
		[]string{"topic", "status"},
	)
)

var initOnce sync.Once

// Init registers all metrics with the default registry. Safe to call more than once.
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(
			WorkerExecutions, WorkerDuration, WorkerLastRun,
			CompletionCalls, CompletionLatency, CompletionTokens,
			SearchCalls, SearchLatency,
			WorkflowRuns, StageDuration, ClassificationDropped, CacheRequests,
			PortfolioIdeas, PortfolioAvgScore, PortfolioProjectedValue, PortfolioRisk,
			EventsPublished,
		)
	})
}

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func RecordWorkerExecution(worker string, duration time.Duration, err error) {
	WorkerExecutions.WithLabelValues(worker, status(err)).Inc()
	WorkerDuration.WithLabelValues(worker).Observe(duration.Seconds())
	WorkerLastRun.WithLabelValues(worker).SetToCurrentTime()
}

// RecordCompletion records one text-completion call
func RecordCompletion(operation, model string, latency time.Duration, promptTokens, completionTokens int, err error) {
	CompletionCalls.WithLabelValues(operation, model, status(err)).Inc()
	CompletionLatency.WithLabelValues(operation, model).Observe(latency.Seconds())
	if promptTokens > 0 {
		CompletionTokens.WithLabelValues(model, "prompt").Add(float64(promptTokens))
	}
	if completionTokens > 0 {
		CompletionTokens.WithLabelValues(model, "completion").Add(float64(completionTokens))
	}
}

// RecordRateLimited counts a completion that never left the local limiter
func RecordRateLimited(operation, model string) {
	CompletionCalls.WithLabelValues(operation, model, "rate_limited").Inc()
}

func RecordSearch(latency time.Duration, err error) {
	SearchCalls.WithLabelValues(status(err)).Inc()
	SearchLatency.Observe(latency.Seconds())
}

func RecordStage(stage string, duration time.Duration, ok bool) {
	s := "success"
	if !ok {
		s = "failed"
	}
	StageDuration.WithLabelValues(stage, s).Observe(duration.Seconds())
}

// RecordWorkflow records the terminal state of one run
func RecordWorkflow(completed bool, step string) {
	outcome := "completed"
	if !completed {
		outcome = "failed"
	}
	WorkflowRuns.WithLabelValues(outcome, step).Inc()
}

func RecordDroppedClassifications(n int) {
	if n > 0 {
		ClassificationDropped.Add(float64(n))
	}
}

func RecordCache(kind, result string) {
	CacheRequests.WithLabelValues(kind, result).Inc()
}

func RecordEvent(topic string, err error) {
	EventsPublished.WithLabelValues(topic, status(err)).Inc()
}
