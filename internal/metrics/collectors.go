package metrics

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"

	"ideaforge/pkg/logger"
)

// StoreCollector reads persisted workflow state counts at scrape time
type StoreCollector struct {
	log      *logger.Logger
	postgres *sqlx.DB

	workflowStates *prometheus.Desc
	ideasTotal     *prometheus.Desc
}

func NewStoreCollector(postgres *sqlx.DB) *StoreCollector {
	return &StoreCollector{
		log:      logger.Get().With("component", "store_collector"),
		postgres: postgres,
		workflowStates: prometheus.NewDesc(
			"ideaforge_workflow_states",
			"Persisted workflow results by step and success",
			[]string{"step", "success"}, nil,
		),
		ideasTotal: prometheus.NewDesc(
			"ideaforge_ideas_total",
			"Ideas in the catalog",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector
func (c *StoreCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.workflowStates
	ch <- c.ideasTotal
}

// Collect implements prometheus.Collector
func (c *StoreCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c.collectWorkflowStates(ctx, ch)
	c.collectIdeaCount(ctx, ch)
}

func (c *StoreCollector) collectWorkflowStates(ctx context.Context, ch chan<- prometheus.Metric) {
	var rows []struct {
		Step    string `db:"current_step"`
		Success bool   `db:"success"`
		Count   int    `db:"count"`
	}
	err := c.postgres.SelectContext(ctx, &rows, `
		SELECT current_step, success, COUNT(*) AS count
		FROM workflow_states
		GROUP BY current_step, success
	`)
	if err != nil {
		c.log.Warnw("Failed to collect workflow state counts", "error", err)
		return
	}

	for _, r := range rows {
		success := "false"
		if r.Success {
			success = "true"
		}
		ch <- prometheus.MustNewConstMetric(c.workflowStates, prometheus.GaugeValue, float64(r.Count), r.Step, success)
	}
}

func (c *StoreCollector) collectIdeaCount(ctx context.Context, ch chan<- prometheus.Metric) {
	var count int
	if err := c.postgres.GetContext(ctx, &count, "SELECT COUNT(*) FROM ideas"); err != nil {
		c.log.Warnw("Failed to collect idea count", "error", err)
		return
	}
	ch <- prometheus.MustNewConstMetric(c.ideasTotal, prometheus.GaugeValue, float64(count))
}

// RegisterStoreCollector registers the collector with the default registry
func RegisterStoreCollector(collector *StoreCollector) {
	prometheus.MustRegister(collector)
}
