// Package snapshot refreshes portfolio gauges on a schedule
package snapshot

import (
	"context"
	"sync"
	"time"

	"ideaforge/internal/metrics"
	"ideaforge/internal/services/portfolio"
	"ideaforge/internal/workers"
)

// Analyzer produces fresh portfolio analytics
type Analyzer interface {
	Analyze(ctx context.Context) (*portfolio.Analytics, error)
}

// PortfolioWorker recomputes the analytics and publishes the headline numbers as gauges
type PortfolioWorker struct {
	*workers.BaseWorker
	analyzer Analyzer

	mu     sync.RWMutex
	latest *portfolio.Analytics
	at     time.Time
}

func NewPortfolioWorker(analyzer Analyzer, interval time.Duration, enabled bool) *PortfolioWorker {
	return &PortfolioWorker{
		BaseWorker: workers.NewBaseWorker("portfolio_snapshot", interval, enabled),
		analyzer:   analyzer,
	}
}

func (w *PortfolioWorker) Run(ctx context.Context) error {
	analytics, err := w.analyzer.Analyze(ctx)
	if err != nil {
		return err
	}

	publish(analytics)

	w.mu.Lock()
	w.latest = analytics
	w.at = time.Now().UTC()
	w.mu.Unlock()

	w.Log().Infow("Portfolio snapshot refreshed",
		"ideas", analytics.Summary.TotalIdeas,
		"avg_score", analytics.Summary.AvgScore,
		"projections", len(analytics.Projections),
	)
	return nil
}

// Latest returns the last snapshot and when it was taken, nil before the first run
func (w *PortfolioWorker) Latest() (*portfolio.Analytics, time.Time) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.latest, w.at
}

func publish(a *portfolio.Analytics) {
	metrics.PortfolioIdeas.Reset()
	for status, n := range a.Summary.IdeasByStatus {
		metrics.PortfolioIdeas.WithLabelValues(status).Set(float64(n))
	}
	metrics.PortfolioAvgScore.Set(a.Summary.AvgScore)

	net := 0.0
	for _, p := range a.Projections {
		net += p.ROI.NetValue
	}
	metrics.PortfolioProjectedValue.Set(net)

	metrics.PortfolioRisk.WithLabelValues("low").Set(float64(a.RiskDistribution.Low))
	metrics.PortfolioRisk.WithLabelValues("medium").Set(float64(a.RiskDistribution.Medium))
	metrics.PortfolioRisk.WithLabelValues("high").Set(float64(a.RiskDistribution.High))
}
