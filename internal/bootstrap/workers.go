package bootstrap

import (
	"ideaforge/internal/workers"
	"ideaforge/internal/workers/snapshot"
)

// MustInitBackground registers the scheduled workers. They only run after Start.
func (c *Container) MustInitBackground() {
	c.Background.WorkerScheduler = workers.NewScheduler()

	c.Background.PortfolioSnapshot = snapshot.NewPortfolioWorker(
		c.Services.Portfolio,
		c.Config.Workers.PortfolioSnapshotInterval,
		c.Config.Workers.PortfolioSnapshotEnabled,
	)
	c.Background.WorkerScheduler.RegisterWorker(c.Background.PortfolioSnapshot)

	c.Application.HealthHandler.WithWorkers(c.Background.WorkerScheduler)

	c.Log.Infow("Workers initialized", "count", len(c.Background.WorkerScheduler.GetWorkers()))
}
