package bootstrap

import (
	"context"
	"sync"

	"ideaforge/internal/adapters/ai"
	chclient "ideaforge/internal/adapters/clickhouse"
	"ideaforge/internal/adapters/config"
	"ideaforge/internal/adapters/kafka"
	pgclient "ideaforge/internal/adapters/postgres"
	redisclient "ideaforge/internal/adapters/redis"
	"ideaforge/internal/adapters/search"
	agentresearch "ideaforge/internal/agents/research"
	"ideaforge/internal/agents/scoring"
	wfagent "ideaforge/internal/agents/workflow"
	"ideaforge/internal/api"
	"ideaforge/internal/api/health"
	"ideaforge/internal/domain/idea"
	"ideaforge/internal/domain/workflow"
	"ideaforge/internal/events"
	chrepo "ideaforge/internal/repository/clickhouse"
	pgrepo "ideaforge/internal/repository/postgres"
	redisrepo "ideaforge/internal/repository/redis"
	"ideaforge/internal/services/portfolio"
	"ideaforge/internal/services/submission"
	"ideaforge/internal/workers"
	"ideaforge/internal/workers/snapshot"
	"ideaforge/pkg/errors"
	"ideaforge/pkg/logger"
)

// Container holds all application dependencies and their lifecycle.
// Components are organized in initialization order.
type Container struct {
	// Core configuration & logging
	Config       *config.Config
	Log          *logger.Logger
	ErrorTracker errors.Tracker

	// Infrastructure Layer (Data stores). CH and Redis are nil when disabled.
	PG    *pgclient.Client
	CH    *chclient.Client
	Redis *redisclient.Client

	Repos       *Repositories
	Adapters    *Adapters
	Business    *Business
	Services    *Services
	Application *Application
	Background  *Background

	// Lifecycle management
	Lifecycle *Lifecycle
	WG        *sync.WaitGroup
	Context   context.Context
	Cancel    context.CancelFunc
}

// Repositories groups the stores
type Repositories struct {
	Ideas          *pgrepo.IdeaRepository
	WorkflowStates workflow.StateStore      // postgres, fronted by redis when enabled
	ResearchCache  *redisrepo.ResearchCache // nil without redis
	Usage          *chrepo.UsageRepository  // nil without clickhouse
}

// Adapters groups external clients
type Adapters struct {
	KafkaProducer *kafka.Producer   // nil when kafka is disabled
	Events        *events.Publisher // nil when kafka is disabled
	Completer     ai.Completer
	Search        search.Searcher
}

// Business groups the agents and the orchestrator
type Business struct {
	Market       *agentresearch.MarketResearcher
	Scorer       *scoring.Scorer
	Orchestrator *wfagent.Orchestrator
}

// Services groups application services
type Services struct {
	Ideas      *idea.Service
	Portfolio  *portfolio.Service
	Submission *submission.Service
}

// Application groups the HTTP layer
type Application struct {
	HTTPServer    *api.Server
	HealthHandler *health.Handler
}

// Background groups scheduled work
type Background struct {
	WorkerScheduler   *workers.Scheduler
	PortfolioSnapshot *snapshot.PortfolioWorker
}

// NewContainer creates a new dependency container
func NewContainer() *Container {
	ctx, cancel := context.WithCancel(context.Background())

	return &Container{
		Repos:       &Repositories{},
		Adapters:    &Adapters{},
		Business:    &Business{},
		Services:    &Services{},
		Application: &Application{},
		Background:  &Background{},
		Lifecycle:   NewLifecycle(),
		WG:          &sync.WaitGroup{},
		Context:     ctx,
		Cancel:      cancel,
	}
}

// MustInit initializes all components in the correct order.
// Panics on any initialization error (fail-fast at startup).
func (c *Container) MustInit() {
	c.MustInitConfig()
	c.MustInitInfrastructure()
	c.MustInitRepositories()
	c.MustInitAdapters()
	c.MustInitBusiness()
	c.MustInitServices()
	c.MustInitApplication()
	c.MustInitBackground()
}

// Start launches the HTTP server and the worker scheduler
func (c *Container) Start() error {
	c.Log.Info("Starting all systems...")

	if err := c.Background.WorkerScheduler.Start(c.Context); err != nil {
		return errors.Wrap(err, "failed to start workers")
	}

	c.WG.Add(1)
	go func() {
		defer c.WG.Done()
		if err := c.Application.HTTPServer.Start(); err != nil {
			c.Log.Errorf("HTTP server failed: %v", err)
			c.Cancel() // Trigger shutdown on fatal HTTP error
		}
	}()

	c.Log.Info("All systems operational")
	return nil
}

// Shutdown performs graceful shutdown in the correct order
func (c *Container) Shutdown() {
	c.Log.Info("Initiating graceful shutdown...")
	c.Cancel()

	c.Lifecycle.Shutdown(Components{
		WG:           c.WG,
		HTTPServer:   c.Application.HTTPServer,
		Scheduler:    c.Background.WorkerScheduler,
		Usage:        c.Repos.Usage,
		Producer:     c.Adapters.KafkaProducer,
		Postgres:     c.PG,
		ClickHouse:   c.CH,
		Redis:        c.Redis,
		ErrorTracker: c.ErrorTracker,
	}, c.Log)
}
