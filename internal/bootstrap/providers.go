package bootstrap

import (
	"context"
	"time"

	"ideaforge/internal/adapters/ai"
	chclient "ideaforge/internal/adapters/clickhouse"
	"ideaforge/internal/adapters/config"
	errnoop "ideaforge/internal/adapters/errors/noop"
	"ideaforge/internal/adapters/errors/sentry"
	"ideaforge/internal/adapters/kafka"
	pgclient "ideaforge/internal/adapters/postgres"
	redisclient "ideaforge/internal/adapters/redis"
	"ideaforge/internal/adapters/search"
	"ideaforge/internal/agents/company"
	"ideaforge/internal/agents/ideaanalysis"
	"ideaforge/internal/agents/questions"
	agentresearch "ideaforge/internal/agents/research"
	"ideaforge/internal/agents/resource"
	"ideaforge/internal/agents/scoring"
	wfagent "ideaforge/internal/agents/workflow"
	"ideaforge/internal/api"
	"ideaforge/internal/api/health"
	"ideaforge/internal/domain/idea"
	"ideaforge/internal/domain/research"
	"ideaforge/internal/domain/usage"
	"ideaforge/internal/events"
	"ideaforge/internal/metrics"
	chrepo "ideaforge/internal/repository/clickhouse"
	pgrepo "ideaforge/internal/repository/postgres"
	redisrepo "ideaforge/internal/repository/redis"
	"ideaforge/internal/services/portfolio"
	"ideaforge/internal/services/submission"
	"ideaforge/pkg/errors"
	"ideaforge/pkg/logger"
)

// ========================================
// Phase 1: Configuration & Logging
// ========================================

// MustInitConfig loads configuration and initializes logger
func (c *Container) MustInitConfig() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}
	c.Config = cfg

	if err := logger.Init(cfg.App.LogLevel, cfg.App.Env); err != nil {
		panic("failed to init logger: " + err.Error())
	}

	c.Log = logger.Get()
	c.Log.Infof("Starting %s %s in %s mode", cfg.App.Name, cfg.App.Version, cfg.App.Env)

	c.ErrorTracker = provideErrorTracker(cfg, c.Log)
	logger.SetErrorTracker(c.ErrorTracker)

	metrics.Init()
}

// ========================================
// Phase 2: Infrastructure Layer
// ========================================

// MustInitInfrastructure connects the data stores. Postgres is required;
// Redis and ClickHouse are optional.
func (c *Container) MustInitInfrastructure() {
	var err error
	ctx, cancel := context.WithTimeout(c.Context, 30*time.Second)
	defer cancel()

	c.Log.Info("Connecting to PostgreSQL...")
	c.PG, err = pgclient.NewClient(c.Config.Postgres)
	if err != nil {
		c.Log.Fatalf("failed to connect postgres: %v", err)
	}
	if err := c.PG.EnsureSchema(ctx); err != nil {
		c.Log.Fatalf("failed to apply postgres schema: %v", err)
	}
	metrics.RegisterStoreCollector(metrics.NewStoreCollector(c.PG.DB()))
	c.Log.Info("PostgreSQL connected")

	if c.Config.Redis.Enabled {
		c.Log.Info("Connecting to Redis...")
		c.Redis, err = redisclient.NewClient(c.Config.Redis)
		if err != nil {
			c.Log.Fatalf("failed to connect redis: %v", err)
		}
		c.Log.Info("Redis connected")
	} else {
		c.Log.Info("Redis disabled, research cache off")
	}

	if c.Config.ClickHouse.Enabled {
		c.Log.Info("Connecting to ClickHouse...")
		c.CH, err = chclient.NewClient(c.Config.ClickHouse)
		if err != nil {
			c.Log.Fatalf("failed to connect clickhouse: %v", err)
		}
		if err := c.CH.EnsureSchema(ctx); err != nil {
			c.Log.Fatalf("failed to apply clickhouse schema: %v", err)
		}
		c.Log.Info("ClickHouse connected")
	}
}

// ========================================
// Phase 3: Repositories
// ========================================

func (c *Container) MustInitRepositories() {
	c.Repos.Ideas = pgrepo.NewIdeaRepository(c.PG.DB())

	states := pgrepo.NewWorkflowStateRepository(c.PG.DB())
	c.Repos.WorkflowStates = states
	if c.Redis != nil {
		c.Repos.ResearchCache = redisrepo.NewResearchCache(c.Redis, c.Config.Cache)
		c.Repos.WorkflowStates = redisrepo.NewWorkflowStateCache(c.Redis, states, c.Config.Cache.WorkflowStateTTL)
	}

	if c.CH != nil {
		c.Repos.Usage = chrepo.NewUsageRepository(c.CH.Conn())
		c.Repos.Usage.Start(c.Context)
	}

	c.Log.Info("Repositories initialized")
}

// ========================================
// Phase 4: External Adapters
// ========================================

func (c *Container) MustInitAdapters() {
	if c.Config.Kafka.Enabled {
		c.Adapters.KafkaProducer = kafka.NewProducer(kafka.ProducerConfig{
			Brokers:      c.Config.Kafka.Brokers,
			WriteTimeout: 10 * time.Second,
		})
		c.Adapters.Events = events.NewPublisher(c.Adapters.KafkaProducer, c.Config.Workflow.EventsTopic)
		c.Log.Infow("Kafka producer initialized", "brokers", c.Config.Kafka.Brokers)
	}

	c.Adapters.Completer = ai.NewFromConfig(c.Config.AI, c.usageRepository())
	c.Adapters.Search = search.NewTavilyClient(c.Config.Search)
}

// usageRepository avoids handing a typed nil to the completer
func (c *Container) usageRepository() usage.Repository {
	if c.Repos.Usage == nil {
		return nil
	}
	return c.Repos.Usage
}

// ========================================
// Phase 5: Business Logic
// ========================================

func (c *Container) MustInitBusiness() {
	llm := c.Adapters.Completer
	cache := c.researchCache()

	c.Business.Market = agentresearch.NewMarketResearcher(c.Adapters.Search, llm, agentresearch.Config{
		Workers:      c.Config.Workflow.ClassifyWorkers,
		TaskTimeout:  c.Config.Workflow.ClassifyTaskTimeout,
		BatchTimeout: c.Config.Workflow.ClassifyBatchTimeout,
		MaxResults:   c.Config.Search.MaxResults,
		Depth:        c.Config.Search.Depth,
	})
	c.Business.Scorer = scoring.NewScorer(llm)

	deps := wfagent.Deps{
		Company:   company.NewAgent(c.Business.Market, llm, cache),
		Idea:      ideaanalysis.NewAgent(c.Business.Market, llm, cache),
		Resources: resource.NewAgent(llm),
		Questions: questions.NewGenerator(llm, cache),
		Store:     c.Repos.WorkflowStates,
	}
	if c.Adapters.Events != nil {
		deps.Events = c.Adapters.Events
	}
	c.Business.Orchestrator = wfagent.NewOrchestrator(deps, wfagent.Config{
		CompanyTimeout: c.Config.Workflow.CompanyResearchTimeout,
	})

	c.Log.Infow("Agents initialized",
		"completion", llm.Name(),
		"completion_ready", llm.Ready(),
		"search_ready", c.Adapters.Search.Ready(),
	)
}

func (c *Container) researchCache() research.Cache {
	if c.Repos.ResearchCache == nil {
		return nil
	}
	return c.Repos.ResearchCache
}

// ========================================
// Phase 6: Services
// ========================================

func (c *Container) MustInitServices() {
	tables, err := portfolio.LoadTables(c.Config.Portfolio.TablesFile)
	if err != nil {
		c.Log.Fatalf("failed to load portfolio tables: %v", err)
	}

	c.Services.Ideas = idea.NewService(c.Repos.Ideas)
	c.Services.Portfolio = portfolio.NewService(c.Services.Ideas, portfolio.NewEngine(tables), c.Config.Portfolio.IdeaLimit)
	c.Services.Submission = submission.NewService(c.Business.Orchestrator, c.Business.Scorer, c.Services.Ideas)

	c.Log.Info("Services initialized")
}

// ========================================
// Phase 7: Application
// ========================================

func (c *Container) MustInitApplication() {
	checkers := map[string]health.Checker{"postgres": c.PG}
	if c.Redis != nil {
		checkers["redis"] = c.Redis
	}
	if c.CH != nil {
		checkers["clickhouse"] = c.CH
	}
	c.Application.HealthHandler = health.New(c.Log, c.Config.App.Name, c.Config.App.Version, checkers)

	handlers := api.NewHandlers(
		c.Services.Submission,
		c.Business.Orchestrator,
		c.Services.Portfolio,
		c.Services.Ideas,
	)
	c.Application.HTTPServer = api.NewServer(api.ServerConfig{
		Port:         c.Config.HTTP.Port,
		ServiceName:  c.Config.App.Name,
		Version:      c.Config.App.Version,
		WriteTimeout: c.Config.HTTP.WriteTimeout,
	}, handlers, c.Application.HealthHandler, c.Log)
}

// provideErrorTracker returns Sentry when configured, otherwise a no-op tracker
func provideErrorTracker(cfg *config.Config, log *logger.Logger) errors.Tracker {
	if !cfg.ErrorTracking.Enabled || cfg.ErrorTracking.SentryDSN == "" {
		log.Info("Error tracking disabled")
		return errnoop.New()
	}

	tracker, err := sentry.New(cfg.ErrorTracking.SentryDSN, cfg.ErrorTracking.Environment, cfg.App.Version)
	if err != nil {
		log.Warnf("Failed to initialize Sentry: %v", err)
		return errnoop.New()
	}

	log.Info("Error tracking initialized (Sentry)")
	return tracker
}
