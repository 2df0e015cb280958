package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"ideaforge/pkg/errors"
)

type Config struct {
	App           AppConfig
	HTTP          HTTPConfig
	Postgres      PostgresConfig
	Redis         RedisConfig
	Kafka         KafkaConfig
	ClickHouse    ClickHouseConfig
	AI            AIConfig
	Search        SearchConfig
	Workflow      WorkflowConfig
	Cache         CacheConfig
	Portfolio     PortfolioConfig
	ErrorTracking ErrorTrackingConfig
	Workers       WorkerConfig
}

type AppConfig struct {
	Name     string `envconfig:"APP_NAME" default:"ideaforge"`
	Env      string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Version  string `envconfig:"APP_VERSION" default:"dev"`
}

type HTTPConfig struct {
	Port int `envconfig:"HTTP_PORT" default:"8080"`

	// WriteTimeout bounds synchronous workflow requests
	WriteTimeout time.Duration `envconfig:"HTTP_WRITE_TIMEOUT" default:"10m"`
}

type PostgresConfig struct {
	Host     string `envconfig:"POSTGRES_HOST" required:"true"`
	Port     int    `envconfig:"POSTGRES_PORT" default:"5432"`
	User     string `envconfig:"POSTGRES_USER" required:"true"`
	Password string `envconfig:"POSTGRES_PASSWORD" required:"true"`
	Database string `envconfig:"POSTGRES_DB" required:"true"`
	SSLMode  string `envconfig:"POSTGRES_SSL_MODE" default:"disable"`
	MaxConns int    `envconfig:"POSTGRES_MAX_CONNS" default:"10"`
}

func (c PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// RedisConfig backs the research cache and the hot copy of workflow state
type RedisConfig struct {
	Enabled  bool   `envconfig:"REDIS_ENABLED" default:"true"`
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     int    `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type KafkaConfig struct {
	Enabled bool     `envconfig:"KAFKA_ENABLED" default:"false"`
	Brokers []string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
}

// ClickHouseConfig is only used for the AI usage log
type ClickHouseConfig struct {
	Enabled  bool   `envconfig:"CLICKHOUSE_ENABLED" default:"false"`
	Host     string `envconfig:"CLICKHOUSE_HOST" default:"localhost"`
	Port     int    `envconfig:"CLICKHOUSE_PORT" default:"9000"`
	User     string `envconfig:"CLICKHOUSE_USER" default:"default"`
	Password string `envconfig:"CLICKHOUSE_PASSWORD"`
	Database string `envconfig:"CLICKHOUSE_DB" default:"ideaforge"`
}

type AIConfig struct {
	// Provider selects the completion backend: "openai" (SDK, any compatible base URL) or "deepseek" (raw HTTP)
	Provider       string        `envconfig:"AI_PROVIDER" default:"deepseek"`
	OpenAIKey      string        `envconfig:"OPENAI_API_KEY"`
	OpenAIBaseURL  string        `envconfig:"OPENAI_BASE_URL"`
	OpenAIModel    string        `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`
	DeepSeekKey    string        `envconfig:"DEEPSEEK_API_KEY"`
	DeepSeekURL    string        `envconfig:"DEEPSEEK_BASE_URL" default:"https://api.deepseek.com/v1"`
	DeepSeekModel  string        `envconfig:"DEEPSEEK_MODEL" default:"deepseek-chat"`
	Temperature    float64       `envconfig:"AI_TEMPERATURE" default:"0.7"`
	RequestsPerMin int           `envconfig:"AI_REQUESTS_PER_MINUTE" default:"60"`
	RequestTimeout time.Duration `envconfig:"AI_REQUEST_TIMEOUT" default:"90s"`
}

type SearchConfig struct {
	TavilyKey      string        `envconfig:"TAVILY_API_KEY"`
	BaseURL        string        `envconfig:"TAVILY_BASE_URL" default:"https://api.tavily.com"`
	MaxResults     int           `envconfig:"SEARCH_MAX_RESULTS" default:"5"`
	Depth          string        `envconfig:"SEARCH_DEPTH" default:"advanced"`
	Attempts       int           `envconfig:"SEARCH_ATTEMPTS" default:"3"`
	RetryDelay     time.Duration `envconfig:"SEARCH_RETRY_DELAY" default:"2s"`
	RequestsPerMin int           `envconfig:"SEARCH_REQUESTS_PER_MINUTE" default:"30"`
}

type WorkflowConfig struct {
	CompanyResearchTimeout time.Duration `envconfig:"WORKFLOW_COMPANY_TIMEOUT" default:"120s"`
	ClassifyWorkers        int           `envconfig:"WORKFLOW_CLASSIFY_WORKERS" default:"3"`
	ClassifyTaskTimeout    time.Duration `envconfig:"WORKFLOW_CLASSIFY_TASK_TIMEOUT" default:"30s"`
	ClassifyBatchTimeout   time.Duration `envconfig:"WORKFLOW_CLASSIFY_BATCH_TIMEOUT" default:"60s"`
	EventsTopic            string        `envconfig:"WORKFLOW_EVENTS_TOPIC" default:"ideaforge.workflow.completed"`
}

// CacheConfig holds research cache lifetimes per kind
type CacheConfig struct {
	CompanyResearchTTL time.Duration `envconfig:"CACHE_COMPANY_RESEARCH_TTL" default:"168h"`
	IdeaResearchTTL    time.Duration `envconfig:"CACHE_IDEA_RESEARCH_TTL" default:"72h"`
	QuestionsTTL       time.Duration `envconfig:"CACHE_QUESTIONS_TTL" default:"24h"`
	WorkflowStateTTL   time.Duration `envconfig:"CACHE_WORKFLOW_STATE_TTL" default:"24h"`
	DefaultTTL         time.Duration `envconfig:"CACHE_DEFAULT_TTL" default:"24h"`
}

type PortfolioConfig struct {
	// TablesFile optionally overrides the built-in rate, cost and industry tables (YAML)
	TablesFile string `envconfig:"PORTFOLIO_TABLES_FILE"`
	IdeaLimit  int    `envconfig:"PORTFOLIO_IDEA_LIMIT" default:"500"`
}

type ErrorTrackingConfig struct {
	Enabled     bool   `envconfig:"ERROR_TRACKING_ENABLED" default:"false"`
	SentryDSN   string `envconfig:"SENTRY_DSN"`
	Environment string `envconfig:"SENTRY_ENVIRONMENT" default:"production"`
}

type WorkerConfig struct {
	PortfolioSnapshotInterval time.Duration `envconfig:"WORKER_PORTFOLIO_SNAPSHOT_INTERVAL" default:"5m"`
	PortfolioSnapshotEnabled  bool          `envconfig:"WORKER_PORTFOLIO_SNAPSHOT_ENABLED" default:"true"`
}

// Load reads configuration from the environment after loading an optional .env file
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to process env config")
	}
	return &cfg, nil
}
