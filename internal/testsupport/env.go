package testsupport

import (
	"os"
	"strconv"
	"testing"

	"ideaforge/internal/adapters/config"
)

// DatabaseConfigs bundles config sections required for integration tests.
type DatabaseConfigs struct {
	Postgres   config.PostgresConfig
	ClickHouse config.ClickHouseConfig
	Redis      config.RedisConfig
}

// LoadDatabaseConfigsFromEnv reads every store section. Tests are skipped when
// any required TEST_* variable is missing so they never touch a dev database.
func LoadDatabaseConfigsFromEnv(t *testing.T) DatabaseConfigs {
	t.Helper()

	return DatabaseConfigs{
		Postgres:   LoadPostgresConfig(t),
		ClickHouse: LoadClickHouseConfig(t),
		Redis:      LoadRedisConfig(t),
	}
}

// LoadPostgresConfig reads TEST_POSTGRES_* or skips the test
func LoadPostgresConfig(t *testing.T) config.PostgresConfig {
	t.Helper()
	requireEnv(t, "TEST_POSTGRES_HOST", "TEST_POSTGRES_USER", "TEST_POSTGRES_PASSWORD", "TEST_POSTGRES_DB")

	return config.PostgresConfig{
		Host:     os.Getenv("TEST_POSTGRES_HOST"),
		Port:     intValue("TEST_POSTGRES_PORT", 5432),
		User:     os.Getenv("TEST_POSTGRES_USER"),
		Password: os.Getenv("TEST_POSTGRES_PASSWORD"),
		Database: os.Getenv("TEST_POSTGRES_DB"),
		SSLMode:  valueWithDefault("TEST_POSTGRES_SSL_MODE", "disable"),
		MaxConns: 5,
	}
}

// LoadRedisConfig reads TEST_REDIS_* or skips the test
func LoadRedisConfig(t *testing.T) config.RedisConfig {
	t.Helper()
	requireEnv(t, "TEST_REDIS_HOST")

	return config.RedisConfig{
		Enabled:  true,
		Host:     os.Getenv("TEST_REDIS_HOST"),
		Port:     intValue("TEST_REDIS_PORT", 6379),
		Password: os.Getenv("TEST_REDIS_PASSWORD"),
		DB:       intValue("TEST_REDIS_DB", 15),
	}
}

// LoadClickHouseConfig reads TEST_CLICKHOUSE_* or skips the test
func LoadClickHouseConfig(t *testing.T) config.ClickHouseConfig {
	t.Helper()
	requireEnv(t, "TEST_CLICKHOUSE_HOST", "TEST_CLICKHOUSE_DB")

	return config.ClickHouseConfig{
		Enabled:  true,
		Host:     os.Getenv("TEST_CLICKHOUSE_HOST"),
		Port:     intValue("TEST_CLICKHOUSE_PORT", 9000),
		User:     valueWithDefault("TEST_CLICKHOUSE_USER", "default"),
		Password: os.Getenv("TEST_CLICKHOUSE_PASSWORD"),
		Database: os.Getenv("TEST_CLICKHOUSE_DB"),
	}
}

func requireEnv(t *testing.T, keys ...string) {
	t.Helper()

	missing := make([]string, 0)
	for _, key := range keys {
		if os.Getenv(key) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		t.Skipf("integration environment missing, set %v to run", missing)
	}
}

func valueWithDefault(key string, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return fallback
}

func intValue(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}

	return fallback
}
