package testsupport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDatabaseConfigsFromEnv(t *testing.T) {
	t.Setenv("TEST_POSTGRES_HOST", "localhost")
	t.Setenv("TEST_POSTGRES_USER", "user")
	t.Setenv("TEST_POSTGRES_PASSWORD", "pass")
	t.Setenv("TEST_POSTGRES_DB", "db")
	t.Setenv("TEST_POSTGRES_PORT", "5543")

	t.Setenv("TEST_CLICKHOUSE_HOST", "click")
	t.Setenv("TEST_CLICKHOUSE_DB", "analytics")
	t.Setenv("TEST_CLICKHOUSE_PORT", "8123")

	t.Setenv("TEST_REDIS_HOST", "redis")
	t.Setenv("TEST_REDIS_PORT", "6380")
	t.Setenv("TEST_REDIS_DB", "2")

	cfg := LoadDatabaseConfigsFromEnv(t)

	assert.Equal(t, "localhost", cfg.Postgres.Host)
	assert.Equal(t, 5543, cfg.Postgres.Port)
	assert.Equal(t, "disable", cfg.Postgres.SSLMode)
	assert.Equal(t, "click", cfg.ClickHouse.Host)
	assert.Equal(t, 8123, cfg.ClickHouse.Port)
	assert.Equal(t, "default", cfg.ClickHouse.User)
	assert.Equal(t, "redis:6380", cfg.Redis.Addr())
	assert.Equal(t, 2, cfg.Redis.DB)
}

func TestIntValue_FallsBackOnGarbage(t *testing.T) {
	t.Setenv("TEST_SOME_PORT", "not-a-number")
	assert.Equal(t, 42, intValue("TEST_SOME_PORT", 42))
}
