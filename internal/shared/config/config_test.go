package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "3001", cfg.Port)
	assert.Equal(t, ":3001", cfg.GetServerAddress())
	assert.Equal(t, "/api", cfg.GetAPIBasePath())
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, "memory", cfg.Settings.Backend)
	assert.Equal(t, "config/scenarios", cfg.Settings.ScenariosDir)
	assert.Equal(t, int64(0), cfg.Catalog.Seed)
	assert.Equal(t, 1000, cfg.RequestLog.MaxEntries)
	assert.False(t, cfg.Redis.Enabled)
	assert.False(t, cfg.Database.Enabled)
	assert.False(t, cfg.Kafka.Enabled)
	assert.True(t, cfg.MetricsEnabled)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("API_PREFIX", "/v2/")
	t.Setenv("CATALOG_SEED", "42")
	t.Setenv("SETTINGS_BACKEND", "redis")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000,https://tix.example")
	t.Setenv("RATE_LIMIT_WINDOW_DURATION", "30s")
	t.Setenv("RATE_LIMIT_CART_REQUESTS", "not-a-number")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("DB_HOST", "pg")
	t.Setenv("GIN_MODE", "release")

	cfg := Load()

	assert.Equal(t, ":9000", cfg.GetServerAddress())
	assert.Equal(t, "/v2", cfg.GetAPIBasePath())
	assert.Equal(t, int64(42), cfg.Catalog.Seed)
	assert.Equal(t, "redis", cfg.Settings.Backend)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, []string{"http://localhost:3000", "https://tix.example"}, cfg.CORSOrigins)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.WindowDuration)
	assert.Equal(t, 60, cfg.RateLimit.CartRequests)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.Contains(t, cfg.Database.DSN, "host=pg ")
	assert.True(t, cfg.IsProduction())
}
