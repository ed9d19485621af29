package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.Kafka.Enabled())
	assert.Equal(t, 2, cfg.Workflow.LeadFollowUpDays)
	assert.Equal(t, 30, cfg.Scoring.StandardPaymentTermDays)
	assert.Equal(t, 0.9, cfg.Scoring.BenchmarkFactor)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "staging")
	t.Setenv("SCORING_STANDARD_PAYMENT_TERM_DAYS", "45")
	t.Setenv("SCORING_RECENCY_WEIGHT", "0.5")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_LOCK_TTL_SECONDS", "60")
	t.Setenv("DB_AUTO_MIGRATE", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 45, cfg.Scoring.StandardPaymentTermDays)
	assert.Equal(t, 0.5, cfg.Scoring.RecencyWeight)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, time.Minute, cfg.Redis.LockTTL)
	assert.True(t, cfg.DB.AutoMigrate)
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestDSN_EscapesPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss", DBName: "ventas", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss@db:5432/ventas?sslmode=disable", c.DSN())
}
