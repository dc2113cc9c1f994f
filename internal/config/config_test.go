package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 720*time.Hour, cfg.CartTTL())
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry())
	assert.Equal(t, 1500*time.Millisecond, cfg.SimulatedDelay())
	assert.Equal(t, 50, cfg.NotifyFeedSize)
	assert.False(t, cfg.TracingEnabled)
}

func TestLoad_InvalidHTTPPort(t *testing.T) {
	t.Setenv("HTTP_PORT", "0")

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid HTTP port")
}

func TestLoad_InvalidCartTTL(t *testing.T) {
	t.Setenv("CART_TTL_HOURS", "0")

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid cart TTL")
}

func TestLoad_ProductionRequiresRealJWTSecret(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoad_CustomValues(t *testing.T) {
	t.Setenv("REDIS_ADDR", "redis.prod:6380")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("HINTS_SERVICE_URL", "http://hints.internal:9400")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "redis.prod:6380", cfg.RedisAddr)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "http://hints.internal:9400", cfg.HintsServiceURL)
}
