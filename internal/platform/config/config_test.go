package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, int64(1048576), cfg.MaxBodyBytes)
	assert.Equal(t, 15*time.Minute, cfg.BreachCheckInterval)
	assert.Equal(t, 128, cfg.JobQueueSize)
	assert.True(t, cfg.MetricsEnabled)
	require.NoError(t, cfg.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("APP_ADDR", ":9999")
	t.Setenv("BREACH_CHECK_INTERVAL", "30s")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, 30*time.Second, cfg.BreachCheckInterval)
	assert.False(t, cfg.MetricsEnabled)
	assert.Equal(t, 5, cfg.RateLimitPerMinute)
}

func TestLoadRejectsMalformedDuration(t *testing.T) {
	t.Setenv("TOKEN_TTL", "forever")
	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base, err := Load()
	require.NoError(t, err)

	prod := base
	prod.Environment = "production"
	assert.ErrorContains(t, prod.Validate(), "JWT_SECRET")

	prod.JWTSecret = "s3cret"
	assert.ErrorContains(t, prod.Validate(), "DATA_ENCRYPTION_KEY")

	operator := base
	operator.OperatorEmail = "dpo@example.com"
	assert.ErrorContains(t, operator.Validate(), "OPERATOR_PASSWORD_HASH")

	small := base
	small.MaxBodyBytes = 10
	assert.ErrorContains(t, small.Validate(), "MAX_BODY_BYTES")

	queue := base
	queue.JobQueueSize = 0
	assert.ErrorContains(t, queue.Validate(), "JOB_QUEUE_SIZE")

	format := base
	format.LogFormat = "xml"
	assert.ErrorContains(t, format.Validate(), "LOG_FORMAT")
}
