package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"blog-service/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := config.Load("")
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.AppPort)
	require.Equal(t, "images", cfg.ImageDir)
	require.Equal(t, time.Hour, cfg.JWT.TTL)
	require.Equal(t, "nats://localhost:4222", cfg.NATS.URL)
	require.Equal(t, 100, cfg.RateLimit.Max)
	require.Equal(t, "localhost:4317", cfg.Tracing.Endpoint)
}

func TestLoad_TracingEndpointFromEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4317")

	cfg, err := config.Load("")
	require.NoError(t, err)
	require.Equal(t, "collector:4317", cfg.Tracing.Endpoint)
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := config.Load("")
	require.Error(t, err)
}

func TestDBConfig_URL(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DB_USER", "blog")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_NAME", "blogdb")

	cfg, err := config.Load("")
	require.NoError(t, err)
	require.Equal(t, "postgres://blog:pw@db:5433/blogdb?sslmode=disable", cfg.DB.URL())
}
