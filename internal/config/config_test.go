package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"SERVICE_NAME", "SERVER_PORT", "DB_DRIVER", "SESSION_TTL", "PASSWORD_STORAGE", "KAFKA_BROKERS", "COOKIE_SECURE"} {
		t.Setenv(k, "")
	}

	cfg := Load("")
	assert.Equal(t, "inventory", cfg.ServiceName)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 8*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "bcrypt", cfg.PasswordStorage)
	assert.False(t, cfg.CookieSecure)
	assert.Nil(t, cfg.KafkaBrokers)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("LOGIN_RATE", "0.5")

	cfg := Load("")
	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.InDelta(t, 0.5, cfg.LoginRate, 1e-9)
}

func TestEnvHelpers_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("X_INT", "abc")
	t.Setenv("X_BOOL", "maybe")
	t.Setenv("X_DUR", "soon")

	require.Equal(t, 7, EnvIntDefault("X_INT", 7))
	require.True(t, EnvBoolDefault("X_BOOL", true))
	require.Equal(t, time.Second, EnvDurationDefault("X_DUR", time.Second))
}
