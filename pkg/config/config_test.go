package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	// Set test environment variables
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_USER", "testuser")
	t.Setenv("DB_PASSWORD", "testpass")
	t.Setenv("DB_NAME", "testdb")
	t.Setenv("DB_QUERY_TIMEOUT", "2s")
	t.Setenv("REDIS_HOST", "cache.internal")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("EVENT_BROKER", "nats")
	t.Setenv("LISTING_TTL_DAYS", "14")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	assert.NotNil(t, cfg)
	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, "6543", cfg.DBPort)
	assert.Equal(t, "testuser", cfg.DBUser)
	assert.Equal(t, "testpass", cfg.DBPassword)
	assert.Equal(t, "testdb", cfg.DBName)
	assert.Equal(t, 2*time.Second, cfg.DBQueryTimeout)
	assert.Equal(t, "cache.internal", cfg.RedisHost)
	assert.Equal(t, "6380", cfg.RedisPort)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, "nats", cfg.EventBroker)
	assert.Equal(t, 14, cfg.ListingTTLDays)
}

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"SERVER_PORT", "DB_HOST", "DB_PORT", "DB_QUERY_TIMEOUT", "LISTING_TTL_DAYS", "EXPIRE_SCHEDULE"} {
		os.Unsetenv(key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, 5*time.Second, cfg.DBQueryTimeout)
	assert.Equal(t, 30, cfg.ListingTTLDays)
	assert.Equal(t, "@every 10m", cfg.ExpireSchedule)
}

func TestLoadConfig_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("LISTING_TTL_DAYS", "thirty")
	t.Setenv("DB_QUERY_TIMEOUT", "soon")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, 30, cfg.ListingTTLDays)
	assert.Equal(t, 5*time.Second, cfg.DBQueryTimeout)
}

func TestLoadConfig_TrustedProxies(t *testing.T) {
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 192.168.1.10,")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.0/8", "192.168.1.10"}, cfg.TrustedProxies)

	t.Setenv("TRUSTED_PROXIES", "")
	cfg, err = Load()
	assert.NoError(t, err)
	assert.Empty(t, cfg.TrustedProxies)
}
