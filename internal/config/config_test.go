package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"MODE", "LISTEN", "DB_CONN", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
		"JWT_SECRET", "REFRESH_TOKEN_SECRET", "SMTP_PORT", "KAFKA_BROKERS", "KAFKA_TOPIC",
	} {
		// Setenv registers the restore; the test itself wants the
		// variable absent, not blank.
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.System.IsProd)
	assert.Equal(t, ":3001", cfg.System.Listen)
	assert.Equal(t, "127.0.0.1:6379", cfg.Redis.Addr)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Equal(t, "moderation-events", cfg.Kafka.Topic)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MODE", "production")
	t.Setenv("LISTEN", ":8080")
	t.Setenv("DB_CONN", "user:pw@tcp(db:3306)/forum")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.System.IsProd)
	assert.Equal(t, ":8080", cfg.System.Listen)
	assert.Equal(t, "user:pw@tcp(db:3306)/forum", cfg.System.DBConn)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, 2525, cfg.SMTP.Port)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
}

func TestLoadBadNumbers(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")
	_, err := Load()
	assert.Error(t, err)
}
