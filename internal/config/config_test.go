package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadServer_Defaults(t *testing.T) {
	for _, key := range []string{"NOTESYNC_ADDR", "NOTESYNC_DATABASE_URL", "NOTESYNC_REDIS_URL", "NOTESYNC_RATE_LIMIT"} {
		t.Setenv(key, "")
	}

	cfg := LoadServer()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "notesync.db", cfg.DatabaseURL)
	assert.Empty(t, cfg.RedisURL)
	assert.Equal(t, 600, cfg.RateLimit)
}

func TestLoadServer_FromEnv(t *testing.T) {
	t.Setenv("NOTESYNC_ADDR", ":9999")
	t.Setenv("NOTESYNC_REDIS_URL", "redis://localhost:6379/1")
	t.Setenv("NOTESYNC_ROOM_TTL", "2h")
	t.Setenv("NOTESYNC_JOIN_TIMEOUT", "3")

	cfg := LoadServer()
	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, "redis://localhost:6379/1", cfg.RedisURL)
	assert.Equal(t, 2*time.Hour, cfg.RoomTTL)
	assert.Equal(t, 3*time.Second, cfg.JoinTimeout)
}

func TestLoadClient_BadValuesFallBack(t *testing.T) {
	t.Setenv("NOTESYNC_MAX_ATTEMPTS", "many")
	t.Setenv("NOTESYNC_DRAIN_INTERVAL", "soon")

	cfg := LoadClient()
	assert.Equal(t, 5, cfg.MaxAttempts)
	assert.Equal(t, 5*time.Second, cfg.DrainInterval)
}
