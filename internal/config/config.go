// Package config reads runtime settings from the environment. Command
// line flags in cmd/* use these values as their defaults.
package config

import (
	"os"
	"strconv"
	"time"
)

// Server holds the settings of the sync server.
type Server struct {
	Addr        string
	DatabaseURL string // DatabaseURL путь к файлу SQLite или postgres:// URL
	RedisURL    string // RedisURL пусто: состояние комнат хранится в памяти
	JWTSecret   string
	LogLevel    string
	AccessTTL   time.Duration
	RoomTTL     time.Duration
	JoinTimeout time.Duration
	RateLimit   int // RateLimit запросов в минуту на пользователя
}

// LoadServer reads server settings.
func LoadServer() Server {
	return Server{
		Addr:        getenv("NOTESYNC_ADDR", ":8080"),
		DatabaseURL: getenv("NOTESYNC_DATABASE_URL", "notesync.db"),
		RedisURL:    getenv("NOTESYNC_REDIS_URL", ""),
		JWTSecret:   getenv("NOTESYNC_JWT_SECRET", "notesync-dev-secret"),
		LogLevel:    getenv("NOTESYNC_LOG_LEVEL", "info"),
		AccessTTL:   getenvDuration("NOTESYNC_ACCESS_TTL", 24*time.Hour),
		RoomTTL:     getenvDuration("NOTESYNC_ROOM_TTL", 24*time.Hour),
		JoinTimeout: getenvDuration("NOTESYNC_JOIN_TIMEOUT", 10*time.Second),
		RateLimit:   getenvInt("NOTESYNC_RATE_LIMIT", 600),
	}
}

// Client holds the settings of the CLI client.
type Client struct {
	ServerURL      string
	DBPath         string
	Token          string
	Passphrase     string
	PassphraseFile string
	DrainInterval  time.Duration
	ReconcileEvery time.Duration
	MaxAttempts    int
}

// LoadClient reads client settings.
func LoadClient() Client {
	return Client{
		ServerURL:      getenv("NOTESYNC_SERVER", "http://localhost:8080"),
		DBPath:         getenv("NOTESYNC_DB", "notesync-client.db"),
		Token:          getenv("NOTESYNC_TOKEN", ""),
		Passphrase:     getenv("NOTESYNC_PASSPHRASE", ""),
		PassphraseFile: getenv("NOTESYNC_PASSPHRASE_FILE", ""),
		DrainInterval:  getenvDuration("NOTESYNC_DRAIN_INTERVAL", 5*time.Second),
		ReconcileEvery: getenvDuration("NOTESYNC_RECONCILE_INTERVAL", time.Minute),
		MaxAttempts:    getenvInt("NOTESYNC_MAX_ATTEMPTS", 5),
	}
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

// getenvDuration понимает как "30s", так и целое число секунд
func getenvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
