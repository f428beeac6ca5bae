package room

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultStateTTL bounds how long an abandoned room survives in Redis.
const DefaultStateTTL = 24 * time.Hour

// RedisStore implements SnapshotStore using Redis
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore creates a new Redis-backed snapshot store
func NewRedisStore(ctx context.Context, redisURL string, ttl time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return NewRedisStoreWithClient(client, ttl), nil
}

// NewRedisStoreWithClient creates a store from an existing Redis client
func NewRedisStoreWithClient(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultStateTTL
	}
	return &RedisStore{
		client: client,
		prefix: "notesync:room:",
		ttl:    ttl,
	}
}

func (s *RedisStore) key(roomID string) string {
	return s.prefix + roomID
}

// Load reads the room state.
func (s *RedisStore) Load(ctx context.Context, roomID string) (*State, error) {
	raw, err := s.client.Get(ctx, s.key(roomID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrStateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load room state: %w", err)
	}

	var st State
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, fmt.Errorf("failed to decode room state: %w", err)
	}
	return &st, nil
}

// Save writes the room state and refreshes its TTL.
func (s *RedisStore) Save(ctx context.Context, roomID string, state *State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode room state: %w", err)
	}
	if err := s.client.Set(ctx, s.key(roomID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save room state: %w", err)
	}
	return nil
}

// Delete removes the room state.
func (s *RedisStore) Delete(ctx context.Context, roomID string) error {
	if err := s.client.Del(ctx, s.key(roomID)).Err(); err != nil {
		return fmt.Errorf("failed to delete room state: %w", err)
	}
	return nil
}

// Ping checks if Redis is reachable
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}
