package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/studymate-ai/studymate/history"
)

// RedisStore persists transcripts in Redis, one list per session, so turns
// keep their append order without a secondary index.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// RedisConfig holds Redis connection settings for the transcript store.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
	TTL      time.Duration // 0 means sessions never expire
}

// DefaultRedisConfig returns the local-development defaults.
func DefaultRedisConfig() *RedisConfig {
	return &RedisConfig{
		Addr:   "localhost:6379",
		Prefix: "studymate:history:",
	}
}

// NewRedisStore creates a Redis-backed transcript store.
func NewRedisStore(config *RedisConfig) *RedisStore {
	if config == nil {
		config = DefaultRedisConfig()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	return &RedisStore{
		client: client,
		prefix: config.Prefix,
		ttl:    config.TTL,
	}
}

func (s *RedisStore) key(sessionID string) string {
	return s.prefix + sessionID
}

// Append pushes a turn onto the session's list.
func (s *RedisStore) Append(ctx context.Context, entry *history.Entry) error {
	if err := history.Prepare(entry); err != nil {
		return err
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal history entry: %w", err)
	}

	key := s.key(entry.SessionID)
	if err := s.client.RPush(ctx, key, data).Err(); err != nil {
		return fmt.Errorf("append history entry: %w", err)
	}
	if s.ttl > 0 {
		if err := s.client.Expire(ctx, key, s.ttl).Err(); err != nil {
			return fmt.Errorf("refresh session ttl: %w", err)
		}
	}
	return nil
}

// List returns the session's turns in append order.
func (s *RedisStore) List(ctx context.Context, sessionID string) ([]*history.Entry, error) {
	raw, err := s.client.LRange(ctx, s.key(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list history entries: %w", err)
	}

	entries := make([]*history.Entry, 0, len(raw))
	for _, item := range raw {
		var entry history.Entry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			return nil, fmt.Errorf("unmarshal history entry: %w", err)
		}
		entries = append(entries, &entry)
	}
	return entries, nil
}

// Clear deletes the session's list.
func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("clear session history: %w", err)
	}
	return nil
}

// Count returns the number of turns recorded for the session.
func (s *RedisStore) Count(ctx context.Context, sessionID string) (int, error) {
	count, err := s.client.LLen(ctx, s.key(sessionID)).Result()
	if err != nil {
		return 0, fmt.Errorf("count history entries: %w", err)
	}
	return int(count), nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Ping checks the Redis connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
