package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/penwyp/go-brewpub-monitor/internal/core/model"
	"github.com/penwyp/go-brewpub-monitor/internal/util"
	"github.com/redis/go-redis/v9"
)

const (
	defaultDialTimeout  = 5 * time.Second
	defaultReadTimeout  = 3 * time.Second
	defaultWriteTimeout = 3 * time.Second
	defaultOpTimeout    = 5 * time.Second
)

// redisClient is the subset of *redis.Client the store needs
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Close() error
}

// RedisStore keeps the history as a JSON string under one key
type RedisStore struct {
	client    redisClient
	key       string
	opTimeout time.Duration
}

// NewRedisStore connects to redis and validates the connection with PING
func NewRedisStore(addr, password string, db int, key string) (*RedisStore, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, errors.New("redis: addr is empty")
	}

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  defaultDialTimeout,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), defaultDialTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", addr, err)
	}

	return newRedisStore(client, key), nil
}

func newRedisStore(client redisClient, key string) *RedisStore {
	if key == "" {
		key = model.HistorySlot
	}
	return &RedisStore{
		client:    client,
		key:       key,
		opTimeout: defaultOpTimeout,
	}
}

// Describe names the backend for logs and status lines
func (s *RedisStore) Describe() string {
	return "redis:" + s.key
}

// Load reads the history key. A missing key is an empty history.
func (s *RedisStore) Load() (model.HistoryLog, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.opTimeout)
	defer cancel()

	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.HistoryLog{}, nil
		}
		return nil, fmt.Errorf("redis: get %s: %w", s.key, err)
	}
	return decodeHistory(data)
}

// Save overwrites the history key without expiry
func (s *RedisStore) Save(history model.HistoryLog) error {
	data, err := encodeHistory(history)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.opTimeout)
	defer cancel()

	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis: set %s: %w", s.key, err)
	}
	util.LogDebug(fmt.Sprintf("Saved %d batch-out entries to redis key %s", len(history), s.key))
	return nil
}

// Clear deletes the history key
func (s *RedisStore) Clear() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.opTimeout)
	defer cancel()

	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("redis: del %s: %w", s.key, err)
	}
	return nil
}

// Close releases the redis connection pool
func (s *RedisStore) Close() error {
	return s.client.Close()
}
