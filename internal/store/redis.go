package store

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/YogeshSabbani1213/Weather-Application-Development/internal/weather"
)

const redisKeyPrefix = "weatherapp:recents:"

var _ weather.RecentsStore = (*RedisStore)(nil)

// RedisStore keeps encoded ledgers in Redis strings.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a store from a redis:// URL. A ttl <= 0 keeps keys
// forever.
func NewRedisStore(url string, ttl time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return &RedisStore{client: redis.NewClient(opts), ttl: ttl}, nil
}

// Ping checks the connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Save writes raw under key, refreshing its TTL.
func (s *RedisStore) Save(ctx context.Context, key string, raw []byte) error {
	return s.client.Set(ctx, redisKeyPrefix+key, raw, s.ttl).Err()
}

// Load reads the bytes saved under key.
func (s *RedisStore) Load(ctx context.Context, key string) ([]byte, error) {
	raw, err := s.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return raw, nil
}
