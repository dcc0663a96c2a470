package audiocache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps audio artifacts in Redis, letting several engine
// instances share one synthesis cache.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

var _ ArtifactStore = &RedisStore{}

// NewRedisStore wraps an existing client. ttl zero stores artifacts
// without expiry; retention is then an operational concern.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) key(ref string) string {
	return "breathcoach:audio:" + ref
}

func (s *RedisStore) Put(ctx context.Context, ref string, data []byte) error {
	if err := s.client.Set(ctx, s.key(ref), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, ref string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key(ref)).Bytes()
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return data, nil
}
