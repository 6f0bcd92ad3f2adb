package dedup

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "seen:"

// RedisStore is a durable tier backed by Redis. Expiry rides on Redis's own
// key TTL, so PurgeExpired is a no-op.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore wraps an already-connected client.
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Has(ctx context.Context, sig string) (bool, error) {
	n, err := s.rdb.Exists(ctx, redisKeyPrefix+sig).Result()
	if err != nil {
		return false, fmt.Errorf("redis EXISTS: %w", err)
	}
	return n > 0, nil
}

func (s *RedisStore) Put(ctx context.Context, e Entry) error {
	value := fmt.Sprintf("%d|%s", e.SeenAt.Unix(), e.Source)
	// SET is an upsert — a second write for the same signature just
	// refreshes the value and TTL.
	if err := s.rdb.Set(ctx, redisKeyPrefix+e.Signature, value, e.TTL).Err(); err != nil {
		return fmt.Errorf("redis SET: %w", err)
	}
	return nil
}

func (s *RedisStore) Remove(ctx context.Context, sig string) error {
	if err := s.rdb.Del(ctx, redisKeyPrefix+sig).Err(); err != nil {
		return fmt.Errorf("redis DEL: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	iter := s.rdb.Scan(ctx, 0, redisKeyPrefix+"*", 500).Iterator()
	for iter.Next(ctx) {
		if err := s.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("redis DEL %s: %w", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis SCAN: %w", err)
	}
	return nil
}

func (s *RedisStore) PurgeExpired(ctx context.Context) (int64, error) {
	return 0, nil // Redis expires keys itself
}

var _ Store = (*RedisStore)(nil)
