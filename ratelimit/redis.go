package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore backs the fixed-window counters with redis so limits hold across
// multiple server instances. Same keying as the memory store: one key per
// (scope, identity, window index), expired by redis itself.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	windowKey := fmt.Sprintf("%s:%d", key, time.Now().UnixNano()/int64(window))

	pipe := s.rdb.Pipeline()
	incr := pipe.Incr(ctx, windowKey)
	// TTL slightly past the boundary so a clock-skewed reader never sees the
	// key vanish mid-window.
	pipe.Expire(ctx, windowKey, window+time.Second)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("incrementing window counter: %w", err)
	}
	return incr.Val(), nil
}
