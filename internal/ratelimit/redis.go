package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "comlab:ratelimit:"

// RedisLimiter is a fixed one-minute window counter shared by every API
// instance that points at the same Redis.
type RedisLimiter struct {
	rdb       *goredis.Client
	perMinute int
	now       func() time.Time
}

// NewRedisClient connects to Redis and verifies the connection with a ping.
func NewRedisClient(addr, password string, db int) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return rdb, nil
}

// NewRedisLimiter allows perMinute requests per key per calendar minute.
func NewRedisLimiter(rdb *goredis.Client, perMinute int) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, perMinute: perMinute, now: time.Now}
}

// Allow increments the key's counter for the current window.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	windowKey := l.windowKey(key)

	pipe := l.rdb.TxPipeline()
	incr := pipe.Incr(ctx, windowKey)
	pipe.Expire(ctx, windowKey, time.Minute)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return incr.Val() <= int64(l.perMinute), nil
}

func (l *RedisLimiter) windowKey(key string) string {
	window := l.now().Unix() / 60
	return redisKeyPrefix + key + ":" + strconv.FormatInt(window, 10)
}
