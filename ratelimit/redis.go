package ratelimit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// slidingWindowScript trims the identity's sorted set to the window, admits
// the request when below the limit and reports the oldest score left.
var slidingWindowScript = redis.NewScript(`
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
redis.call("ZREMRANGEBYSCORE", KEYS[1], "-inf", now - window)
local count = redis.call("ZCARD", KEYS[1])
local oldest = now
local first = redis.call("ZRANGE", KEYS[1], 0, 0, "WITHSCORES")
if first[2] then
  oldest = tonumber(first[2])
end
if count >= limit then
  return {0, count, oldest}
end
redis.call("ZADD", KEYS[1], now, ARGV[4])
redis.call("PEXPIRE", KEYS[1], window)
return {1, count + 1, oldest}
`)

// RedisLimiter shares the sliding window between instances through Redis.
type RedisLimiter struct {
	rdb    redis.Scripter
	limit  int
	window time.Duration
	prefix string
	now    func() time.Time
}

func NewRedisLimiter(rdb redis.Scripter, limit int, window time.Duration, prefix string) *RedisLimiter {
	if limit <= 0 {
		limit = 20
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "booking:rl"
	}
	return &RedisLimiter{rdb: rdb, limit: limit, window: window, prefix: prefix, now: time.Now}
}

// WithClock replaces the time source, for tests.
func (l *RedisLimiter) WithClock(now func() time.Time) *RedisLimiter {
	l.now = now
	return l
}

func (l *RedisLimiter) Allow(ctx context.Context, identity string) (Result, error) {
	nowMs := l.now().UnixMilli()
	windowMs := l.window.Milliseconds()

	raw, err := slidingWindowScript.Run(ctx, l.rdb,
		[]string{l.prefix + ":" + identity},
		nowMs, windowMs, l.limit, uuid.NewString(),
	).Int64Slice()
	if err != nil {
		return Result{}, fmt.Errorf("rate limit script: %w", err)
	}
	if len(raw) != 3 {
		return Result{}, fmt.Errorf("rate limit script: unexpected reply length %d", len(raw))
	}

	allowed, count, oldest := raw[0] == 1, int(raw[1]), raw[2]
	res := Result{
		Allowed:    allowed,
		Limit:      l.limit,
		ResetAfter: time.Duration(oldest+windowMs-nowMs) * time.Millisecond,
	}
	if allowed {
		res.Remaining = l.limit - count
	}
	return res, nil
}
