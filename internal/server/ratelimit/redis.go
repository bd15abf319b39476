package ratelimit

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
)

// KeyPrefix namespaces the bucket hashes in Redis.
const KeyPrefix = "sizing:ratelimit:"

// tokenBucketScript refills and takes from a bucket atomically.
// KEYS[1] = bucket key
// ARGV[1] = refill rate (tokens per second)
// ARGV[2] = capacity
// ARGV[3] = current unix time in seconds, microsecond precision
// ARGV[4] = key ttl in seconds
// Returns {allowed, tokens * 1000}; Redis truncates Lua numbers to integers.
var tokenBucketScript = redis.NewScript(`
local key = KEYS[1]
local rate = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local now = tonumber(ARGV[3])
local ttl = tonumber(ARGV[4])

local state = redis.call("HMGET", key, "tokens", "updated_at")
local tokens = tonumber(state[1])
local updated_at = tonumber(state[2])
if not tokens or not updated_at then
    tokens = capacity
    updated_at = now
end

local elapsed = now - updated_at
if elapsed > 0 then
    tokens = math.min(capacity, tokens + elapsed * rate)
end

local allowed = 0
if tokens >= 1 then
    tokens = tokens - 1
    allowed = 1
end

redis.call("HSET", key, "tokens", tokens, "updated_at", now)
redis.call("EXPIRE", key, ttl)

return {allowed, math.floor(tokens * 1000)}
`)

// RedisStore keeps buckets in Redis so every server instance draws from the same budget.
type RedisStore struct {
	client redis.Scripter
}

// NewRedisStore creates a store on an existing client.
func NewRedisStore(client redis.Scripter) *RedisStore {
	return &RedisStore{client: client}
}

// NewRedisClient parses a redis:// URL and checks the connection.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

// Take implements Store.
func (s *RedisStore) Take(ctx context.Context, key string, endpoint EndpointConfig) (Info, error) {
	now := time.Now()
	rps := endpoint.ratePerSecond()
	capacity := endpoint.capacity()

	ttl := 60
	if rps > 0 {
		ttl = int(math.Ceil(float64(capacity)/rps)) + 1
	}

	res, err := tokenBucketScript.Run(ctx, s.client, []string{KeyPrefix + key},
		rps, capacity, float64(now.UnixMicro())/1e6, ttl).Int64Slice()
	if err != nil {
		return Info{}, fmt.Errorf("redis limiter error: %w", err)
	}
	if len(res) != 2 {
		return Info{}, fmt.Errorf("invalid response from rate limit script: %v", res)
	}

	return bucketInfo(res[0] == 1, endpoint, float64(res[1])/1000, now), nil
}
