package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const rateLimitPrefix = "ratelimit:"

// takeScript prunes entries older than the window, then admits and records
// atomically. Running as one script keeps two concurrent requests for the
// same key from both slipping under the cap.
var takeScript = redis.NewScript(`
	local key = KEYS[1]
	local now = tonumber(ARGV[1])
	local window = tonumber(ARGV[2])
	local limit = tonumber(ARGV[3])
	local member = ARGV[4]

	redis.call("ZREMRANGEBYSCORE", key, "-inf", now - window)
	if redis.call("ZCARD", key) >= limit then
		return 0
	end
	redis.call("ZADD", key, now, member)
	redis.call("PEXPIRE", key, window)
	return 1
`)

// RateLimitStore implements ratelimit.Store on Redis: the shared
// sliding-window counter for multi-instance deployments.
type RateLimitStore struct {
	client *Client
}

// NewRateLimitStore creates a Redis-backed rate limit store
func NewRateLimitStore(client *Client) *RateLimitStore {
	return &RateLimitStore{client: client}
}

// Take implements ratelimit.Store.
func (s *RateLimitStore) Take(ctx context.Context, key string, limit int, window time.Duration, now time.Time) (bool, error) {
	fullKey := rateLimitPrefix + key
	member := fmt.Sprintf("%d-%s", now.UnixNano(), uuid.NewString())

	res, err := takeScript.Run(ctx, s.client.rdb,
		[]string{fullKey},
		now.UnixMilli(),
		window.Milliseconds(),
		limit,
		member,
	).Int()
	if err != nil {
		return false, fmt.Errorf("failed to execute rate limit check: %w", err)
	}

	return res == 1, nil
}

// Reset clears the window for a key.
func (s *RateLimitStore) Reset(ctx context.Context, key string) error {
	return s.client.rdb.Del(ctx, rateLimitPrefix+key).Err()
}
