package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/lumora-app/backend/pkg/logging"
)

// ErrCacheDisabled is returned when cache operations are attempted but
// the cache is disabled
var ErrCacheDisabled = fmt.Errorf("cache is disabled")

// Cache wraps the Redis client used for derived-view counters
// (follower/following counts, post like counts). All methods are nil-safe
// so callers need no enabled check.
type Cache struct {
	client *redis.Client
	ctx    context.Context
}

// New creates a new Redis cache client. An empty URL disables the cache
// and returns nil, which every method tolerates.
func New(redisURL string) (*Cache, error) {
	if redisURL == "" {
		logging.GetLogger().Info("Redis cache disabled")
		return nil, nil
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logging.GetLogger().Info("Redis connection established")

	return &Cache{
		client: client,
		ctx:    context.Background(),
	}, nil
}

// GetCount retrieves a cached counter
func (c *Cache) GetCount(key string) (int64, error) {
	if c == nil || c.client == nil {
		return 0, ErrCacheDisabled
	}
	val, err := c.client.Get(c.ctx, key).Result()
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(val, 10, 64)
}

// SetCount caches a counter with TTL
func (c *Cache) SetCount(key string, count int64, ttl time.Duration) error {
	if c == nil || c.client == nil {
		return ErrCacheDisabled
	}
	return c.client.Set(c.ctx, key, count, ttl).Err()
}

// Delete removes keys from the cache, used for invalidation on mutation
func (c *Cache) Delete(keys ...string) error {
	if c == nil || c.client == nil {
		return ErrCacheDisabled
	}
	return c.client.Del(c.ctx, keys...).Err()
}

// Close closes the Redis connection
func (c *Cache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// FollowerCountKey is the cache key for a profile's follower count
func FollowerCountKey(profileID uint) string {
	return fmt.Sprintf("profile:%d:followers", profileID)
}

// FollowingCountKey is the cache key for a profile's following count
func FollowingCountKey(profileID uint) string {
	return fmt.Sprintf("profile:%d:following", profileID)
}

// PostLikeCountKey is the cache key for a post's like count
func PostLikeCountKey(postID uint) string {
	return fmt.Sprintf("post:%d:likes", postID)
}
