package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"microblog/backend/pkg/logging"
)

// ErrCacheDisabled is returned by Cache methods when Redis is not configured.
var ErrCacheDisabled = errors.New("cache disabled")

// Cache wraps a Redis client used as a token revocation denylist.
type Cache struct {
	client *redis.Client
}

// Store is the process-wide cache instance. It stays nil when REDIS_URL is
// empty, in which case logout falls back to stateless JWT expiry.
var Store *Cache

// Connect initializes the global cache from a Redis URL. An empty URL
// disables the cache without error.
func Connect(redisURL string) error {
	if redisURL == "" {
		logging.GetLogger().Info("Redis cache disabled, token revocation unavailable")
		return nil
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logging.GetLogger().Info("Redis connection established")

	Store = &Cache{client: client}
	return nil
}

// RevokeToken places a token on the denylist until its natural expiry.
func (c *Cache) RevokeToken(ctx context.Context, token string, ttl time.Duration) error {
	if c == nil || c.client == nil {
		return ErrCacheDisabled
	}
	if ttl <= 0 {
		// Already expired, nothing to deny.
		return nil
	}
	return c.client.Set(ctx, revocationKey(token), 1, ttl).Err()
}

// IsTokenRevoked reports whether a token is on the denylist.
func (c *Cache) IsTokenRevoked(ctx context.Context, token string) (bool, error) {
	if c == nil || c.client == nil {
		return false, ErrCacheDisabled
	}
	count, err := c.client.Exists(ctx, revocationKey(token)).Result()
	return count > 0, err
}

// revocationKey hashes the token so raw credentials never land in Redis.
func revocationKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "revoked:" + hex.EncodeToString(sum[:])
}
