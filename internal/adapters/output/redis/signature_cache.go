package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"line-webhook-gateway/internal/ports/output"
)

// SignatureCache struct - Secondary/Driven adapter for Redis
// Caches signature validation results with a short TTL. The cache is best
// effort: any Redis failure is surfaced as an error and the caller falls back
// to computing the HMAC directly.
type SignatureCache struct {
	client *redis.Client
}

// Compile-time check to ensure SignatureCache implements the output port
var _ output.SignatureCache = (*SignatureCache)(nil)

// NewSignatureCache func - Creates new Redis signature cache
func NewSignatureCache(host, port, password string, db int) *SignatureCache {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: password,
		DB:       db,
	})

	// Test the connection
	if err := client.Ping(context.Background()).Err(); err != nil {
		logrus.Warnf("Could not connect to Redis cache: %v", err)
	} else {
		logrus.Info("Connected to Redis cache")
	}

	return &SignatureCache{client: client}
}

// Get func - Retrieves a cached validation result
func (c *SignatureCache) Get(key string) (string, bool, error) {
	value, err := c.client.Get(context.Background(), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set func - Caches a validation result for ttl
func (c *SignatureCache) Set(key, value string, ttl time.Duration) error {
	return c.client.Set(context.Background(), key, value, ttl).Err()
}
