package client

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const CACHE_PREFIX string = "fsq:"

// CachingClient is a read-through cache in front of another Client. Only successful
// responses are cached.
type CachingClient struct {
	Client
	client Client
	redis  *redis.Client
	ttl    time.Duration
}

// NewCachingClientFromURI returns a `CachingClient` wrapping 'cl' and backed by the Redis
// server described by 'uri' (redis://host:port/db). A ttl of 0 means no expiry.
func NewCachingClientFromURI(ctx context.Context, cl Client, uri string, ttl time.Duration) (*CachingClient, error) {

	opts, err := redis.ParseURL(uri)

	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opts)

	err = rdb.Ping(ctx).Err()

	if err != nil {
		rdb.Close()
		return nil, err
	}

	return NewCachingClient(cl, rdb, ttl), nil
}

func NewCachingClient(cl Client, rdb *redis.Client, ttl time.Duration) *CachingClient {

	c := &CachingClient{
		client: cl,
		redis:  rdb,
		ttl:    ttl,
	}

	return c
}

func (c *CachingClient) Get(ctx context.Context, path string) ([]byte, error) {

	key := CacheKey(path)

	body, err := c.redis.Get(ctx, key).Bytes()

	switch {
	case err == nil:
		return body, nil
	case errors.Is(err, redis.Nil):
		// pass
	default:
		slog.Warn("Failed to read from cache", "path", path, "error", err)
	}

	body, err = c.client.Get(ctx, path)

	if err != nil {
		return nil, err
	}

	err = c.redis.Set(ctx, key, body, c.ttl).Err()

	if err != nil {
		slog.Warn("Failed to write to cache", "path", path, "error", err)
	}

	return body, nil
}

func (c *CachingClient) Close() error {
	return c.redis.Close()
}

// CacheKey returns the Redis key used to store the response for 'path'.
func CacheKey(path string) string {
	sum := sha256.Sum256([]byte(path))
	return CACHE_PREFIX + hex.EncodeToString(sum[:])
}
