package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// DefaultPreviewTTL is how long a rendered preview page stays cached.
const DefaultPreviewTTL = 10 * time.Minute

// PreviewCache keeps rendered preview pages in Redis. A nil client turns
// every call into a miss, so callers never need to check configuration.
type PreviewCache struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

func NewPreviewCache(client *redis.Client, ttl time.Duration, log zerolog.Logger) *PreviewCache {
	if ttl <= 0 {
		ttl = DefaultPreviewTTL
	}
	return &PreviewCache{client: client, ttl: ttl, log: log}
}

// NewClient connects to addr and pings it. An empty addr returns nil, nil.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	if addr == "" {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func (c *PreviewCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c.client == nil {
		return nil, false
	}
	b, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("preview cache read failed")
		return nil, false
	}
	return b, true
}

func (c *PreviewCache) Set(ctx context.Context, key string, page []byte) {
	if c.client == nil {
		return
	}
	if err := c.client.Set(ctx, key, page, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("preview cache write failed")
	}
}

func (c *PreviewCache) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}
