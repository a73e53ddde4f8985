package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreviewCacheWithoutClient(t *testing.T) {
	c := NewPreviewCache(nil, 0, zerolog.Nop())
	assert.Equal(t, DefaultPreviewTTL, c.ttl)

	c.Set(context.Background(), "k", []byte("page"))
	_, ok := c.Get(context.Background(), "k")
	assert.False(t, ok)
	assert.NoError(t, c.Close())
}

func TestPreviewCacheUnreachableServerIsAMiss(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	c := NewPreviewCache(client, time.Minute, zerolog.Nop())
	defer c.Close()

	c.Set(context.Background(), "k", []byte("page"))
	_, ok := c.Get(context.Background(), "k")
	assert.False(t, ok)
}

func TestNewClientEmptyAddr(t *testing.T) {
	client, err := NewClient(context.Background(), "", "", 0)
	require.NoError(t, err)
	assert.Nil(t, client)
}
