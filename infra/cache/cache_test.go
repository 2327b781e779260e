package cache

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/amirasaad/ledgerbook/internal/testutils"
	"github.com/amirasaad/ledgerbook/pkg/cache"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Hour)
	t.Cleanup(func() { _ = c.Close() })

	_, err := c.Get(ctx, "summary")
	assert.ErrorIs(t, err, cache.ErrMiss)

	value := []byte(`{"accounts_count":1}`)
	require.NoError(t, c.Set(ctx, "summary", value, time.Minute))
	value[0] = 'X'

	got, err := c.Get(ctx, "summary")
	require.NoError(t, err)
	assert.Equal(t, `{"accounts_count":1}`, string(got))

	require.NoError(t, c.Delete(ctx, "summary", "absent"))
	_, err = c.Get(ctx, "summary")
	assert.ErrorIs(t, err, cache.ErrMiss)
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewMemoryCache(time.Hour)
	t.Cleanup(func() { _ = c.Close() })
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, c.Set(ctx, "b", []byte("2"), time.Hour))

	now = now.Add(time.Minute)
	_, err := c.Get(ctx, "a")
	assert.ErrorIs(t, err, cache.ErrMiss)
	_, err = c.Get(ctx, "b")
	assert.NoError(t, err)

	assert.Equal(t, 2, c.Len())
	c.sweep()
	assert.Equal(t, 1, c.Len())
}

func TestMemoryCache_CloseIsIdempotent(t *testing.T) {
	c := NewMemoryCache(0)
	assert.NoError(t, c.Close())
	assert.NoError(t, c.Close())
}

func TestRedisCache_Construction(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, err := NewRedisCache(context.Background(), "http://not-redis", "p:", logger)
	assert.Error(t, err)

	rc := NewRedisCacheWithClient(redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"}), "ledgerbook:", logger)
	assert.Equal(t, "ledgerbook:report:summary", rc.key("report:summary"))
	assert.NoError(t, rc.Delete(context.Background()))
	assert.NoError(t, rc.Close())
}

func TestRedisCache_RoundTrip(t *testing.T) {
	url := testutils.StartRedis(t)
	ctx := context.Background()

	rc, err := NewRedisCache(ctx, url, "ledgerbook:test:", testutils.NewDiscardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = rc.Close() })

	_, err = rc.Get(ctx, "report:summary")
	assert.ErrorIs(t, err, cache.ErrMiss)

	require.NoError(t, rc.Set(ctx, "report:summary", []byte(`{"accounts_count":2}`), time.Minute))
	got, err := rc.Get(ctx, "report:summary")
	require.NoError(t, err)
	assert.Equal(t, `{"accounts_count":2}`, string(got))

	require.NoError(t, rc.Delete(ctx, "report:summary"))
	_, err = rc.Get(ctx, "report:summary")
	assert.ErrorIs(t, err, cache.ErrMiss)
}
