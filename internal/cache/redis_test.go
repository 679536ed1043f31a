package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRedis connects to REDIS_ADDR (default localhost:6379) and skips the
// test when no server answers.
func newTestRedis(t *testing.T) *RedisCache {
	t.Helper()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	c, err := NewRedisCache(RedisConfig{
		Addr:        addr,
		KeyPrefix:   "fintrack-test:" + uuid.NewString() + ":",
		DialTimeout: 500 * time.Millisecond,
	})
	if err != nil {
		t.Skipf("redis not available at %s: %v", addr, err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestRedisCache_SetGetDelete(t *testing.T) {
	c := newTestRedis(t)
	ctx := context.Background()

	_, err := c.Get(ctx, "report:2024-03")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, c.Set(ctx, "report:2024-03", []byte(`{"net":"950"}`), time.Minute))

	got, err := c.Get(ctx, "report:2024-03")
	require.NoError(t, err)
	assert.Equal(t, `{"net":"950"}`, string(got))

	require.NoError(t, c.Delete(ctx, "report:2024-03"))
	_, err = c.Get(ctx, "report:2024-03")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCache_NoExpiry(t *testing.T) {
	c := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "report:version:2024-03", []byte("token"), 0))
	defer c.Delete(ctx, "report:version:2024-03")

	got, err := c.Get(ctx, "report:version:2024-03")
	require.NoError(t, err)
	assert.Equal(t, "token", string(got))
}

func TestNewRedisCache_RequiresAddress(t *testing.T) {
	_, err := NewRedisCache(RedisConfig{})
	assert.Error(t, err)
}
