package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	return NewRedis(mr.Addr(), "", 0), mr
}

func TestRedisGetMiss(t *testing.T) {
	c, _ := newTestCache(t)

	_, hit, err := c.Get(context.Background(), "inexistente")
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestRedisSetGet(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "disponibilidad:1:2026-02-02:3", []byte(`{"available":true}`), 30*time.Second))

	val, hit, err := c.Get(ctx, "disponibilidad:1:2026-02-02:3")
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, []byte(`{"available":true}`), val)

	// el TTL expira la clave
	mr.FastForward(31 * time.Second)
	_, hit, err = c.Get(ctx, "disponibilidad:1:2026-02-02:3")
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestRedisDelete(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	require.NoError(t, c.Delete(ctx, "k"))

	_, hit, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestRedisDeletePrefix(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	keys := []string{
		"disponibilidad:1:2026-02-02:3",
		"disponibilidad:1:2026-02-02:4",
		"disponibilidad:1:2026-02-03:3",
		"disponibilidad:2:2026-02-02:3",
	}
	for _, k := range keys {
		require.NoError(t, c.Set(ctx, k, []byte("v"), time.Minute))
	}

	require.NoError(t, c.DeletePrefix(ctx, "disponibilidad:1:2026-02-02:"))

	for _, k := range keys[:2] {
		_, hit, err := c.Get(ctx, k)
		require.NoError(t, err)
		assert.False(t, hit, k)
	}

	// otras fechas y otros empleados sobreviven
	for _, k := range keys[2:] {
		_, hit, err := c.Get(ctx, k)
		require.NoError(t, err)
		assert.True(t, hit, k)
	}
}
