package tusk

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemCacheGetSet(t *testing.T) {
	ctx := context.Background()
	c := NewMemCache()

	v, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, c.Set(ctx, "k", []byte("v"), 0))
	v, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), v)
}

func TestMemCacheTTL(t *testing.T) {
	ctx := context.Background()
	c := NewMemCache()

	require.NoError(t, c.Set(ctx, "short", []byte("v"), time.Nanosecond))
	time.Sleep(time.Millisecond)
	v, err := c.Get(ctx, "short")
	require.NoError(t, err)
	assert.Nil(t, v, "expired entries read as missing")

	require.NoError(t, c.Set(ctx, "long", []byte("v"), time.Hour))
	v, err = c.Get(ctx, "long")
	require.NoError(t, err)
	assert.NotNil(t, v)
}

func TestMemCacheDelete(t *testing.T) {
	ctx := context.Background()
	c := NewMemCache()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), 0))
	require.NoError(t, c.Delete(ctx, "k"))
	v, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, v)

	// Deleting a missing key is a no-op.
	require.NoError(t, c.Delete(ctx, "k"))
}

func TestMemCacheDeletePrefix(t *testing.T) {
	ctx := context.Background()
	c := NewMemCache()

	require.NoError(t, c.Set(ctx, "postgres:a", []byte("1"), 0))
	require.NoError(t, c.Set(ctx, "postgres:b", []byte("2"), 0))
	require.NoError(t, c.Set(ctx, "mysql:a", []byte("3"), 0))

	require.NoError(t, c.DeletePrefix(ctx, "postgres:"))

	v, _ := c.Get(ctx, "postgres:a")
	assert.Nil(t, v)
	v, _ = c.Get(ctx, "postgres:b")
	assert.Nil(t, v)
	v, _ = c.Get(ctx, "mysql:a")
	assert.Equal(t, []byte("3"), v)
}

func TestMemCacheClear(t *testing.T) {
	ctx := context.Background()
	c := NewMemCache()

	require.NoError(t, c.Set(ctx, "a", []byte("1"), 0))
	require.NoError(t, c.Set(ctx, "b", []byte("2"), 0))
	require.NoError(t, c.Clear(ctx))

	v, _ := c.Get(ctx, "a")
	assert.Nil(t, v)
}

func TestMemCacheConcurrent(t *testing.T) {
	ctx := context.Background()
	c := NewMemCache()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = c.Set(ctx, "k", []byte("v"), 0)
				_, _ = c.Get(ctx, "k")
				_ = c.Delete(ctx, "k")
			}
		}()
	}
	wg.Wait()
}

func TestCacheKeyString(t *testing.T) {
	k := CacheKey{Dialect: "postgres", Query: `SELECT "id" FROM "users"`, Args: "[1]"}
	assert.Equal(t, `postgres:SELECT "id" FROM "users":[1]`, k.String())
}
