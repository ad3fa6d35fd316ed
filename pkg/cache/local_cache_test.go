package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func newTestCache(t *testing.T, maxSize int) (*LocalCache, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)}
	c := newLocalCache(maxSize, time.Hour, clock.Now)
	t.Cleanup(func() { _ = c.Close() })
	return c, clock
}

func TestLocalCacheSetGet(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t, 10)

	require.NoError(t, c.Set(ctx, "host-a", []byte(`{"installed":true}`), time.Minute))

	v, ok, err := c.Get(ctx, "host-a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte(`{"installed":true}`), v)

	_, ok, err = c.Get(ctx, "host-b")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLocalCacheOverwrite(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t, 10)

	require.NoError(t, c.Set(ctx, "k", []byte("one"), time.Minute))
	require.NoError(t, c.Set(ctx, "k", []byte("two"), time.Minute))

	v, ok, _ := c.Get(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, []byte("two"), v)
	assert.Equal(t, 1, c.Len())
}

func TestLocalCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, clock := newTestCache(t, 10)

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	clock.Advance(2 * time.Minute)

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestLocalCacheSweep(t *testing.T) {
	ctx := context.Background()
	c, clock := newTestCache(t, 10)

	require.NoError(t, c.Set(ctx, "short", []byte("v"), time.Minute))
	require.NoError(t, c.Set(ctx, "long", []byte("v"), time.Hour))
	clock.Advance(5 * time.Minute)

	c.evictExpiredItems()

	assert.Equal(t, 1, c.Len())
	_, ok, _ := c.Get(ctx, "long")
	assert.True(t, ok)
}

func TestLocalCacheEvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t, 2)

	require.NoError(t, c.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, c.Set(ctx, "b", []byte("2"), time.Minute))
	_, _, _ = c.Get(ctx, "a")
	require.NoError(t, c.Set(ctx, "c", []byte("3"), time.Minute))

	_, okA, _ := c.Get(ctx, "a")
	_, okB, _ := c.Get(ctx, "b")
	_, okC, _ := c.Get(ctx, "c")
	assert.True(t, okA)
	assert.False(t, okB)
	assert.True(t, okC)
}

func TestLocalCacheDelete(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t, 10)

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	require.NoError(t, c.Delete(ctx, "k"))
	require.NoError(t, c.Delete(ctx, "missing"))

	_, ok, _ := c.Get(ctx, "k")
	assert.False(t, ok)
}

func TestLocalCacheReturnsCopies(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t, 10)

	value := []byte("original")
	require.NoError(t, c.Set(ctx, "k", value, time.Minute))
	value[0] = 'X'

	got, _, _ := c.Get(ctx, "k")
	assert.Equal(t, []byte("original"), got)
}
