package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryCacheBasicAndEdgeCases(t *testing.T) {
	mc := NewMemoryCache[string]()
	defer mc.Stop()
	ctx := context.Background()

	assert.NoError(t, mc.Set(ctx, "key", "value", 0))
	v, err := mc.Get(ctx, "key")
	assert.NoError(t, err)
	assert.Equal(t, "value", v)

	_, err = mc.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrCacheMiss)

	assert.NoError(t, mc.Set(ctx, "temp", "x", 50*time.Millisecond))
	time.Sleep(100 * time.Millisecond)
	_, err = mc.Get(ctx, "temp")
	assert.ErrorIs(t, err, ErrCacheMiss)

	assert.NoError(t, mc.Delete(ctx, "key"))
	_, err = mc.Get(ctx, "key")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCacheHoldsSlices(t *testing.T) {
	mc := NewMemoryCache[[]int]()
	defer mc.Stop()
	ctx := context.Background()

	assert.NoError(t, mc.Set(ctx, "ids", []int{3, 1, 2}, 0))
	v, err := mc.Get(ctx, "ids")
	assert.NoError(t, err)
	assert.Equal(t, []int{3, 1, 2}, v)
}

func TestMemoryCacheStopIdempotent(t *testing.T) {
	mc := NewMemoryCache[string]()
	assert.NotPanics(t, func() {
		mc.Stop()
		mc.Stop()
	})
}

func TestMemoryCacheConcurrency(t *testing.T) {
	assert.NotPanics(t, func() {
		mc := NewMemoryCache[int]()
		defer mc.Stop()
		ctx := context.Background()

		done := make(chan struct{})
		go func() {
			for i := 0; i < 1000; i++ {
				_ = mc.Set(ctx, fmt.Sprintf("key%d", i), i, 0)
			}
			close(done)
		}()
		for i := 0; i < 1000; i++ {
			go func(i int) { _, _ = mc.Get(ctx, fmt.Sprintf("key%d", i)) }(i)
		}
		<-done
	})
}

func TestMemoryCacheJanitorCleansExpiredEntries(t *testing.T) {
	interval := 10 * time.Millisecond
	mc := NewMemoryCacheWithJanitor[string](interval)
	defer mc.Stop()
	ctx := context.Background()

	ttl := 20 * time.Millisecond
	assert.NoError(t, mc.Set(ctx, "to_clean", "value", ttl))

	time.Sleep(ttl + 3*interval)

	mc.mu.Lock()
	_, found := mc.items["to_clean"]
	mc.mu.Unlock()
	assert.False(t, found, "expired entry should have been removed by janitor")
}

func TestNewCache(t *testing.T) {
	c, err := NewCache[string](MemoryBackend, nil)
	assert.NoError(t, err)
	assert.IsType(t, &MemoryCache[string]{}, c)
	c.(*MemoryCache[string]).Stop()

	_, err = NewCache[string](RedisBackend, nil)
	assert.ErrorIs(t, err, ErrUnknownBackend)

	_, err = NewCache[string]("memcached", nil)
	assert.ErrorIs(t, err, ErrUnknownBackend)
}
