package cache_test

import (
	"testing"
	"time"

	"go-payroll/internal/shared/cache"

	"github.com/stretchr/testify/assert"
)

func TestTTLCache_GetSet(t *testing.T) {
	c := cache.NewTTLCache[string, int]()

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("a", 42, time.Minute)
	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 42, v)
}

func TestTTLCache_ExpiresOnRead(t *testing.T) {
	now := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	c := cache.NewTTLCacheWithClock[string, string](clock)

	c.Set("country:1", "India", 5*time.Minute)

	now = now.Add(4 * time.Minute)
	v, ok := c.Get("country:1")
	assert.True(t, ok)
	assert.Equal(t, "India", v)

	now = now.Add(time.Minute)
	_, ok = c.Get("country:1")
	assert.False(t, ok, "entry must expire once TTL has elapsed")
	assert.Equal(t, 0, c.Len(), "expired entry is dropped on read")
}

func TestTTLCache_Clear(t *testing.T) {
	c := cache.NewTTLCache[string, int]()
	c.Set("a", 1, time.Minute)
	c.Set("b", 2, time.Minute)

	c.Clear()

	assert.Equal(t, 0, c.Len())
	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestTTLCache_ZeroTTLNotStored(t *testing.T) {
	c := cache.NewTTLCache[string, int]()
	c.Set("a", 1, 0)
	_, ok := c.Get("a")
	assert.False(t, ok)
}
