package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCache(t *testing.T, size int) *Cache[string] {
	t.Helper()
	c, err := New[string](Options{Enabled: true, MaxSize: size, TTL: time.Hour})
	require.NoError(t, err)
	return c
}

func key(i int) Key {
	return KeyOf([]byte(fmt.Sprintf("image-%d", i)))
}

func TestKeyOfIsDeterministic(t *testing.T) {
	a := KeyOf([]byte("same bytes"))
	b := KeyOf([]byte("same bytes"))
	c := KeyOf([]byte("other bytes"))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a.String(), 64)
	assert.Equal(t, a.String()[:16], a.Short())
}

func TestPutThenGetReturnsValue(t *testing.T) {
	c := newCache(t, 3)
	c.Put(key(1), "one")

	v, ok := c.Get(key(1))
	require.True(t, ok)
	assert.Equal(t, "one", v)

	_, ok = c.Get(key(2))
	assert.False(t, ok)
}

func TestEvictsOldestInsertedNotLeastRecentlyRead(t *testing.T) {
	const capacity = 3
	c := newCache(t, capacity)

	for i := 0; i < capacity; i++ {
		_, evicted := c.Put(key(i), fmt.Sprint(i))
		assert.False(t, evicted)
	}

	// Reading the oldest entry must not protect it.
	_, ok := c.Get(key(0))
	require.True(t, ok)

	evictedKey, evicted := c.Put(key(capacity), "new")
	require.True(t, evicted)
	assert.Equal(t, key(0), evictedKey)

	_, ok = c.Get(key(0))
	assert.False(t, ok)
	for i := 1; i <= capacity; i++ {
		_, ok := c.Get(key(i))
		assert.True(t, ok, "key %d should be resident", i)
	}
	assert.Equal(t, capacity, c.Len())
}

func TestOverwriteKeepsInsertionOrder(t *testing.T) {
	c := newCache(t, 2)
	c.Put(key(1), "a")
	c.Put(key(2), "b")

	first, _ := c.Lookup(key(1))
	_, evicted := c.Put(key(1), "a2")
	assert.False(t, evicted)

	updated, ok := c.Lookup(key(1))
	require.True(t, ok)
	assert.Equal(t, "a2", updated.Value)
	assert.Equal(t, first.Order, updated.Order)
	assert.Equal(t, first.InsertedAt, updated.InsertedAt)

	// key(1) is still the oldest, so it goes first.
	evictedKey, evicted := c.Put(key(3), "c")
	require.True(t, evicted)
	assert.Equal(t, key(1), evictedKey)
}

func TestClearReturnsCountAndEmpties(t *testing.T) {
	c := newCache(t, 10)
	for i := 0; i < 4; i++ {
		c.Put(key(i), "v")
	}

	assert.Equal(t, 4, c.Clear())
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 0, c.Clear())

	// Ordering restarts cleanly after a clear.
	c.Put(key(7), "x")
	v, ok := c.Get(key(7))
	require.True(t, ok)
	assert.Equal(t, "x", v)
}

func TestDisabledCacheNeverStores(t *testing.T) {
	c, err := New[string](Options{Enabled: false, MaxSize: 0})
	require.NoError(t, err)

	c.Put(key(1), "one")
	_, ok := c.Get(key(1))
	assert.False(t, ok)
	assert.Equal(t, Stats{Enabled: false, Size: 0, MaxSize: 0}, c.Stats())
}

func TestNewRejectsZeroCapacity(t *testing.T) {
	_, err := New[string](Options{Enabled: true, MaxSize: 0})
	assert.Error(t, err)
}

func TestStats(t *testing.T) {
	c := newCache(t, 5)
	c.Put(key(1), "v")
	c.Put(key(2), "v")

	assert.Equal(t, Stats{Enabled: true, Size: 2, MaxSize: 5, TTLSeconds: 3600}, c.Stats())
}

func TestConcurrentPutsRespectCapacity(t *testing.T) {
	const capacity = 16
	c := newCache(t, capacity)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				k := key(w*1000 + i)
				c.Put(k, "v")
				c.Get(k)
			}
		}(w)
	}
	wg.Wait()

	assert.Equal(t, capacity, c.Len())
	assert.Equal(t, capacity, c.ledger.Len())
}
