// Package cache holds OCR token streams keyed by a digest of the image
// bytes they were recognized from.
//
// Eviction is by insertion order: when a new key arrives at capacity the
// oldest inserted key is dropped, no matter how recently it was read.
// Reads never reorder entries. Two concurrent misses on the same key both
// proceed; the cache does not de-duplicate in-flight work.
package cache

import (
	"container/list"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"
)

// Key is the SHA-256 digest of an image's exact byte content.
type Key [sha256.Size]byte

// KeyOf derives the cache key for raw image bytes.
func KeyOf(data []byte) Key {
	return sha256.Sum256(data)
}

func (k Key) String() string {
	return hex.EncodeToString(k[:])
}

// Short returns the first 16 hex characters, for log lines.
func (k Key) Short() string {
	return k.String()[:16]
}

// Options configures a Cache.
type Options struct {
	Enabled bool
	MaxSize int
	// TTL is reported in Stats only; entries never expire on their own.
	TTL time.Duration
}

// Stats describes the cache at a point in time.
type Stats struct {
	Enabled    bool  `json:"cache_enabled" yaml:"cache_enabled"`
	Size       int   `json:"cache_size" yaml:"cache_size"`
	MaxSize    int   `json:"cache_max_size" yaml:"cache_max_size"`
	TTLSeconds int64 `json:"cache_ttl_seconds" yaml:"cache_ttl_seconds"`
}

// Entry is a resident value plus its insertion metadata.
type Entry[V any] struct {
	Value      V
	Order      uint64
	InsertedAt time.Time
}

// Cache is a bounded, insertion-ordered map safe for concurrent use.
type Cache[V any] struct {
	mu      sync.Mutex
	enabled bool
	maxSize int
	ttl     time.Duration
	entries map[Key]*Entry[V]
	ledger  *list.List // keys, oldest insertion at the front
	next    uint64
	now     func() time.Time
}

// New creates a cache. MaxSize must be at least 1 when the cache is enabled.
func New[V any](opts Options) (*Cache[V], error) {
	if opts.Enabled && opts.MaxSize < 1 {
		return nil, fmt.Errorf("cache max size must be at least 1, got %d", opts.MaxSize)
	}

	return &Cache[V]{
		enabled: opts.Enabled,
		maxSize: opts.MaxSize,
		ttl:     opts.TTL,
		entries: make(map[Key]*Entry[V]),
		ledger:  list.New(),
		now:     time.Now,
	}, nil
}

// Get returns the value stored under key. A disabled cache always misses.
func (c *Cache[V]) Get(key Key) (V, bool) {
	e, ok := c.Lookup(key)
	return e.Value, ok
}

// Lookup is Get plus insertion metadata, for callers that enforce their
// own maximum entry age.
func (c *Cache[V]) Lookup(key Key) (Entry[V], bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.enabled {
		return Entry[V]{}, false
	}
	e, ok := c.entries[key]
	if !ok {
		return Entry[V]{}, false
	}
	return *e, true
}

// Put stores value under key. An existing key keeps its insertion order.
// Inserting a new key at capacity evicts the oldest inserted key first,
// which is returned with evicted=true.
func (c *Cache[V]) Put(key Key, value V) (evictedKey Key, evicted bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.enabled {
		return Key{}, false
	}

	if e, ok := c.entries[key]; ok {
		e.Value = value
		return Key{}, false
	}

	if len(c.entries) >= c.maxSize {
		front := c.ledger.Front()
		evictedKey = c.ledger.Remove(front).(Key)
		delete(c.entries, evictedKey)
		evicted = true
	}

	c.next++
	c.entries[key] = &Entry[V]{Value: value, Order: c.next, InsertedAt: c.now()}
	c.ledger.PushBack(key)
	return evictedKey, evicted
}

// Clear removes every entry and returns how many were removed.
func (c *Cache[V]) Clear() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.entries)
	c.entries = make(map[Key]*Entry[V])
	c.ledger.Init()
	return n
}

// Len reports the number of resident entries.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats reports the enabled flag, size and limits.
func (c *Cache[V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Stats{
		Enabled:    c.enabled,
		Size:       len(c.entries),
		MaxSize:    c.maxSize,
		TTLSeconds: int64(c.ttl / time.Second),
	}
}
