package cache

import (
	"errors"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

var (
	ErrCacheMiss = errors.New("cache: key not found")
)

// Entry is a cached value with the time it was stored.
type Entry[V any] struct {
	Value     V
	FetchedAt time.Time
}

// TTL is a time-bounded key/value cache. Expired entries are dropped lazily on read;
// nothing sweeps in the background. When MaxEntries is set the least recently used
// entry is evicted once the bound is reached.
type TTL[K comparable, V any] struct {
	ttl   time.Duration
	clock Clock
	items *lru.Cache[K, Entry[V]]
}

// NewTTL creates a cache whose entries live for ttl.
func NewTTL[K comparable, V any](ttl time.Duration, opts ...TTLOption) (*TTL[K, V], error) {
	cfg := &TTLConfig{
		Clock: SystemClock{},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	size := cfg.MaxEntries
	if size <= 0 {
		size = unboundedSize
	}
	items, err := lru.New[K, Entry[V]](size)
	if err != nil {
		return nil, err
	}

	return &TTL[K, V]{ttl: ttl, clock: cfg.Clock, items: items}, nil
}

// Get returns the live value for key. An entry aged ttl or more counts as absent
// and is removed.
func (c *TTL[K, V]) Get(key K) (V, bool) {
	e, ok := c.items.Get(key)
	if !ok {
		var zero V
		return zero, false
	}
	if c.clock.Now().Sub(e.FetchedAt) >= c.ttl {
		c.items.Remove(key)
		var zero V
		return zero, false
	}
	return e.Value, true
}

// Set stores value under key, replacing any previous entry wholesale.
func (c *TTL[K, V]) Set(key K, value V) {
	c.items.Add(key, Entry[V]{Value: value, FetchedAt: c.clock.Now()})
}

// Delete drops key.
func (c *TTL[K, V]) Delete(key K) {
	c.items.Remove(key)
}

// Len reports stored entries, including expired ones not yet read.
func (c *TTL[K, V]) Len() int {
	return c.items.Len()
}

// TTL returns the configured lifetime.
func (c *TTL[K, V]) TTL() time.Duration {
	return c.ttl
}
