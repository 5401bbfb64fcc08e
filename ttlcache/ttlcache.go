// This code was adapted from https://github.com/dapr/kit/tree/v0.15.4/
// Copyright (C) 2023 The Dapr Authors
// License: Apache2

// Package ttlcache implements an efficient cache with a TTL.
// Expired items are evicted as their TTL elapses, using a single background goroutine parked on the next expiration.
package ttlcache

import (
	"time"

	"github.com/alphadose/haxmap"
	kclock "k8s.io/utils/clock"

	"github.com/OrangeDS/timerkit/eventqueue"
)

// Cache is an efficient cache with a TTL.
type Cache[V any] struct {
	m      *haxmap.Map[string, cacheEntry[V]]
	clock  kclock.Clock
	expiry *eventqueue.Processor[string, expiration]
	maxTTL time.Duration
}

// CacheOptions are options for NewCache.
type CacheOptions struct {
	// Initial size for the cache.
	// This is optional, and if empty will be left to the underlying library to decide.
	InitialSize int32

	// Maximum TTL value, if greater than 0
	MaxTTL time.Duration

	// Internal clock property, used for testing
	clock kclock.Clock
}

// NewCache returns a new cache with a TTL.
func NewCache[V any](opts *CacheOptions) *Cache[V] {
	var m *haxmap.Map[string, cacheEntry[V]]

	if opts == nil {
		opts = &CacheOptions{}
	}

	if opts.InitialSize > 0 {
		m = haxmap.New[string, cacheEntry[V]](uintptr(opts.InitialSize))
	} else {
		m = haxmap.New[string, cacheEntry[V]]()
	}

	if opts.clock == nil {
		opts.clock = kclock.RealClock{}
	}

	c := &Cache[V]{
		m:      m,
		clock:  opts.clock,
		maxTTL: opts.MaxTTL,
	}
	c.expiry = eventqueue.NewProcessor(eventqueue.Options[string, expiration]{
		ExecuteFn: c.evict,
		Clock:     opts.clock,
	})

	return c
}

// Get returns an item from the cache.
// Items that have expired are not returned, even if they haven't been evicted yet.
func (c *Cache[V]) Get(key string) (v V, ok bool) {
	val, ok := c.m.Get(key)
	if !ok || !val.exp.After(c.clock.Now()) {
		return v, false
	}
	return val.val, true
}

// Set an item in the cache.
// Setting a key that already exists replaces its value and reschedules its eviction for the new TTL.
func (c *Cache[V]) Set(key string, val V, ttl time.Duration) {
	if ttl < time.Millisecond {
		panic("invalid TTL: must be 1ms or greater")
	}

	if c.maxTTL > 0 && ttl > c.maxTTL {
		ttl = c.maxTTL
	}

	exp := c.clock.Now().Add(ttl)
	c.m.Set(key, cacheEntry[V]{
		val: val,
		exp: exp,
	})

	// Replaces any eviction already scheduled for the same key
	_ = c.expiry.Enqueue(expiration{key: key, at: exp})
}

// Delete an item from the cache
func (c *Cache[V]) Delete(key string) {
	c.m.Del(key)
	c.expiry.Dequeue(key)
}

// Reset removes all entries from the cache.
func (c *Cache[V]) Reset() {
	// Look for all keys and then remove them in bulk
	// This is more efficient than removing keys one-by-one
	// However, this could lead to a race condition where keys that are updated after ForEach ends are deleted nevertheless.
	// This is considered acceptable in this case as this is just a cache.
	keys := make([]string, 0, c.m.Len())
	c.m.ForEach(func(k string, v cacheEntry[V]) bool {
		keys = append(keys, k)
		return true
	})

	c.m.Del(keys...)
	for _, k := range keys {
		c.expiry.Dequeue(k)
	}
}

// Stop the cache, stopping the background eviction process.
func (c *Cache[V]) Stop() {
	_ = c.expiry.Close()
}

// evict removes an item whose TTL has elapsed.
// The item could have been replaced while this eviction was already executing,
// so only values that are in fact expired are removed.
func (c *Cache[V]) evict(e expiration) {
	v, ok := c.m.Get(e.key)
	if ok && !v.exp.After(c.clock.Now()) {
		c.m.Del(e.key)
	}
}

// Each item in the cache is stored in a cacheEntry, which includes the value as well as its expiration time.
type cacheEntry[V any] struct {
	val V
	exp time.Time
}

// expiration is a scheduled eviction for a cache key.
type expiration struct {
	key string
	at  time.Time
}

// Key returns the cache key to evict.
func (e expiration) Key() string {
	return e.key
}

// DueTime returns the time the key expires at.
func (e expiration) DueTime() time.Time {
	return e.at
}
