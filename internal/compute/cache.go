// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compute

import (
	"bytes"
	"container/list"
	"encoding/json"
	"sync"
	"time"

	"github.com/pdiddy/skyquery/internal/errors"
	"github.com/pdiddy/skyquery/internal/metrics"
)

// Per-operation time to live.
const (
	TTLCoordinates    = 15 * time.Second
	TTLEphemeris      = 30 * time.Second
	TTLRiseTransitSet = 30 * time.Second
	TTLPhenomena      = 60 * time.Second
	TTLAlmanac        = 60 * time.Second
)

// DefaultCacheCapacity is the entry limit used when none is configured.
const DefaultCacheCapacity = 512

// cacheTimeLayout renders times at whole-second precision.
const cacheTimeLayout = "2006-01-02T15:04:05.000Z"

// CacheEntry is one cached response.
type CacheEntry struct {
	Key       string
	Value     any
	ExpiresAt time.Time
}

// Cache is a TTL cache bounded by entry count with least-recently-used
// eviction. It is safe for concurrent use; the lock is never held while a
// value is being computed.
type Cache struct {
	mu       sync.Mutex
	capacity int
	ll       *list.List
	items    map[string]*list.Element
	now      func() time.Time
}

// NewCache returns a cache holding at most capacity entries. A capacity of
// zero or less disables caching.
func NewCache(capacity int) *Cache {
	return &Cache{
		capacity: capacity,
		ll:       list.New(),
		items:    make(map[string]*list.Element),
		now:      time.Now,
	}
}

// Get returns the live value for key. Expired entries are removed.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		return nil, false
	}
	e := el.Value.(*CacheEntry)
	if !c.now().Before(e.ExpiresAt) {
		c.ll.Remove(el)
		delete(c.items, key)
		return nil, false
	}
	c.ll.MoveToFront(el)
	return e.Value, true
}

// Set stores value under key for ttl, evicting the least recently used
// entries beyond capacity.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	if c.capacity <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	expires := c.now().Add(ttl)
	if el, ok := c.items[key]; ok {
		e := el.Value.(*CacheEntry)
		e.Value, e.ExpiresAt = value, expires
		c.ll.MoveToFront(el)
		return
	}
	c.items[key] = c.ll.PushFront(&CacheEntry{Key: key, Value: value, ExpiresAt: expires})
	for c.ll.Len() > c.capacity {
		oldest := c.ll.Back()
		c.ll.Remove(oldest)
		delete(c.items, oldest.Value.(*CacheEntry).Key)
		metrics.IncCacheEviction()
	}
}

// Len returns the number of entries, including expired ones not yet read.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

// Purge removes every entry.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ll.Init()
	c.items = make(map[string]*list.Element)
}

// serializeCacheKey renders op and req as "op:" + canonical JSON. Every
// timestamp in req is rewritten to UTC truncated to the second, so requests
// that differ only in sub-second jitter share a key. Object keys are sorted.
func serializeCacheKey(op string, req any) (string, error) {
	raw, err := json.Marshal(req)
	if err != nil {
		return "", errors.Wrapf(err, "serializing %s cache key", op)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return "", errors.Wrapf(err, "serializing %s cache key", op)
	}
	canon, err := json.Marshal(truncateTimes(v))
	if err != nil {
		return "", errors.Wrapf(err, "serializing %s cache key", op)
	}
	return op + ":" + string(canon), nil
}

func truncateTimes(v any) any {
	switch x := v.(type) {
	case map[string]any:
		for k, val := range x {
			x[k] = truncateTimes(val)
		}
	case []any:
		for i, val := range x {
			x[i] = truncateTimes(val)
		}
	case string:
		if t, err := time.Parse(time.RFC3339Nano, x); err == nil {
			return t.UTC().Truncate(time.Second).Format(cacheTimeLayout)
		}
	}
	return v
}
