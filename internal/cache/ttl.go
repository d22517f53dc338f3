package cache

import (
	"strings"
	"sync"
	"time"

	"github.com/teamops/adboard/internal/clock"
)

// Cache is a TTL key-value store. A read past expiry evicts the entry and
// reports a miss; absence is the only failure mode.
type Cache[K comparable, V any] interface {
	Get(key K) (V, bool)
	Set(key K, value V, ttl time.Duration)
	Invalidate(key K)
	DeleteFunc(match func(K) bool)
	Clear()
	Len() int
}

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

type ttlCache[K comparable, V any] struct {
	mu         sync.Mutex
	entries    map[K]entry[V]
	clk        clock.Clock
	defaultTTL time.Duration
}

// NewTTLCache returns an in-memory cache with lazy expiration on read.
// A non-positive ttl on Set falls back to defaultTTL.
func NewTTLCache[K comparable, V any](clk clock.Clock, defaultTTL time.Duration) Cache[K, V] {
	if clk == nil {
		clk = clock.NewSystemClock()
	}
	return &ttlCache[K, V]{
		entries:    make(map[K]entry[V]),
		clk:        clk,
		defaultTTL: defaultTTL,
	}
}

func (c *ttlCache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	e, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	if c.clk.Now().After(e.expiresAt) {
		delete(c.entries, key)
		return zero, false
	}
	return e.value, true
}

func (c *ttlCache[K, V]) Set(key K, value V, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry[V]{
		value:     value,
		expiresAt: c.clk.Now().Add(ttl),
	}
}

func (c *ttlCache[K, V]) Invalidate(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

func (c *ttlCache[K, V]) DeleteFunc(match func(K) bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if match(key) {
			delete(c.entries, key)
		}
	}
}

func (c *ttlCache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[K]entry[V])
}

// Len counts live entries, evicting any that expired.
func (c *ttlCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.clk.Now()
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
		}
	}
	return len(c.entries)
}

// InvalidateByPrefix removes every string-keyed entry whose key starts with prefix.
func InvalidateByPrefix[V any](c Cache[string, V], prefix string) {
	c.DeleteFunc(func(key string) bool {
		return strings.HasPrefix(key, prefix)
	})
}

// Key joins non-empty parts into a lowercase cache key.
func Key(parts ...string) string {
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		values = append(values, strings.ToLower(trimmed))
	}
	return strings.Join(values, "|")
}
