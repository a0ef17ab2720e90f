package cache

import "sync"

// Cache is a thread-safe LRU cache. When it holds more than its limit,
// the least recently used entries are evicted.
type Cache[K comparable, V any] struct {
	mu      sync.Mutex
	index   map[K]*lruNode[K, V]
	order   lruList[K, V]
	limit   int
	hits    uint64
	misses  uint64
	evicted uint64
}

// New creates a cache holding at most limit entries. A limit of 0 means
// unlimited.
func New[K comparable, V any](limit int) *Cache[K, V] {
	return &Cache[K, V]{
		index: make(map[K]*lruNode[K, V]),
		limit: limit,
	}
}

// Get returns the value for key and marks it recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.index[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	c.order.moveToFront(n)
	return n.value, true
}

// Set stores value under key, evicting old entries if over the limit.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setLocked(key, value)
}

// GetOrCreate returns the cached value or stores the result of create.
// create runs under the lock, so concurrent callers never build the same
// key twice.
func (c *Cache[K, V]) GetOrCreate(key K, create func() V) V {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n, ok := c.index[key]; ok {
		c.hits++
		c.order.moveToFront(n)
		return n.value
	}
	c.misses++
	v := create()
	c.setLocked(key, v)
	return v
}

func (c *Cache[K, V]) setLocked(key K, value V) {
	if n, ok := c.index[key]; ok {
		n.value = value
		c.order.moveToFront(n)
		return
	}
	c.index[key] = c.order.pushFront(key, value)
	for c.limit > 0 && c.order.len > c.limit {
		old := c.order.removeOldest()
		delete(c.index, old.key)
		c.evicted++
	}
}

// Delete removes key and reports whether it was present.
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.index[key]
	if ok {
		c.order.unlink(n)
		delete(c.index, key)
	}
	return ok
}

// DeleteFunc removes every entry whose key matches and returns how many
// were removed.
func (c *Cache[K, V]) DeleteFunc(match func(K) bool) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for k, n := range c.index {
		if match(k) {
			c.order.unlink(n)
			delete(c.index, k)
			removed++
		}
	}
	return removed
}

// Clear removes all entries. Statistics are kept.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.index = make(map[K]*lruNode[K, V])
	c.order = lruList[K, V]{}
}

// Len returns the number of entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.len
}

// Stats returns a snapshot of the cache counters.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Stats{
		Len:     c.order.len,
		Limit:   c.limit,
		Hits:    c.hits,
		Misses:  c.misses,
		Evicted: c.evicted,
	}
}

// Stats contains cache statistics.
type Stats struct {
	Len     int
	Limit   int
	Hits    uint64
	Misses  uint64
	Evicted uint64
}

// HitRate returns hits / (hits + misses), or 0 before any lookup.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}
