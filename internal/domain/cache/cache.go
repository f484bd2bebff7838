// Package cache implements the fixed-capacity LRU result cache. Keys are
// xxhash64 digests of the normalized title; the full key string is kept in
// each entry so a hash collision degrades to a miss, never a wrong answer.
package cache

import (
	"container/list"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/corey/chara/internal/ports"
)

// DefaultCapacity is used when the configured capacity is not positive.
const DefaultCapacity = 4096

// Stats is a point-in-time snapshot of cache counters.
type Stats struct {
	Size        int
	Capacity    int
	Hits        uint64
	Misses      uint64
	HitRate     float64
	ApproxBytes int64
}

type entry struct {
	key        string
	results    []ports.DetectionResult
	lastAccess time.Time
	hitCount   uint64
	bytes      int64
}

// Cache is a mutex-guarded LRU. Critical sections are a map lookup plus a
// list splice, so a single lock holds up fine under the access pattern
// (microsecond computations, no I/O). An entry is either present and valid
// or absent — eviction removes it whole.
type Cache struct {
	mu       sync.Mutex
	capacity int
	ll       *list.List               // front = most recent
	items    map[uint64]*list.Element // xxhash64(key) -> element
	hits     uint64
	misses   uint64
	bytes    int64
}

// New creates a cache holding at most capacity entries.
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{
		capacity: capacity,
		ll:       list.New(),
		items:    make(map[uint64]*list.Element, capacity),
	}
}

// Get returns the stored results for a normalized title and refreshes its
// recency. The returned slice is a copy — callers cannot corrupt the cache.
func (c *Cache) Get(key string) ([]ports.DetectionResult, bool) {
	h := xxhash.Sum64String(key)

	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[h]
	if !ok {
		c.misses++
		return nil, false
	}
	e := el.Value.(*entry)
	if e.key != key { // hash collision: treat as miss
		c.misses++
		return nil, false
	}

	c.ll.MoveToFront(el)
	e.lastAccess = time.Now()
	e.hitCount++
	c.hits++

	out := make([]ports.DetectionResult, len(e.results))
	copy(out, e.results)
	return out, true
}

// Put stores results for a normalized title, evicting the least-recently
// used entry first when at capacity. The slice is copied in.
func (c *Cache) Put(key string, results []ports.DetectionResult) {
	h := xxhash.Sum64String(key)

	stored := make([]ports.DetectionResult, len(results))
	copy(stored, results)
	e := &entry{
		key:        key,
		results:    stored,
		lastAccess: time.Now(),
		bytes:      entryBytes(key, stored),
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[h]; ok {
		old := el.Value.(*entry)
		c.bytes += e.bytes - old.bytes
		el.Value = e
		c.ll.MoveToFront(el)
		return
	}

	for c.ll.Len() >= c.capacity {
		c.evictOldest()
	}

	c.items[h] = c.ll.PushFront(e)
	c.bytes += e.bytes
}

// evictOldest removes the back of the list. Caller holds c.mu.
func (c *Cache) evictOldest() {
	el := c.ll.Back()
	if el == nil {
		return
	}
	e := el.Value.(*entry)
	c.ll.Remove(el)
	delete(c.items, xxhash.Sum64String(e.key))
	c.bytes -= e.bytes
}

// Remove drops a single entry if present.
func (c *Cache) Remove(key string) {
	h := xxhash.Sum64String(key)

	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[h]
	if !ok {
		return
	}
	e := el.Value.(*entry)
	if e.key != key {
		return
	}
	c.ll.Remove(el)
	delete(c.items, h)
	c.bytes -= e.bytes
}

// Clear drops every entry. Counters survive — they describe the cache's
// lifetime, not its contents.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ll.Init()
	c.items = make(map[uint64]*list.Element, c.capacity)
	c.bytes = 0
}

// Stats returns a snapshot of the counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{
		Size:        c.ll.Len(),
		Capacity:    c.capacity,
		Hits:        c.hits,
		Misses:      c.misses,
		ApproxBytes: c.bytes,
	}
	if total := c.hits + c.misses; total > 0 {
		s.HitRate = float64(c.hits) / float64(total)
	}
	return s
}

// entryBytes estimates an entry's memory footprint for the stats report.
func entryBytes(key string, results []ports.DetectionResult) int64 {
	n := int64(len(key)) + 64 // entry struct + list element overhead
	for _, r := range results {
		n += int64(len(r.Character)+len(r.Series)) + 24
	}
	return n
}
