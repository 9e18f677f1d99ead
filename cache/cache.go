package cache

import (
	"sync"
	"time"

	"github.com/jonwraymond/toolrouter/search"
)

// entry is a node in the intrusive LRU list. Entries are owned
// exclusively by the cache and never escape it.
type entry struct {
	key        string
	value      []search.Match
	insertedAt time.Time
	lastAccess time.Time
	prev, next *entry
}

// ResultCache is a bounded LRU+TTL cache from query key to match list.
//
// Eviction is strict LRU over an intrusive doubly-linked list with a
// map from key to node: Get hits and Set both move the entry to the
// most-recently-used position, and inserting beyond capacity evicts the
// least-recently-used entry.
//
// Expiry is measured from insertion, not last access: an entry older
// than the TTL is expired no matter how recently it was read. Get on an
// expired entry removes it and reports a miss.
//
// Keys are raw query strings; the cache performs no normalization.
// A single mutex guards all state; contention is low relative to the
// backend I/O the cache fronts.
type ResultCache struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	entries map[string]*entry
	head    *entry // sentinel; head.next is most recently used
	tail    *entry // sentinel; tail.prev is least recently used
	hits    uint64
	misses  uint64

	// now is replaceable for deterministic expiry tests.
	now func() time.Time
}

// New creates a cache holding at most maxSize entries, each expiring
// ttl after insertion. maxSize values below 1 are treated as 1.
func New(maxSize int, ttl time.Duration) *ResultCache {
	if maxSize < 1 {
		maxSize = 1
	}
	head := &entry{}
	tail := &entry{}
	head.next = tail
	tail.prev = head
	return &ResultCache{
		maxSize: maxSize,
		ttl:     ttl,
		entries: make(map[string]*entry),
		head:    head,
		tail:    tail,
		now:     time.Now,
	}
}

// Get returns the cached value for key. The second return value
// reports whether an unexpired entry was present; a stored nil value is
// returned as (nil, true). Expired entries are removed on access.
func (c *ResultCache) Get(key string) ([]search.Match, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.misses++
		return nil, false
	}
	if c.expired(e) {
		c.unlink(e)
		delete(c.entries, key)
		c.misses++
		return nil, false
	}

	e.lastAccess = c.now()
	c.moveToFront(e)
	c.hits++
	return e.value, true
}

// Set stores value under key, refreshing the insertion time and moving
// the entry to the most-recently-used position. Inserting beyond
// capacity evicts the least-recently-used entry first.
func (c *ResultCache) Set(key string, value []search.Match) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if e, ok := c.entries[key]; ok {
		e.value = value
		e.insertedAt = now
		e.lastAccess = now
		c.moveToFront(e)
		return
	}

	if len(c.entries) >= c.maxSize {
		lru := c.tail.prev
		if lru != c.head {
			c.unlink(lru)
			delete(c.entries, lru.key)
		}
	}

	e := &entry{key: key, value: value, insertedAt: now, lastAccess: now}
	c.entries[key] = e
	c.pushFront(e)
}

// RemoveExpired sweeps all expired entries and returns how many were
// removed.
func (c *ResultCache) RemoveExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for e := c.head.next; e != c.tail; {
		next := e.next
		if c.expired(e) {
			c.unlink(e)
			delete(c.entries, e.key)
			removed++
		}
		e = next
	}
	return removed
}

// Clear removes every entry and returns how many were removed. The
// cumulative hit/miss counters persist across clears.
func (c *ResultCache) Clear() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := len(c.entries)
	c.entries = make(map[string]*entry)
	c.head.next = c.tail
	c.tail.prev = c.head
	return removed
}

// Stats describes the cache for diagnostics.
type Stats struct {
	Size    int
	MaxSize int
	TTL     time.Duration
	Hits    uint64
	Misses  uint64

	// HitRate is hits/(hits+misses) over the cache's lifetime, or 0
	// before any lookup.
	HitRate float64
}

// Stats returns a snapshot of the cache counters.
func (c *ResultCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{
		Size:    len(c.entries),
		MaxSize: c.maxSize,
		TTL:     c.ttl,
		Hits:    c.hits,
		Misses:  c.misses,
	}
	if total := c.hits + c.misses; total > 0 {
		s.HitRate = float64(c.hits) / float64(total)
	}
	return s
}

func (c *ResultCache) expired(e *entry) bool {
	return c.ttl > 0 && c.now().Sub(e.insertedAt) > c.ttl
}

func (c *ResultCache) unlink(e *entry) {
	e.prev.next = e.next
	e.next.prev = e.prev
	e.prev = nil
	e.next = nil
}

func (c *ResultCache) pushFront(e *entry) {
	e.next = c.head.next
	e.prev = c.head
	c.head.next.prev = e
	c.head.next = e
}

func (c *ResultCache) moveToFront(e *entry) {
	c.unlink(e)
	c.pushFront(e)
}
