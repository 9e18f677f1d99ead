// Package cache provides the bounded LRU+TTL cache for routing results.
// See [ResultCache] for the eviction and expiry semantics.
package cache
