// Package dedup answers "have I seen this post before" across process
// restarts. It layers a bounded in-memory LRU over a durable Store; the
// durable tier is a best-effort optimization, so its failures degrade to
// memory-only operation instead of surfacing to callers.
package dedup

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"lexwatch/collector-service/internal/signature"
)

// Stats is a snapshot of cache activity.
type Stats struct {
	Checks    int64
	Hits      int64
	Additions int64
}

// HitRate is Hits/Checks, 0 when no checks have happened.
func (s Stats) HitRate() float64 {
	if s.Checks == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Checks)
}

// Cache is the two-tier deduplication cache. All methods are safe for
// concurrent use; the memory tier serializes on its own mutex, the durable
// tier relies on the storage engine's guarantees.
type Cache struct {
	mem    *lru
	store  Store // nil means memory-only
	ttl    time.Duration
	source string

	mu    sync.Mutex
	stats Stats
}

// New builds a cache with the given memory-tier capacity. store may be nil
// for memory-only operation; ttl bounds durable entries (zero = no expiry);
// source tags durable rows with the collector that produced them.
func New(capacity int, store Store, ttl time.Duration, source string) *Cache {
	return &Cache{
		mem:    newLRU(capacity),
		store:  store,
		ttl:    ttl,
		source: source,
	}
}

// IsDuplicate computes the composite signature for the given fields and
// checks both tiers, memory first. A durable-tier hit warms the memory tier
// so repeated hits stay fast. Durable-tier errors are logged and answered
// with "not a duplicate" — wrongly discarding a new post is worse than
// occasionally reprocessing an old one.
func (c *Cache) IsDuplicate(ctx context.Context, postID, url, text, author string) bool {
	sig := signature.Composite(postID, url, text, author)
	if sig == "" {
		return false // cannot deduplicate
	}

	c.mu.Lock()
	c.stats.Checks++
	c.mu.Unlock()

	if c.mem.Contains(sig) {
		c.recordHit()
		return true
	}
	if c.store == nil {
		return false
	}

	found, err := c.store.Has(ctx, sig)
	if err != nil {
		slog.Warn("dedup durable tier unreachable, degrading to memory-only",
			"error", err)
		return false
	}
	if found {
		c.mem.Add(sig) // warm the cache
		c.recordHit()
		return true
	}
	return false
}

// MarkProcessed records the post's signature in both tiers. It is
// idempotent: marking the same signature twice refreshes timestamps and
// never creates duplicate durable rows. Posts with no usable identity are
// silently skipped.
func (c *Cache) MarkProcessed(ctx context.Context, postID, url, text, author string) {
	sig := signature.Composite(postID, url, text, author)
	if sig == "" {
		return
	}

	c.mem.Add(sig)
	c.mu.Lock()
	c.stats.Additions++
	c.mu.Unlock()

	if c.store == nil {
		return
	}
	err := c.store.Put(ctx, Entry{
		Signature: sig,
		SeenAt:    time.Now(),
		TTL:       c.ttl,
		Source:    c.source,
	})
	if err != nil {
		slog.Warn("dedup durable write failed", "error", err)
	}
}

// Remove deletes a signature from both tiers.
func (c *Cache) Remove(ctx context.Context, postID, url, text, author string) error {
	sig := signature.Composite(postID, url, text, author)
	if sig == "" {
		return nil
	}
	c.mem.Remove(sig)
	if c.store == nil {
		return nil
	}
	return c.store.Remove(ctx, sig)
}

// ClearMemory drops the memory tier only. Durable entries survive, so a
// cleared memory cache still reports true for anything persisted.
func (c *Cache) ClearMemory() {
	c.mem.Clear()
}

// ClearAll drops both tiers.
func (c *Cache) ClearAll(ctx context.Context) error {
	c.mem.Clear()
	if c.store == nil {
		return nil
	}
	return c.store.Clear(ctx)
}

// PurgeExpired removes expired durable entries.
func (c *Cache) PurgeExpired(ctx context.Context) (int64, error) {
	if c.store == nil {
		return 0, nil
	}
	return c.store.PurgeExpired(ctx)
}

// Stats returns a snapshot of cache counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

func (c *Cache) recordHit() {
	c.mu.Lock()
	c.stats.Hits++
	c.mu.Unlock()
}
