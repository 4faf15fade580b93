package cache

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/standingsfeed/standings-service/config"
	"github.com/standingsfeed/standings-service/internal/app/models"
)

// ResultCache is the two-tier snapshot store: a bounded in-memory LRU in
// front of the persistent file store. An entry past its TTL is stale but
// still eligible for fallback use; only entries past the max retention age
// are deleted. Cache I/O failures are logged and treated as misses.
type ResultCache struct {
	config config.Cache
	store  *FileStore
	logger Logger

	mu     sync.Mutex
	memory *lru
}

func NewResultCache(config config.Cache, store *FileStore, logger Logger) *ResultCache {
	return &ResultCache{
		config: config,
		store:  store,
		logger: logger,
		memory: newLRU(config.MemoryEntries),
	}
}

// Get returns a fresh snapshot for key. A stale entry is treated as absent;
// a stale entry that is also past the max retention age is removed from both
// tiers on the spot.
func (c *ResultCache) Get(key string) (*models.LeagueSnapshot, bool) {
	entry, ok := c.lookup(key)
	if !ok {
		return nil, false
	}

	now := time.Now()
	if entry.Expired(now) {
		if entry.Age(now) > c.config.MaxAge {
			c.Delete(key)
		}

		return nil, false
	}

	snapshot := entry.Snapshot

	return &snapshot, true
}

// Fallback returns the most recent snapshot for key regardless of TTL, for
// use when a refresh fails. Entries past the max retention age do not
// qualify.
func (c *ResultCache) Fallback(key string) (*models.LeagueSnapshot, bool) {
	entry, ok := c.lookup(key)
	if !ok {
		return nil, false
	}

	if entry.Age(time.Now()) > c.config.MaxAge {
		return nil, false
	}

	snapshot := entry.Snapshot

	return &snapshot, true
}

// Set writes the snapshot through to the persistent store and updates the
// memory tier, superseding any previous entry for the key. A zero ttl means
// the configured default.
func (c *ResultCache) Set(key string, snapshot models.LeagueSnapshot, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.config.DefaultTTL
	}

	entry := &Entry{
		Key:           key,
		Timestamp:     time.Now(),
		TTL:           ttl,
		Snapshot:      snapshot,
		SchemaVersion: SchemaVersion,
	}

	if err := c.store.Write(*entry); err != nil {
		c.logger.Error().Err(err).Str("key", key).Msg("failed to persist cache entry")
	}

	c.mu.Lock()
	c.memory.put(key, entry)
	c.mu.Unlock()
}

func (c *ResultCache) Delete(key string) {
	c.mu.Lock()
	c.memory.remove(key)
	c.mu.Unlock()

	if err := c.store.Remove(key); err != nil {
		c.logger.Error().Err(err).Str("key", key).Msg("failed to remove cache entry")
	}
}

func (c *ResultCache) ClearAll() error {
	c.mu.Lock()
	c.memory.clear()
	c.mu.Unlock()

	keys, err := c.store.Keys()
	if err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}

	for _, key := range keys {
		if err := c.store.Remove(key); err != nil {
			c.logger.Error().Err(err).Str("key", key).Msg("failed to remove cache entry")
		}
	}

	return nil
}

// CleanupExpired removes every persisted entry older than the max retention
// age and returns the number of entries removed. It is intended to run on a
// fixed period independent of access patterns.
func (c *ResultCache) CleanupExpired() (int, error) {
	keys, err := c.store.Keys()
	if err != nil {
		return 0, fmt.Errorf("failed to clean up cache: %w", err)
	}

	now := time.Now()
	removed := 0
	for _, key := range keys {
		entry, err := c.store.Read(key)
		if err != nil {
			c.logger.Error().Err(err).Str("key", key).Msg("failed to read cache entry during cleanup, removing")
			entry = nil
		}

		if entry != nil && entry.Age(now) <= c.config.MaxAge {
			continue
		}

		c.mu.Lock()
		c.memory.remove(key)
		c.mu.Unlock()

		if err := c.store.Remove(key); err != nil {
			c.logger.Error().Err(err).Str("key", key).Msg("failed to remove cache entry during cleanup")
			continue
		}
		removed++
	}

	return removed, nil
}

// Stats enumerates persisted entries with age, remaining TTL and size. It is
// read-only and has no side effects on recency or expiry.
func (c *ResultCache) Stats() ([]EntryStats, error) {
	keys, err := c.store.Keys()
	if err != nil {
		return nil, fmt.Errorf("failed to collect cache stats: %w", err)
	}

	sort.Strings(keys)

	now := time.Now()
	stats := make([]EntryStats, 0, len(keys))
	for _, key := range keys {
		entry, err := c.store.Read(key)
		if err != nil || entry == nil {
			continue
		}

		size, err := c.store.Size(key)
		if err != nil {
			size = 0
		}

		remaining := entry.TTL - entry.Age(now)
		if remaining < 0 {
			remaining = 0
		}

		stats = append(stats, EntryStats{
			Key:          key,
			Age:          entry.Age(now),
			RemainingTTL: remaining,
			SizeBytes:    size,
		})
	}

	return stats, nil
}

// lookup checks the memory tier first, refreshing recency on a hit, then
// falls back to the persistent store and promotes what it finds.
func (c *ResultCache) lookup(key string) (*Entry, bool) {
	c.mu.Lock()
	if entry, ok := c.memory.get(key); ok {
		c.mu.Unlock()
		return entry, true
	}
	c.mu.Unlock()

	entry, err := c.store.Read(key)
	if err != nil {
		c.logger.Error().Err(err).Str("key", key).Msg("failed to read persisted cache entry")
		return nil, false
	}
	if entry == nil {
		return nil, false
	}

	c.mu.Lock()
	c.memory.put(key, entry)
	c.mu.Unlock()

	return entry, true
}
