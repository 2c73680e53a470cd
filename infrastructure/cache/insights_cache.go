package cache

import (
	"sync"
	"time"

	"forzeit/application/ports"
	"forzeit/domain/core/entities"
)

// InsightsCache adapts TTLCache to the ports.InsightsCache interface.
// Snapshots are cloned on the way in and out so callers never share slices
// with the stored value.
type InsightsCache struct {
	store *TTLCache[ports.InsightsKey, entities.AvaInsights]

	// mu orders generation bumps against guarded writes
	mu          sync.Mutex
	generations map[ports.InsightsKey]uint64
}

// NewInsightsCache wraps a typed TTLCache
func NewInsightsCache(store *TTLCache[ports.InsightsKey, entities.AvaInsights]) *InsightsCache {
	return &InsightsCache{
		store:       store,
		generations: make(map[ports.InsightsKey]uint64),
	}
}

// Get implements ports.InsightsCache
func (c *InsightsCache) Get(key ports.InsightsKey) (entities.AvaInsights, bool) {
	insights, ok := c.store.Get(key)
	if !ok {
		return entities.AvaInsights{}, false
	}
	return insights.Clone(), true
}

// Set implements ports.InsightsCache
func (c *InsightsCache) Set(key ports.InsightsKey, insights entities.AvaInsights, ttl time.Duration) {
	c.store.Set(key, insights.Clone(), ttl)
}

// Generation implements ports.InsightsCache
func (c *InsightsCache) Generation(key ports.InsightsKey) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[key]
}

// SetIfGeneration implements ports.InsightsCache
func (c *InsightsCache) SetIfGeneration(key ports.InsightsKey, insights entities.AvaInsights, ttl time.Duration, generation uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generations[key] != generation {
		return false
	}
	c.store.Set(key, insights.Clone(), ttl)
	return true
}

// Delete implements ports.InsightsCache
func (c *InsightsCache) Delete(key ports.InsightsKey) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generations[key]++
	return c.store.Delete(key)
}

// Stats implements ports.InsightsCache
func (c *InsightsCache) Stats() ports.CacheStats {
	s := c.store.Stats()
	return ports.CacheStats{
		TotalEntries:   s.TotalEntries,
		ValidEntries:   s.ValidEntries,
		ExpiredEntries: s.ExpiredEntries,
	}
}

var _ ports.InsightsCache = (*InsightsCache)(nil)
