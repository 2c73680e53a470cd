package ports

import (
	"time"

	"forzeit/domain/core/entities"
)

// InsightsKey identifies a cached insights snapshot. The requester is part of
// the key so two principals never share a slot.
type InsightsKey struct {
	WeekID      string
	RequesterID string
}

// String renders the key for logs
func (k InsightsKey) String() string {
	return "ava_insights:" + k.RequesterID + ":" + k.WeekID
}

// CacheStats is a diagnostic snapshot of the insights cache
type CacheStats struct {
	TotalEntries   int `json:"totalEntries"`
	ValidEntries   int `json:"validEntries"`
	ExpiredEntries int `json:"expiredEntries"`
}

// InsightsCache stores computed insights with a TTL.
// Every Delete advances the generation of its key. SetIfGeneration stores
// only while the generation still matches, so a computation that started
// before an invalidation cannot repopulate the slot.
type InsightsCache interface {
	Get(key InsightsKey) (entities.AvaInsights, bool)
	Set(key InsightsKey, insights entities.AvaInsights, ttl time.Duration)
	Generation(key InsightsKey) uint64
	SetIfGeneration(key InsightsKey, insights entities.AvaInsights, ttl time.Duration, generation uint64) bool
	Delete(key InsightsKey) bool
	Stats() CacheStats
}

// InsightsInvalidator drops cached insights after a write to the week
type InsightsInvalidator interface {
	Invalidate(weekID, ownerID string)
}
