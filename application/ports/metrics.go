package ports

// CacheMetrics records insights cache activity
type CacheMetrics interface {
	RecordCacheLookup(hit bool)
	RecordCacheInvalidation()
}

// NoopCacheMetrics discards every observation
type NoopCacheMetrics struct{}

// RecordCacheLookup implements CacheMetrics
func (NoopCacheMetrics) RecordCacheLookup(bool) {}

// RecordCacheInvalidation implements CacheMetrics
func (NoopCacheMetrics) RecordCacheInvalidation() {}
