package handlers

import (
	"net/http"
	"time"

	"forzeit/application/ports"

	"go.uber.org/zap"
)

// CacheStatsReader exposes insights cache diagnostics
type CacheStatsReader interface {
	Stats() ports.CacheStats
}

// CacheHandler serves cache diagnostics
type CacheHandler struct {
	cache  CacheStatsReader
	now    func() time.Time
	logger *zap.Logger
}

// NewCacheHandler creates a new cache handler
func NewCacheHandler(cache CacheStatsReader, logger *zap.Logger) *CacheHandler {
	return &CacheHandler{
		cache:  cache,
		now:    time.Now,
		logger: logger,
	}
}

// CacheStatsResponse is a point-in-time cache snapshot
type CacheStatsResponse struct {
	ports.CacheStats
	Timestamp string `json:"timestamp"`
}

// GetStats handles GET /cache/stats
func (h *CacheHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	respond(w, h.logger, http.StatusOK, CacheStatsResponse{
		CacheStats: h.cache.Stats(),
		Timestamp:  h.now().UTC().Format(time.RFC3339),
	})
}
