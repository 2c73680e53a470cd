package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"forzeit/application/ports"
	"forzeit/domain/core/entities"
	domainservices "forzeit/domain/services"
	pkgerrors "forzeit/pkg/errors"
)

// DefaultInsightsTTL is how long computed insights stay fresh
const DefaultInsightsTTL = 60 * time.Second

// CacheStatus tells whether insights were served from the cache
type CacheStatus string

const (
	CacheHit  CacheStatus = "HIT"
	CacheMiss CacheStatus = "MISS"
)

// InsightsResult carries computed insights and how they were obtained
type InsightsResult struct {
	Insights entities.AvaInsights `json:"insights"`
	Cache    CacheStatus          `json:"cache"`
}

// InsightsService is the single entry point for reading week insights.
// Ownership is checked before the cache is consulted or populated.
type InsightsService struct {
	weeks    ports.WeekRepository
	cards    ports.CardRepository
	sessions ports.SessionRepository
	cache    ports.InsightsCache
	engine   *domainservices.InsightsEngine
	ttl      time.Duration
	metrics  ports.CacheMetrics
	logger   *zap.Logger
}

// NewInsightsService creates a new insights service
func NewInsightsService(
	weeks ports.WeekRepository,
	cards ports.CardRepository,
	sessions ports.SessionRepository,
	cache ports.InsightsCache,
	engine *domainservices.InsightsEngine,
	ttl time.Duration,
	metrics ports.CacheMetrics,
	logger *zap.Logger,
) *InsightsService {
	if ttl <= 0 {
		ttl = DefaultInsightsTTL
	}
	if metrics == nil {
		metrics = ports.NoopCacheMetrics{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InsightsService{
		weeks:    weeks,
		cards:    cards,
		sessions: sessions,
		cache:    cache,
		engine:   engine,
		ttl:      ttl,
		metrics:  metrics,
		logger:   logger,
	}
}

// GetInsights returns the insights of a week for its owner.
// A missing week is reported as not found before any authorization check.
func (s *InsightsService) GetInsights(ctx context.Context, weekID string, principal *ports.Principal) (*InsightsResult, error) {
	// Resolve week
	week, err := s.weeks.GetWeekByID(ctx, weekID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, pkgerrors.NewNotFoundError("Week", weekID)
		}
		return nil, pkgerrors.Wrap(err, "failed to load week")
	}

	// Authorize
	if err := RequireOwnership(principal, week.UserID); err != nil {
		return nil, err
	}

	key := ports.InsightsKey{WeekID: weekID, RequesterID: principal.ID}

	if cached, ok := s.cache.Get(key); ok {
		s.metrics.RecordCacheLookup(true)
		s.logger.Debug("Insights cache hit", zap.Stringer("key", key))
		return &InsightsResult{Insights: cached, Cache: CacheHit}, nil
	}
	s.metrics.RecordCacheLookup(false)

	// Captured before loading so an invalidation during compute wins
	generation := s.cache.Generation(key)

	insights, err := s.compute(ctx, week)
	if err != nil {
		return nil, err
	}

	if !s.cache.SetIfGeneration(key, insights, s.ttl, generation) {
		s.logger.Debug("Insights invalidated during computation, not cached",
			zap.Stringer("key", key),
		)
		return &InsightsResult{Insights: insights, Cache: CacheMiss}, nil
	}
	s.logger.Debug("Insights computed and cached",
		zap.Stringer("key", key),
		zap.Int("focus_score", insights.FocusScore),
		zap.Duration("ttl", s.ttl),
	)

	return &InsightsResult{Insights: insights, Cache: CacheMiss}, nil
}

// Invalidate drops the cached insights of weekID for ownerID
func (s *InsightsService) Invalidate(weekID, ownerID string) {
	key := ports.InsightsKey{WeekID: weekID, RequesterID: ownerID}
	removed := s.cache.Delete(key)
	s.metrics.RecordCacheInvalidation()
	s.logger.Info("Insights cache invalidated",
		zap.Stringer("key", key),
		zap.Bool("removed", removed),
	)
}

// Stats returns a diagnostic snapshot of the insights cache
func (s *InsightsService) Stats() ports.CacheStats {
	return s.cache.Stats()
}

func (s *InsightsService) compute(ctx context.Context, week *entities.Week) (entities.AvaInsights, error) {
	cards, err := s.cards.ListCardsByWeek(ctx, week.ID)
	if err != nil {
		return entities.AvaInsights{}, pkgerrors.Wrap(err, "failed to load cards")
	}

	sessions, err := s.sessions.ListSessionsByWeekRange(ctx, week.UserID, week.StartISO)
	if err != nil {
		return entities.AvaInsights{}, pkgerrors.Wrap(err, "failed to load sessions")
	}

	return s.engine.ComputeInsights(cards, sessions), nil
}

var _ ports.InsightsInvalidator = (*InsightsService)(nil)
