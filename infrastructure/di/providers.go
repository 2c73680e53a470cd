package di

import (
	"fmt"

	"forzeit/application/commands"
	"forzeit/application/commands/bus"
	"forzeit/application/ports"
	"forzeit/application/queries"
	querybus "forzeit/application/queries/bus"
	"forzeit/application/services"
	"forzeit/domain/core/entities"
	domainservices "forzeit/domain/services"
	"forzeit/infrastructure/cache"
	"forzeit/infrastructure/config"
	"forzeit/infrastructure/persistence/memory"
	"forzeit/pkg/auth"
	pkgerrors "forzeit/pkg/errors"
	"forzeit/pkg/observability"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// InsightsStore is the generic TTL cache instantiated for insights
type InsightsStore = cache.TTLCache[ports.InsightsKey, entities.AvaInsights]

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var zcfg zap.Config
	if cfg.IsProduction() {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}

	if cfg.LogLevel != "" {
		level, err := zapcore.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
		}
		zcfg.Level = zap.NewAtomicLevelAt(level)
	}

	return zcfg.Build()
}

// ProvideStore loads the seed file into the in-memory record store
func ProvideStore(cfg *config.Config, logger *zap.Logger) *memory.Store {
	return memory.NewStoreFromFile(cfg.SeedPath, logger)
}

// ProvideMetrics creates the Prometheus collector
func ProvideMetrics() *observability.Collector {
	return observability.NewCollector("forzeit")
}

// ProvideInsightsStore creates the TTL cache backing insights. The sweeper
// is started by the entry point that owns the process lifetime.
func ProvideInsightsStore(cfg *config.Config, metrics *observability.Collector, logger *zap.Logger) *InsightsStore {
	return cache.New[ports.InsightsKey, entities.AvaInsights](
		cache.WithSweepInterval(cfg.CacheSweepInterval),
		cache.WithLogger(logger.Named("insights_cache")),
		cache.WithSweepObserver(metrics.RecordCacheSweep),
	)
}

// ProvideInsightsCache adapts the TTL cache to the port
func ProvideInsightsCache(store *InsightsStore) ports.InsightsCache {
	return cache.NewInsightsCache(store)
}

// ProvideInsightsEngine creates the insights engine
func ProvideInsightsEngine(logger *zap.Logger) *domainservices.InsightsEngine {
	return domainservices.NewInsightsEngine(logger)
}

// ProvideInsightsService creates the insights orchestrator
func ProvideInsightsService(
	cfg *config.Config,
	store *memory.Store,
	insightsCache ports.InsightsCache,
	engine *domainservices.InsightsEngine,
	metrics *observability.Collector,
	logger *zap.Logger,
) *services.InsightsService {
	return services.NewInsightsService(
		store,
		store,
		store,
		insightsCache,
		engine,
		cfg.InsightsTTL,
		metrics,
		logger,
	)
}

// ProvideCommandBus creates a command bus with registered handlers
func ProvideCommandBus(
	store *memory.Store,
	insights *services.InsightsService,
	metrics *observability.Collector,
	logger *zap.Logger,
) (*bus.CommandBus, error) {
	commandBus := bus.NewCommandBus(
		bus.LoggingMiddleware(logger),
		bus.MetricsMiddleware(metrics),
	)

	registrations := []struct {
		cmd     bus.Command
		handler bus.CommandHandler
	}{
		{
			commands.CreateCardCommand{},
			bus.Handler[commands.CreateCardCommand, *entities.Card](
				commands.NewCreateCardHandler(store, store, insights, logger),
			),
		},
		{
			commands.UpdateCardStatusCommand{},
			bus.Handler[commands.UpdateCardStatusCommand, *entities.Card](
				commands.NewUpdateCardStatusHandler(store, insights, logger),
			),
		},
	}

	for _, r := range registrations {
		if err := commandBus.Register(r.cmd, r.handler); err != nil {
			return nil, err
		}
	}

	return commandBus, nil
}

// ProvideQueryBus creates a query bus with registered handlers
func ProvideQueryBus(
	store *memory.Store,
	insights *services.InsightsService,
	engine *domainservices.InsightsEngine,
	metrics *observability.Collector,
	logger *zap.Logger,
) (*querybus.QueryBus, error) {
	queryBus := querybus.NewQueryBus(
		querybus.LoggingMiddleware(logger),
		querybus.MetricsMiddleware(metrics),
	)

	registrations := []struct {
		query   querybus.Query
		handler querybus.QueryHandler
	}{
		{
			queries.GetWeekQuery{},
			querybus.Handler[queries.GetWeekQuery, *entities.Week](queries.NewGetWeekHandler(store)),
		},
		{
			queries.ListWeeksQuery{},
			querybus.Handler[queries.ListWeeksQuery, *queries.ListWeeksResult](queries.NewListWeeksHandler(store)),
		},
		{
			queries.GetInsightsQuery{},
			querybus.Handler[queries.GetInsightsQuery, *services.InsightsResult](queries.NewGetInsightsHandler(insights)),
		},
		{
			queries.ListWeekSessionsQuery{},
			querybus.Handler[queries.ListWeekSessionsQuery, []queries.SessionDTO](
				queries.NewListWeekSessionsHandler(store, store, engine),
			),
		},
	}

	for _, r := range registrations {
		if err := queryBus.Register(r.query, r.handler); err != nil {
			return nil, err
		}
	}

	return queryBus, nil
}

func jwtConfig(cfg *config.Config) auth.JWTConfig {
	return auth.JWTConfig{
		SecretKey:  cfg.JWTSecret,
		Issuer:     cfg.JWTIssuer,
		Audience:   []string{cfg.JWTAudience},
		ExpiryTime: cfg.TokenTTL,
	}
}

// ProvideJWTValidator creates the bearer token validator
func ProvideJWTValidator(cfg *config.Config) (*auth.JWTValidator, error) {
	return auth.NewJWTValidator(jwtConfig(cfg))
}

// ProvideJWTGenerator creates the token generator used by /auth/test-token
func ProvideJWTGenerator(cfg *config.Config) (*auth.JWTGenerator, error) {
	return auth.NewJWTGenerator(jwtConfig(cfg))
}

// ProvideRateLimiter creates the per-IP rate limiter
func ProvideRateLimiter(cfg *config.Config) *auth.IPRateLimiter {
	return auth.NewIPRateLimiter(cfg.RateLimitPerMinute)
}

// ProvideErrorHandler creates the HTTP error handler
func ProvideErrorHandler(cfg *config.Config, logger *zap.Logger) *pkgerrors.ErrorHandler {
	return pkgerrors.NewErrorHandler(logger, !cfg.IsProduction())
}
