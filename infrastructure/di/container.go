package di

import (
	"context"

	"forzeit/application/commands/bus"
	querybus "forzeit/application/queries/bus"
	"forzeit/application/services"
	"forzeit/infrastructure/config"
	"forzeit/infrastructure/persistence/memory"
	"forzeit/pkg/auth"
	pkgerrors "forzeit/pkg/errors"
	"forzeit/pkg/observability"

	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config        *config.Config
	Logger        *zap.Logger
	Store         *memory.Store
	InsightsStore *InsightsStore
	Insights      *services.InsightsService
	CommandBus    *bus.CommandBus
	QueryBus      *querybus.QueryBus
	Metrics       *observability.Collector
	JWTValidator  *auth.JWTValidator
	JWTGenerator  *auth.JWTGenerator
	RateLimiter   *auth.IPRateLimiter
	ErrorHandler  *pkgerrors.ErrorHandler
}

// Start launches background work: the insights cache sweeper
func (c *Container) Start(ctx context.Context) {
	c.InsightsStore.Start(ctx)
}

// Shutdown stops background work and flushes the logger
func (c *Container) Shutdown() {
	c.InsightsStore.Stop()
	_ = c.Logger.Sync()
}
