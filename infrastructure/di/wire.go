//go:build wireinject
// +build wireinject

package di

import (
	"forzeit/infrastructure/config"

	"github.com/google/wire"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideStore,
	ProvideMetrics,
	ProvideInsightsStore,
	ProvideInsightsCache,
	ProvideInsightsEngine,
	ProvideInsightsService,
	ProvideCommandBus,
	ProvideQueryBus,
	ProvideJWTValidator,
	ProvideJWTGenerator,
	ProvideRateLimiter,
	ProvideErrorHandler,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
