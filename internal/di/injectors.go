//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"chantd/internal"
	"chantd/internal/controllers"
	"chantd/internal/providers"
	"chantd/internal/services"
	"chantd/internal/statistic"
	"chantd/internal/storage"
	"chantd/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		storage.NewStore,
		services.NewStatsService,
		statistic.NewZstdCompressor,
		statistic.NewSnapshotManager,
		statistic.NewScheduler,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
