//go:build wireinject
// +build wireinject

package di

import (
	"StockSense/internal/domain/repository"
	"StockSense/internal/service/yahoo"
	"StockSense/internal/services/features"
	"StockSense/internal/services/risk"
	"StockSense/internal/usecase"
	"StockSense/pkg/config"
	"StockSense/pkg/metrics"
	"StockSense/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,
		wire.Bind(new(repository.Metrics), new(*metrics.Recorder)),
		ProvideWorkPool,

		// Market data
		ProvideYahooClient,
		wire.Bind(new(repository.MarketDataProvider), new(*yahoo.Client)),
		ProvideMarketDataCache,
		ProvidePredictionCache,
		ProvideQuoteCache,

		// Repositories
		ProvideRecordStore,
		ProvideCatalog,

		// Engine
		features.NewEngine,
		ProvideModel,
		risk.NewScorer,

		// Use cases
		ProvidePredictor,
		ProvideStocksUseCase,
		wire.Bind(new(usecase.PriceSource), new(*usecase.StocksUseCase)),
		usecase.NewSearchUseCase,
		usecase.NewPortfolioUseCase,
		usecase.NewAlertsUseCase,
		ProvideDashboardUseCase,
		ProvideWarmer,

		// Transport
		ProvideHTTPHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
