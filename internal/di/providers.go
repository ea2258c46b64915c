package di

import (
	"context"
	"fmt"
	"time"

	"StockSense/internal/domain/repository"
	"StockSense/internal/handler/api"
	internalrepo "StockSense/internal/repository"
	"StockSense/internal/service/cache"
	enginemetrics "StockSense/internal/service/metrics"
	"StockSense/internal/service/ratelimit"
	"StockSense/internal/service/yahoo"
	"StockSense/internal/services/features"
	"StockSense/internal/services/forecast"
	"StockSense/internal/services/risk"
	"StockSense/internal/usecase"
	pcache "StockSense/pkg/cache"
	"StockSense/pkg/config"
	xhttp "StockSense/pkg/http"
	applogger "StockSense/pkg/logger"
	"StockSense/pkg/metrics"
	"StockSense/pkg/server"
	"StockSense/pkg/workpool"
)

// ProvideLogger builds the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l.With(applogger.String("env", cfg.Environment)), nil
}

// ProvideMetrics creates a Prometheus metrics recorder on the default registry.
func ProvideMetrics() *metrics.Recorder {
	enginemetrics.Register()
	return metrics.New(nil)
}

// ProvideWorkPool bounds concurrent feature computation and training.
func ProvideWorkPool(cfg *config.Config, logger *applogger.Logger) *workpool.Pool {
	return workpool.New(
		workpool.WithSize(cfg.Workers.Size),
		workpool.WithWaitObserver(func(wait time.Duration) {
			enginemetrics.PoolWait.Observe(wait.Seconds())
		}),
		workpool.WithPanicHandler(func(v any) {
			logger.Error("training job panicked", applogger.Any("panic", v))
		}),
	)
}

// ProvideYahooClient creates the Yahoo chart client.
func ProvideYahooClient(cfg *config.Config) *yahoo.Client {
	return yahoo.New(cfg.MarketData.BaseURL, cfg.MarketData.UserAgent, cfg.MarketData.Timeout)
}

func cacheOptions(cfg *config.Config, logger *applogger.Logger, rec repository.Metrics) []cache.Option {
	return []cache.Option{
		cache.WithSuffixes(cfg.MarketData.ExchangeSuffixes),
		cache.WithMaxEntries(cfg.Cache.MaxEntries),
		cache.WithMetrics(rec),
		cache.WithLogger(logger),
	}
}

// ProvideMarketDataCache wraps the provider with suffix resolution and a TTL cache.
func ProvideMarketDataCache(provider repository.MarketDataProvider, cfg *config.Config, logger *applogger.Logger, rec repository.Metrics) (*cache.MarketDataCache, error) {
	return cache.NewMarketDataCache(provider, cfg.Cache.MarketDataTTL, cacheOptions(cfg, logger, rec)...)
}

func ProvidePredictionCache(cfg *config.Config, logger *applogger.Logger, rec repository.Metrics) (*cache.PredictionCache, error) {
	return cache.NewPredictionCache(cfg.Cache.PredictionTTL, cacheOptions(cfg, logger, rec)...)
}

func ProvideQuoteCache(cfg *config.Config, logger *applogger.Logger, rec repository.Metrics) (*cache.QuoteCache, error) {
	return cache.NewQuoteCache(cfg.Cache.QuoteTTL, cacheOptions(cfg, logger, rec)...)
}

// ProvideRecordStore opens the configured portfolio/alert store.
func ProvideRecordStore(cfg *config.Config, logger *applogger.Logger) (repository.RecordStore, error) {
	if cfg.Store.Backend != "redis" {
		logger.Info("record store: memory")
		return internalrepo.NewMemoryStore(), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	r := cfg.Store.Redis
	rc, err := pcache.NewRedisCache(ctx,
		pcache.WithRedisHost(r.Host),
		pcache.WithRedisPort(r.Port),
		pcache.WithRedisPassword(r.Password),
		pcache.WithRedisDB(r.DB),
		pcache.WithRedisPrefix(r.Prefix),
	)
	if err != nil {
		return nil, fmt.Errorf("record store: %w", err)
	}
	logger.Info("record store: redis", applogger.String("host", r.Host), applogger.Int("port", r.Port))
	return internalrepo.NewRedisStore(rc), nil
}

// ProvideCatalog loads the search catalog; a missing file yields an empty catalog.
func ProvideCatalog(cfg *config.Config, logger *applogger.Logger) (repository.Catalog, error) {
	c, err := internalrepo.LoadCSVCatalog(cfg.Catalog.Path, logger)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return c, nil
}

// ProvideModel configures the bagged regression forest.
func ProvideModel(cfg *config.Config) *forecast.Model {
	return forecast.NewModel(
		forecast.WithTrees(cfg.Model.Trees),
		forecast.WithMaxDepth(cfg.Model.MaxDepth),
		forecast.WithSeed(cfg.Model.Seed),
		forecast.WithMaxTrainRows(cfg.Model.MaxTrainRows),
		forecast.WithMinRows(cfg.Model.MinRows),
	)
}

// ProvidePredictor creates the prediction use case.
func ProvidePredictor(
	market *cache.MarketDataCache,
	predictions *cache.PredictionCache,
	engine *features.Engine,
	model *forecast.Model,
	pool *workpool.Pool,
	cfg *config.Config,
	logger *applogger.Logger,
	rec repository.Metrics,
) *usecase.Predictor {
	return usecase.NewPredictor(market, predictions, engine, model, pool,
		repository.NormalizePeriod(cfg.MarketData.HistoryPeriod), logger, rec)
}

func ProvideStocksUseCase(market *cache.MarketDataCache, quotes *cache.QuoteCache, scorer *risk.Scorer, cfg *config.Config, logger *applogger.Logger) *usecase.StocksUseCase {
	return usecase.NewStocksUseCase(market, quotes, scorer, cfg.Watchlist.Trending,
		repository.NormalizePeriod(cfg.MarketData.TrendingPeriod), logger)
}

func ProvideDashboardUseCase(predictor *usecase.Predictor, portfolio *usecase.PortfolioUseCase, alerts *usecase.AlertsUseCase, cfg *config.Config) *usecase.DashboardUseCase {
	return usecase.NewDashboardUseCase(predictor, portfolio, alerts, cfg.Watchlist.Dashboard)
}

// ProvideWarmer registers the warm-up schedule when one is configured.
func ProvideWarmer(predictor *usecase.Predictor, cfg *config.Config, logger *applogger.Logger) (*usecase.Warmer, error) {
	w := usecase.NewWarmer(predictor, cfg.Watchlist.Dashboard, logger)
	if cfg.Warmup.Cron == "" {
		return w, nil
	}
	if err := w.Schedule(cfg.Warmup.Cron); err != nil {
		return nil, err
	}
	return w, nil
}

// ProvideHTTPHandler groups every route set served by the app.
func ProvideHTTPHandler(
	cfg *config.Config,
	logger *applogger.Logger,
	stocks *usecase.StocksUseCase,
	predictor *usecase.Predictor,
	search *usecase.SearchUseCase,
	portfolio *usecase.PortfolioUseCase,
	alerts *usecase.AlertsUseCase,
	dashboard *usecase.DashboardUseCase,
) xhttp.Handler {
	rl := api.RateLimitConfig{Capacity: cfg.RateLimit.Capacity, RefillPerSec: cfg.RateLimit.RefillPerSec}
	return xhttp.Handlers{
		api.NewStocksEchoHandler(logger, stocks, predictor, search, dashboard, ratelimit.New(), rl),
		api.NewPortfolioEchoHandler(logger, portfolio, alerts, dashboard),
		api.NewTrendingStream(logger, stocks, cfg.Stream.Interval),
	}
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	logger *applogger.Logger,
	handler xhttp.Handler,
	warmer *usecase.Warmer,
	store repository.RecordStore,
) *server.App {
	return server.New(cfg, logger, handler, warmer, store)
}
