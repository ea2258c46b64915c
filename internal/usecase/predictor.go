package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"StockSense/internal/domain/models"
	domrepo "StockSense/internal/domain/repository"
	domsvc "StockSense/internal/domain/service"
	"StockSense/internal/service/cache"
	enginemetrics "StockSense/internal/service/metrics"
	"StockSense/internal/services/forecast"
	applogger "StockSense/pkg/logger"
	"StockSense/pkg/workpool"
)

// SeriesSource returns cached daily bars; an empty series means no data.
type SeriesSource interface {
	Fetch(ctx context.Context, symbol string, period domrepo.Period) models.Series
}

// Predictor produces multi-horizon forecasts.
type Predictor struct {
	market      SeriesSource
	predictions *cache.PredictionCache
	engine      domsvc.FeatureEngine
	model       domsvc.Forecaster
	pool        *workpool.Pool
	period      domrepo.Period
	horizons    []int
	logger      *applogger.Logger
	metrics     domrepo.Metrics
}

func NewPredictor(
	market SeriesSource,
	predictions *cache.PredictionCache,
	engine domsvc.FeatureEngine,
	model domsvc.Forecaster,
	pool *workpool.Pool,
	period domrepo.Period,
	logger *applogger.Logger,
	metrics domrepo.Metrics,
) *Predictor {
	if logger == nil {
		logger = applogger.Nop()
	}
	if period == "" {
		period = domrepo.Period2Y
	}
	return &Predictor{
		market:      market,
		predictions: predictions,
		engine:      engine,
		model:       model,
		pool:        pool,
		period:      period,
		horizons:    forecast.DefaultHorizons,
		logger:      logger,
		metrics:     metrics,
	}
}

type trained struct {
	base models.BaseForecast
	rows []models.FeatureRow
}

// Predict returns the bundle for symbol, from cache when live. On a miss it trains
// the model once and projects that single base forecast to every horizon; only
// complete bundles are cached.
func (p *Predictor) Predict(ctx context.Context, symbol string) (models.PredictionBundle, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if b, ok := p.predictions.Get(symbol); ok {
		return b, nil
	}

	series := p.market.Fetch(ctx, symbol, p.period)
	if len(series) == 0 {
		return nil, fmt.Errorf("predict %s: %w", symbol, domsvc.ErrDataUnavailable)
	}

	start := time.Now()
	t, err := workpool.Submit(ctx, p.pool, func() (trained, error) {
		featStart := time.Now()
		rows := p.engine.Compute(series)
		enginemetrics.TrainingDuration.WithLabelValues("features").Observe(time.Since(featStart).Seconds())

		fitStart := time.Now()
		base, err := p.model.TrainAndPredict(rows)
		enginemetrics.TrainingDuration.WithLabelValues("fit").Observe(time.Since(fitStart).Seconds())
		return trained{base: base, rows: rows}, err
	})
	if err != nil {
		return nil, fmt.Errorf("predict %s: %w", symbol, err)
	}

	bundle := forecast.Project(t.base, forecast.RecentTrend(t.rows), p.horizons)
	p.predictions.Set(symbol, bundle)

	if p.metrics != nil {
		p.metrics.RecordLatency("predict", time.Since(start).Seconds())
	}
	p.logger.Debug("prediction trained",
		applogger.String("symbol", symbol),
		applogger.Int("rows", len(t.rows)),
		applogger.Float64("base", t.base.Prediction),
		applogger.Duration("took", time.Since(start)),
	)
	return bundle, nil
}

// PredictMany fans Predict out over symbols and keeps the successes in order.
func (p *Predictor) PredictMany(ctx context.Context, symbols []string) []models.SymbolPredictions {
	results := Fanout(ctx, symbols, func(ctx context.Context, s string) (models.SymbolPredictions, error) {
		b, err := p.Predict(ctx, s)
		if err != nil {
			return models.SymbolPredictions{}, err
		}
		return models.SymbolPredictions{Symbol: s, Predictions: b}, nil
	})
	for _, r := range Failures(results) {
		p.logger.Debug("prediction skipped", applogger.String("symbol", r.Key), applogger.Error(r.Err))
	}
	return Successes(results)
}
