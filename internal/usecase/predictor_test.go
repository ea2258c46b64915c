package usecase

import (
	"context"
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"StockSense/internal/domain/models"
	domrepo "StockSense/internal/domain/repository"
	domsvc "StockSense/internal/domain/service"
	"StockSense/internal/service/cache"
	"StockSense/internal/services/features"
	"StockSense/internal/services/forecast"
	pcache "StockSense/pkg/cache"
	"StockSense/pkg/workpool"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	mu     sync.Mutex
	series map[string]models.Series
	errs   map[string]error
	calls  int
}

func (f *fakeProvider) History(_ context.Context, ticker string, _ domrepo.Period) (models.Series, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if err := f.errs[ticker]; err != nil {
		return nil, err
	}
	return f.series[ticker], nil
}

func (f *fakeProvider) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type countingForecaster struct {
	inner domsvc.Forecaster
	calls atomic.Int32
}

func (c *countingForecaster) TrainAndPredict(rows []models.FeatureRow) (models.BaseForecast, error) {
	c.calls.Add(1)
	return c.inner.TrainAndPredict(rows)
}

func wavySeries(n int, level float64) models.Series {
	start := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	s := make(models.Series, n)
	for i := range s {
		c := level + 0.25*float64(i) + 6*math.Sin(float64(i)*0.4) + 2*math.Cos(float64(i)*1.7)
		s[i] = models.Bar{Date: start.AddDate(0, 0, i), Open: c - 1, High: c + 3, Low: c - 3, Close: c, Volume: 1e6 + float64(i%13)*5e4}
	}
	return s
}

type predictorFixture struct {
	predictor *Predictor
	provider  *fakeProvider
	model     *countingForecaster
	clock     *pcache.ManualClock
}

func newPredictorFixture(t *testing.T, series map[string]models.Series, errs map[string]error) *predictorFixture {
	t.Helper()
	clock := pcache.NewManualClock(time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC))
	provider := &fakeProvider{series: series, errs: errs}
	market, err := cache.NewMarketDataCache(provider, 30*time.Minute, cache.WithClock(clock))
	require.NoError(t, err)
	preds, err := cache.NewPredictionCache(time.Hour, cache.WithClock(clock))
	require.NoError(t, err)
	model := &countingForecaster{inner: forecast.NewModel(forecast.WithTrees(8))}

	p := NewPredictor(market, preds, features.NewEngine(), model, workpool.New(workpool.WithSize(2)), domrepo.Period2Y, nil, nil)
	return &predictorFixture{predictor: p, provider: provider, model: model, clock: clock}
}

func TestPredictProducesAllHorizons(t *testing.T) {
	f := newPredictorFixture(t, map[string]models.Series{"RELIANCE.NS": wavySeries(260, 2800)}, nil)

	bundle, err := f.predictor.Predict(context.Background(), "reliance")
	require.NoError(t, err)

	require.Len(t, bundle, 4)
	for _, label := range []string{"3d", "7d", "15d", "30d"} {
		p := bundle[label]
		assert.Contains(t, []models.Trend{models.TrendBullish, models.TrendBearish, models.TrendNeutral}, p.Trend)
		assert.GreaterOrEqual(t, p.Confidence, 65.0)
		assert.LessOrEqual(t, p.Confidence, 98.0)
		assert.Greater(t, p.PredictedPrice, 0.0)
	}
	assert.Equal(t, bundle["3d"].CurrentPrice, bundle["30d"].CurrentPrice)
	assert.Equal(t, int32(1), f.model.calls.Load(), "one training run for every horizon")
}

func TestPredictDeterministic(t *testing.T) {
	series := map[string]models.Series{"TCS.NS": wavySeries(300, 3900)}
	a, err := newPredictorFixture(t, series, nil).predictor.Predict(context.Background(), "TCS")
	require.NoError(t, err)
	b, err := newPredictorFixture(t, series, nil).predictor.Predict(context.Background(), "TCS")
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestPredictCacheHitSkipsTraining(t *testing.T) {
	f := newPredictorFixture(t, map[string]models.Series{"INFY.NS": wavySeries(260, 1500)}, nil)
	ctx := context.Background()

	first, err := f.predictor.Predict(ctx, "INFY")
	require.NoError(t, err)
	f.clock.Advance(59 * time.Minute)
	second, err := f.predictor.Predict(ctx, "INFY")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), f.model.calls.Load())
	assert.Equal(t, 1, f.provider.Calls())

	f.clock.Advance(time.Minute)
	_, err = f.predictor.Predict(ctx, "INFY")
	require.NoError(t, err)
	assert.Equal(t, int32(2), f.model.calls.Load())
	assert.Equal(t, 2, f.provider.Calls())
}

func TestPredictEmptySeriesIsUnavailable(t *testing.T) {
	f := newPredictorFixture(t, nil, nil)

	_, err := f.predictor.Predict(context.Background(), "GHOST")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domsvc.ErrDataUnavailable))

	_, err = f.predictor.Predict(context.Background(), "GHOST")
	assert.ErrorIs(t, err, domsvc.ErrDataUnavailable)
	assert.Equal(t, 4, f.provider.Calls(), "nothing cached")
	assert.Equal(t, int32(0), f.model.calls.Load())
}

func TestPredictShortHistory(t *testing.T) {
	f := newPredictorFixture(t, map[string]models.Series{"NEWIPO.NS": wavySeries(80, 100)}, nil)

	_, err := f.predictor.Predict(context.Background(), "NEWIPO")
	assert.ErrorIs(t, err, domsvc.ErrInsufficientHistory)

	_, err = f.predictor.Predict(context.Background(), "NEWIPO")
	assert.ErrorIs(t, err, domsvc.ErrInsufficientHistory)
	assert.Equal(t, int32(2), f.model.calls.Load(), "failures are not cached")
}

func TestPredictManyDropsFailures(t *testing.T) {
	symbols := []string{"RELIANCE", "TCS", "INFY", "HDFCBANK", "ICICIBANK", "SBIN", "AXISBANK", "LT"}
	series := map[string]models.Series{}
	for i, s := range symbols {
		series[s+".NS"] = wavySeries(200, 500+float64(i)*100)
	}
	delete(series, "HDFCBANK.NS")
	f := newPredictorFixture(t, series, map[string]error{"HDFCBANK.NS": errors.New("timeout")})

	got := f.predictor.PredictMany(context.Background(), symbols)

	require.Len(t, got, 7)
	want := []string{"RELIANCE", "TCS", "INFY", "ICICIBANK", "SBIN", "AXISBANK", "LT"}
	for i, sp := range got {
		assert.Equal(t, want[i], sp.Symbol)
		assert.Len(t, sp.Predictions, 4)
	}
}

func TestPredictManyEmptySymbolAbsent(t *testing.T) {
	f := newPredictorFixture(t, map[string]models.Series{"SBIN.NS": wavySeries(200, 800)}, nil)

	got := f.predictor.PredictMany(context.Background(), []string{"SBIN", "GHOST"})

	require.Len(t, got, 1)
	assert.Equal(t, "SBIN", got[0].Symbol)
}
