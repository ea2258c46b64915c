package forecast

import (
	"errors"
	"math"
	"testing"
	"time"

	"StockSense/internal/domain/models"
	domsvc "StockSense/internal/domain/service"
	"StockSense/internal/services/features"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wavyRows(t *testing.T, n int) []models.FeatureRow {
	t.Helper()
	start := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	series := make(models.Series, n)
	for i := range series {
		c := 250 + 0.3*float64(i) + 8*math.Sin(float64(i)*0.45) + 3*math.Cos(float64(i)*1.3)
		series[i] = models.Bar{Date: start.AddDate(0, 0, i), Open: c, High: c + 2, Low: c - 2, Close: c, Volume: 2e6 + float64(i%11)*3e4}
	}
	rows := features.NewEngine().Compute(series)
	require.NotEmpty(t, rows)
	return rows
}

func TestMinMaxScaler(t *testing.T) {
	s := FitMinMax([][]float64{{1, 5}, {3, 5}, {2, 5}})

	assert.Equal(t, []float64{0, 0}, s.Transform([]float64{1, 5}))
	assert.Equal(t, []float64{1, 0}, s.Transform([]float64{3, 5}))
	assert.InDelta(t, 2.5, s.Inverse(0, 0.75), 1e-12)
	assert.InDelta(t, 5, s.Inverse(1, 0), 1e-12)
}

func TestRegressionTreeLearnsStep(t *testing.T) {
	x := [][]float64{{0.1}, {0.2}, {0.3}, {0.7}, {0.8}, {0.9}}
	y := []float64{1, 1, 1, 5, 5, 5}
	tree := &RegressionTree{}
	require.NoError(t, tree.Fit(x, y, []int{0, 1, 2, 3, 4, 5}, 4))

	assert.Equal(t, 1.0, tree.Predict([]float64{0.25}))
	assert.Equal(t, 5.0, tree.Predict([]float64{0.75}))
	assert.Equal(t, 1, tree.Depth())
}

func TestRegressionTreeRespectsMaxDepth(t *testing.T) {
	x := make([][]float64, 64)
	y := make([]float64, 64)
	idx := make([]int, 64)
	for i := range x {
		x[i] = []float64{float64(i)}
		y[i] = float64(i * i)
		idx[i] = i
	}
	tree := &RegressionTree{}
	require.NoError(t, tree.Fit(x, y, idx, 3))
	assert.Equal(t, 3, tree.Depth())
}

func TestForestIsDeterministic(t *testing.T) {
	rows := wavyRows(t, 200)
	x := make([][]float64, len(rows))
	y := make([]float64, len(rows))
	for i, r := range rows {
		x[i] = r.Predictors()
		y[i] = r.Close
	}

	a, err := TrainForest(x, y, 10, 6, 42)
	require.NoError(t, err)
	b, err := TrainForest(x, y, 10, 6, 42)
	require.NoError(t, err)

	assert.Equal(t, 10, a.Size())
	for _, row := range x[len(x)-5:] {
		assert.Equal(t, a.Predict(row), b.Predict(row))
	}
}

func TestModelInsufficientHistory(t *testing.T) {
	rows := wavyRows(t, 90) // 41 warm rows
	_, err := NewModel().TrainAndPredict(rows)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domsvc.ErrInsufficientHistory))
}

func TestModelDeterministicAndBounded(t *testing.T) {
	rows := wavyRows(t, 260)
	m := NewModel(WithTrees(20))

	first, err := m.TrainAndPredict(rows)
	require.NoError(t, err)
	second, err := m.TrainAndPredict(rows)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	last := rows[len(rows)-1]
	assert.Equal(t, last.Close, first.LastClose)
	assert.Equal(t, last.Volatility, first.LastVolatility)

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, r := range rows {
		lo = math.Min(lo, r.Close)
		hi = math.Max(hi, r.Close)
	}
	assert.GreaterOrEqual(t, first.Prediction, lo)
	assert.LessOrEqual(t, first.Prediction, hi)
}

func TestModelTrainsOnRecentWindow(t *testing.T) {
	rows := make([]models.FeatureRow, 120)
	for i := range rows {
		c := 100.0 + float64(i%5)
		if i < 40 {
			c = 1000
		}
		rows[i] = models.FeatureRow{Close: c, MA5: float64(i), RSI: float64(i % 7), Volume: 1}
	}

	got, err := NewModel(WithTrees(5), WithMaxTrainRows(60)).TrainAndPredict(rows)
	require.NoError(t, err)
	assert.LessOrEqual(t, got.Prediction, 104.0+1e-9)
	assert.GreaterOrEqual(t, got.Prediction, 100.0-1e-9)
}

func TestClassifyTrendBoundaries(t *testing.T) {
	tests := []struct {
		change float64
		want   models.Trend
	}{
		{1.5, models.TrendNeutral},
		{1.5001, models.TrendBullish},
		{-1.5, models.TrendNeutral},
		{-1.5001, models.TrendBearish},
		{0, models.TrendNeutral},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyTrend(tt.change), "change=%v", tt.change)
	}
}

func TestConfidenceAlwaysClamped(t *testing.T) {
	vols := []float64{0, 0.5, 12, 1e6, math.Inf(1), math.NaN()}
	prices := []float64{0, 0.01, 100, 1e7}
	for _, days := range DefaultHorizons {
		for _, v := range vols {
			for _, p := range prices {
				c := Confidence(days, v, p)
				assert.GreaterOrEqual(t, c, 65.0, "days=%d vol=%v price=%v", days, v, p)
				assert.LessOrEqual(t, c, 98.0, "days=%d vol=%v price=%v", days, v, p)
			}
		}
	}
	assert.Equal(t, 90.5, Confidence(3, 0, 100))
	assert.Equal(t, 77.0, Confidence(30, 0, 100))
}

func TestRecentTrend(t *testing.T) {
	rows := []models.FeatureRow{{Close: 90}, {Close: 100}, {Close: 101}, {Close: 102}, {Close: 103}, {Close: 110}}
	assert.InDelta(t, 0.1, RecentTrend(rows), 1e-12)
	assert.Equal(t, 0.0, RecentTrend(rows[:3]))
}

func TestProjectFlatSeries(t *testing.T) {
	bundle := Project(models.BaseForecast{Prediction: 100, LastClose: 100, LastVolatility: 0}, 0, DefaultHorizons)

	require.Len(t, bundle, 4)
	for _, label := range []string{"3d", "7d", "15d", "30d"} {
		p, ok := bundle[label]
		require.True(t, ok, label)
		assert.Equal(t, 0.0, p.ChangePercent)
		assert.Equal(t, models.TrendNeutral, p.Trend)
		assert.Equal(t, 100.0, p.PredictedPrice)
	}
	assert.Equal(t, 90.5, bundle["3d"].Confidence)
	assert.Equal(t, 30, bundle["30d"].Days)
}

func TestProjectScalesWithHorizon(t *testing.T) {
	bundle := Project(models.BaseForecast{Prediction: 110, LastClose: 100, LastVolatility: 2}, 0.1, DefaultHorizons)

	assert.Equal(t, 114.4, bundle["30d"].PredictedPrice)
	assert.Equal(t, 14.4, bundle["30d"].ChangePercent)
	assert.Equal(t, models.TrendBullish, bundle["30d"].Trend)
	assert.Equal(t, 75.0, bundle["30d"].Confidence)
	assert.Equal(t, 110.44, bundle["3d"].PredictedPrice)
	assert.Equal(t, 100.0, bundle["3d"].CurrentPrice)
}
