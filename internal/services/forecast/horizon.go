package forecast

import (
	"math"

	"StockSense/internal/domain/models"
	"StockSense/pkg/util"
)

const (
	trendDamping     = 0.4
	trendThreshold   = 1.5
	confidenceBase   = 92.0
	confidenceFloor  = 65.0
	confidenceCeil   = 98.0
	trendLookbackPos = 5
)

// DefaultHorizons are the day counts every bundle carries.
var DefaultHorizons = []int{3, 7, 15, 30}

// RecentTrend is the fractional move from the fifth-from-last close to the last.
// Fewer than five rows, or a zero reference close, give 0.
func RecentTrend(rows []models.FeatureRow) float64 {
	n := len(rows)
	if n < trendLookbackPos {
		return 0
	}
	ref := rows[n-trendLookbackPos].Close
	if ref == 0 {
		return 0
	}
	return (rows[n-1].Close - ref) / ref
}

// ClassifyTrend labels a percent change; exactly ±1.5 is neutral.
func ClassifyTrend(changePercent float64) models.Trend {
	switch {
	case changePercent > trendThreshold:
		return models.TrendBullish
	case changePercent < -trendThreshold:
		return models.TrendBearish
	default:
		return models.TrendNeutral
	}
}

// Confidence shrinks with horizon length and relative volatility, clamped to
// [65, 98]. Undefined inputs land on the floor.
func Confidence(days int, volatility, lastClose float64) float64 {
	c := confidenceBase - float64(days)/2 - volatility/lastClose*100
	if math.IsNaN(c) {
		return confidenceFloor
	}
	return math.Min(math.Max(c, confidenceFloor), confidenceCeil)
}

// Project extrapolates one base forecast to every horizon. Only the extrapolation
// factor differs between horizons; the model is never re-run.
func Project(base models.BaseForecast, recentTrend float64, horizons []int) models.PredictionBundle {
	bundle := make(models.PredictionBundle, len(horizons))
	for _, days := range horizons {
		dayFactor := float64(days) / 30.0
		predicted := base.Prediction * (1 + recentTrend*dayFactor*trendDamping)
		change := (predicted - base.LastClose) / base.LastClose * 100

		bundle[models.HorizonLabel(days)] = models.HorizonPrediction{
			CurrentPrice:   util.Round2(base.LastClose),
			PredictedPrice: util.Round2(predicted),
			ChangePercent:  util.Round2(change),
			Trend:          ClassifyTrend(change),
			Confidence:     util.Round(Confidence(days, base.LastVolatility, base.LastClose), 1),
			Days:           days,
		}
	}
	return bundle
}
