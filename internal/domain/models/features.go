package models

import (
	"math"
	"time"
)

// FeatureRow holds the indicators derived for one bar once every window is warm.
type FeatureRow struct {
	Date   time.Time
	Close  float64
	Volume float64

	MA5   float64
	MA20  float64
	MA50  float64
	EMA12 float64
	EMA26 float64

	MACD   float64
	Signal float64
	RSI    float64

	BBMid   float64
	BBUpper float64
	BBLower float64
	BBWidth float64

	Volatility float64
	Return     float64
	Momentum   float64
}

// PredictorNames lists the model inputs in the order Predictors emits them.
var PredictorNames = []string{
	"MA5", "MA20", "MA50", "EMA12", "EMA26", "MACD", "Signal",
	"RSI", "BBWidth", "Volatility", "Volume", "Return", "Momentum",
}

// Predictors returns the model inputs in PredictorNames order.
func (r FeatureRow) Predictors() []float64 {
	return []float64{
		r.MA5, r.MA20, r.MA50, r.EMA12, r.EMA26, r.MACD, r.Signal,
		r.RSI, r.BBWidth, r.Volatility, r.Volume, r.Return, r.Momentum,
	}
}

// Valid reports whether every numeric field is finite.
func (r FeatureRow) Valid() bool {
	for _, v := range []float64{
		r.Close, r.Volume, r.MA5, r.MA20, r.MA50, r.EMA12, r.EMA26, r.MACD, r.Signal, r.RSI,
		r.BBMid, r.BBUpper, r.BBLower, r.BBWidth, r.Volatility, r.Return, r.Momentum,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
