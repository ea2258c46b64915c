package models

import (
	"fmt"
	"time"
)

// Trend labels the direction of a projected move.
type Trend string

const (
	TrendBullish Trend = "bullish"
	TrendBearish Trend = "bearish"
	TrendNeutral Trend = "neutral"
)

// BaseForecast is the single-day model output every horizon is projected from.
type BaseForecast struct {
	Prediction     float64
	LastClose      float64
	LastVolatility float64
}

// HorizonPrediction is the projection for one horizon.
type HorizonPrediction struct {
	CurrentPrice   float64 `json:"current_price"`
	PredictedPrice float64 `json:"predicted_price"`
	ChangePercent  float64 `json:"change_percent"`
	Trend          Trend   `json:"trend"`
	Confidence     float64 `json:"confidence"`
	Days           int     `json:"days"`
}

// PredictionBundle maps horizon labels ("3d", "7d", ...) to projections.
type PredictionBundle map[string]HorizonPrediction

// HorizonLabel renders a day count as a bundle key.
func HorizonLabel(days int) string { return fmt.Sprintf("%dd", days) }

// PredictionResponse is returned for a single symbol.
type PredictionResponse struct {
	Symbol      string           `json:"symbol"`
	Predictions PredictionBundle `json:"predictions"`
	GeneratedAt time.Time        `json:"generated_at"`
}

// SymbolPredictions is one dashboard entry.
type SymbolPredictions struct {
	Symbol      string           `json:"symbol"`
	Predictions PredictionBundle `json:"predictions"`
}
