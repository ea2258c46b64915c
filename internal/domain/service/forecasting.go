package service

import (
	"errors"

	"StockSense/internal/domain/models"
)

var (
	// ErrDataUnavailable means the provider returned no bars for the symbol.
	ErrDataUnavailable = errors.New("market data unavailable")
	// ErrInsufficientHistory means too few warm feature rows to train on.
	ErrInsufficientHistory = errors.New("insufficient history")
)

// FeatureEngine turns raw bars into warm feature rows.
type FeatureEngine interface {
	Compute(series models.Series) []models.FeatureRow
}

// Forecaster trains on feature rows and predicts the next close.
type Forecaster interface {
	TrainAndPredict(rows []models.FeatureRow) (models.BaseForecast, error)
}
