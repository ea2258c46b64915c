package features

import (
	"StockSense/internal/domain/models"
)

const (
	bollingerWindow = 20
	bollingerK      = 2.0
	rsiPeriod       = 14
	momentumLag     = 10
)

// Engine computes the fixed indicator set. It holds no state.
type Engine struct{}

// NewEngine creates a feature engine.
func NewEngine() *Engine { return &Engine{} }

// Compute derives one row per bar and keeps only rows where every indicator is
// defined, in chronological order. The 50-bar moving average sets the warm-up.
func (Engine) Compute(series models.Series) []models.FeatureRow {
	n := series.Len()
	if n == 0 {
		return nil
	}
	closes := series.Closes()

	ma5 := RollingMean(closes, 5)
	ma20 := RollingMean(closes, 20)
	ma50 := RollingMean(closes, 50)
	ema12 := EWM(closes, 12)
	ema26 := EWM(closes, 26)

	macd := make([]float64, n)
	for i := range macd {
		macd[i] = ema12[i] - ema26[i]
	}
	signal := EWM(macd, 9)
	rsi := RSI(closes, rsiPeriod)

	bbMid := RollingMean(closes, bollingerWindow)
	bbStd := RollingStd(closes, bollingerWindow)
	volatility := RollingStd(closes, 20)
	returns := PercentChange(closes)
	momentum := Momentum(closes, momentumLag)

	rows := make([]models.FeatureRow, 0, n)
	for i, bar := range series {
		upper := bbMid[i] + bbStd[i]*bollingerK
		lower := bbMid[i] - bbStd[i]*bollingerK
		row := models.FeatureRow{
			Date:       bar.Date,
			Close:      bar.Close,
			Volume:     bar.Volume,
			MA5:        ma5[i],
			MA20:       ma20[i],
			MA50:       ma50[i],
			EMA12:      ema12[i],
			EMA26:      ema26[i],
			MACD:       macd[i],
			Signal:     signal[i],
			RSI:        rsi[i],
			BBMid:      bbMid[i],
			BBUpper:    upper,
			BBLower:    lower,
			BBWidth:    (upper - lower) / bbMid[i],
			Volatility: volatility[i],
			Return:     returns[i],
			Momentum:   momentum[i],
		}
		if row.Valid() {
			rows = append(rows, row)
		}
	}
	return rows
}
