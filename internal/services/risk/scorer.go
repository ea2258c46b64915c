package risk

import (
	"math"

	"StockSense/internal/domain/models"
	"StockSense/internal/services/features"
	"StockSense/pkg/util"
)

const (
	tradingDays    = 252
	sharpeEpsilon  = 1e-4
	lowVolCeiling  = 0.2
	highVolCeiling = 0.4
)

// Scorer summarises daily returns into a RiskProfile.
type Scorer struct{}

func NewScorer() *Scorer { return &Scorer{} }

// Score annualises volatility and return, finds the worst cumulative-return
// drawdown and buckets the volatility. Fewer than two returns count as zero
// volatility; an empty series scores all zeros.
func (Scorer) Score(returns []float64) models.RiskProfile {
	std := 0.0
	if len(returns) >= 2 {
		std = features.SampleStd(returns)
	}
	mean := 0.0
	if len(returns) > 0 {
		mean = features.Mean(returns)
	}

	vol := std * math.Sqrt(tradingDays)
	sharpe := mean * tradingDays / (vol + sharpeEpsilon)

	level, score := models.RiskHigh, 9
	switch {
	case vol < lowVolCeiling:
		level, score = models.RiskLow, 3
	case vol < highVolCeiling:
		level, score = models.RiskMedium, 6
	}

	return models.RiskProfile{
		Volatility:  util.Round2(vol * 100),
		SharpeRatio: util.Round2(sharpe),
		MaxDrawdown: util.Round2(MaxDrawdown(returns) * 100),
		RiskLevel:   level,
		RiskScore:   score,
	}
}

// MaxDrawdown is min(cumsum - running max of cumsum); 0 for an empty series.
func MaxDrawdown(returns []float64) float64 {
	var cum, peak, worst float64
	for i, r := range returns {
		cum += r
		if i == 0 || cum > peak {
			peak = cum
		}
		if d := cum - peak; d < worst {
			worst = d
		}
	}
	return worst
}
