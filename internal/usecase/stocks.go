package usecase

import (
	"context"
	"fmt"
	"strings"

	"StockSense/internal/domain/models"
	domrepo "StockSense/internal/domain/repository"
	domsvc "StockSense/internal/domain/service"
	"StockSense/internal/service/cache"
	"StockSense/internal/services/features"
	"StockSense/internal/services/risk"
	applogger "StockSense/pkg/logger"
	"StockSense/pkg/util"
)

const chartBars = 250

// StocksUseCase serves quotes, details and the trending watchlist.
type StocksUseCase struct {
	market         SeriesSource
	quotes         *cache.QuoteCache
	scorer         *risk.Scorer
	trending       []string
	trendingPeriod domrepo.Period
	logger         *applogger.Logger
}

func NewStocksUseCase(market SeriesSource, quotes *cache.QuoteCache, scorer *risk.Scorer, trending []string, trendingPeriod domrepo.Period, logger *applogger.Logger) *StocksUseCase {
	if logger == nil {
		logger = applogger.Nop()
	}
	if trendingPeriod == "" {
		trendingPeriod = domrepo.Period5D
	}
	return &StocksUseCase{
		market:         market,
		quotes:         quotes,
		scorer:         scorer,
		trending:       trending,
		trendingPeriod: trendingPeriod,
		logger:         logger,
	}
}

// Details summarises symbol over period: last quote, range, risk and the most
// recent chart bars.
func (uc *StocksUseCase) Details(ctx context.Context, symbol string, period domrepo.Period) (*models.StockDetails, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, fmt.Errorf("symbol required")
	}

	series := uc.market.Fetch(ctx, symbol, domrepo.NormalizePeriod(string(period)))
	if len(series) == 0 {
		return nil, fmt.Errorf("details %s: %w", symbol, domsvc.ErrDataUnavailable)
	}

	last := series.Last()
	prev := last.Close
	if len(series) > 1 {
		prev = series[len(series)-2].Close
	}
	change := last.Close - prev

	high, low, volSum := last.High, last.Low, 0.0
	for _, b := range series {
		high = max(high, b.High)
		low = min(low, b.Low)
		volSum += b.Volume
	}

	chart := make([]models.ChartBar, 0, min(len(series), chartBars))
	for _, b := range series.Tail(chartBars) {
		chart = append(chart, models.ChartBar{
			Date:   util.FormatDate(b.Date),
			Open:   util.Round2(b.Open),
			High:   util.Round2(b.High),
			Low:    util.Round2(b.Low),
			Close:  util.Round2(b.Close),
			Volume: int64(b.Volume),
		})
	}

	return &models.StockDetails{
		Symbol:        symbol,
		CurrentPrice:  util.Round2(last.Close),
		Change:        util.Round2(change),
		ChangePercent: util.Round2(change / prev * 100),
		High52W:       util.Round2(high),
		Low52W:        util.Round2(low),
		Volume:        int64(last.Volume),
		AvgVolume:     int64(volSum / float64(len(series))),
		Risk:          uc.scorer.Score(features.Returns(series.Closes())),
		ChartData:     chart,
	}, nil
}

// Quote returns the trending entry for symbol: last close and the change across
// the trending window.
func (uc *StocksUseCase) Quote(ctx context.Context, symbol string) (models.TrendingQuote, error) {
	if q, ok := uc.quotes.Get(symbol); ok {
		return q, nil
	}
	series := uc.market.Fetch(ctx, symbol, uc.trendingPeriod)
	if len(series) == 0 {
		return models.TrendingQuote{}, fmt.Errorf("quote %s: %w", symbol, domsvc.ErrDataUnavailable)
	}
	first, last := series[0].Close, series.Last().Close
	q := models.TrendingQuote{
		Symbol:        symbol,
		Price:         util.Round2(last),
		ChangePercent: util.Round2((last - first) / first * 100),
	}
	uc.quotes.Set(symbol, q)
	return q, nil
}

// Trending quotes the watchlist concurrently; symbols without data are left out.
func (uc *StocksUseCase) Trending(ctx context.Context) []models.TrendingQuote {
	results := Fanout(ctx, uc.trending, uc.Quote)
	for _, r := range Failures(results) {
		uc.logger.Debug("trending quote skipped", applogger.String("symbol", r.Key), applogger.Error(r.Err))
	}
	return Successes(results)
}

// LastPrice is the latest close over the trending window, or false without data.
func (uc *StocksUseCase) LastPrice(ctx context.Context, symbol string) (float64, bool) {
	series := uc.market.Fetch(ctx, symbol, uc.trendingPeriod)
	if len(series) == 0 {
		return 0, false
	}
	return series.Last().Close, true
}
