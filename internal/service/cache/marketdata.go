package cache

import (
	"context"
	"strings"
	"time"

	"StockSense/internal/domain/models"
	"StockSense/internal/domain/repository"
	pcache "StockSense/pkg/cache"
	applogger "StockSense/pkg/logger"
	"StockSense/pkg/metrics"
)

const marketDataCacheName = "market_data"

// DefaultSuffixes are the exchange suffixes tried for a bare symbol, in order.
var DefaultSuffixes = []string{".NS", ".BO"}

// Option configures the domain caches.
type Option func(*options)

type options struct {
	suffixes   []string
	clock      pcache.Clock
	maxEntries int
	metrics    repository.Metrics
	logger     *applogger.Logger
}

func WithSuffixes(s []string) Option {
	return func(o *options) {
		if len(s) > 0 {
			o.suffixes = s
		}
	}
}

func WithClock(c pcache.Clock) Option { return func(o *options) { o.clock = c } }

func WithMaxEntries(n int) Option { return func(o *options) { o.maxEntries = n } }

func WithMetrics(m repository.Metrics) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}

func WithLogger(l *applogger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func buildOptions(opts []Option) *options {
	o := &options{
		suffixes: DefaultSuffixes,
		clock:    pcache.SystemClock{},
		metrics:  metrics.Nop{},
		logger:   applogger.Nop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *options) ttlOptions() []pcache.TTLOption {
	return []pcache.TTLOption{pcache.WithClock(o.clock), pcache.WithMaxEntries(o.maxEntries)}
}

// MarketDataCache memoises provider history per (symbol, period) and resolves a
// bare symbol against the configured exchange suffixes.
type MarketDataCache struct {
	provider repository.MarketDataProvider
	entries  *pcache.TTL[string, models.Series]
	suffixes []string
	metrics  repository.Metrics
	logger   *applogger.Logger
}

// NewMarketDataCache wraps provider with a ttl-bounded cache.
func NewMarketDataCache(provider repository.MarketDataProvider, ttl time.Duration, opts ...Option) (*MarketDataCache, error) {
	o := buildOptions(opts)
	entries, err := pcache.NewTTL[string, models.Series](ttl, o.ttlOptions()...)
	if err != nil {
		return nil, err
	}
	return &MarketDataCache{
		provider: provider,
		entries:  entries,
		suffixes: o.suffixes,
		metrics:  o.metrics,
		logger:   o.logger,
	}, nil
}

// Candidates lists the tickers tried for symbol, in order. A symbol already
// carrying a configured suffix is used as-is.
func (c *MarketDataCache) Candidates(symbol string) []string {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	for _, s := range c.suffixes {
		if strings.HasSuffix(symbol, strings.ToUpper(s)) {
			return []string{symbol}
		}
	}
	out := make([]string, 0, len(c.suffixes))
	for _, s := range c.suffixes {
		out = append(out, symbol+strings.ToUpper(s))
	}
	return out
}

// Fetch returns the bars for symbol over period. A live entry is returned without
// I/O. Otherwise candidates are tried until one yields bars; a provider error ends
// the walk and, like a symbol nobody knows, yields an empty series. Only non-empty
// series are cached.
func (c *MarketDataCache) Fetch(ctx context.Context, symbol string, period repository.Period) models.Series {
	key := pcache.GenerateKeyWithParams(marketDataCacheName, strings.ToUpper(strings.TrimSpace(symbol)), period)
	if s, ok := c.entries.Get(key); ok {
		c.metrics.RecordCacheHit(marketDataCacheName)
		return s
	}
	c.metrics.RecordCacheMiss(marketDataCacheName)

	start := time.Now()
	defer func() { c.metrics.RecordLatency("market_data_fetch", time.Since(start).Seconds()) }()

	for _, ticker := range c.Candidates(symbol) {
		series, err := c.provider.History(ctx, ticker, period)
		if err != nil {
			c.metrics.RecordError("provider")
			c.logger.Warn("market data fetch failed",
				applogger.String("ticker", ticker),
				applogger.String("period", string(period)),
				applogger.Error(err),
			)
			return nil
		}
		if len(series) == 0 {
			c.logger.Debug("no bars for ticker", applogger.String("ticker", ticker))
			continue
		}
		c.entries.Set(key, series)
		c.metrics.RecordLastPrice(ticker, series.Last().Close)
		return series
	}
	return nil
}

// Len reports cached series, including expired ones not yet read.
func (c *MarketDataCache) Len() int { return c.entries.Len() }
