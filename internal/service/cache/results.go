package cache

import (
	"strings"
	"time"

	"StockSense/internal/domain/models"
	"StockSense/internal/domain/repository"
	pcache "StockSense/pkg/cache"
)

// PredictionCache holds finished bundles per symbol.
type PredictionCache struct {
	entries *pcache.TTL[string, models.PredictionBundle]
	metrics repository.Metrics
}

func NewPredictionCache(ttl time.Duration, opts ...Option) (*PredictionCache, error) {
	o := buildOptions(opts)
	entries, err := pcache.NewTTL[string, models.PredictionBundle](ttl, o.ttlOptions()...)
	if err != nil {
		return nil, err
	}
	return &PredictionCache{entries: entries, metrics: o.metrics}, nil
}

func (c *PredictionCache) Get(symbol string) (models.PredictionBundle, bool) {
	b, ok := c.entries.Get(normalize(symbol))
	c.record("prediction", ok)
	return b, ok
}

func (c *PredictionCache) Set(symbol string, b models.PredictionBundle) {
	c.entries.Set(normalize(symbol), b)
}

func (c *PredictionCache) record(name string, hit bool) {
	if hit {
		c.metrics.RecordCacheHit(name)
	} else {
		c.metrics.RecordCacheMiss(name)
	}
}

// QuoteCache holds trending quotes per symbol.
type QuoteCache struct {
	entries *pcache.TTL[string, models.TrendingQuote]
	metrics repository.Metrics
}

func NewQuoteCache(ttl time.Duration, opts ...Option) (*QuoteCache, error) {
	o := buildOptions(opts)
	entries, err := pcache.NewTTL[string, models.TrendingQuote](ttl, o.ttlOptions()...)
	if err != nil {
		return nil, err
	}
	return &QuoteCache{entries: entries, metrics: o.metrics}, nil
}

func (c *QuoteCache) Get(symbol string) (models.TrendingQuote, bool) {
	q, ok := c.entries.Get(normalize(symbol))
	if ok {
		c.metrics.RecordCacheHit("quote")
	} else {
		c.metrics.RecordCacheMiss("quote")
	}
	return q, ok
}

func (c *QuoteCache) Set(symbol string, q models.TrendingQuote) {
	c.entries.Set(normalize(symbol), q)
}

func normalize(symbol string) string { return strings.ToUpper(strings.TrimSpace(symbol)) }
