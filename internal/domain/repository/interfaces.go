package repository

import (
	"context"
	"encoding/json"

	"StockSense/internal/domain/models"
)

// MarketDataProvider fetches daily history for an exchange-qualified ticker
// (for example "RELIANCE.NS"). An unknown ticker yields an empty series, not an error.
type MarketDataProvider interface {
	History(ctx context.Context, ticker string, period Period) (models.Series, error)
}

// RecordStore keeps JSON documents grouped by collection and owner. Each write
// is atomic per document; nothing spans documents.
type RecordStore interface {
	Put(ctx context.Context, collection, owner, id string, doc any) error
	// Get decodes the document into dest or returns ErrNotFound.
	Get(ctx context.Context, collection, owner, id string, dest any) error
	// Delete returns ErrNotFound when nothing was removed.
	Delete(ctx context.Context, collection, owner, id string) error
	List(ctx context.Context, collection, owner string) ([]json.RawMessage, error)
	Close() error
}

// Catalog is the searchable list of tradable symbols.
type Catalog interface {
	Listings() []models.Listing
}

type Metrics interface {
	RecordCacheHit(cache string)
	RecordCacheMiss(cache string)
	RecordError(kind string)
	RecordLastPrice(symbol string, price float64)
	RecordLatency(op string, seconds float64)
}
