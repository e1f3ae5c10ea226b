package repository

import (
	"context"
	"time"

	"StockLens/internal/domain/models"
)

// MarketDataProvider fetches quotes and daily history from the upstream
// market data source. Implementations must return bars in chronological
// order with non-trading days already removed.
type MarketDataProvider interface {
	History(ctx context.Context, symbol string, lookback time.Duration) ([]models.Candle, error)
	Quote(ctx context.Context, symbol string) (models.Quote, error)
}

// NewsProvider fetches recent articles. Failures are expected (missing
// API key, upstream timeouts) and callers degrade gracefully.
type NewsProvider interface {
	SymbolNews(ctx context.Context, symbol string, limit int) ([]models.Article, error)
	MarketNews(ctx context.Context, limit int) ([]models.Article, error)
}

// BarStore persists and serves daily bars so repeated forecasts do not
// re-fetch the provider.
type BarStore interface {
	StoreBatch(ctx context.Context, bars []models.Candle) error
	LatestN(ctx context.Context, symbol string, n int) ([]models.Candle, error)
	Health(ctx context.Context) error
	Close() error
}

// PredictionPublisher emits generated predictions as events for
// downstream consumers. Publishing is best-effort.
type PredictionPublisher interface {
	Publish(ctx context.Context, p *models.Prediction) error
	Close() error
}

// Metrics records operational metrics.
type Metrics interface {
	RecordFetch(provider, symbol string)
	RecordError(kind string)
	RecordLastPrice(symbol string, price float64)
	RecordLatency(op string, seconds float64)
}
