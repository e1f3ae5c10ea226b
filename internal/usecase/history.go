package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"StockLens/internal/domain/models"
	drepo "StockLens/internal/domain/repository"
	"StockLens/pkg/cache"
	applogger "StockLens/pkg/logger"
)

// HistoryConfig tunes the chart history pipeline.
type HistoryConfig struct {
	Lookback time.Duration
	CacheTTL time.Duration
}

// HistoryUseCase serves the per-symbol chart payload.
type HistoryUseCase struct {
	market drepo.MarketDataProvider
	store  drepo.BarStore
	cache  cache.Service
	cfg    HistoryConfig
	l      *applogger.Logger
}

func NewHistoryUseCase(market drepo.MarketDataProvider, store drepo.BarStore, c cache.Service, cfg HistoryConfig, l *applogger.Logger) *HistoryUseCase {
	if cfg.Lookback <= 0 {
		cfg.Lookback = 365 * 24 * time.Hour
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	return &HistoryUseCase{market: market, store: store, cache: c, cfg: cfg, l: l}
}

// Get returns aligned dates, closes and volumes for one symbol.
func (uc *HistoryUseCase) Get(ctx context.Context, symbol string) (*models.History, error) {
	symbol = strings.ToUpper(symbol)
	key := cache.GenerateKey("history", symbol)

	if uc.cache != nil {
		var cached models.History
		if err := uc.cache.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		}
	}

	bars, err := uc.market.History(ctx, symbol, uc.cfg.Lookback)
	if err != nil {
		return nil, fmt.Errorf("history for %s: %w", symbol, err)
	}

	if uc.store != nil {
		if err := uc.store.StoreBatch(ctx, bars); err != nil && uc.l != nil {
			uc.l.Warn("bar store write failed",
				applogger.String("symbol", symbol), applogger.Error(err))
		}
	}

	h := &models.History{
		Symbol:  symbol,
		Name:    symbol,
		Dates:   make([]string, len(bars)),
		Prices:  make([]float64, len(bars)),
		Volumes: make([]float64, len(bars)),
	}
	for i, b := range bars {
		h.Dates[i] = b.Bucket.Format("2006-01-02")
		h.Prices[i] = b.Close
		h.Volumes[i] = b.Volume
	}
	h.CurrentPrice = bars[len(bars)-1].Close
	if len(bars) > 1 {
		h.PreviousPrice = bars[len(bars)-2].Close
	}

	// Name and currency come from the quote snapshot; the chart still
	// renders without them.
	if q, err := uc.market.Quote(ctx, symbol); err == nil {
		h.Name = q.Name
		h.Currency = q.Currency
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, key, h, uc.cfg.CacheTTL); err != nil && uc.l != nil {
			uc.l.Warn("history cache set failed", applogger.Error(err))
		}
	}
	return h, nil
}
