package usecase

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"StockLens/internal/domain/models"
	drepo "StockLens/internal/domain/repository"
	"StockLens/pkg/cache"
	applogger "StockLens/pkg/logger"
)

// OverviewConfig tunes the market overview fan-out.
type OverviewConfig struct {
	Symbols    []string
	Categories map[string][]string
	Workers    int
	QuoteTTL   time.Duration
	CacheTTL   time.Duration
}

// OverviewUseCase builds the aggregate market view across the tracked
// universe with a bounded worker pool. Symbols that fail to fetch are
// dropped from the snapshot rather than failing the whole view.
type OverviewUseCase struct {
	market drepo.MarketDataProvider
	cache  cache.Service
	cfg    OverviewConfig
	l      *applogger.Logger
}

func NewOverviewUseCase(market drepo.MarketDataProvider, c cache.Service, cfg OverviewConfig, l *applogger.Logger) *OverviewUseCase {
	if cfg.Workers <= 0 {
		cfg.Workers = 10
	}
	if cfg.QuoteTTL <= 0 {
		cfg.QuoteTTL = 5 * time.Minute
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Minute
	}
	return &OverviewUseCase{market: market, cache: c, cfg: cfg, l: l}
}

const overviewKey = "overview"

// Get returns the overview, cached for a short window.
func (uc *OverviewUseCase) Get(ctx context.Context) (*models.MarketOverview, error) {
	if uc.cache != nil {
		var cached models.MarketOverview
		if err := uc.cache.Get(ctx, overviewKey, &cached); err == nil {
			return &cached, nil
		}
	}

	quotes := uc.Quotes(ctx, uc.cfg.Symbols)
	overview := buildOverview(quotes, uc.cfg.Categories)

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, overviewKey, overview, uc.cfg.CacheTTL); err != nil && uc.l != nil {
			uc.l.Warn("overview cache set failed", applogger.Error(err))
		}
	}
	return overview, nil
}

// Quotes fetches quotes for the given symbols, serving what it can from
// the per-symbol quote cache and fanning out for the rest.
func (uc *OverviewUseCase) Quotes(ctx context.Context, symbols []string) []models.Quote {
	keys := make([]string, len(symbols))
	for i, s := range symbols {
		keys[i] = cache.GenerateKey("quote", strings.ToUpper(s))
	}

	found := make(map[string]models.Quote)
	if uc.cache != nil {
		if cached, err := cache.MGetTyped[models.Quote](ctx, uc.cache, keys...); err == nil {
			for _, q := range cached {
				found[q.Symbol] = q
			}
		}
	}

	missing := make([]string, 0, len(symbols))
	for _, s := range symbols {
		if _, ok := found[strings.ToUpper(s)]; !ok {
			missing = append(missing, s)
		}
	}

	if len(missing) > 0 {
		fetched := uc.fetchQuotes(ctx, missing)

		if uc.cache != nil && len(fetched) > 0 {
			values := make(map[string]interface{}, len(fetched))
			for _, q := range fetched {
				values[cache.GenerateKey("quote", q.Symbol)] = q
			}
			if err := uc.cache.MSet(ctx, values, uc.cfg.QuoteTTL); err != nil && uc.l != nil {
				uc.l.Warn("quote cache mset failed", applogger.Error(err))
			}
		}
		for _, q := range fetched {
			found[q.Symbol] = q
		}
	}

	// Preserve the configured symbol order.
	out := make([]models.Quote, 0, len(symbols))
	for _, s := range symbols {
		if q, ok := found[strings.ToUpper(s)]; ok {
			out = append(out, q)
		}
	}
	return out
}

func (uc *OverviewUseCase) fetchQuotes(ctx context.Context, symbols []string) []models.Quote {
	jobs := make(chan string)
	results := make(chan models.Quote, len(symbols))
	var wg sync.WaitGroup

	workers := uc.cfg.Workers
	if workers > len(symbols) {
		workers = len(symbols)
	}

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for symbol := range jobs {
				q, err := uc.market.Quote(ctx, symbol)
				if err != nil {
					if uc.l != nil {
						uc.l.Warn("quote fetch failed",
							applogger.String("symbol", symbol), applogger.Error(err))
					}
					continue
				}
				results <- q
			}
		}()
	}

	for _, s := range symbols {
		jobs <- s
	}
	close(jobs)
	wg.Wait()
	close(results)

	out := make([]models.Quote, 0, len(symbols))
	for q := range results {
		out = append(out, q)
	}
	return out
}

func buildOverview(quotes []models.Quote, categories map[string][]string) *models.MarketOverview {
	stats := models.OverviewStats{Total: len(quotes)}
	var changeSum float64
	for _, q := range quotes {
		switch {
		case q.ChangePercent > 0:
			stats.Gainers++
		case q.ChangePercent < 0:
			stats.Losers++
		default:
			stats.Unchanged++
		}
		changeSum += q.ChangePercent
	}
	if len(quotes) > 0 {
		stats.AvgChange = changeSum / float64(len(quotes))
	}

	sorted := make([]models.Quote, len(quotes))
	copy(sorted, quotes)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ChangePercent > sorted[j].ChangePercent
	})

	top := 5
	if top > len(sorted) {
		top = len(sorted)
	}
	gainers := make([]models.Quote, top)
	copy(gainers, sorted[:top])
	losers := make([]models.Quote, top)
	for i := 0; i < top; i++ {
		losers[i] = sorted[len(sorted)-1-i]
	}

	bySymbol := make(map[string]models.Quote, len(quotes))
	for _, q := range quotes {
		bySymbol[q.Symbol] = q
	}

	cats := make(map[string]models.Category, len(categories))
	for name, members := range categories {
		var cat models.Category
		var sum float64
		for _, s := range members {
			if q, ok := bySymbol[strings.ToUpper(s)]; ok {
				cat.Stocks = append(cat.Stocks, q)
				sum += q.ChangePercent
			}
		}
		cat.Count = len(cat.Stocks)
		if cat.Count > 0 {
			cat.AvgChange = sum / float64(cat.Count)
		}
		cats[name] = cat
	}

	return &models.MarketOverview{
		Stocks:     quotes,
		Statistics: stats,
		TopGainers: gainers,
		TopLosers:  losers,
		Categories: cats,
		LastUpdate: time.Now().UTC(),
	}
}
