package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"StockLens/internal/domain/models"
	drepo "StockLens/internal/domain/repository"
	domsvc "StockLens/internal/domain/service"
	fcmetrics "StockLens/internal/service/metrics"
	"StockLens/pkg/cache"
	applogger "StockLens/pkg/logger"
)

// PredictionConfig tunes the prediction pipeline. DefaultOrder and
// DefaultHorizon fill in predict parameters the request leaves unset.
type PredictionConfig struct {
	Lookback         time.Duration
	NewsLimit        int
	SentimentTimeout time.Duration
	CacheTTL         time.Duration
	DefaultOrder     models.Order
	DefaultHorizon   int
}

// PredictionUseCase produces price forecasts: history in, forecast plus
// advisory sentiment out. Sentiment never blocks or fails a forecast.
type PredictionUseCase struct {
	market     drepo.MarketDataProvider
	news       drepo.NewsProvider
	store      drepo.BarStore
	publisher  drepo.PredictionPublisher
	forecaster domsvc.Forecaster
	sentiment  domsvc.SentimentAnalyzer
	cache      cache.Service
	cfg        PredictionConfig
	l          *applogger.Logger
}

func NewPredictionUseCase(
	market drepo.MarketDataProvider,
	news drepo.NewsProvider,
	store drepo.BarStore,
	publisher drepo.PredictionPublisher,
	forecaster domsvc.Forecaster,
	sentiment domsvc.SentimentAnalyzer,
	c cache.Service,
	cfg PredictionConfig,
	l *applogger.Logger,
) *PredictionUseCase {
	if cfg.SentimentTimeout <= 0 {
		cfg.SentimentTimeout = 2 * time.Second
	}
	if cfg.NewsLimit <= 0 {
		cfg.NewsLimit = 10
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Hour
	}
	if cfg.Lookback <= 0 {
		cfg.Lookback = 365 * 24 * time.Hour
	}
	if cfg.DefaultOrder.P <= 0 {
		cfg.DefaultOrder = models.Order{P: 5, D: 1, Q: 0}
	}
	if cfg.DefaultHorizon <= 0 {
		cfg.DefaultHorizon = 10
	}
	fcmetrics.Register()
	return &PredictionUseCase{
		market:     market,
		news:       news,
		store:      store,
		publisher:  publisher,
		forecaster: forecaster,
		sentiment:  sentiment,
		cache:      c,
		cfg:        cfg,
		l:          l,
	}
}

type sentimentResult struct {
	signal models.SentimentSignal
	count  int
	ok     bool
}

// Predict runs the full pipeline for one symbol.
func (uc *PredictionUseCase) Predict(ctx context.Context, req models.PredictRequest) (*models.Prediction, error) {
	symbol := strings.ToUpper(req.Symbol)
	order := models.Order{
		P: intOr(req.P, uc.cfg.DefaultOrder.P),
		D: intOr(req.D, uc.cfg.DefaultOrder.D),
		Q: intOr(req.Q, uc.cfg.DefaultOrder.Q),
	}
	horizon := intOr(req.Horizon, uc.cfg.DefaultHorizon)
	key := cache.GenerateKeyWithParams("predict", symbol, order.P, order.D, horizon)

	if uc.cache != nil {
		var cached models.Prediction
		if err := uc.cache.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		}
	}

	// Best-effort stampede guard: if another request holds the lock we
	// compute anyway rather than wait.
	if uc.cache != nil {
		if ok, _ := uc.cache.TryLock(ctx, "lock:"+key, 30*time.Second); ok {
			defer func() { _ = uc.cache.Unlock(context.WithoutCancel(ctx), "lock:"+key) }()
		}
	}

	series, currentPrice, err := uc.loadSeries(ctx, symbol)
	if err != nil {
		fcmetrics.ForecastErrors.WithLabelValues("history").Inc()
		return nil, err
	}

	// Sentiment runs concurrently with the forecast and is dropped on
	// timeout or failure.
	sentCh := make(chan sentimentResult, 1)
	sentCtx, cancelSent := context.WithTimeout(ctx, uc.cfg.SentimentTimeout)
	defer cancelSent()
	go uc.fetchSentiment(sentCtx, symbol, sentCh)

	start := time.Now()
	forecast, err := uc.forecaster.Forecast(series, order, horizon)
	fcmetrics.ForecastLatency.WithLabelValues(symbol).Observe(time.Since(start).Seconds())
	if err != nil {
		fcmetrics.ForecastErrors.WithLabelValues("model").Inc()
		return nil, err
	}

	newsCount := 0
	select {
	case res := <-sentCh:
		if res.ok {
			sig := res.signal
			forecast.Sentiment = &sig
			newsCount = res.count
			fcmetrics.SentimentArticles.WithLabelValues(symbol).Observe(float64(res.count))
		}
	case <-sentCtx.Done():
		if uc.l != nil {
			uc.l.Debug("sentiment timed out, serving forecast without it",
				applogger.String("symbol", symbol))
		}
	}

	pred := &models.Prediction{
		Symbol:       symbol,
		CurrentPrice: currentPrice,
		Forecast:     *forecast,
		NewsCount:    newsCount,
		Timestamp:    time.Now().UTC(),
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, key, pred, uc.cfg.CacheTTL); err != nil && uc.l != nil {
			uc.l.Warn("prediction cache set failed", applogger.Error(err))
		}
	}
	if uc.publisher != nil {
		if err := uc.publisher.Publish(ctx, pred); err != nil && uc.l != nil {
			uc.l.Warn("prediction publish failed",
				applogger.String("symbol", symbol), applogger.Error(err))
		}
	}

	return pred, nil
}

// loadSeries returns the chronological close series plus the latest
// close. The bar store is consulted first, the provider on miss, and
// fresh bars are written back best-effort.
func (uc *PredictionUseCase) loadSeries(ctx context.Context, symbol string) ([]float64, float64, error) {
	lookbackDays := int(uc.cfg.Lookback.Hours() / 24)

	if uc.store != nil {
		bars, err := uc.store.LatestN(ctx, symbol, lookbackDays)
		if err == nil && len(bars) >= minStoredBars {
			if fresh(bars) {
				return closes(bars), bars[len(bars)-1].Close, nil
			}
		} else if err != nil && uc.l != nil {
			uc.l.Warn("bar store read failed, falling back to provider",
				applogger.String("symbol", symbol), applogger.Error(err))
		}
	}

	bars, err := uc.market.History(ctx, symbol, uc.cfg.Lookback)
	if err != nil {
		return nil, 0, fmt.Errorf("load history for %s: %w", symbol, err)
	}

	if uc.store != nil {
		if err := uc.store.StoreBatch(ctx, bars); err != nil && uc.l != nil {
			uc.l.Warn("bar store write failed",
				applogger.String("symbol", symbol), applogger.Error(err))
		}
	}

	return closes(bars), bars[len(bars)-1].Close, nil
}

func (uc *PredictionUseCase) fetchSentiment(ctx context.Context, symbol string, out chan<- sentimentResult) {
	if uc.news == nil || uc.sentiment == nil {
		out <- sentimentResult{}
		return
	}

	articles, err := uc.news.SymbolNews(ctx, symbol, uc.cfg.NewsLimit)
	if err != nil || len(articles) == 0 {
		if err != nil && uc.l != nil {
			uc.l.Debug("news fetch failed, skipping sentiment",
				applogger.String("symbol", symbol), applogger.Error(err))
		}
		out <- sentimentResult{}
		return
	}

	for i := range articles {
		articles[i].Sentiment = uc.sentiment.Score(articles[i].Title + " " + articles[i].Description)
	}
	out <- sentimentResult{
		signal: uc.sentiment.Aggregate(articles),
		count:  len(articles),
		ok:     true,
	}
}

// minStoredBars is the floor below which the store is considered too
// sparse and the provider is queried instead.
const minStoredBars = 30

func intOr(v *int, fallback int) int {
	if v != nil {
		return *v
	}
	return fallback
}

func closes(bars []models.Candle) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}
	return out
}

// fresh reports whether the newest stored bar is recent enough to
// forecast from without re-fetching. Weekends leave gaps of up to
// three calendar days.
func fresh(bars []models.Candle) bool {
	if len(bars) == 0 {
		return false
	}
	return time.Since(bars[len(bars)-1].Bucket) < 4*24*time.Hour
}
