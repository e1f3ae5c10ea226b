package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"StockLens/internal/domain/models"
	"StockLens/internal/sentiment"
	"StockLens/pkg/cache"
)

type fakeMarket struct {
	bars         []models.Candle
	historyCalls int32
	err          error
}

func (f *fakeMarket) History(_ context.Context, _ string, _ time.Duration) ([]models.Candle, error) {
	atomic.AddInt32(&f.historyCalls, 1)
	if f.err != nil {
		return nil, f.err
	}
	return f.bars, nil
}

func (f *fakeMarket) Quote(_ context.Context, symbol string) (models.Quote, error) {
	if f.err != nil {
		return models.Quote{}, f.err
	}
	return models.Quote{Symbol: symbol, Price: 100}, nil
}

type fakeNews struct {
	articles []models.Article
	err      error
	delay    time.Duration
}

func (f *fakeNews) SymbolNews(ctx context.Context, _ string, _ int) ([]models.Article, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.articles, f.err
}

func (f *fakeNews) MarketNews(_ context.Context, _ int) ([]models.Article, error) {
	return f.articles, f.err
}

type fakeForecaster struct {
	calls       int32
	err         error
	lastOrder   models.Order
	lastHorizon int
}

func (f *fakeForecaster) Forecast(series []float64, order models.Order, horizon int) (*models.Forecast, error) {
	atomic.AddInt32(&f.calls, 1)
	f.lastOrder = order
	f.lastHorizon = horizon
	if f.err != nil {
		return nil, f.err
	}
	last := series[len(series)-1]
	fc := &models.Forecast{StdError: 1}
	for i := 0; i < horizon; i++ {
		fc.Values = append(fc.Values, last)
		fc.ConfidenceIntervals = append(fc.ConfidenceIntervals, models.Interval{Lower: last - 1, Upper: last + 1})
	}
	return fc, nil
}

type fakeStore struct {
	bars   []models.Candle
	stored []models.Candle
}

func (f *fakeStore) StoreBatch(_ context.Context, bars []models.Candle) error {
	f.stored = append(f.stored, bars...)
	return nil
}

func (f *fakeStore) LatestN(_ context.Context, _ string, n int) ([]models.Candle, error) {
	if len(f.bars) > n {
		return f.bars[len(f.bars)-n:], nil
	}
	return f.bars, nil
}

func (f *fakeStore) Health(_ context.Context) error { return nil }
func (f *fakeStore) Close() error                   { return nil }

func genBars(n int) []models.Candle {
	bars := make([]models.Candle, n)
	day := time.Now().UTC().AddDate(0, 0, -n)
	for i := range bars {
		price := 100 + float64(i%7)
		bars[i] = models.Candle{
			Bucket: day.AddDate(0, 0, i),
			Symbol: "AAPL",
			Open:   price,
			High:   price + 1,
			Low:    price - 1,
			Close:  price,
			Volume: 1000,
		}
	}
	return bars
}

func intp(v int) *int { return &v }

func newPredictReq() models.PredictRequest {
	return models.PredictRequest{Symbol: "AAPL", P: intp(5), D: intp(1), Horizon: intp(10)}
}

func TestPredictAttachesSentiment(t *testing.T) {
	market := &fakeMarket{bars: genBars(60)}
	news := &fakeNews{articles: []models.Article{
		{Title: "Strong growth and record profit"},
		{Title: "Shares surge on upbeat outlook"},
	}}

	uc := NewPredictionUseCase(market, news, nil, nil, &fakeForecaster{}, sentiment.NewAnalyzer(), nil,
		PredictionConfig{SentimentTimeout: time.Second}, nil)

	pred, err := uc.Predict(context.Background(), newPredictReq())
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if pred.Forecast.Sentiment == nil {
		t.Fatalf("expected sentiment signal")
	}
	if pred.Forecast.Sentiment.Label != models.SentimentPositive {
		t.Fatalf("expected positive label, got %s", pred.Forecast.Sentiment.Label)
	}
	if pred.NewsCount != 2 {
		t.Fatalf("expected news count 2, got %d", pred.NewsCount)
	}
	if len(pred.Forecast.Values) != 10 {
		t.Fatalf("expected 10 values, got %d", len(pred.Forecast.Values))
	}
}

func TestPredictSurvivesNewsFailure(t *testing.T) {
	market := &fakeMarket{bars: genBars(60)}
	news := &fakeNews{err: errors.New("upstream down")}

	uc := NewPredictionUseCase(market, news, nil, nil, &fakeForecaster{}, sentiment.NewAnalyzer(), nil,
		PredictionConfig{SentimentTimeout: time.Second}, nil)

	pred, err := uc.Predict(context.Background(), newPredictReq())
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if pred.Forecast.Sentiment != nil {
		t.Fatalf("expected no sentiment on news failure")
	}
	if pred.NewsCount != 0 {
		t.Fatalf("expected news count 0, got %d", pred.NewsCount)
	}
}

func TestPredictSentimentTimeout(t *testing.T) {
	market := &fakeMarket{bars: genBars(60)}
	news := &fakeNews{
		articles: []models.Article{{Title: "growth"}},
		delay:    time.Second,
	}

	uc := NewPredictionUseCase(market, news, nil, nil, &fakeForecaster{}, sentiment.NewAnalyzer(), nil,
		PredictionConfig{SentimentTimeout: 20 * time.Millisecond}, nil)

	pred, err := uc.Predict(context.Background(), newPredictReq())
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if pred.Forecast.Sentiment != nil {
		t.Fatalf("expected sentiment dropped on timeout")
	}
}

func TestPredictPrefersFreshStore(t *testing.T) {
	market := &fakeMarket{bars: genBars(60)}
	store := &fakeStore{bars: genBars(60)}

	uc := NewPredictionUseCase(market, &fakeNews{err: errors.New("none")}, store, nil,
		&fakeForecaster{}, sentiment.NewAnalyzer(), nil, PredictionConfig{}, nil)

	if _, err := uc.Predict(context.Background(), newPredictReq()); err != nil {
		t.Fatalf("predict: %v", err)
	}
	if n := atomic.LoadInt32(&market.historyCalls); n != 0 {
		t.Fatalf("expected provider untouched with fresh store, got %d calls", n)
	}
}

func TestPredictFallsBackToProviderOnSparseStore(t *testing.T) {
	market := &fakeMarket{bars: genBars(60)}
	store := &fakeStore{bars: genBars(5)}

	uc := NewPredictionUseCase(market, &fakeNews{err: errors.New("none")}, store, nil,
		&fakeForecaster{}, sentiment.NewAnalyzer(), nil, PredictionConfig{}, nil)

	if _, err := uc.Predict(context.Background(), newPredictReq()); err != nil {
		t.Fatalf("predict: %v", err)
	}
	if n := atomic.LoadInt32(&market.historyCalls); n != 1 {
		t.Fatalf("expected one provider call, got %d", n)
	}
	if len(store.stored) == 0 {
		t.Fatalf("expected fetched bars written back to store")
	}
}

func TestPredictUsesConfiguredDefaults(t *testing.T) {
	market := &fakeMarket{bars: genBars(60)}
	fc := &fakeForecaster{}

	uc := NewPredictionUseCase(market, &fakeNews{err: errors.New("none")}, nil, nil,
		fc, sentiment.NewAnalyzer(), nil,
		PredictionConfig{
			DefaultOrder:   models.Order{P: 3, D: 2, Q: 0},
			DefaultHorizon: 20,
		}, nil)

	req := models.PredictRequest{Symbol: "AAPL"}
	pred, err := uc.Predict(context.Background(), req)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if fc.lastOrder != (models.Order{P: 3, D: 2, Q: 0}) {
		t.Fatalf("expected configured order, got %+v", fc.lastOrder)
	}
	if fc.lastHorizon != 20 {
		t.Fatalf("expected configured horizon 20, got %d", fc.lastHorizon)
	}
	if len(pred.Forecast.Values) != 20 {
		t.Fatalf("expected 20 values, got %d", len(pred.Forecast.Values))
	}
}

func TestPredictHonorsExplicitZeroD(t *testing.T) {
	market := &fakeMarket{bars: genBars(60)}
	fc := &fakeForecaster{}

	uc := NewPredictionUseCase(market, &fakeNews{err: errors.New("none")}, nil, nil,
		fc, sentiment.NewAnalyzer(), nil,
		PredictionConfig{DefaultOrder: models.Order{P: 5, D: 1, Q: 0}}, nil)

	req := models.PredictRequest{Symbol: "AAPL", P: intp(2), D: intp(0), Horizon: intp(3)}
	if _, err := uc.Predict(context.Background(), req); err != nil {
		t.Fatalf("predict: %v", err)
	}
	if fc.lastOrder.D != 0 {
		t.Fatalf("expected d=0 to survive, got d=%d", fc.lastOrder.D)
	}
	if fc.lastOrder.P != 2 || fc.lastHorizon != 3 {
		t.Fatalf("expected p=2 horizon=3, got p=%d horizon=%d", fc.lastOrder.P, fc.lastHorizon)
	}
}

func TestPredictServesFromCache(t *testing.T) {
	market := &fakeMarket{bars: genBars(60)}
	fc := &fakeForecaster{}
	mc := cache.NewMemoryCache()
	defer mc.Close()

	uc := NewPredictionUseCase(market, &fakeNews{err: errors.New("none")}, nil, nil,
		fc, sentiment.NewAnalyzer(), mc, PredictionConfig{}, nil)

	if _, err := uc.Predict(context.Background(), newPredictReq()); err != nil {
		t.Fatalf("first predict: %v", err)
	}
	if _, err := uc.Predict(context.Background(), newPredictReq()); err != nil {
		t.Fatalf("second predict: %v", err)
	}
	if n := atomic.LoadInt32(&fc.calls); n != 1 {
		t.Fatalf("expected one forecast computation, got %d", n)
	}
}
