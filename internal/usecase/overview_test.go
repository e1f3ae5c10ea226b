package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"StockLens/internal/domain/models"
)

type quoteMarket struct {
	quotes map[string]models.Quote
}

func (m *quoteMarket) History(_ context.Context, _ string, _ time.Duration) ([]models.Candle, error) {
	return nil, errors.New("not implemented")
}

func (m *quoteMarket) Quote(_ context.Context, symbol string) (models.Quote, error) {
	q, ok := m.quotes[symbol]
	if !ok {
		return models.Quote{}, errors.New("unknown symbol")
	}
	return q, nil
}

func TestOverviewStatistics(t *testing.T) {
	market := &quoteMarket{quotes: map[string]models.Quote{
		"AAPL": {Symbol: "AAPL", ChangePercent: 2.0},
		"MSFT": {Symbol: "MSFT", ChangePercent: -1.0},
		"TSLA": {Symbol: "TSLA", ChangePercent: 5.0},
		"INTC": {Symbol: "INTC", ChangePercent: 0},
	}}

	uc := NewOverviewUseCase(market, nil, OverviewConfig{
		Symbols: []string{"AAPL", "MSFT", "TSLA", "INTC"},
		Categories: map[string][]string{
			"tech": {"AAPL", "MSFT"},
		},
		Workers: 2,
	}, nil)

	ov, err := uc.Get(context.Background())
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if ov.Statistics.Total != 4 || ov.Statistics.Gainers != 2 || ov.Statistics.Losers != 1 || ov.Statistics.Unchanged != 1 {
		t.Fatalf("unexpected stats %+v", ov.Statistics)
	}
	if want := (2.0 - 1.0 + 5.0) / 4; ov.Statistics.AvgChange != want {
		t.Fatalf("avg change %v want %v", ov.Statistics.AvgChange, want)
	}

	if len(ov.TopGainers) == 0 || ov.TopGainers[0].Symbol != "TSLA" {
		t.Fatalf("expected TSLA as top gainer, got %+v", ov.TopGainers)
	}
	if len(ov.TopLosers) == 0 || ov.TopLosers[0].Symbol != "MSFT" {
		t.Fatalf("expected MSFT as top loser, got %+v", ov.TopLosers)
	}

	tech, ok := ov.Categories["tech"]
	if !ok || tech.Count != 2 {
		t.Fatalf("unexpected tech category %+v", tech)
	}
	if want := (2.0 - 1.0) / 2; tech.AvgChange != want {
		t.Fatalf("tech avg %v want %v", tech.AvgChange, want)
	}
}

func TestOverviewDropsFailedSymbols(t *testing.T) {
	market := &quoteMarket{quotes: map[string]models.Quote{
		"AAPL": {Symbol: "AAPL", ChangePercent: 1.0},
	}}

	uc := NewOverviewUseCase(market, nil, OverviewConfig{
		Symbols: []string{"AAPL", "BOGUS"},
		Workers: 2,
	}, nil)

	ov, err := uc.Get(context.Background())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(ov.Stocks) != 1 || ov.Stocks[0].Symbol != "AAPL" {
		t.Fatalf("expected only AAPL, got %+v", ov.Stocks)
	}
}

func TestOverviewPreservesSymbolOrder(t *testing.T) {
	market := &quoteMarket{quotes: map[string]models.Quote{
		"MSFT": {Symbol: "MSFT"},
		"AAPL": {Symbol: "AAPL"},
		"TSLA": {Symbol: "TSLA"},
	}}

	uc := NewOverviewUseCase(market, nil, OverviewConfig{
		Symbols: []string{"MSFT", "AAPL", "TSLA"},
		Workers: 3,
	}, nil)

	quotes := uc.Quotes(context.Background(), []string{"MSFT", "AAPL", "TSLA"})
	if len(quotes) != 3 {
		t.Fatalf("expected 3 quotes, got %d", len(quotes))
	}
	for i, want := range []string{"MSFT", "AAPL", "TSLA"} {
		if quotes[i].Symbol != want {
			t.Fatalf("position %d: got %s want %s", i, quotes[i].Symbol, want)
		}
	}
}
