package forecast

import (
	"errors"
	"testing"

	"StockLens/internal/domain/models"
)

var samplePrices = []float64{100, 102, 101, 105, 107, 106, 110, 108, 112, 115}

func TestRunShapes(t *testing.T) {
	f, err := Run(samplePrices, models.Order{P: 2, D: 1}, 3)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(f.Values) != 3 {
		t.Fatalf("expected 3 values, got %d", len(f.Values))
	}
	if len(f.ConfidenceIntervals) != 3 {
		t.Fatalf("expected 3 intervals, got %d", len(f.ConfidenceIntervals))
	}
	for i, iv := range f.ConfidenceIntervals {
		if iv.Lower >= f.Values[i] || f.Values[i] >= iv.Upper {
			t.Fatalf("interval %d: want lower < value < upper, got [%v, %v] around %v", i, iv.Lower, iv.Upper, f.Values[i])
		}
	}
	w1 := f.ConfidenceIntervals[0].Upper - f.ConfidenceIntervals[0].Lower
	w3 := f.ConfidenceIntervals[2].Upper - f.ConfidenceIntervals[2].Lower
	if w3 < w1 {
		t.Fatalf("interval width must widen: step1=%v step3=%v", w1, w3)
	}
}

func TestRunWideningMonotonic(t *testing.T) {
	f, err := Run(samplePrices, models.Order{P: 3, D: 1}, 8)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if f.StdError <= 0 {
		t.Fatalf("expected positive std error, got %v", f.StdError)
	}
	prev := 0.0
	for i, iv := range f.ConfidenceIntervals {
		w := iv.Upper - iv.Lower
		if w < prev {
			t.Fatalf("width shrank at step %d: %v < %v", i+1, w, prev)
		}
		prev = w
	}
}

func TestRunConstantSeries(t *testing.T) {
	s := make([]float64, 30)
	for i := range s {
		s[i] = 100.0
	}
	_, err := Run(s, models.DefaultOrder(), 10)
	var degenerate *DegenerateSeriesError
	if !errors.As(err, &degenerate) {
		t.Fatalf("expected DegenerateSeriesError, got %v", err)
	}
}

func TestRunInvalidOrder(t *testing.T) {
	cases := []struct {
		order   models.Order
		horizon int
	}{
		{models.Order{P: 0, D: 1}, 10},
		{models.Order{P: 5, D: -1}, 10},
		{models.Order{P: 5, D: 1}, 0},
	}
	for _, tc := range cases {
		_, err := Run(samplePrices, tc.order, tc.horizon)
		var invalid *InvalidOrderError
		if !errors.As(err, &invalid) {
			t.Fatalf("order %+v horizon %d: expected InvalidOrderError, got %v", tc.order, tc.horizon, err)
		}
	}
}

func TestRunInsufficientData(t *testing.T) {
	_, err := Run([]float64{100, 101, 102}, models.Order{P: 3, D: 1}, 5)
	var insufficient *InsufficientDataError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientDataError, got %v", err)
	}
}

func TestRunNoDifferencing(t *testing.T) {
	f, err := Run(samplePrices, models.Order{P: 2, D: 0}, 5)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(f.Values) != 5 {
		t.Fatalf("expected 5 values, got %d", len(f.Values))
	}
}

func TestAnnotateParity(t *testing.T) {
	base, err := Run(samplePrices, models.Order{P: 2, D: 1}, 3)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if base.Sentiment != nil {
		t.Fatalf("fresh forecast must carry no sentiment")
	}

	withSignal, err := Run(samplePrices, models.Order{P: 2, D: 1}, 3)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	sig := &models.SentimentSignal{Score: 0.4, Label: models.SentimentPositive, Confidence: 0.9, ArticleCount: 5}
	Annotate(withSignal, sig)

	if withSignal.Sentiment == nil || withSignal.Sentiment.Label != models.SentimentPositive {
		t.Fatalf("sentiment not attached: %+v", withSignal.Sentiment)
	}
	for i := range base.Values {
		if base.Values[i] != withSignal.Values[i] {
			t.Fatalf("values must not change under annotation: %v vs %v", base.Values[i], withSignal.Values[i])
		}
		if base.ConfidenceIntervals[i] != withSignal.ConfidenceIntervals[i] {
			t.Fatalf("intervals must not change under annotation")
		}
	}

	Annotate(base, nil)
	if base.Sentiment != nil {
		t.Fatalf("nil signal must leave sentiment absent")
	}
}

func TestRunQIgnored(t *testing.T) {
	a, err := Run(samplePrices, models.Order{P: 2, D: 1, Q: 0}, 3)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	b, err := Run(samplePrices, models.Order{P: 2, D: 1, Q: 4}, 3)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	for i := range a.Values {
		if a.Values[i] != b.Values[i] {
			t.Fatalf("q must not affect the forecast")
		}
	}
}
