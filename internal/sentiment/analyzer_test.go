package sentiment

import (
	"math"
	"testing"

	"StockLens/internal/domain/models"
)

func TestScorePolarity(t *testing.T) {
	a := NewAnalyzer()
	cases := []struct {
		text string
		sign int
	}{
		{"Shares surge to record high on strong profit growth", 1},
		{"Stock plunges after earnings miss, analysts downgrade", -1},
		{"Company reports quarterly results", 0},
		{"", 0},
	}
	for _, tc := range cases {
		got := a.Score(tc.text)
		switch {
		case tc.sign > 0 && got <= 0:
			t.Fatalf("%q: expected positive score, got %v", tc.text, got)
		case tc.sign < 0 && got >= 0:
			t.Fatalf("%q: expected negative score, got %v", tc.text, got)
		case tc.sign == 0 && got != 0:
			t.Fatalf("%q: expected zero score, got %v", tc.text, got)
		}
		if got < -1 || got > 1 {
			t.Fatalf("%q: score %v out of [-1, 1]", tc.text, got)
		}
	}
}

func TestScoreMixed(t *testing.T) {
	a := NewAnalyzer()
	got := a.Score("gains offset by losses")
	if got != 0 {
		t.Fatalf("balanced text: expected 0, got %v", got)
	}
}

func TestAggregateEmpty(t *testing.T) {
	a := NewAnalyzer()
	sig := a.Aggregate(nil)
	if sig.Label != models.SentimentNeutral || sig.Score != 0 || sig.Confidence != 0 || sig.ArticleCount != 0 {
		t.Fatalf("empty input: expected zero neutral signal, got %+v", sig)
	}
}

func TestAggregateLabels(t *testing.T) {
	a := NewAnalyzer()
	cases := []struct {
		scores []float64
		label  models.SentimentLabel
	}{
		{[]float64{0.5, 0.6, 0.4}, models.SentimentPositive},
		{[]float64{-0.5, -0.4}, models.SentimentNegative},
		{[]float64{0.1, -0.1, 0.05}, models.SentimentNeutral},
	}
	for _, tc := range cases {
		arts := make([]models.Article, len(tc.scores))
		for i, s := range tc.scores {
			arts[i] = models.Article{Sentiment: s}
		}
		sig := a.Aggregate(arts)
		if sig.Label != tc.label {
			t.Fatalf("scores %v: expected %s, got %s", tc.scores, tc.label, sig.Label)
		}
		if sig.ArticleCount != len(tc.scores) {
			t.Fatalf("scores %v: article count %d", tc.scores, sig.ArticleCount)
		}
	}
}

func TestAggregateConfidence(t *testing.T) {
	a := NewAnalyzer()
	consistent := a.Aggregate([]models.Article{{Sentiment: 0.5}, {Sentiment: 0.5}, {Sentiment: 0.5}})
	if math.Abs(consistent.Confidence-1) > 1e-9 {
		t.Fatalf("identical scores: expected confidence 1, got %v", consistent.Confidence)
	}
	scattered := a.Aggregate([]models.Article{{Sentiment: 1}, {Sentiment: -1}, {Sentiment: 1}, {Sentiment: -1}})
	if scattered.Confidence >= consistent.Confidence {
		t.Fatalf("scattered scores must lower confidence: %v vs %v", scattered.Confidence, consistent.Confidence)
	}
	if scattered.Confidence < 0 {
		t.Fatalf("confidence must not go below zero: %v", scattered.Confidence)
	}
}
