package service

import "StockLens/internal/domain/models"

// Forecaster produces a multi-step price forecast from a chronological
// closing-price series. Pure computation, safe for concurrent use.
type Forecaster interface {
	Forecast(series []float64, order models.Order, horizon int) (*models.Forecast, error)
}

// SentimentAnalyzer scores article text and aggregates per-article
// polarity into one signal.
type SentimentAnalyzer interface {
	Score(text string) float64
	Aggregate(articles []models.Article) models.SentimentSignal
}
