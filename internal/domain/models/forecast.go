package models

import "time"

// Order is the (p, d, q) model order. Q is accepted for compatibility
// with the common ARIMA notation but unused in estimation.
type Order struct {
	P int `json:"p"`
	D int `json:"d"`
	Q int `json:"q"`
}

// DefaultOrder returns the order used when the request does not override it.
func DefaultOrder() Order { return Order{P: 5, D: 1, Q: 0} }

// Interval is a 95% confidence band around one forecast point.
type Interval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Forecast holds point forecasts on price scale with confidence bands,
// positionally aligned: index 0 is one step past the last observed day.
// Sentiment is advisory and nil when no signal was available.
type Forecast struct {
	Values              []float64        `json:"values"`
	ConfidenceIntervals []Interval       `json:"confidenceIntervals"`
	Sentiment           *SentimentSignal `json:"sentiment,omitempty"`
	StdError            float64          `json:"stdError"`
}

// Prediction is the API payload wrapping a forecast for one symbol.
type Prediction struct {
	Symbol       string    `json:"symbol"`
	CurrentPrice float64   `json:"currentPrice"`
	Forecast     Forecast  `json:"prediction"`
	NewsCount    int       `json:"newsCount"`
	Timestamp    time.Time `json:"timestamp"`
}
