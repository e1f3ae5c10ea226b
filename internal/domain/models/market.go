package models

import "time"

// Candle represents one daily OHLCV bar as stored and served for charting.
type Candle struct {
	Bucket time.Time
	Symbol string
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Quote is a point-in-time snapshot for a symbol.
type Quote struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	Volume        int64   `json:"volume"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Open          float64 `json:"open"`
	PreviousClose float64 `json:"previousClose"`
	Currency      string  `json:"currency"`
	LastUpdate    time.Time `json:"lastUpdate"`
}

// History is the chart payload for one symbol: aligned dates, closes, volumes.
type History struct {
	Symbol        string    `json:"symbol"`
	Name          string    `json:"name"`
	Currency      string    `json:"currency"`
	Dates         []string  `json:"dates"`
	Prices        []float64 `json:"prices"`
	Volumes       []float64 `json:"volumes"`
	CurrentPrice  float64   `json:"currentPrice"`
	PreviousPrice float64   `json:"previousPrice"`
}

// OverviewStats summarizes breadth across the tracked universe.
type OverviewStats struct {
	Total     int     `json:"total"`
	Gainers   int     `json:"gainers"`
	Losers    int     `json:"losers"`
	Unchanged int     `json:"unchanged"`
	AvgChange float64 `json:"avgChange"`
}

// Category groups quotes by sector with the sector's average move.
type Category struct {
	Stocks    []Quote `json:"stocks"`
	AvgChange float64 `json:"avgChange"`
	Count     int     `json:"count"`
}

// MarketOverview is the aggregate view across all tracked symbols.
type MarketOverview struct {
	Stocks     []Quote             `json:"stocks"`
	Statistics OverviewStats       `json:"statistics"`
	TopGainers []Quote             `json:"topGainers"`
	TopLosers  []Quote             `json:"topLosers"`
	Categories map[string]Category `json:"categories"`
	LastUpdate time.Time           `json:"lastUpdate"`
}
