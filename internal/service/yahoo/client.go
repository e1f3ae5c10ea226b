package yahoo

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"StockLens/internal/domain/models"
	drepo "StockLens/internal/domain/repository"
	"StockLens/internal/service/ratelimit"
	xhttp "StockLens/pkg/http"
)

// Client implements a MarketDataProvider backed by the Yahoo Finance
// chart API. Yahoo rejects requests without a browser user agent.
type Client struct {
	baseURL string
	http    *xhttp.Client
	limiter *ratelimit.Limiter
	metrics drepo.Metrics
}

// New creates a new Yahoo market data provider.
func New(baseURL string, timeout time.Duration, limiter *ratelimit.Limiter, metrics drepo.Metrics) drepo.MarketDataProvider {
	return &Client{
		baseURL: baseURL,
		http: xhttp.NewClient(
			xhttp.WithTimeout(timeout),
			xhttp.WithDefaultHeader("User-Agent", "Mozilla/5.0"),
		),
		limiter: limiter,
		metrics: metrics,
	}
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string  `json:"symbol"`
				Currency           string  `json:"currency"`
				LongName           string  `json:"longName"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				PreviousClose      float64 `json:"previousClose"`
				ChartPreviousClose float64 `json:"chartPreviousClose"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// at reads index i, tolerating ragged arrays in the payload.
func at(vs []*float64, i int) float64 {
	if i < 0 || i >= len(vs) {
		return 0
	}
	return deref(vs[i])
}

func (c *Client) fetchChart(ctx context.Context, symbol, interval, rng string) (*chartResponse, error) {
	if c.limiter != nil && !c.limiter.Allow("yahoo", 5, 2) {
		return nil, fmt.Errorf("yahoo: rate limited")
	}
	if c.metrics != nil {
		c.metrics.RecordFetch("yahoo", symbol)
	}

	var resp chartResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    fmt.Sprintf("%s/v8/finance/chart/%s", c.baseURL, url.PathEscape(symbol)),
		QueryParams: map[string][]string{
			"interval": {interval},
			"range":    {rng},
		},
	}, &resp)
	if err != nil {
		if c.metrics != nil {
			c.metrics.RecordError("yahoo_fetch")
		}
		return nil, fmt.Errorf("yahoo fetch %s: %w", symbol, err)
	}

	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error for %s: %s", symbol, resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 {
		return nil, fmt.Errorf("yahoo: no data for %s", symbol)
	}
	return &resp, nil
}

// History returns daily bars for symbol covering the lookback window,
// in chronological order with null bars (holidays) removed.
func (c *Client) History(ctx context.Context, symbol string, lookback time.Duration) ([]models.Candle, error) {
	resp, err := c.fetchChart(ctx, symbol, "1d", rangefor(lookback))
	if err != nil {
		return nil, err
	}

	result := resp.Chart.Result[0]
	if len(result.Timestamp) == 0 || len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo: empty chart for %s", symbol)
	}

	quote := result.Indicators.Quote[0]
	bars := make([]models.Candle, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) {
			break
		}
		cl := deref(quote.Close[i])
		if cl == 0 {
			continue
		}
		bars = append(bars, models.Candle{
			Bucket: time.Unix(ts, 0).UTC(),
			Symbol: symbol,
			Open:   at(quote.Open, i),
			High:   at(quote.High, i),
			Low:    at(quote.Low, i),
			Close:  cl,
			Volume: at(quote.Volume, i),
		})
	}

	if len(bars) == 0 {
		return nil, fmt.Errorf("yahoo: no usable bars for %s", symbol)
	}
	return bars, nil
}

// Quote returns a snapshot for symbol built from chart meta plus the
// last two daily closes.
func (c *Client) Quote(ctx context.Context, symbol string) (models.Quote, error) {
	resp, err := c.fetchChart(ctx, symbol, "1d", "5d")
	if err != nil {
		return models.Quote{}, err
	}

	result := resp.Chart.Result[0]
	meta := result.Meta

	q := models.Quote{
		Symbol:     symbol,
		Name:       meta.LongName,
		Price:      meta.RegularMarketPrice,
		Currency:   meta.Currency,
		LastUpdate: time.Now().UTC(),
	}
	if q.Name == "" {
		q.Name = symbol
	}

	if len(result.Indicators.Quote) > 0 {
		bars := result.Indicators.Quote[0]
		n := len(bars.Close)
		if q.Price == 0 && n > 0 {
			q.Price = deref(bars.Close[n-1])
		}
		if n > 0 {
			q.Open = at(bars.Open, n-1)
			q.High = at(bars.High, n-1)
			q.Low = at(bars.Low, n-1)
			q.Volume = int64(at(bars.Volume, n-1))
		}
		if n > 1 {
			q.PreviousClose = deref(bars.Close[n-2])
		}
	}
	if q.PreviousClose == 0 {
		q.PreviousClose = meta.PreviousClose
	}
	if q.PreviousClose == 0 {
		q.PreviousClose = meta.ChartPreviousClose
	}

	if q.PreviousClose != 0 {
		q.Change = q.Price - q.PreviousClose
		q.ChangePercent = q.Change / q.PreviousClose * 100
	}

	if c.metrics != nil && q.Price > 0 {
		c.metrics.RecordLastPrice(symbol, q.Price)
	}
	return q, nil
}

// rangefor maps a lookback duration onto the closest Yahoo range token.
func rangefor(lookback time.Duration) string {
	days := int(lookback.Hours() / 24)
	switch {
	case days <= 0:
		return "1y"
	case days <= 30:
		return "1mo"
	case days <= 90:
		return "3mo"
	case days <= 180:
		return "6mo"
	case days <= 365:
		return "1y"
	default:
		return "2y"
	}
}
