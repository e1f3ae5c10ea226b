package newsapi

import (
	"context"
	"fmt"
	"strings"
	"time"

	"StockLens/internal/domain/models"
	drepo "StockLens/internal/domain/repository"
	xhttp "StockLens/pkg/http"
)

// companyNames widens news queries beyond the raw ticker so article
// search actually matches headlines.
var companyNames = map[string]string{
	"AAPL":  "Apple",
	"GOOGL": "Google",
	"GOOG":  "Google",
	"MSFT":  "Microsoft",
	"AMZN":  "Amazon",
	"TSLA":  "Tesla",
	"META":  "Meta",
	"NVDA":  "Nvidia",
	"NFLX":  "Netflix",
	"AMD":   "AMD",
	"INTC":  "Intel",
	"JPM":   "JPMorgan",
	"V":     "Visa",
	"DIS":   "Disney",
	"BA":    "Boeing",
}

// Client implements a NewsProvider backed by NewsAPI.
type Client struct {
	apiKey   string
	baseURL  string
	language string
	window   time.Duration
	http     *xhttp.Client
	metrics  drepo.Metrics
}

// New creates a new NewsAPI provider. An empty API key yields a client
// whose calls fail fast so callers can degrade gracefully.
func New(apiKey, baseURL, language string, window, timeout time.Duration, metrics drepo.Metrics) drepo.NewsProvider {
	return &Client{
		apiKey:   apiKey,
		baseURL:  baseURL,
		language: language,
		window:   window,
		http:     xhttp.NewClient(xhttp.WithTimeout(timeout)),
		metrics:  metrics,
	}
}

type newsResponse struct {
	Status       string `json:"status"`
	Code         string `json:"code"`
	Message      string `json:"message"`
	TotalResults int    `json:"totalResults"`
	Articles     []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		URLToImage  string `json:"urlToImage"`
		PublishedAt string `json:"publishedAt"`
	} `json:"articles"`
}

// SymbolNews returns up to limit recent articles mentioning the symbol
// or its company name.
func (c *Client) SymbolNews(ctx context.Context, symbol string, limit int) ([]models.Article, error) {
	// Exchange suffixes (AIR.PA, BMW.DE) rarely appear in headlines.
	base := strings.ToUpper(symbol)
	if i := strings.IndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	query := base
	if name, ok := companyNames[base]; ok {
		query = fmt.Sprintf("%s OR %s", base, name)
	}
	return c.search(ctx, symbol, query, limit)
}

// MarketNews returns general market headlines.
func (c *Client) MarketNews(ctx context.Context, limit int) ([]models.Article, error) {
	return c.search(ctx, "market", "stock market OR wall street OR nasdaq OR S&P 500", limit)
}

func (c *Client) search(ctx context.Context, label, query string, limit int) ([]models.Article, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("newsapi: api key not configured")
	}
	if c.metrics != nil {
		c.metrics.RecordFetch("newsapi", label)
	}

	from := time.Now().Add(-c.window).UTC().Format("2006-01-02")

	var resp newsResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/everything",
		QueryParams: map[string][]string{
			"q":        {query},
			"from":     {from},
			"language": {c.language},
			"sortBy":   {"publishedAt"},
			"pageSize": {fmt.Sprintf("%d", limit)},
		},
		Headers: map[string]string{
			"X-Api-Key": c.apiKey,
		},
	}, &resp)
	if err != nil {
		if c.metrics != nil {
			c.metrics.RecordError("newsapi_fetch")
		}
		return nil, fmt.Errorf("newsapi fetch: %w", err)
	}

	if resp.Status != "ok" {
		return nil, fmt.Errorf("newsapi error %s: %s", resp.Code, resp.Message)
	}

	articles := make([]models.Article, 0, len(resp.Articles))
	for _, a := range resp.Articles {
		if a.Title == "" {
			continue
		}
		articles = append(articles, models.Article{
			Title:       a.Title,
			Description: a.Description,
			Source:      a.Source.Name,
			URL:         a.URL,
			ImageURL:    a.URLToImage,
			PublishedAt: a.PublishedAt,
		})
		if len(articles) >= limit {
			break
		}
	}
	return articles, nil
}
