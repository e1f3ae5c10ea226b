package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"StockLens/internal/domain/models"
	drepo "StockLens/internal/domain/repository"
	domsvc "StockLens/internal/domain/service"
	"StockLens/pkg/cache"
	applogger "StockLens/pkg/logger"
)

// NewsConfig tunes the news pipeline.
type NewsConfig struct {
	CacheTTL time.Duration
}

// NewsUseCase serves scored news articles, per symbol or market wide.
type NewsUseCase struct {
	news      drepo.NewsProvider
	sentiment domsvc.SentimentAnalyzer
	cache     cache.Service
	cfg       NewsConfig
	l         *applogger.Logger
}

func NewNewsUseCase(news drepo.NewsProvider, sentiment domsvc.SentimentAnalyzer, c cache.Service, cfg NewsConfig, l *applogger.Logger) *NewsUseCase {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 30 * time.Minute
	}
	return &NewsUseCase{news: news, sentiment: sentiment, cache: c, cfg: cfg, l: l}
}

// Get returns up to limit scored articles. An empty symbol selects
// market-wide headlines.
func (uc *NewsUseCase) Get(ctx context.Context, symbol string, limit int) ([]models.Article, error) {
	label := "market"
	if symbol != "" {
		label = strings.ToUpper(symbol)
	}
	key := cache.GenerateKeyWithParams("news", label, limit)

	if uc.cache != nil {
		var cached []models.Article
		if err := uc.cache.Get(ctx, key, &cached); err == nil {
			return cached, nil
		}
	}

	var (
		articles []models.Article
		err      error
	)
	if symbol == "" {
		articles, err = uc.news.MarketNews(ctx, limit)
	} else {
		articles, err = uc.news.SymbolNews(ctx, label, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("news for %s: %w", label, err)
	}

	if uc.sentiment != nil {
		for i := range articles {
			articles[i].Sentiment = uc.sentiment.Score(articles[i].Title + " " + articles[i].Description)
		}
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, key, articles, uc.cfg.CacheTTL); err != nil && uc.l != nil {
			uc.l.Warn("news cache set failed", applogger.Error(err))
		}
	}
	return articles, nil
}
