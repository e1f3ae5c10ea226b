package di

import (
	"context"
	"fmt"
	"time"

	"StockLens/internal/domain/models"
	"StockLens/internal/domain/repository"
	domsvc "StockLens/internal/domain/service"
	"StockLens/internal/forecast"
	"StockLens/internal/handler/api"
	internalrepo "StockLens/internal/repository"
	"StockLens/internal/sentiment"
	"StockLens/internal/service/newsapi"
	"StockLens/internal/service/ratelimit"
	"StockLens/internal/service/yahoo"
	"StockLens/internal/usecase"
	"StockLens/pkg/cache"
	pkgch "StockLens/pkg/clickhouse"
	"StockLens/pkg/config"
	pkgkafka "StockLens/pkg/kafka"
	applogger "StockLens/pkg/logger"
	"StockLens/pkg/metrics"
	"StockLens/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	return applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
}

// ProvideCache creates the cache service: layered memory+Redis when
// Redis is enabled and reachable, memory-only otherwise.
func ProvideCache(cfg *config.Config, l *applogger.Logger) cache.Service {
	if cfg.Cache.Redis.Enabled {
		redisCache, err := cache.NewRedisCache(
			cache.WithRedisAddr(cfg.Cache.Redis.Addr),
			cache.WithRedisPassword(cfg.Cache.Redis.Password),
			cache.WithRedisDB(cfg.Cache.Redis.DB),
			cache.WithRedisPrefix("stocklens"),
		)
		if err == nil {
			return cache.NewLayeredCache(redisCache)
		}
		l.Warn("redis unavailable, using memory cache", applogger.Error(err))
	}
	return cache.NewMemoryCache()
}

// ProvideClickHouseClient creates a ClickHouse client and initializes
// the bar schema. Returns nil when ClickHouse is disabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.ClickHouse.Enabled {
		return nil, nil
	}

	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.InitSchema(ctx, internalrepo.BarSchema); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

// ProvideBarStore creates the ClickHouse bar store, nil when disabled.
func ProvideBarStore(chClient *pkgch.Client, l *applogger.Logger) repository.BarStore {
	if chClient == nil {
		return nil
	}
	store := internalrepo.NewCHBarStore(chClient)
	store.SetLogger(l)
	return store
}

// ProvideKafkaProducer creates a Kafka producer, nil when disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}

	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.WriteTimeout, cfg.Kafka.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvidePredictionPublisher creates the Kafka-backed publisher, nil
// when Kafka is disabled.
func ProvidePredictionPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.PredictionPublisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaPredictionPublisher(producer, cfg.Kafka.Topic)
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideMarketProvider creates the Yahoo market data provider.
func ProvideMarketProvider(cfg *config.Config, m repository.Metrics) repository.MarketDataProvider {
	return yahoo.New(cfg.Market.BaseURL, cfg.Market.Timeout, ratelimit.New(), m)
}

// ProvideNewsProvider creates the NewsAPI provider.
func ProvideNewsProvider(cfg *config.Config, m repository.Metrics) repository.NewsProvider {
	return newsapi.New(
		cfg.News.APIKey,
		cfg.News.BaseURL,
		cfg.News.Language,
		cfg.News.Window,
		cfg.News.Timeout,
		m,
	)
}

// ProvideForecaster creates the forecast engine.
func ProvideForecaster() domsvc.Forecaster {
	return forecast.NewEngine()
}

// ProvideSentimentAnalyzer creates the lexicon sentiment analyzer.
func ProvideSentimentAnalyzer() domsvc.SentimentAnalyzer {
	return sentiment.NewAnalyzer()
}

// ProvidePredictionUseCase assembles the prediction pipeline.
func ProvidePredictionUseCase(
	market repository.MarketDataProvider,
	news repository.NewsProvider,
	store repository.BarStore,
	publisher repository.PredictionPublisher,
	forecaster domsvc.Forecaster,
	analyzer domsvc.SentimentAnalyzer,
	c cache.Service,
	cfg *config.Config,
	l *applogger.Logger,
) *usecase.PredictionUseCase {
	return usecase.NewPredictionUseCase(market, news, store, publisher, forecaster, analyzer, c,
		usecase.PredictionConfig{
			Lookback:         cfg.Market.Lookback,
			NewsLimit:        cfg.News.MaxItems,
			SentimentTimeout: cfg.Forecast.SentimentTimeout,
			CacheTTL:         cfg.Cache.PredictionTTL,
			DefaultOrder: models.Order{
				P: cfg.Forecast.P,
				D: *cfg.Forecast.D,
				Q: cfg.Forecast.Q,
			},
			DefaultHorizon: cfg.Forecast.Horizon,
		}, l)
}

// ProvideOverviewUseCase assembles the market overview pipeline.
func ProvideOverviewUseCase(market repository.MarketDataProvider, c cache.Service, cfg *config.Config, l *applogger.Logger) *usecase.OverviewUseCase {
	return usecase.NewOverviewUseCase(market, c, usecase.OverviewConfig{
		Symbols:    cfg.Market.TrackedSymbols,
		Categories: cfg.Market.Categories,
		Workers:    cfg.Market.OverviewWorkers,
		QuoteTTL:   cfg.Cache.QuoteTTL,
		CacheTTL:   cfg.Cache.OverviewTTL,
	}, l)
}

// ProvideHistoryUseCase assembles the chart history pipeline.
func ProvideHistoryUseCase(market repository.MarketDataProvider, store repository.BarStore, c cache.Service, cfg *config.Config, l *applogger.Logger) *usecase.HistoryUseCase {
	return usecase.NewHistoryUseCase(market, store, c, usecase.HistoryConfig{
		Lookback: cfg.Market.Lookback,
		CacheTTL: cfg.Cache.QuoteTTL,
	}, l)
}

// ProvideNewsUseCase assembles the news pipeline.
func ProvideNewsUseCase(news repository.NewsProvider, analyzer domsvc.SentimentAnalyzer, c cache.Service, cfg *config.Config, l *applogger.Logger) *usecase.NewsUseCase {
	return usecase.NewNewsUseCase(news, analyzer, c, usecase.NewsConfig{
		CacheTTL: cfg.Cache.NewsTTL,
	}, l)
}

// ProvideStreamHandler creates the websocket quote stream handler.
func ProvideStreamHandler(overview *usecase.OverviewUseCase, cfg *config.Config, l *applogger.Logger) *api.StreamHandler {
	return api.NewStreamHandler(l, overview,
		cfg.Market.TrackedSymbols,
		cfg.Realtime.UpdateInterval,
		cfg.Realtime.MaxSymbols,
	)
}

// ProvideHTTPHandler creates the Echo route handler.
func ProvideHTTPHandler(
	l *applogger.Logger,
	prediction *usecase.PredictionUseCase,
	overview *usecase.OverviewUseCase,
	history *usecase.HistoryUseCase,
	news *usecase.NewsUseCase,
	stream *api.StreamHandler,
) *api.StocksEchoHandler {
	return api.NewStocksEchoHandler(l, prediction, overview, history, news, stream)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	handler *api.StocksEchoHandler,
	c cache.Service,
	chClient *pkgch.Client,
	publisher repository.PredictionPublisher,
) *server.App {
	return server.New(cfg, l, handler, c, chClient, publisher)
}
