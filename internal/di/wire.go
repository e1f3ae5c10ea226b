//go:build wireinject
// +build wireinject

package di

import (
	"StockLens/pkg/config"
	"StockLens/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,
		ProvideCache,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,

		// Repositories and providers
		ProvideBarStore,
		ProvidePredictionPublisher,
		ProvideMarketProvider,
		ProvideNewsProvider,

		// Domain services
		ProvideForecaster,
		ProvideSentimentAnalyzer,

		// Use cases
		ProvidePredictionUseCase,
		ProvideOverviewUseCase,
		ProvideHistoryUseCase,
		ProvideNewsUseCase,

		// HTTP
		ProvideStreamHandler,
		ProvideHTTPHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
