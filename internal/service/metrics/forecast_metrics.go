package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	ForecastLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "stocklens",
			Subsystem: "forecast",
			Name:      "latency_seconds",
			Help:      "Latency of forecast generation",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"symbol"},
	)

	ForecastErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stocklens",
			Subsystem: "forecast",
			Name:      "errors_total",
			Help:      "Forecast failures by reason",
		},
		[]string{"reason"},
	)

	SentimentArticles = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "stocklens",
			Subsystem: "sentiment",
			Name:      "articles_scored",
			Help:      "Articles scored per prediction",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50},
		},
		[]string{"symbol"},
	)
)

func Register() {
	once.Do(func() {
		prometheus.MustRegister(ForecastLatency, ForecastErrors, SentimentArticles)
	})
}
