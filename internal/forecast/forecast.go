// Package forecast implements the autoregressive forecasting core: an
// AR(p) model over a d-times differenced price series producing point
// forecasts and a widening 95% confidence band. The computation is
// pure and synchronous; every call owns its own buffers, so concurrent
// use across symbols needs no coordination.
package forecast

import (
	"math"

	"StockLens/internal/domain/models"
	domsvc "StockLens/internal/domain/service"
)

// zScore is the 95% normal quantile used to scale the confidence band.
const zScore = 1.96

// Run fits the model and extends the series horizon steps past the last
// observation. The returned forecast is on price scale, index 0 being
// one step beyond the final observed trading day.
//
// The interval at step h (1-based) is value ± 1.96·stdErr·sqrt(h): a
// single in-sample residual standard error widened with the square root
// of the forecast distance. This is a deliberate simplification of
// ARIMA forecast-variance propagation, kept for parity with the flat
// per-step dispersion the system has always reported.
func Run(series []float64, order models.Order, horizon int) (*models.Forecast, error) {
	if order.P < 1 || order.D < 0 || horizon < 1 {
		return nil, &InvalidOrderError{P: order.P, D: order.D, Horizon: horizon}
	}
	if len(series) <= order.P+order.D {
		return nil, &InsufficientDataError{Len: len(series), P: order.P, D: order.D}
	}

	// Difference d times, remembering the last observed value at each
	// level so integration can be seeded on the way back up.
	working := series
	seeds := make([]float64, order.D)
	for lvl := 0; lvl < order.D; lvl++ {
		seeds[lvl] = working[len(working)-1]
		working = Difference(working)
	}

	coefs, err := EstimateCoefficients(working, order.P)
	if err != nil {
		return nil, err
	}

	// Recursive extension over a fixed-capacity buffer: generated
	// points join the lag window once the horizon exceeds p.
	buf := make([]float64, len(working), len(working)+horizon)
	copy(buf, working)
	for step := 0; step < horizon; step++ {
		var next float64
		for j, c := range coefs {
			next += c * buf[len(buf)-1-j]
		}
		buf = append(buf, next)
	}
	diffs := buf[len(working):]

	stdErr := residualStdError(working, coefs, order.P)

	values := diffs
	for lvl := order.D - 1; lvl >= 0; lvl-- {
		values = Integrate(values, seeds[lvl])
	}

	intervals := make([]models.Interval, horizon)
	for h := 1; h <= horizon; h++ {
		margin := zScore * stdErr * math.Sqrt(float64(h))
		intervals[h-1] = models.Interval{Lower: values[h-1] - margin, Upper: values[h-1] + margin}
	}

	return &models.Forecast{
		Values:              values,
		ConfidenceIntervals: intervals,
		StdError:            stdErr,
	}, nil
}

// residualStdError computes the one-step-ahead in-sample residual
// standard error over the differenced series. Predictions use true
// lagged history only, never the recursive forecast path.
func residualStdError(series, coefs []float64, p int) float64 {
	n := len(series)
	if n <= p {
		return 0
	}
	var sumSq float64
	for i := p; i < n; i++ {
		var pred float64
		for j, c := range coefs {
			pred += c * series[i-1-j]
		}
		r := series[i] - pred
		sumSq += r * r
	}
	return math.Sqrt(sumSq / float64(n-p))
}

// Annotate attaches a sentiment signal to the forecast. The signal is
// advisory only: forecast values and intervals are never adjusted. A
// nil signal leaves the forecast untouched.
func Annotate(f *models.Forecast, signal *models.SentimentSignal) *models.Forecast {
	if f == nil || signal == nil {
		return f
	}
	f.Sentiment = signal
	return f
}

// Engine adapts Run to the domain Forecaster interface.
type Engine struct{}

func NewEngine() *Engine { return &Engine{} }

func (Engine) Forecast(series []float64, order models.Order, horizon int) (*models.Forecast, error) {
	return Run(series, order, horizon)
}

var _ domsvc.Forecaster = (*Engine)(nil)
