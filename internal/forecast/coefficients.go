package forecast

import "math"

// Damping shrinks the normalized coefficients so multi-step recursive
// forecasts cannot diverge. The fit loses a little accuracy in exchange.
const Damping = 0.8

// EstimateCoefficients fits one AR coefficient per lag k in [1..p] as
// the lag-k autocovariance of series normalized by its lag-0 variance
// estimate. This approximates the autocorrelation function rather than
// solving the Yule-Walker equations; the raw coefficients are then
// normalized to unit absolute sum and damped.
func EstimateCoefficients(series []float64, p int) ([]float64, error) {
	n := len(series)

	var sumSq float64
	for _, x := range series {
		sumSq += x * x
	}
	if sumSq == 0 {
		return nil, &DegenerateSeriesError{Len: n}
	}
	variance := sumSq / float64(n)

	coefs := make([]float64, p)
	for lag := 1; lag <= p; lag++ {
		if lag >= n {
			continue
		}
		var cov float64
		for i := lag; i < n; i++ {
			cov += series[i] * series[i-lag]
		}
		coefs[lag-1] = cov / float64(n-lag) / variance
	}

	var total float64
	for _, c := range coefs {
		total += math.Abs(c)
	}
	if total > 0 {
		for i := range coefs {
			coefs[i] = coefs[i] / total * Damping
		}
	}
	return coefs, nil
}
