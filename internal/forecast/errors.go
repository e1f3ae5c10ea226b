package forecast

import "fmt"

// InsufficientDataError reports a series too short for the requested
// order and differencing degree. Estimation needs len(series) > p + d.
type InsufficientDataError struct {
	Len int
	P   int
	D   int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("series too short: len=%d, need more than p+d=%d", e.Len, e.P+e.D)
}

// DegenerateSeriesError reports a zero-variance working series, for
// which the coefficient denominator vanishes.
type DegenerateSeriesError struct {
	Len int
}

func (e *DegenerateSeriesError) Error() string {
	return fmt.Sprintf("degenerate series: zero variance over %d points", e.Len)
}

// InvalidOrderError reports an order outside p >= 1, d >= 0, or a
// non-positive horizon.
type InvalidOrderError struct {
	P       int
	D       int
	Horizon int
}

func (e *InvalidOrderError) Error() string {
	return fmt.Sprintf("invalid order: p=%d d=%d horizon=%d (need p >= 1, d >= 0, horizon >= 1)", e.P, e.D, e.Horizon)
}
