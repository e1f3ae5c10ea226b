package forecast

// Difference returns the first differences of series: out[i] =
// series[i+1] - series[i]. The result is one element shorter.
func Difference(series []float64) []float64 {
	if len(series) < 2 {
		return nil
	}
	out := make([]float64, len(series)-1)
	for i := 1; i < len(series); i++ {
		out[i-1] = series[i] - series[i-1]
	}
	return out
}

// Integrate reverses one degree of differencing: a cumulative sum of
// diffs seeded at seed. Integrate(Difference(s), s[0]) reproduces
// s[1:] exactly.
func Integrate(diffs []float64, seed float64) []float64 {
	out := make([]float64, len(diffs))
	acc := seed
	for i, d := range diffs {
		acc += d
		out[i] = acc
	}
	return out
}
