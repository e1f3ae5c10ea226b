package forecast

import (
	"errors"
	"math"
	"testing"
)

func TestCoefficientsDampedSum(t *testing.T) {
	s := []float64{2, -1, 4, 2, -1, 3, -2, 4, 3, -1, 2}
	coefs, err := EstimateCoefficients(s, 3)
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}
	if len(coefs) != 3 {
		t.Fatalf("expected 3 coefficients, got %d", len(coefs))
	}
	var total float64
	for _, c := range coefs {
		total += math.Abs(c)
	}
	if math.Abs(total-Damping) > 1e-9 {
		t.Fatalf("sum of |coef| = %v, want %v", total, Damping)
	}
}

func TestCoefficientsZeroVariance(t *testing.T) {
	s := make([]float64, 30)
	_, err := EstimateCoefficients(s, 5)
	var degenerate *DegenerateSeriesError
	if !errors.As(err, &degenerate) {
		t.Fatalf("expected DegenerateSeriesError, got %v", err)
	}
}

func TestCoefficientsLagBeyondSeries(t *testing.T) {
	s := []float64{1, -2, 3}
	coefs, err := EstimateCoefficients(s, 5)
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}
	if len(coefs) != 5 {
		t.Fatalf("expected 5 coefficients, got %d", len(coefs))
	}
	// Lags past the series length contribute nothing.
	for k := 3; k < 5; k++ {
		if coefs[k] != 0 {
			t.Fatalf("coef[%d] = %v, want 0", k, coefs[k])
		}
	}
}
