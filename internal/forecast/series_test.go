package forecast

import "testing"

func TestDifferenceLength(t *testing.T) {
	s := []float64{100, 102, 101, 105}
	d := Difference(s)
	if len(d) != len(s)-1 {
		t.Fatalf("expected %d diffs, got %d", len(s)-1, len(d))
	}
	want := []float64{2, -1, 4}
	for i := range want {
		if d[i] != want[i] {
			t.Fatalf("diff[%d]: want %v got %v", i, want[i], d[i])
		}
	}
}

func TestDifferenceTooShort(t *testing.T) {
	if d := Difference([]float64{1}); d != nil {
		t.Fatalf("expected nil for single-point series, got %v", d)
	}
}

func TestIntegrateRoundTrip(t *testing.T) {
	cases := [][]float64{
		{100, 102, 101, 105, 107},
		{1, 1},
		{5, -3, 0, 2.5, 2.5, 9},
	}
	for _, s := range cases {
		got := Integrate(Difference(s), s[0])
		if len(got) != len(s)-1 {
			t.Fatalf("round trip length: want %d got %d", len(s)-1, len(got))
		}
		for i := range got {
			if got[i] != s[i+1] {
				t.Fatalf("round trip[%d]: want %v got %v", i, s[i+1], got[i])
			}
		}
	}
}
