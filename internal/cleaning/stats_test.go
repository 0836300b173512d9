package cleaning

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestMean(t *testing.T) {
	if got := Mean(nil); got != 0 {
		t.Errorf("Mean(nil) = %v, want 0", got)
	}
	if got := Mean([]float64{2, 4, 6}); !almostEqual(got, 4) {
		t.Errorf("Mean = %v, want 4", got)
	}
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"odd count", []float64{3, 1, 2}, 2},
		{"even count", []float64{1, 2, 3, 4}, 2.5},
		{"single", []float64{7}, 7},
		{"empty", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Median(tt.values); !almostEqual(got, tt.want) {
				t.Errorf("Median(%v) = %v, want %v", tt.values, got, tt.want)
			}
		})
	}
}

func TestQuantileInterpolation(t *testing.T) {
	values := []float64{1, 2, 3, 4}
	if got := Quantile(values, 0.25); !almostEqual(got, 1.75) {
		t.Errorf("Q1 = %v, want 1.75", got)
	}
	if got := Quantile(values, 0.75); !almostEqual(got, 3.25) {
		t.Errorf("Q3 = %v, want 3.25", got)
	}
	if got := Quantile(values, 0); got != 1 {
		t.Errorf("Q0 = %v, want 1", got)
	}
	if got := Quantile(values, 1); got != 4 {
		t.Errorf("Q100 = %v, want 4", got)
	}
}

func TestQuantileDoesNotMutateInput(t *testing.T) {
	values := []float64{3, 1, 2}
	Quantile(values, 0.5)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("input mutated: %v", values)
	}
}

func TestIQRBounds(t *testing.T) {
	values := []float64{1, 2, 3, 4}
	lower, upper := IQRBounds(values, 1.5)
	// Q1=1.75, Q3=3.25, IQR=1.5
	if !almostEqual(lower, -0.5) {
		t.Errorf("lower = %v, want -0.5", lower)
	}
	if !almostEqual(upper, 5.5) {
		t.Errorf("upper = %v, want 5.5", upper)
	}
}

func TestModeTieBreaksByFirstOccurrence(t *testing.T) {
	got, ok := Mode([]string{"b", "a", "a", "b"})
	if !ok {
		t.Fatal("Mode returned not ok for non-empty input")
	}
	if got != "b" {
		t.Errorf("Mode = %q, want %q (first occurrence wins ties)", got, "b")
	}

	if _, ok := Mode(nil); ok {
		t.Error("Mode(nil) returned ok")
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(-1, 0, 5); got != 0 {
		t.Errorf("Clamp(-1) = %v, want 0", got)
	}
	if got := Clamp(9, 0, 5); got != 5 {
		t.Errorf("Clamp(9) = %v, want 5", got)
	}
	if got := Clamp(3, 0, 5); got != 3 {
		t.Errorf("Clamp(3) = %v, want 3", got)
	}
}

func TestRounding(t *testing.T) {
	if got := Round1(33.333); !almostEqual(got, 33.3) {
		t.Errorf("Round1 = %v, want 33.3", got)
	}
	if got := Round2(19.999); !almostEqual(got, 20.0) {
		t.Errorf("Round2 = %v, want 20.0", got)
	}
}
