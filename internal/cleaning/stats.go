// Package cleaning implements the value-repair stages of the pipeline:
// missing-value imputation, domain validation with outlier capping, and
// text normalization.
package cleaning

import (
	"math"
	"sort"
)

// Mean returns the arithmetic mean of values, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Median returns the middle value of the distribution.
func Median(values []float64) float64 {
	return Quantile(values, 0.5)
}

// Quantile returns the q-th quantile (0 <= q <= 1) using linear
// interpolation between the two nearest order statistics, matching the
// convention of most statistics packages. Returns 0 for an empty slice.
func Quantile(values []float64, q float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[n-1]
	}
	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// IQRBounds returns the outlier fences [Q1 - k*IQR, Q3 + k*IQR] for the
// given values, where IQR = Q3 - Q1 and k is the fence multiplier.
func IQRBounds(values []float64, k float64) (lower, upper float64) {
	q1 := Quantile(values, 0.25)
	q3 := Quantile(values, 0.75)
	iqr := q3 - q1
	return q1 - k*iqr, q3 + k*iqr
}

// Mode returns the most frequent value, breaking ties by first occurrence
// so the result does not depend on map iteration order. The second return
// is false for an empty input.
func Mode(values []string) (string, bool) {
	if len(values) == 0 {
		return "", false
	}
	counts := make(map[string]int, len(values))
	first := make(map[string]int, len(values))
	for i, v := range values {
		if _, seen := first[v]; !seen {
			first[v] = i
		}
		counts[v]++
	}
	best := values[0]
	for v, c := range counts {
		if c > counts[best] || (c == counts[best] && first[v] < first[best]) {
			best = v
		}
	}
	return best, true
}

// Clamp limits v to the inclusive range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
