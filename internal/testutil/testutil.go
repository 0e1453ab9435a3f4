// Package testutil holds shared assertions for stimulus and staircase tests.
package testutil

import (
	"math"
	"testing"
)

// RequireNearlyEqual fails t if got and want differ by more than eps.
func RequireNearlyEqual(t *testing.T, got, want, eps float64) {
	t.Helper()
	if math.Abs(got-want) > eps {
		t.Fatalf("got %v, want %v (eps %v)", got, want, eps)
	}
}

// RequireSameSamples fails t unless got and want are bit-identical sample
// buffers. Used for reproducibility checks, so no tolerance applies.
func RequireSameSamples(t *testing.T, got, want []float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("sample %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// Column returns the non-NaN entries of column c of a frequency matrix.
func Column(m [][]float64, c int) []float64 {
	var out []float64
	for _, row := range m {
		if !math.IsNaN(row[c]) {
			out = append(out, row[c])
		}
	}
	return out
}

// ColumnSet returns the non-NaN entries of column c as a set.
func ColumnSet(m [][]float64, c int) map[float64]bool {
	out := make(map[float64]bool)
	for _, row := range m {
		if !math.IsNaN(row[c]) {
			out[row[c]] = true
		}
	}
	return out
}
