package testutil

import (
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		diff := math.Abs(got[i] - want[i])
		if diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireGridNearlyEqual fails t if got and want differ in shape or if any
// element pair exceeds eps (absolute tolerance).
func RequireGridNearlyEqual(t *testing.T, got, want [][]float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("row count mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if len(got[i]) != len(want[i]) {
			t.Fatalf("row %d length mismatch: got %d, want %d", i, len(got[i]), len(want[i]))
		}
		for j := range got[i] {
			diff := math.Abs(got[i][j] - want[i][j])
			if diff > eps {
				t.Fatalf("element (%d, %d): got %v, want %v (diff %v > eps %v)",
					i, j, got[i][j], want[i][j], diff, eps)
			}
		}
	}
}

// RequireGridShape fails t if grid is not nw-by-nt.
func RequireGridShape(t *testing.T, grid [][]float64, nw, nt int) {
	t.Helper()
	if len(grid) != nw {
		t.Fatalf("row count = %d, want %d", len(grid), nw)
	}
	for i := range grid {
		if len(grid[i]) != nt {
			t.Fatalf("row %d length = %d, want %d", i, len(grid[i]), nt)
		}
	}
}
