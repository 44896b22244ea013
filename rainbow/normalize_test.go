package rainbow

import (
	"errors"
	"math"
	"testing"

	"github.com/afeinstein20/chromatic/internal/testutil"
)

func TestNormalizeWavelengthConstantRows(t *testing.T) {
	// Each wavelength constant over time: dividing by the per-wavelength
	// median gives exactly one everywhere, no NaNs.
	flux := [][]float64{
		{5, 5, 5, 5},
		{2, 2, 2, 2},
		{9, 9, 9, 9},
	}
	r, err := New(testutil.Sequence(3), testutil.Sequence(4), flux,
		testutil.ConstantGrid(3, 4, 0.5), nil)
	if err != nil {
		t.Fatal(err)
	}
	normalized, err := r.Normalize("wavelength")
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireGridNearlyEqual(t, normalized.Flux(), testutil.ConstantGrid(3, 4, 1), 1e-12)
	for i, row := range normalized.Flux() {
		for j, v := range row {
			if math.IsNaN(v) {
				t.Fatalf("NaN introduced at (%d, %d)", i, j)
			}
		}
	}
	// Uncertainty rescaled by the same reference.
	testutil.RequireSliceNearlyEqual(t, normalized.Uncertainty()[0],
		[]float64{0.1, 0.1, 0.1, 0.1}, 1e-12)
	testutil.RequireSliceNearlyEqual(t, normalized.Uncertainty()[1],
		[]float64{0.25, 0.25, 0.25, 0.25}, 1e-12)
	// Source untouched.
	if r.Flux()[0][0] != 5 {
		t.Fatal("source mutated by Normalize")
	}
}

func TestNormalizeTimeAxis(t *testing.T) {
	// Each time constant over wavelength: normalizing out the light curve
	// gives ones.
	flux := [][]float64{
		{1, 2, 4},
		{1, 2, 4},
	}
	r, err := New(testutil.Sequence(2), testutil.Sequence(3), flux, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	normalized, err := r.Normalize("time")
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireGridNearlyEqual(t, normalized.Flux(), testutil.ConstantGrid(2, 3, 1), 1e-12)
}

func TestNormalizeAxisResolution(t *testing.T) {
	r := mustNew(t, 2, 3, 5, 0)
	for _, axis := range []string{"w", "Wavelength", "WAVE", "t", "Time"} {
		if _, err := r.Normalize(axis); err != nil {
			t.Fatalf("axis %q rejected: %v", axis, err)
		}
	}
	for _, axis := range []string{"", "x", "frequency"} {
		if _, err := r.Normalize(axis); !errors.Is(err, ErrUnsupportedAxis) {
			t.Fatalf("axis %q: err = %v, want ErrUnsupportedAxis", axis, err)
		}
	}
}

func TestNormalizePercentileOption(t *testing.T) {
	// Row {1, 2, 3, 4}: the 100th percentile is 4.
	r, err := New(testutil.Sequence(1), testutil.Sequence(4),
		[][]float64{{1, 2, 3, 4}}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	normalized, err := r.Normalize("wavelength", WithPercentile(100))
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, normalized.Flux()[0],
		[]float64{0.25, 0.5, 0.75, 1}, 1e-12)
}

func TestNormalizePercentileIgnoresNaN(t *testing.T) {
	r, err := New(testutil.Sequence(1), testutil.Sequence(5),
		[][]float64{{4, math.NaN(), 4, 4, math.NaN()}}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	normalized, err := r.Normalize("wavelength")
	if err != nil {
		t.Fatal(err)
	}
	// Median over the valid samples is 4; valid samples normalize to 1.
	if got := normalized.Flux()[0][0]; math.Abs(got-1) > 1e-12 {
		t.Fatalf("flux[0][0] = %v, want 1", got)
	}
}

func TestNormalizeRecordsHistory(t *testing.T) {
	r := mustNew(t, 2, 3, 5, 0)
	normalized, err := r.Normalize("wavelength", WithPercentile(75))
	if err != nil {
		t.Fatal(err)
	}
	history := normalized.History()
	if len(history) != 1 || history[0].Action != "normalize" {
		t.Fatalf("unexpected history: %v", history)
	}
	if history[0].Params["percentile"] != 75.0 {
		t.Fatalf("percentile param = %v, want 75", history[0].Params["percentile"])
	}
}

func TestIsProbablyNormalized(t *testing.T) {
	raw := mustNew(t, 3, 8, 5, 0.01)
	if raw.IsProbablyNormalized() {
		t.Fatal("flux around 5 should not look normalized")
	}

	normalized, err := raw.Normalize("wavelength")
	if err != nil {
		t.Fatal(err)
	}
	if !normalized.IsProbablyNormalized() {
		t.Fatal("normalize in history should be detected")
	}

	// A container near one with no history should pass the closeness
	// heuristic via the absolute fallback (zero scatter, zero uncertainty).
	nearOne := mustNew(t, 3, 8, 1.01, 0)
	if !nearOne.IsProbablyNormalized() {
		t.Fatal("flux near one should look normalized")
	}
}
