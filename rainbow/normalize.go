package rainbow

import (
	"fmt"
	"math"
	"strings"

	"github.com/afeinstein20/chromatic/stats/scatter"
)

type normalizeConfig struct {
	percentile float64
}

// NormalizeOption configures Normalize.
type NormalizeOption func(*normalizeConfig)

// WithPercentile sets the percentile (0..100) of the flux along the
// normalized axis to use as the reference. The default of 50 divides out
// the median; a higher percentile normalizes to a bright baseline, a lower
// one to a faint baseline.
func WithPercentile(p float64) NormalizeOption {
	return func(cfg *normalizeConfig) {
		if p > 0 && p <= 100 {
			cfg.percentile = p
		}
	}
}

// Normalize divides out a reference along the chosen axis and returns a new
// container. The axis is resolved case-insensitively by its first letter:
// "w..." divides each wavelength's light curve by that wavelength's flux
// percentile over time (the reference spectrum); "t..." divides each time's
// spectrum by that time's flux percentile over wavelength (the reference
// light curve). Percentiles ignore NaNs.
//
// Uncertainty is rescaled by the same reference on a best-effort basis: a
// reference that cannot be applied leaves uncertainty untouched rather than
// failing the call.
func (r *Rainbow) Normalize(axis string, opts ...NormalizeOption) (*Rainbow, error) {
	cfg := normalizeConfig{percentile: 50}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	entry := newHistoryEntry("normalize", map[string]any{
		"axis":       axis,
		"percentile": cfg.percentile,
	})

	if axis == "" {
		return nil, fmt.Errorf("%w: empty axis", ErrUnsupportedAxis)
	}

	result := r.Copy()
	nw, nt := r.Shape()

	switch strings.ToLower(axis)[0] {
	case 'w':
		// Reference spectrum: one value per wavelength.
		reference := make([]float64, nw)
		for i, row := range r.flux {
			reference[i] = scatter.Percentile(row, cfg.percentile)
		}
		for i := range result.flux {
			for j := range result.flux[i] {
				result.flux[i][j] /= reference[i]
			}
		}
		rescaleUncertainty(result.uncertainty, func(i, _ int) float64 { return reference[i] })

	case 't':
		// Reference light curve: one value per time.
		reference := make([]float64, nt)
		column := make([]float64, nw)
		for j := range reference {
			for i := range column {
				column[i] = r.flux[i][j]
			}
			reference[j] = scatter.Percentile(column, cfg.percentile)
		}
		for i := range result.flux {
			for j := range result.flux[i] {
				result.flux[i][j] /= reference[j]
			}
		}
		rescaleUncertainty(result.uncertainty, func(_, j int) float64 { return reference[j] })

	default:
		return nil, fmt.Errorf("%w: %q (want wavelength-like or time-like)", ErrUnsupportedAxis, axis)
	}

	result.recordHistory(entry)
	return result, nil
}

// rescaleUncertainty divides the uncertainty grid by the reference.
// Uncertainty recomputation is best-effort by contract: a nil grid is left
// alone, never an error.
func rescaleUncertainty(uncertainty [][]float64, referenceAt func(i, j int) float64) {
	if uncertainty == nil {
		return
	}
	for i := range uncertainty {
		for j := range uncertainty[i] {
			uncertainty[i][j] /= referenceAt(i, j)
		}
	}
}

// IsProbablyNormalized guesses whether this container has been normalized:
// either a "normalize" action appears in its history, or the median
// spectrum sits close to one relative to a per-wavelength noise scale
// (the larger of the typical uncertainty and the MAD-measured scatter).
// With no valid positive noise scale, closeness falls back to an absolute
// |spectrum - 1| threshold of 0.1.
func (r *Rainbow) IsProbablyNormalized() bool {
	if r.historyContains("normalize") {
		return true
	}

	spectrum := r.MedianSpectrum()
	typical := r.TypicalUncertainty()
	measured := r.MeasuredScatter(scatter.MAD, defaultMinOK)

	sigma := make([]float64, len(spectrum))
	anyPositive := false
	for i := range sigma {
		sigma[i] = math.Max(typical[i], measured[i])
		if sigma[i] > 0 {
			anyPositive = true
		}
	}

	deviation := make([]float64, len(spectrum))
	if anyPositive {
		for i := range deviation {
			deviation[i] = math.Abs(spectrum[i]-1) / sigma[i]
		}
		return scatter.Percentile(deviation, 95) < 5
	}
	for i := range deviation {
		deviation[i] = math.Abs(spectrum[i] - 1)
	}
	return scatter.Percentile(deviation, 95) < 0.1
}
