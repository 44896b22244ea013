package rainbow

import (
	"fmt"
	"math"

	"github.com/afeinstein20/chromatic/stats/scatter"
)

const (
	defaultBinFactor = 2
	defaultMinOK     = 1e-10
)

// MeasuredScatter returns the per-wavelength empirical scatter of the light
// curves, using the given statistic. Samples with ok below minOK are
// excluded.
func (r *Rainbow) MeasuredScatter(method scatter.Method, minOK float64) []float64 {
	out := make([]float64, r.NWave())
	masked := make([]float64, r.NTime())
	for i, row := range r.flux {
		for j, v := range row {
			if r.ok[i][j] < minOK {
				masked[j] = math.NaN()
			} else {
				masked[j] = v
			}
		}
		out[i] = scatter.Estimate(masked, method)
	}
	return out
}

// ExpectedUncertainty returns the per-wavelength analytically expected
// scatter: the median propagated uncertainty over acceptable samples.
func (r *Rainbow) ExpectedUncertainty(minOK float64) []float64 {
	out := make([]float64, r.NWave())
	masked := make([]float64, r.NTime())
	for i, row := range r.uncertainty {
		for j, v := range row {
			if r.ok[i][j] < minOK {
				masked[j] = math.NaN()
			} else {
				masked[j] = v
			}
		}
		out[i] = scatter.Median(masked)
	}
	return out
}

// BinnedScatter holds the multi-scale noise diagnostic: parallel sequences
// indexed by rung (monotonically increasing bin multiplicity), with the
// per-wavelength statistics of each rung.
type BinnedScatter struct {
	// N is the cumulative bin multiplicity at each rung (rung 0 is 1).
	N []int
	// DT is the median time-sampling interval at each rung.
	DT []float64
	// Scatter is the measured scatter, indexed [rung][wavelength].
	Scatter [][]float64
	// Expectation is the analytically expected uncertainty,
	// indexed [rung][wavelength].
	Expectation [][]float64
	// Uncertainty is the uncertainty on the scatter estimate itself,
	// scatter / sqrt(2*(ntime-1)), indexed [rung][wavelength].
	Uncertainty [][]float64
}

type scatterConfig struct {
	binFactor int
	method    scatter.Method
	minOK     float64
}

// ScatterOption configures MeasuredScatterInBins.
type ScatterOption func(*scatterConfig)

// WithBinFactor sets how many time points collapse per binning step.
func WithBinFactor(n int) ScatterOption {
	return func(cfg *scatterConfig) {
		if n > 1 {
			cfg.binFactor = n
		}
	}
}

// WithScatterMethod selects the scatter statistic.
func WithScatterMethod(m scatter.Method) ScatterOption {
	return func(cfg *scatterConfig) {
		cfg.method = m
	}
}

// WithMinOK sets the smallest ok weight still treated as acceptable
// (1 for perfect data only, 1e-10 for everything but terrible data,
// 0 for all data).
func WithMinOK(minOK float64) ScatterOption {
	return func(cfg *scatterConfig) {
		if minOK >= 0 {
			cfg.minOK = minOK
		}
	}
}

// MeasuredScatterInBins measures scatter on a ladder of progressively
// coarser time binnings. For uncorrelated Gaussian noise the scatter falls
// as 1/sqrt(N) with bin multiplicity N; correlated noise flattens out.
// That comparison itself is left to the caller.
//
// Rung 0 is the container itself, simplified to wavelength/time/flux/
// uncertainty/ok; each following rung bins the previous one by the bin
// factor, stopping once a rung has two or fewer time points.
func (r *Rainbow) MeasuredScatterInBins(opts ...ScatterOption) (*BinnedScatter, error) {
	cfg := scatterConfig{
		binFactor: defaultBinFactor,
		method:    scatter.StandardDeviation,
		minOK:     defaultMinOK,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	// Strip the model, metadata, and history so the ladder bins only what
	// the diagnostic needs.
	simple, err := New(r.wavelength, r.time, r.flux, r.uncertainty, r.ok)
	if err != nil {
		return nil, fmt.Errorf("rainbow: scatter in bins: %w", err)
	}

	rungs := []*Rainbow{simple}
	multiplicities := []int{1}
	for rungs[len(rungs)-1].NTime() > 2 {
		next, err := rungs[len(rungs)-1].Bin(cfg.binFactor, cfg.minOK)
		if err != nil {
			return nil, fmt.Errorf("rainbow: scatter in bins: %w", err)
		}
		rungs = append(rungs, next)
		multiplicities = append(multiplicities, multiplicities[len(multiplicities)-1]*cfg.binFactor)
	}

	out := &BinnedScatter{
		N:           multiplicities,
		DT:          make([]float64, len(rungs)),
		Scatter:     make([][]float64, len(rungs)),
		Expectation: make([][]float64, len(rungs)),
		Uncertainty: make([][]float64, len(rungs)),
	}
	for k, rung := range rungs {
		out.DT[k] = scatter.MedianDiff(rung.time)
		out.Scatter[k] = rung.MeasuredScatter(cfg.method, cfg.minOK)
		out.Expectation[k] = rung.ExpectedUncertainty(cfg.minOK)

		// Uncertainty on a scatter statistic from n samples:
		// sigma_s = s / sqrt(2*(n-1)).
		norm := math.Sqrt(2 * float64(rung.NTime()-1))
		out.Uncertainty[k] = make([]float64, len(out.Scatter[k]))
		for i, s := range out.Scatter[k] {
			out.Uncertainty[k][i] = s / norm
		}
	}
	return out, nil
}
