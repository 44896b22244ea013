package rainbow

import (
	"fmt"
	"log/slog"

	"github.com/afeinstein20/chromatic/stats/scatter"
)

// Rainbow is a 2-D flux-versus-(wavelength, time) container with provenance
// history. All grids are indexed [wavelength][time].
//
// Accessors return the container's own arrays; callers must treat them as
// read-only. Transformations never mutate a container in place.
type Rainbow struct {
	wavelength  []float64
	time        []float64
	flux        [][]float64
	uncertainty [][]float64
	ok          [][]float64
	model       [][]float64 // nil when no model is attached
	metadata    map[string]any
	history     []HistoryEntry
}

// New constructs a container from raw arrays. flux must be
// len(wavelength)-by-len(time). uncertainty and ok may be nil, in which case
// they default to all-zero and all-one grids respectively.
// All inputs are copied; the container exclusively owns its arrays.
func New(wavelength, time []float64, flux, uncertainty, ok [][]float64) (*Rainbow, error) {
	nw, nt := len(wavelength), len(time)

	if err := checkGrid("flux", flux, nw, nt); err != nil {
		return nil, err
	}
	if uncertainty == nil {
		uncertainty = newGrid(nw, nt, 0)
	} else if err := checkGrid("uncertainty", uncertainty, nw, nt); err != nil {
		return nil, err
	}
	if ok == nil {
		ok = newGrid(nw, nt, 1)
	} else if err := checkGrid("ok", ok, nw, nt); err != nil {
		return nil, err
	}

	return &Rainbow{
		wavelength:  cloneSlice(wavelength),
		time:        cloneSlice(time),
		flux:        cloneGrid(flux),
		uncertainty: cloneGrid(uncertainty),
		ok:          cloneGrid(ok),
		metadata:    map[string]any{},
	}, nil
}

// NewWithModel constructs a model-bearing container. A nil model is a
// non-fatal advisory (the container is still returned, without a model);
// a wrongly shaped model is a construction error.
func NewWithModel(wavelength, time []float64, flux, uncertainty, ok, model [][]float64) (*Rainbow, error) {
	r, err := New(wavelength, time, flux, uncertainty, ok)
	if err != nil {
		return nil, err
	}
	if model == nil {
		slog.Warn("rainbow: model-bearing container created without a model; attach one with AttachModel",
			"nwave", len(wavelength), "ntime", len(time))
		return r, nil
	}
	if err := checkGrid("model", model, len(wavelength), len(time)); err != nil {
		return nil, err
	}
	r.model = cloneGrid(model)
	return r, nil
}

// checkGrid validates that grid is nw-by-nt with no ragged rows.
func checkGrid(name string, grid [][]float64, nw, nt int) error {
	if len(grid) != nw {
		return fmt.Errorf("%w: %s has %d rows, want (%d, %d)", ErrShapeMismatch, name, len(grid), nw, nt)
	}
	for i := range grid {
		if len(grid[i]) != nt {
			return fmt.Errorf("%w: %s row %d has %d columns, want (%d, %d)",
				ErrShapeMismatch, name, i, len(grid[i]), nw, nt)
		}
	}
	return nil
}

// NWave returns the number of wavelengths.
func (r *Rainbow) NWave() int { return len(r.wavelength) }

// NTime returns the number of time points.
func (r *Rainbow) NTime() int { return len(r.time) }

// Shape returns (Nw, Nt).
func (r *Rainbow) Shape() (nw, nt int) { return len(r.wavelength), len(r.time) }

// Wavelength returns the wavelength axis.
func (r *Rainbow) Wavelength() []float64 { return r.wavelength }

// Time returns the time axis.
func (r *Rainbow) Time() []float64 { return r.time }

// Flux returns the flux grid.
func (r *Rainbow) Flux() [][]float64 { return r.flux }

// Uncertainty returns the per-sample flux uncertainty grid.
func (r *Rainbow) Uncertainty() [][]float64 { return r.uncertainty }

// OK returns the per-sample validity/confidence weight grid.
func (r *Rainbow) OK() [][]float64 { return r.ok }

// Model returns the attached model grid, or false if none is attached.
func (r *Rainbow) Model() ([][]float64, bool) { return r.model, r.model != nil }

// HasModel reports whether a model grid is attached.
func (r *Rainbow) HasModel() bool { return r.model != nil }

// Metadata returns the free-form metadata map. Unlike the array accessors,
// metadata may be edited by the caller; it never participates in equality.
func (r *Rainbow) Metadata() map[string]any { return r.metadata }

// SetMetadata stores a caller-defined metadata value.
func (r *Rainbow) SetMetadata(key string, value any) {
	r.metadata[key] = value
}

// MedianSpectrum returns the per-wavelength median flux over time,
// ignoring NaNs.
func (r *Rainbow) MedianSpectrum() []float64 {
	out := make([]float64, r.NWave())
	for i, row := range r.flux {
		out[i] = scatter.Median(row)
	}
	return out
}

// MedianLightCurve returns the per-time median flux over wavelength,
// ignoring NaNs.
func (r *Rainbow) MedianLightCurve() []float64 {
	nw, nt := r.Shape()
	out := make([]float64, nt)
	column := make([]float64, nw)
	for j := range out {
		for i := range column {
			column[i] = r.flux[i][j]
		}
		out[j] = scatter.Median(column)
	}
	return out
}

// TypicalUncertainty returns the per-wavelength median uncertainty over
// time, ignoring NaNs.
func (r *Rainbow) TypicalUncertainty() []float64 {
	out := make([]float64, r.NWave())
	for i, row := range r.uncertainty {
		out[i] = scatter.Median(row)
	}
	return out
}

// newGrid allocates an nw-by-nt grid filled with value, backed by a single
// flat slice.
func newGrid(nw, nt int, value float64) [][]float64 {
	flat := make([]float64, nw*nt)
	if value != 0 {
		for i := range flat {
			flat[i] = value
		}
	}
	out := make([][]float64, nw)
	for i := range out {
		out[i] = flat[i*nt : (i+1)*nt : (i+1)*nt]
	}
	return out
}

func cloneSlice(s []float64) []float64 {
	out := make([]float64, len(s))
	copy(out, s)
	return out
}

func cloneGrid(g [][]float64) [][]float64 {
	if g == nil {
		return nil
	}
	out := make([][]float64, len(g))
	for i := range g {
		out[i] = cloneSlice(g[i])
	}
	return out
}
