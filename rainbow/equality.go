package rainbow

import "math"

// Equal reports whether r and other hold the same data.
//
// The wavelength and time axes and every grid must match element by element,
// and both containers must carry the same set of grids (a model on one side
// but not the other is a mismatch). History and metadata are ignored, so a
// freshly computed container and a reloaded one can still compare equal.
//
// Deliberately non-standard: two NaN values at the same position compare
// equal, so containers holding invalid/missing samples stay reflexive
// (x.Equal(x) is always true).
func (r *Rainbow) Equal(other *Rainbow) bool {
	if r == nil || other == nil {
		return r == other
	}
	if (r.model == nil) != (other.model == nil) {
		return false
	}
	if !slicesEqualNaN(r.wavelength, other.wavelength) {
		return false
	}
	if !slicesEqualNaN(r.time, other.time) {
		return false
	}
	if !gridsEqualNaN(r.flux, other.flux) {
		return false
	}
	if !gridsEqualNaN(r.uncertainty, other.uncertainty) {
		return false
	}
	if !gridsEqualNaN(r.ok, other.ok) {
		return false
	}
	if r.model != nil && !gridsEqualNaN(r.model, other.model) {
		return false
	}
	return true
}

func slicesEqualNaN(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] && !(math.IsNaN(a[i]) && math.IsNaN(b[i])) {
			return false
		}
	}
	return true
}

func gridsEqualNaN(a, b [][]float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !slicesEqualNaN(a[i], b[i]) {
			return false
		}
	}
	return true
}
