package rainbow

import "fmt"

// Residuals returns flux minus model, computed on the fly so it is always
// current. Fails explicitly when no model is attached.
func (r *Rainbow) Residuals() ([][]float64, error) {
	if r.model == nil {
		return nil, fmt.Errorf("%w: no model attached", ErrMissingArgument)
	}
	nw, nt := r.Shape()
	out := newGrid(nw, nt, 0)
	for i := range out {
		for j := range out[i] {
			out[i][j] = r.flux[i][j] - r.model[i][j]
		}
	}
	return out, nil
}

// ResidualsPlusOne returns flux minus model plus one, the residuals shifted
// to sit around a unit baseline for rendering next to normalized data.
func (r *Rainbow) ResidualsPlusOne() ([][]float64, error) {
	out, err := r.Residuals()
	if err != nil {
		return nil, err
	}
	for i := range out {
		for j := range out[i] {
			out[i][j]++
		}
	}
	return out, nil
}
