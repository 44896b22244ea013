package rainbow

import "fmt"

// Copy returns a new container that exclusively owns its own arrays.
// Metadata is copied into a fresh map (values are shared; they are
// caller-defined and never mutated by this package). The history ledger is
// copied so appends on the new container never reach the source.
func (r *Rainbow) Copy() *Rainbow {
	out := &Rainbow{
		wavelength:  cloneSlice(r.wavelength),
		time:        cloneSlice(r.time),
		flux:        cloneGrid(r.flux),
		uncertainty: cloneGrid(r.uncertainty),
		ok:          cloneGrid(r.ok),
		model:       cloneGrid(r.model),
		metadata:    make(map[string]any, len(r.metadata)),
		history:     make([]HistoryEntry, len(r.history)),
	}
	for k, v := range r.metadata {
		out.metadata[k] = v
	}
	copy(out.history, r.history)
	return out
}

// AttachModel returns a copy of r with the given model grid attached.
// The model must match the flux shape.
func (r *Rainbow) AttachModel(model [][]float64) (*Rainbow, error) {
	nw, nt := r.Shape()
	if err := checkGrid("model", model, nw, nt); err != nil {
		return nil, err
	}
	entry := newHistoryEntry("attach_model", map[string]any{"model": gridShape(model)})
	out := r.Copy()
	out.model = cloneGrid(model)
	out.recordHistory(entry)
	return out, nil
}

// gridShape describes a grid's shape for history records and error messages.
func gridShape(g [][]float64) string {
	if len(g) == 0 {
		return "(0, 0)"
	}
	return shapeString(len(g), len(g[0]))
}

func shapeString(nw, nt int) string {
	return fmt.Sprintf("(%d, %d)", nw, nt)
}
