package rainbow

import (
	"fmt"
	"math"
)

// Bin coarsens the time axis by the given multiplicity and returns a new
// container. Groups of binFactor consecutive times collapse to one sample;
// a partial trailing group is kept. Within each group, flux is the
// ok-gated inverse-variance weighted mean, uncertainty combines in
// quadrature, ok becomes the group's mean weight, and the time becomes the
// group's mean time. Samples with ok below minOK, or with NaN flux, are
// excluded from the weighted mean; a group with no acceptable samples
// yields NaN flux and zero ok.
func (r *Rainbow) Bin(binFactor int, minOK float64) (*Rainbow, error) {
	if binFactor < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBinFactor, binFactor)
	}

	entry := newHistoryEntry("bin", map[string]any{
		"ntimes": binFactor,
		"min_ok": minOK,
	})

	nw, nt := r.Shape()
	newNT := (nt + binFactor - 1) / binFactor

	newTime := make([]float64, newNT)
	for g := range newTime {
		lo, hi := g*binFactor, min((g+1)*binFactor, nt)
		var sum float64
		for j := lo; j < hi; j++ {
			sum += r.time[j]
		}
		newTime[g] = sum / float64(hi-lo)
	}

	newFlux := newGrid(nw, newNT, 0)
	newUncertainty := newGrid(nw, newNT, 0)
	newOK := newGrid(nw, newNT, 0)

	for i := range r.flux {
		for g := range newNT {
			lo, hi := g*binFactor, min((g+1)*binFactor, nt)

			var weightSum, weightedFlux, invVar, okSum float64
			for j := lo; j < hi; j++ {
				okSum += r.ok[i][j]
				if r.ok[i][j] < minOK || math.IsNaN(r.flux[i][j]) {
					continue
				}
				w := r.ok[i][j]
				if sigma := r.uncertainty[i][j]; sigma > 0 {
					w /= sigma * sigma
					invVar += 1 / (sigma * sigma)
				}
				weightSum += w
				weightedFlux += w * r.flux[i][j]
			}

			if weightSum > 0 {
				newFlux[i][g] = weightedFlux / weightSum
			} else {
				newFlux[i][g] = math.NaN()
			}
			switch {
			case invVar > 0:
				newUncertainty[i][g] = 1 / math.Sqrt(invVar)
			case weightSum > 0:
				newUncertainty[i][g] = 0 // acceptable samples, but no uncertainty info
			default:
				newUncertainty[i][g] = math.NaN()
			}
			newOK[i][g] = okSum / float64(hi-lo)
		}
	}

	result := &Rainbow{
		wavelength:  cloneSlice(r.wavelength),
		time:        newTime,
		flux:        newFlux,
		uncertainty: newUncertainty,
		ok:          newOK,
		metadata:    make(map[string]any, len(r.metadata)),
		history:     make([]HistoryEntry, len(r.history)),
	}
	for k, v := range r.metadata {
		result.metadata[k] = v
	}
	copy(result.history, r.history)
	result.recordHistory(entry)
	return result, nil
}
