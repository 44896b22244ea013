package median

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidSize indicates a non-positive filter window dimension.
var ErrInvalidSize = errors.New("median: filter size must be positive")

// reflectIndex folds an out-of-range index back into [0, n) by mirroring
// across the edges (d c b a | a b c d | d c b a).
func reflectIndex(i, n int) int {
	if n == 1 {
		return 0
	}
	period := 2 * n
	i = ((i % period) + period) % period
	if i >= n {
		i = period - 1 - i
	}
	return i
}

// Filter2D applies a (sizeW, sizeT) median filter to grid, where grid is
// indexed [wavelength][time]. The output has the same shape as the input,
// even when a window dimension exceeds the corresponding axis length.
// The input is not modified.
func Filter2D(grid [][]float64, sizeW, sizeT int) ([][]float64, error) {
	if sizeW < 1 || sizeT < 1 {
		return nil, fmt.Errorf("%w: got (%d, %d)", ErrInvalidSize, sizeW, sizeT)
	}
	nw := len(grid)
	if nw == 0 {
		return [][]float64{}, nil
	}
	nt := len(grid[0])

	out := make([][]float64, nw)
	window := make([]float64, 0, sizeW*sizeT)

	for i := range out {
		out[i] = make([]float64, nt)
		for j := range out[i] {
			window = window[:0]
			for di := range sizeW {
				wi := reflectIndex(i+di-sizeW/2, nw)
				for dj := range sizeT {
					tj := reflectIndex(j+dj-sizeT/2, nt)
					window = append(window, grid[wi][tj])
				}
			}
			out[i][j] = medianOf(window)
		}
	}
	return out, nil
}

// medianOf returns the median of values. The slice is sorted in place.
func medianOf(values []float64) float64 {
	sort.Float64s(values)
	n := len(values)
	if n%2 == 1 {
		return values[n/2]
	}
	return 0.5 * (values[n/2-1] + values[n/2])
}
