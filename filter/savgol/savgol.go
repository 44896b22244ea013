package savgol

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidWindow indicates a window length that is not a positive odd integer.
	ErrInvalidWindow = errors.New("savgol: window length must be a positive odd integer")
	// ErrInvalidOrder indicates a polynomial order outside [0, windowLength).
	ErrInvalidOrder = errors.New("savgol: polynomial order must be non-negative and less than the window length")
	// ErrSignalTooShort indicates an input shorter than the window length.
	ErrSignalTooShort = errors.New("savgol: signal shorter than window length")
)

// Coefficients returns the convolution coefficients that evaluate the
// least-squares polynomial fit at the window center.
func Coefficients(windowLength, polyOrder int) ([]float64, error) {
	rows, err := projectionRows(windowLength, polyOrder)
	if err != nil {
		return nil, err
	}
	return rows[windowLength/2], nil
}

// Smooth applies a Savitzky-Golay filter to signal and returns a new slice
// of the same length. The leading and trailing half-windows are filled by
// evaluating the polynomial fitted to the first and last full window.
func Smooth(signal []float64, windowLength, polyOrder int) ([]float64, error) {
	rows, err := projectionRows(windowLength, polyOrder)
	if err != nil {
		return nil, err
	}
	n := len(signal)
	if n < windowLength {
		return nil, fmt.Errorf("%w: %d < %d", ErrSignalTooShort, n, windowLength)
	}

	half := windowLength / 2
	out := make([]float64, n)

	// Interior: slide the window and evaluate at its center.
	center := rows[half]
	for i := half; i < n-half; i++ {
		var sum float64
		for j, c := range center {
			sum += c * signal[i-half+j]
		}
		out[i] = sum
	}

	// Edges: evaluate the first/last window's fit at off-center positions.
	for i := range half {
		out[i] = dot(rows[i], signal[:windowLength])
		out[n-1-i] = dot(rows[windowLength-1-i], signal[n-windowLength:])
	}
	return out, nil
}

func dot(w, x []float64) float64 {
	var sum float64
	for j, c := range w {
		sum += c * x[j]
	}
	return sum
}

// projectionRows returns the w-by-w least-squares projection matrix for a
// polynomial of the given order over window offsets. Row t holds the weights
// that evaluate the fitted polynomial at position t of the window.
func projectionRows(windowLength, polyOrder int) ([][]float64, error) {
	if windowLength < 1 || windowLength%2 == 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWindow, windowLength)
	}
	if polyOrder < 0 || polyOrder >= windowLength {
		return nil, fmt.Errorf("%w: order %d, window %d", ErrInvalidOrder, polyOrder, windowLength)
	}

	w := windowLength
	m := polyOrder + 1
	half := float64(w / 2)

	// Vandermonde basis on centered offsets for conditioning.
	a := make([][]float64, w)
	for j := range a {
		a[j] = make([]float64, m)
		x := float64(j) - half
		p := 1.0
		for k := range m {
			a[j][k] = p
			p *= x
		}
	}

	// Gram matrix G = A^T A and its inverse.
	g := make([][]float64, m)
	for k := range g {
		g[k] = make([]float64, m)
		for l := range g[k] {
			var sum float64
			for j := range a {
				sum += a[j][k] * a[j][l]
			}
			g[k][l] = sum
		}
	}
	ginv, err := invert(g)
	if err != nil {
		return nil, err
	}

	// P = A G^-1 A^T.
	rows := make([][]float64, w)
	for t := range rows {
		rows[t] = make([]float64, w)
		for j := range rows[t] {
			var sum float64
			for k := range m {
				for l := range m {
					sum += a[t][k] * ginv[k][l] * a[j][l]
				}
			}
			rows[t][j] = sum
		}
	}
	return rows, nil
}

// invert returns the inverse of a small square matrix via Gauss-Jordan
// elimination with partial pivoting. The input is not modified.
func invert(m [][]float64) ([][]float64, error) {
	n := len(m)
	aug := make([][]float64, n)
	for i := range aug {
		aug[i] = make([]float64, 2*n)
		copy(aug[i], m[i])
		aug[i][n+i] = 1
	}

	for col := range n {
		pivot := col
		for r := col + 1; r < n; r++ {
			if math.Abs(aug[r][col]) > math.Abs(aug[pivot][col]) {
				pivot = r
			}
		}
		if aug[pivot][col] == 0 {
			return nil, errors.New("savgol: singular design matrix")
		}
		aug[col], aug[pivot] = aug[pivot], aug[col]

		inv := 1 / aug[col][col]
		for j := range aug[col] {
			aug[col][j] *= inv
		}
		for r := range n {
			if r == col {
				continue
			}
			f := aug[r][col]
			if f == 0 {
				continue
			}
			for j := range aug[r] {
				aug[r][j] -= f * aug[col][j]
			}
		}
	}

	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, n)
		copy(out[i], aug[i][n:])
	}
	return out, nil
}
