package scatter

import (
	"math"
	"sort"
)

// madToSigma converts a median absolute deviation to an equivalent Gaussian
// standard deviation (1 / Phi^-1(3/4)).
const madToSigma = 1.4826022185056018

// Method selects the scatter statistic.
type Method int

const (
	// StandardDeviation is the sample standard deviation (n-1 denominator).
	StandardDeviation Method = iota
	// MAD is the median absolute deviation, scaled to an equivalent
	// Gaussian standard deviation.
	MAD
)

// String returns the canonical name of the method.
func (m Method) String() string {
	switch m {
	case MAD:
		return "MAD"
	default:
		return "standard-deviation"
	}
}

// validOnly returns the finite (non-NaN) samples of values.
func validOnly(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// Mean returns the arithmetic mean of values, skipping NaNs.
// Returns NaN if no valid samples exist.
func Mean(values []float64) float64 {
	var sum float64
	var n int
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

// StdDev returns the sample standard deviation of values, skipping NaNs.
// Returns NaN for fewer than two valid samples.
func StdDev(values []float64) float64 {
	mean := Mean(values)
	if math.IsNaN(mean) {
		return math.NaN()
	}
	var sumSq float64
	var n int
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		d := v - mean
		sumSq += d * d
		n++
	}
	if n < 2 {
		return math.NaN()
	}
	return math.Sqrt(sumSq / float64(n-1))
}

// Median returns the median of values, skipping NaNs.
// Returns NaN if no valid samples exist.
func Median(values []float64) float64 {
	return Percentile(values, 50)
}

// MADScatter returns the median absolute deviation of values scaled to an
// equivalent Gaussian standard deviation, skipping NaNs.
func MADScatter(values []float64) float64 {
	med := Median(values)
	if math.IsNaN(med) {
		return math.NaN()
	}
	dev := validOnly(values)
	for i, v := range dev {
		dev[i] = math.Abs(v - med)
	}
	return madToSigma * Median(dev)
}

// Estimate computes the scatter of values using the given method.
func Estimate(values []float64, method Method) float64 {
	if method == MAD {
		return MADScatter(values)
	}
	return StdDev(values)
}

// Percentile returns the p-th percentile (0..100) of values, skipping NaNs,
// with linear interpolation between order statistics. Returns NaN if no
// valid samples exist.
func Percentile(values []float64, p float64) float64 {
	valid := validOnly(values)
	if len(valid) == 0 {
		return math.NaN()
	}
	sort.Float64s(valid)

	if p <= 0 {
		return valid[0]
	}
	if p >= 100 {
		return valid[len(valid)-1]
	}

	rank := p / 100 * float64(len(valid)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return valid[lo]
	}
	frac := rank - float64(lo)
	return valid[lo] + frac*(valid[hi]-valid[lo])
}

// MedianDiff returns the median spacing between consecutive samples.
// Returns NaN for fewer than two samples.
func MedianDiff(values []float64) float64 {
	if len(values) < 2 {
		return math.NaN()
	}
	diffs := make([]float64, len(values)-1)
	for i := range diffs {
		diffs[i] = values[i+1] - values[i]
	}
	return Median(diffs)
}
