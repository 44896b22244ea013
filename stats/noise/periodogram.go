package noise

import (
	"errors"
	"fmt"

	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

var (
	// ErrEmptySignal indicates an empty light curve.
	ErrEmptySignal = errors.New("noise: light curve is empty")
	// ErrInvalidSampling indicates a non-positive time-sampling interval.
	ErrInvalidSampling = errors.New("noise: sampling interval must be positive")
)

// Periodogram computes the one-sided power spectral density of a uniformly
// sampled light curve with sampling interval dt. The mean is removed and
// the signal zero-padded to the next power of two before the transform.
// It returns the frequency of each bin and the density estimate, both of
// length fftSize/2 + 1.
func Periodogram(lightcurve []float64, dt float64) (freqs, power []float64, err error) {
	n := len(lightcurve)
	if n == 0 {
		return nil, nil, ErrEmptySignal
	}
	if dt <= 0 {
		return nil, nil, fmt.Errorf("%w: got %v", ErrInvalidSampling, dt)
	}

	var mean float64
	for _, v := range lightcurve {
		mean += v
	}
	mean /= float64(n)

	fftSize := nextPow2(n)
	in := make([]complex128, fftSize)
	for i, v := range lightcurve {
		in[i] = complex(v-mean, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, nil, fmt.Errorf("noise: failed to create FFT plan: %w", err)
	}
	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, nil, fmt.Errorf("noise: forward FFT failed: %w", err)
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for k := range bins {
		re[k] = real(out[k])
		im[k] = imag(out[k])
	}
	power = make([]float64, bins)
	vecmath.Power(power, re, im)

	// One-sided density normalization: interior bins gather the energy of
	// their negative-frequency mirrors.
	scale := dt / float64(n)
	vecmath.ScaleBlock(power, power, 2*scale)
	power[0] *= 0.5
	power[bins-1] *= 0.5

	freqs = make([]float64, bins)
	for k := range freqs {
		freqs[k] = float64(k) / (float64(fftSize) * dt)
	}
	return freqs, power, nil
}

// nextPow2 returns the smallest power of two >= n.
func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
