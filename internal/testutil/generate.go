// Package testutil provides deterministic signal and grid generators plus
// assertion helpers shared across test packages.
package testutil

import (
	"math/rand"
)

// GaussianNoise generates normally distributed noise with a fixed seed for
// reproducibility.
func GaussianNoise(seed int64, sigma float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = rng.NormFloat64() * sigma
	}
	return out
}

// ConstantGrid returns an nw-by-nt grid filled with value.
func ConstantGrid(nw, nt int, value float64) [][]float64 {
	out := make([][]float64, nw)
	for i := range out {
		out[i] = make([]float64, nt)
		for j := range out[i] {
			out[i][j] = value
		}
	}
	return out
}

// NoiseGrid returns an nw-by-nt grid of Gaussian noise around a baseline,
// seeded per row so rows are independent but reproducible.
func NoiseGrid(seed int64, baseline, sigma float64, nw, nt int) [][]float64 {
	out := make([][]float64, nw)
	for i := range out {
		row := GaussianNoise(seed+int64(i), sigma, nt)
		for j := range row {
			row[j] += baseline
		}
		out[i] = row
	}
	return out
}

// Sequence returns [0, 1, ..., n-1] as float64.
func Sequence(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}
	return out
}

// Linspace returns n evenly spaced values from start to stop inclusive.
func Linspace(start, stop float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	return out
}
