// Package savgol provides Savitzky-Golay polynomial smoothing for 1-D
// time series.
//
// A Savitzky-Golay filter fits a low-order polynomial to a sliding window by
// least squares and evaluates it at the window center, which smooths noise
// while preserving low-frequency structure better than a plain moving
// average. Near the edges the polynomial fitted to the first or last full
// window is evaluated directly, so the output covers the full input length.
//
// This package provides both the coefficient design and the smoothing
// runtime; window lengths must be odd.
package savgol
