// Package rainbow provides the core container for multi-wavelength
// time-series brightness measurements and the transformations that derive
// new containers from old ones.
//
// A [Rainbow] holds a wavelength axis (Nw), a time axis (Nt), and a set of
// Nw-by-Nt grids: flux, its uncertainty, a per-sample ok weight, and an
// optional model. Every transformation is purely functional: it deep-copies
// the source, edits only the copy, appends a history entry describing the
// action and its parameters, and returns the copy. A container is never
// mutated after it has been returned.
//
// Common workflows:
//   - arithmetic with uncertainty propagation: Add / Sub / Mul / Div
//   - rescaling to a reference spectrum or light curve: Normalize
//   - smooth-signal removal: RemoveTrends
//   - noise-scaling diagnostics over coarsened time grids:
//     MeasuredScatterInBins
package rainbow
