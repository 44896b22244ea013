// Package scatter provides NaN-aware order statistics and point-to-point
// noise estimators for light curves and spectra.
//
// All estimators skip NaN samples rather than poisoning the result, matching
// the behavior expected for masked or invalid flux measurements. Standard
// deviations use the sample convention (n-1 denominator), since downstream
// code reports the statistical uncertainty of the scatter estimate itself.
package scatter
