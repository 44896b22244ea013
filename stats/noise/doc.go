// Package noise provides frequency-domain noise diagnostics for light
// curves on a uniform time grid.
//
// The binned-scatter ladder (rainbow.MeasuredScatterInBins) answers whether
// scatter falls as 1/sqrt(N); a periodogram gives the complementary view,
// showing at which timescales correlated noise concentrates. For white
// noise of standard deviation sigma the one-sided power density is flat at
// 2 * sigma^2 * dt.
package noise
