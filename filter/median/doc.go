// Package median provides a 2-D rectangular median filter over
// wavelength-by-time flux grids.
//
// Each output sample is the median of a (sizeW, sizeT) neighborhood centered
// on the input sample, with reflected boundaries. The filter is a runtime
// only; choosing a neighborhood appropriate for the data is the caller's
// concern.
package median
