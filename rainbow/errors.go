package rainbow

import "errors"

var (
	// ErrShapeMismatch indicates an array that cannot be cast to the
	// container's (Nw, Nt) shape.
	ErrShapeMismatch = errors.New("rainbow: shapes cannot be cast together")
	// ErrAxesMismatch indicates two containers whose wavelength or time
	// axes are not exactly equal.
	ErrAxesMismatch = errors.New("rainbow: containers do not share wavelength/time axes")
	// ErrAmbiguousShape indicates a 1-D operand supplied to a container
	// with equal wavelength and time counts, where the broadcast direction
	// cannot be inferred.
	ErrAmbiguousShape = errors.New("rainbow: equal wavelength and time counts, cannot tell which axis a 1-D operand belongs to")
	// ErrMissingArgument indicates a required argument that was not supplied.
	ErrMissingArgument = errors.New("rainbow: missing required argument")
	// ErrUnsupportedAxis indicates a normalization axis that is neither
	// wavelength-like nor time-like.
	ErrUnsupportedAxis = errors.New("rainbow: unsupported axis")
	// ErrUnsupportedMethod indicates an unrecognized detrending method.
	ErrUnsupportedMethod = errors.New("rainbow: unsupported method")
	// ErrInvalidBinFactor indicates a time-binning multiplicity below 1.
	ErrInvalidBinFactor = errors.New("rainbow: bin factor must be at least 1")
)
