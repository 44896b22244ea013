package rainbow

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Op is the closed set of binary operators supported by the operation
// engine. Each operator carries its fixed partial derivatives for
// uncertainty propagation; there is no runtime expression evaluation.
type Op int

const (
	// OpAdd is elementwise addition.
	OpAdd Op = iota
	// OpSub is elementwise subtraction.
	OpSub
	// OpMul is elementwise multiplication.
	OpMul
	// OpDiv is elementwise division.
	OpDiv
)

// String returns the operator symbol used in history entries.
func (op Op) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	default:
		return "?"
	}
}

// apply evaluates z = op(x, y).
func (op Op) apply(x, y float64) float64 {
	switch op {
	case OpAdd:
		return x + y
	case OpSub:
		return x - y
	case OpMul:
		return x * y
	case OpDiv:
		return x / y
	default:
		return math.NaN()
	}
}

// derivatives returns (dz/dx, dz/dy) evaluated at (x, y).
func (op Op) derivatives(x, y float64) (dzdx, dzdy float64) {
	switch op {
	case OpAdd, OpSub:
		return 1, 1
	case OpMul:
		return y, x
	case OpDiv:
		return 1 / y, -x / (y * y)
	default:
		return math.NaN(), math.NaN()
	}
}

// Operand is anything a binary operation can combine with a container:
// a [Scalar], a 1-D [Vector] (broadcast along the axis its length matches),
// a full [Grid], or another *Rainbow sharing both axes.
type Operand interface {
	operandLabel() string
}

type scalarOperand float64

type vectorOperand []float64

type gridOperand [][]float64

// Scalar wraps a single value applied to every sample.
func Scalar(v float64) Operand { return scalarOperand(v) }

// Vector wraps a 1-D array. A length-Nw vector broadcasts across time
// (one constant per wavelength); a length-Nt vector broadcasts across
// wavelength (one constant per time).
func Vector(v []float64) Operand { return vectorOperand(v) }

// Grid wraps a full (Nw, Nt) array applied elementwise.
func Grid(g [][]float64) Operand { return gridOperand(g) }

func (o scalarOperand) operandLabel() string { return fmt.Sprintf("scalar(%v)", float64(o)) }
func (o vectorOperand) operandLabel() string { return fmt.Sprintf("vector(len=%d)", len(o)) }
func (o gridOperand) operandLabel() string   { return "grid" + gridShape(o) }
func (r *Rainbow) operandLabel() string {
	nw, nt := r.Shape()
	return "rainbow" + shapeString(nw, nt)
}

// resolved is an operand cast against a concrete container shape.
type resolved struct {
	at      func(i, j int) float64 // raw operand, combined with flux
	modelAt func(i, j int) float64 // operand for the model grid (container model-or-flux)
	yAt     func(i, j int) float64 // algebraic operand for uncertainty propagation
	sigmaAt func(i, j int) float64 // operand uncertainty (zero unless a container)
	rows    [][]float64            // dense per-row view when available, enables vecmath kernels
}

// resolve casts other against r's shape, applying the broadcasting and
// ambiguity rules. A 1-D operand on a square container is rejected because
// the broadcast direction cannot be inferred.
func (r *Rainbow) resolve(other Operand) (resolved, error) {
	nw, nt := r.Shape()

	zero := func(int, int) float64 { return 0 }

	switch o := other.(type) {
	case *Rainbow:
		if !slicesEqualNaN(r.wavelength, o.wavelength) || !slicesEqualNaN(r.time, o.time) {
			ow, ot := o.Shape()
			return resolved{}, fmt.Errorf("%w: %s vs %s", ErrAxesMismatch,
				shapeString(nw, nt), shapeString(ow, ot))
		}
		fluxAt := func(i, j int) float64 { return o.flux[i][j] }
		modelOrFlux := fluxAt
		if o.model != nil {
			modelOrFlux = func(i, j int) float64 { return o.model[i][j] }
		}
		return resolved{
			at:      fluxAt,
			modelAt: modelOrFlux,
			yAt:     modelOrFlux,
			sigmaAt: func(i, j int) float64 { return o.uncertainty[i][j] },
			rows:    o.flux,
		}, nil

	case scalarOperand:
		v := float64(o)
		at := func(int, int) float64 { return v }
		return resolved{at: at, modelAt: at, yAt: at, sigmaAt: zero}, nil

	case vectorOperand:
		if len(o) == 1 {
			v := o[0]
			at := func(int, int) float64 { return v }
			return resolved{at: at, modelAt: at, yAt: at, sigmaAt: zero}, nil
		}
		if len(o) == nw || len(o) == nt {
			if nw == nt {
				return resolved{}, fmt.Errorf("%w: container is %s", ErrAmbiguousShape,
					shapeString(nw, nt))
			}
			var at func(i, j int) float64
			if len(o) == nw {
				at = func(i, _ int) float64 { return o[i] } // per-wavelength constant
			} else {
				at = func(_, j int) float64 { return o[j] } // per-time constant
			}
			return resolved{at: at, modelAt: at, yAt: at, sigmaAt: zero}, nil
		}
		return resolved{}, fmt.Errorf("%w: %s and (%d,)", ErrShapeMismatch,
			shapeString(nw, nt), len(o))

	case gridOperand:
		if err := checkGrid("operand", o, nw, nt); err != nil {
			return resolved{}, err
		}
		at := func(i, j int) float64 { return o[i][j] }
		return resolved{at: at, modelAt: at, yAt: at, sigmaAt: zero, rows: o}, nil

	default:
		return resolved{}, fmt.Errorf("%w: unsupported operand %T", ErrShapeMismatch, other)
	}
}

// Add returns a new container with other added to the flux (and model, if
// present), with propagated uncertainties.
func (r *Rainbow) Add(other Operand) (*Rainbow, error) { return r.applyOperation(OpAdd, other) }

// Sub returns a new container with other subtracted from the flux (and
// model, if present), with propagated uncertainties.
func (r *Rainbow) Sub(other Operand) (*Rainbow, error) { return r.applyOperation(OpSub, other) }

// Mul returns a new container with the flux (and model, if present)
// multiplied by other, with propagated uncertainties.
func (r *Rainbow) Mul(other Operand) (*Rainbow, error) { return r.applyOperation(OpMul, other) }

// Div returns a new container with the flux (and model, if present) divided
// by other, with propagated uncertainties.
func (r *Rainbow) Div(other Operand) (*Rainbow, error) { return r.applyOperation(OpDiv, other) }

// applyOperation implements the shared machinery behind Add/Sub/Mul/Div.
//
// The displayed flux (and model) are computed by pushing the raw grids
// through op directly. The propagated uncertainty instead uses model-or-flux
// as the algebraic operand on both sides. When a model is attached these two
// paths legitimately diverge; they must stay separate.
func (r *Rainbow) applyOperation(op Op, other Operand) (*Rainbow, error) {
	entry := newHistoryEntry(op.String(), map[string]any{"other": other.operandLabel()})

	res, err := r.resolve(other)
	if err != nil {
		return nil, err
	}

	result := r.Copy()
	combineGrid(op, result.flux, res.rows, res.at)
	if result.model != nil {
		var modelRows [][]float64
		if o, isRainbow := other.(*Rainbow); isRainbow && o.model != nil {
			modelRows = o.model
		} else if isRainbow {
			modelRows = o.flux
		} else {
			modelRows = res.rows
		}
		combineGrid(op, result.model, modelRows, res.modelAt)
	}

	// z = op(x, y) with x = model-or-flux of the source:
	// var(z) = sigma_x^2 (dz/dx)^2 + sigma_y^2 (dz/dy)^2.
	x := r.flux
	if r.model != nil {
		x = r.model
	}
	for i := range result.uncertainty {
		for j := range result.uncertainty[i] {
			sx := r.uncertainty[i][j]
			sy := res.sigmaAt(i, j)
			dzdx, dzdy := op.derivatives(x[i][j], res.yAt(i, j))
			result.uncertainty[i][j] = math.Sqrt(sx*sx*dzdx*dzdx + sy*sy*dzdy*dzdy)
		}
	}

	result.recordHistory(entry)
	return result, nil
}

// combineGrid computes dst[i][j] = op(dst[i][j], other) in place, where dst
// starts as a copy of the source grid. Dense Add/Mul go through vecmath
// block kernels; the remaining cases fall back to scalar loops.
func combineGrid(op Op, dst, otherRows [][]float64, otherAt func(i, j int) float64) {
	if otherRows != nil {
		switch op {
		case OpAdd:
			for i := range dst {
				vecmath.AddBlockInPlace(dst[i], otherRows[i])
			}
			return
		case OpMul:
			for i := range dst {
				vecmath.MulBlockInPlace(dst[i], otherRows[i])
			}
			return
		}
	}
	for i := range dst {
		for j := range dst[i] {
			dst[i][j] = op.apply(dst[i][j], otherAt(i, j))
		}
	}
}
