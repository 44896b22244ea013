package rainbow

import (
	"errors"
	"math"
	"testing"

	"github.com/afeinstein20/chromatic/internal/testutil"
)

func TestAddScalar(t *testing.T) {
	r := mustNew(t, 3, 5, 1, 0.1)
	sum, err := r.Add(Scalar(2))
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireGridNearlyEqual(t, sum.Flux(), testutil.ConstantGrid(3, 5, 3), 1e-12)
	// Raw operands carry no uncertainty; Add leaves sigma unchanged.
	testutil.RequireGridNearlyEqual(t, sum.Uncertainty(), testutil.ConstantGrid(3, 5, 0.1), 1e-12)
	// The source is untouched.
	testutil.RequireGridNearlyEqual(t, r.Flux(), testutil.ConstantGrid(3, 5, 1), 1e-12)
}

func TestVectorBroadcastPerWavelength(t *testing.T) {
	r := mustNew(t, 3, 5, 0, 0)
	sum, err := r.Add(Vector([]float64{1, 2, 3}))
	if err != nil {
		t.Fatal(err)
	}
	for i, row := range sum.Flux() {
		for j, v := range row {
			if v != float64(i+1) {
				t.Fatalf("flux[%d][%d] = %v, want %v", i, j, v, float64(i+1))
			}
		}
	}
}

func TestVectorBroadcastPerTime(t *testing.T) {
	r := mustNew(t, 3, 5, 0, 0)
	sum, err := r.Add(Vector([]float64{1, 2, 3, 4, 5}))
	if err != nil {
		t.Fatal(err)
	}
	for i, row := range sum.Flux() {
		for j, v := range row {
			if v != float64(j+1) {
				t.Fatalf("flux[%d][%d] = %v, want %v", i, j, v, float64(j+1))
			}
		}
	}
}

func TestGridElementwise(t *testing.T) {
	r := mustNew(t, 3, 5, 1, 0)
	grid := testutil.ConstantGrid(3, 5, 0)
	grid[1][2] = 7
	sum, err := r.Add(Grid(grid))
	if err != nil {
		t.Fatal(err)
	}
	if sum.Flux()[1][2] != 8 {
		t.Fatalf("flux[1][2] = %v, want 8", sum.Flux()[1][2])
	}
	if sum.Flux()[0][0] != 1 {
		t.Fatalf("flux[0][0] = %v, want 1", sum.Flux()[0][0])
	}
}

func TestVectorWrongLength(t *testing.T) {
	r := mustNew(t, 3, 5, 1, 0)
	_, err := r.Add(Vector([]float64{1, 2, 3, 4}))
	if !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("err = %v, want ErrShapeMismatch", err)
	}
}

func TestVectorAmbiguousOnSquare(t *testing.T) {
	r := mustNew(t, 4, 4, 1, 0)
	_, err := r.Add(Vector([]float64{1, 2, 3, 4}))
	if !errors.Is(err, ErrAmbiguousShape) {
		t.Fatalf("err = %v, want ErrAmbiguousShape", err)
	}
	// A length-1 vector is still fine on a square container.
	if _, err := r.Add(Vector([]float64{2})); err != nil {
		t.Fatalf("length-1 vector: %v", err)
	}
}

func TestContainerAxesMismatch(t *testing.T) {
	a := mustNew(t, 3, 5, 1, 0)
	b, err := New(testutil.Linspace(10, 12, 3), testutil.Sequence(5),
		testutil.ConstantGrid(3, 5, 1), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := a.Add(b); !errors.Is(err, ErrAxesMismatch) {
		t.Fatalf("err = %v, want ErrAxesMismatch", err)
	}
}

func TestMulUncertaintyPropagation(t *testing.T) {
	// x = 2 +- 0.1, y = 3 +- 0.2:
	// z = 6, sigma_z = sqrt(0.1^2*3^2 + 0.2^2*2^2) = 0.5.
	a := mustNew(t, 2, 3, 2, 0.1)
	b := mustNew(t, 2, 3, 3, 0.2)
	z, err := a.Mul(b)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireGridNearlyEqual(t, z.Flux(), testutil.ConstantGrid(2, 3, 6), 1e-12)
	testutil.RequireGridNearlyEqual(t, z.Uncertainty(), testutil.ConstantGrid(2, 3, 0.5), 1e-12)
}

func TestDivUncertaintyPropagation(t *testing.T) {
	// z = x/y with x = 6 +- 0.3, y = 2 +- 0.1:
	// sigma_z = sqrt(0.3^2/4 + 0.1^2 * 36/16) = sqrt(0.0225 + 0.0225).
	a := mustNew(t, 1, 2, 6, 0.3)
	b := mustNew(t, 1, 2, 2, 0.1)
	z, err := a.Div(b)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireGridNearlyEqual(t, z.Flux(), testutil.ConstantGrid(1, 2, 3), 1e-12)
	want := math.Sqrt(0.045)
	testutil.RequireGridNearlyEqual(t, z.Uncertainty(), testutil.ConstantGrid(1, 2, want), 1e-12)
}

func TestAddSubRoundTripWithRawOperand(t *testing.T) {
	a, err := New(testutil.Sequence(3), testutil.Sequence(5),
		testutil.NoiseGrid(11, 1, 0.05, 3, 5),
		testutil.ConstantGrid(3, 5, 0.07), nil)
	if err != nil {
		t.Fatal(err)
	}
	offset := testutil.NoiseGrid(13, 0, 1, 3, 5)

	up, err := a.Add(Grid(offset))
	if err != nil {
		t.Fatal(err)
	}
	back, err := up.Sub(Grid(offset))
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireGridNearlyEqual(t, back.Flux(), a.Flux(), 1e-12)
	// Raw operands have zero uncertainty, so the round trip returns a's.
	testutil.RequireGridNearlyEqual(t, back.Uncertainty(), a.Uncertainty(), 1e-12)
}

func TestAddSubRoundTripWithContainer(t *testing.T) {
	a, err := New(testutil.Sequence(2), testutil.Sequence(6),
		testutil.NoiseGrid(3, 1, 0.1, 2, 6),
		testutil.ConstantGrid(2, 6, 0.3), nil)
	if err != nil {
		t.Fatal(err)
	}
	b, err := New(testutil.Sequence(2), testutil.Sequence(6),
		testutil.NoiseGrid(5, 2, 0.1, 2, 6),
		testutil.ConstantGrid(2, 6, 0.4), nil)
	if err != nil {
		t.Fatal(err)
	}

	up, err := a.Add(b)
	if err != nil {
		t.Fatal(err)
	}
	back, err := up.Sub(b)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireGridNearlyEqual(t, back.Flux(), a.Flux(), 1e-9)
	// Each step adds the operand's variance: sqrt(0.3^2 + 2*0.4^2).
	want := math.Sqrt(0.3*0.3 + 2*0.4*0.4)
	testutil.RequireGridNearlyEqual(t, back.Uncertainty(),
		testutil.ConstantGrid(2, 6, want), 1e-12)
}

func TestOperationRecordsHistory(t *testing.T) {
	a := mustNew(t, 2, 3, 1, 0)
	z, err := a.Mul(Scalar(2))
	if err != nil {
		t.Fatal(err)
	}
	history := z.History()
	if len(history) != 1 {
		t.Fatalf("history length = %d, want 1", len(history))
	}
	if history[0].Action != "*" {
		t.Fatalf("action = %q, want %q", history[0].Action, "*")
	}
	if len(a.History()) != 0 {
		t.Fatal("source history was mutated")
	}
}

func TestModelDualBookkeeping(t *testing.T) {
	// Displayed flux goes through op on raw flux; uncertainty uses the
	// model as the algebraic operand. With flux=2, model=4, sigma=0.1,
	// multiplying by scalar 3 gives flux 6 but sigma 0.1*3 either way;
	// dividing by a container with model shows the divergence.
	flux := testutil.ConstantGrid(1, 2, 2)
	model := testutil.ConstantGrid(1, 2, 4)
	a, err := NewWithModel(testutil.Sequence(1), testutil.Sequence(2),
		flux, testutil.ConstantGrid(1, 2, 0.1), nil, model)
	if err != nil {
		t.Fatal(err)
	}

	z, err := a.Mul(Scalar(3))
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireGridNearlyEqual(t, z.Flux(), testutil.ConstantGrid(1, 2, 6), 1e-12)
	modelGrid, hasModel := z.Model()
	if !hasModel {
		t.Fatal("model lost by arithmetic")
	}
	testutil.RequireGridNearlyEqual(t, modelGrid, testutil.ConstantGrid(1, 2, 12), 1e-12)
	// sigma_z = sigma_x * |dz/dx| = 0.1 * 3, x taken from the model.
	testutil.RequireGridNearlyEqual(t, z.Uncertainty(), testutil.ConstantGrid(1, 2, 0.3), 1e-12)

	// Divide by a modeled container: dz/dx = 1/y uses the operand's model
	// (2), not its flux (8): sigma = 0.1/2 = 0.05.
	b, err := NewWithModel(testutil.Sequence(1), testutil.Sequence(2),
		testutil.ConstantGrid(1, 2, 8), nil, nil, testutil.ConstantGrid(1, 2, 2))
	if err != nil {
		t.Fatal(err)
	}
	q, err := a.Div(b)
	if err != nil {
		t.Fatal(err)
	}
	// Displayed flux divides the raw fluxes: 2/8.
	testutil.RequireGridNearlyEqual(t, q.Flux(), testutil.ConstantGrid(1, 2, 0.25), 1e-12)
	testutil.RequireGridNearlyEqual(t, q.Uncertainty(), testutil.ConstantGrid(1, 2, 0.05), 1e-12)
}
