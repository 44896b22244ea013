package savgol

import (
	"errors"
	"math"
	"testing"
)

func TestCoefficientsSumToOne(t *testing.T) {
	c, err := Coefficients(11, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(c) != 11 {
		t.Fatalf("len = %d, want 11", len(c))
	}
	var sum float64
	for _, v := range c {
		sum += v
	}
	if math.Abs(sum-1) > 1e-12 {
		t.Fatalf("coefficient sum = %v, want 1", sum)
	}
}

func TestCoefficientsOrderOneIsMovingAverage(t *testing.T) {
	// On a symmetric window, linear and constant fits give the same center
	// value: the plain mean.
	c, err := Coefficients(5, 1)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range c {
		if math.Abs(v-0.2) > 1e-12 {
			t.Fatalf("c[%d] = %v, want 0.2", i, v)
		}
	}
}

func TestSmoothPreservesPolynomial(t *testing.T) {
	// A quadratic must pass through an order-2 filter unchanged, edges included.
	n := 20
	sig := make([]float64, n)
	for i := range sig {
		x := float64(i)
		sig[i] = 3 + 0.5*x - 0.1*x*x
	}
	out, err := Smooth(sig, 7, 2)
	if err != nil {
		t.Fatal(err)
	}
	for i := range sig {
		if math.Abs(out[i]-sig[i]) > 1e-9 {
			t.Fatalf("index %d: got %v, want %v", i, out[i], sig[i])
		}
	}
}

func TestSmoothLengthAndConstant(t *testing.T) {
	sig := []float64{5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5}
	out, err := Smooth(sig, 11, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != len(sig) {
		t.Fatalf("len = %d, want %d", len(out), len(sig))
	}
	for i, v := range out {
		if math.Abs(v-5) > 1e-12 {
			t.Fatalf("out[%d] = %v, want 5", i, v)
		}
	}
}

func TestSmoothErrors(t *testing.T) {
	if _, err := Smooth([]float64{1, 2, 3}, 4, 1); !errors.Is(err, ErrInvalidWindow) {
		t.Fatalf("even window: err = %v, want ErrInvalidWindow", err)
	}
	if _, err := Smooth([]float64{1, 2, 3}, 3, 3); !errors.Is(err, ErrInvalidOrder) {
		t.Fatalf("order >= window: err = %v, want ErrInvalidOrder", err)
	}
	if _, err := Smooth([]float64{1, 2, 3}, 5, 1); !errors.Is(err, ErrSignalTooShort) {
		t.Fatalf("short signal: err = %v, want ErrSignalTooShort", err)
	}
}
