// Package gradcheck estimates gradients with central finite differences and
// compares them against analytic gradients.
//
// Example:
//
//	f := func(x *tensor.Matrix) (float64, error) { return x.PowScalar(2).Sum(), nil }
//	numeric, err := gradcheck.Matrix(f, x, gradcheck.Config{})
//	err = gradcheck.Compare(analytic, numeric, 1e-3)
package gradcheck

import (
	"math"
	"sync"

	"github.com/born-ml/microdiff/internal/tensor"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/diff/fd"
)

// ErrMismatch is returned by Compare when two gradients disagree.
var ErrMismatch = errors.New("gradient mismatch")

// Config controls the finite-difference estimate.
type Config struct {
	Step       float64 // Perturbation h (default: 1e-5)
	Tolerance  float64 // Absolute tolerance used by Check (default: 1e-3)
	Concurrent bool    // Evaluate probes concurrently; f must then be safe for concurrent use
}

// DefaultConfig returns the step and tolerance used throughout the tests.
func DefaultConfig() Config {
	return Config{Step: 1e-5, Tolerance: 1e-3}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Step == 0 {
		c.Step = d.Step
	}
	if c.Tolerance == 0 {
		c.Tolerance = d.Tolerance
	}
	return c
}

func (c Config) settings() *fd.Settings {
	return &fd.Settings{
		Formula:    fd.Central,
		Step:       c.Step,
		Concurrent: c.Concurrent,
	}
}

// Scalar estimates df/dx at x as (f(x+h) - f(x-h)) / 2h.
func Scalar(f func(float64) float64, x float64, cfg Config) float64 {
	cfg = cfg.withDefaults()
	return fd.Derivative(f, x, cfg.settings())
}

// Matrix estimates the gradient of the scalar function f at x, one entry at
// a time. The result has the shape of x. x is not modified.
//
// The first error returned by f aborts the estimate.
func Matrix(f func(*tensor.Matrix) (float64, error), x *tensor.Matrix, cfg Config) (*tensor.Matrix, error) {
	cfg = cfg.withDefaults()
	shape := x.Shape()

	var (
		mu       sync.Mutex
		firstErr error
	)
	probe := func(data []float64) float64 {
		m, err := tensor.New(shape.Rows, shape.Cols, data)
		if err == nil {
			var v float64
			if v, err = f(m); err == nil {
				return v
			}
		}
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
		return math.NaN()
	}

	grad := fd.Gradient(nil, probe, x.Data(), cfg.settings())
	if firstErr != nil {
		return nil, errors.WithMessage(firstErr, "finite-difference probe failed")
	}
	return tensor.New(shape.Rows, shape.Cols, grad)
}

// Compare returns ErrMismatch, naming the first offending entry, unless
// analytic and numeric have the same shape and agree within tol everywhere.
func Compare(analytic, numeric *tensor.Matrix, tol float64) error {
	if !analytic.Shape().Equal(numeric.Shape()) {
		return errors.Wrapf(ErrMismatch, "analytic gradient has shape %s, numeric has %s", analytic.Shape(), numeric.Shape())
	}
	shape := analytic.Shape()
	for i := 0; i < shape.Rows; i++ {
		for j := 0; j < shape.Cols; j++ {
			a, n := analytic.At(i, j), numeric.At(i, j)
			if math.Abs(a-n) > tol || math.IsNaN(a) || math.IsNaN(n) {
				return errors.Wrapf(ErrMismatch, "entry (%d,%d): analytic %g, numeric %g (tolerance %g)", i, j, a, n, tol)
			}
		}
	}
	return nil
}

// Check estimates the gradient of f at x and compares it against analytic
// using cfg.Tolerance.
func Check(f func(*tensor.Matrix) (float64, error), x, analytic *tensor.Matrix, cfg Config) error {
	cfg = cfg.withDefaults()
	numeric, err := Matrix(f, x, cfg)
	if err != nil {
		return err
	}
	return Compare(analytic, numeric, cfg.Tolerance)
}
