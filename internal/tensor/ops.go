package tensor

import (
	"math"

	"github.com/born-ml/microdiff/internal/parallel"
	"gonum.org/v1/gonum/mat"
)

// applyConfig splits Apply over rows for tall matrices.
var applyConfig = parallel.DefaultConfig()

// Add returns m + other. Shapes must match exactly.
func (m *Matrix) Add(other *Matrix) (*Matrix, error) {
	if !m.Shape().Equal(other.Shape()) {
		return nil, shapeMismatch("add", m.Shape(), other.Shape())
	}
	var out mat.Dense
	out.Add(m.dense, other.dense)
	return wrap(&out), nil
}

// Sub returns m - other. Shapes must match exactly.
func (m *Matrix) Sub(other *Matrix) (*Matrix, error) {
	if !m.Shape().Equal(other.Shape()) {
		return nil, shapeMismatch("sub", m.Shape(), other.Shape())
	}
	var out mat.Dense
	out.Sub(m.dense, other.dense)
	return wrap(&out), nil
}

// MulElem returns the element-wise (Hadamard) product m ⊙ other.
func (m *Matrix) MulElem(other *Matrix) (*Matrix, error) {
	if !m.Shape().Equal(other.Shape()) {
		return nil, shapeMismatch("mul", m.Shape(), other.Shape())
	}
	var out mat.Dense
	out.MulElem(m.dense, other.dense)
	return wrap(&out), nil
}

// DivElem returns the element-wise quotient m / other.
func (m *Matrix) DivElem(other *Matrix) (*Matrix, error) {
	if !m.Shape().Equal(other.Shape()) {
		return nil, shapeMismatch("div", m.Shape(), other.Shape())
	}
	var out mat.Dense
	out.DivElem(m.dense, other.dense)
	return wrap(&out), nil
}

// MatMul returns the matrix product m @ other.
//
// Requires m.Cols == other.Rows; the result has shape (m.Rows, other.Cols).
func (m *Matrix) MatMul(other *Matrix) (*Matrix, error) {
	a, b := m.Shape(), other.Shape()
	if a.Cols != b.Rows {
		return nil, shapeMismatch("matmul", a, b)
	}
	var out mat.Dense
	out.Mul(m.dense, other.dense)
	return wrap(&out), nil
}

// AddScalar returns m with c added to every entry.
func (m *Matrix) AddScalar(c float64) *Matrix {
	return m.Apply(func(v float64) float64 { return v + c })
}

// Scale returns m with every entry multiplied by c.
func (m *Matrix) Scale(c float64) *Matrix {
	var out mat.Dense
	out.Scale(c, m.dense)
	return wrap(&out)
}

// PowScalar returns m with every entry raised to p.
func (m *Matrix) PowScalar(p float64) *Matrix {
	return m.Apply(func(v float64) float64 { return math.Pow(v, p) })
}

// Exp returns the element-wise exponential.
func (m *Matrix) Exp() *Matrix {
	return m.Apply(math.Exp)
}

// Apply returns a new matrix with fn applied to every entry. Rows may be
// processed concurrently, so fn must be safe for concurrent use.
func (m *Matrix) Apply(fn func(float64) float64) *Matrix {
	s := m.Shape()
	out := mat.NewDense(s.Rows, s.Cols, nil)
	parallel.For(s.Rows, applyConfig, func(i int) {
		dst := out.RawRowView(i)
		for j, v := range m.dense.RawRowView(i) {
			dst[j] = fn(v)
		}
	})
	return wrap(out)
}

// T returns the transpose as a new matrix.
func (m *Matrix) T() *Matrix {
	return wrap(mat.DenseCopyOf(m.dense.T()))
}

// Sum returns the total of all entries.
//
// Sum is a plain reduction; it is not part of any differentiable graph.
func (m *Matrix) Sum() float64 {
	return mat.Sum(m.dense)
}
