// Package tensor provides the dense numeric substrate used by the autodiff engine.
//
// A Matrix is a row-major rectangular array of float64 entries backed by
// gonum's mat.Dense. Operations never modify their operands: every
// arithmetic method returns a new Matrix. The only mutator is Set, which
// exists for finite-difference probing and parameter updates.
//
// Example:
//
//	a, _ := tensor.FromRows([][]float64{{1, 2}, {3, 4}})
//	b, _ := tensor.Identity(2)
//	c, _ := a.MatMul(b)
package tensor

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Matrix is a dense two-dimensional array of float64 values.
type Matrix struct {
	dense *mat.Dense
}

// wrap takes ownership of d.
func wrap(d *mat.Dense) *Matrix {
	return &Matrix{dense: d}
}

// Shape returns the dimensions of the matrix.
func (m *Matrix) Shape() Shape {
	r, c := m.dense.Dims()
	return Shape{Rows: r, Cols: c}
}

// At returns the entry at row i, column j.
func (m *Matrix) At(i, j int) float64 {
	return m.dense.At(i, j)
}

// Set assigns the entry at row i, column j.
//
// Matrices are otherwise treated as immutable; Set is reserved for
// finite-difference probing and in-place parameter updates.
func (m *Matrix) Set(i, j int, v float64) {
	m.dense.Set(i, j, v)
}

// Row returns a copy of row i.
func (m *Matrix) Row(i int) []float64 {
	return mat.Row(nil, i, m.dense)
}

// Rows returns a copy of the entries as a slice of rows.
func (m *Matrix) Rows() [][]float64 {
	s := m.Shape()
	rows := make([][]float64, s.Rows)
	for i := range rows {
		rows[i] = m.Row(i)
	}
	return rows
}

// Data returns a row-major copy of all entries.
func (m *Matrix) Data() []float64 {
	s := m.Shape()
	data := make([]float64, 0, s.NumElements())
	for i := 0; i < s.Rows; i++ {
		data = append(data, m.dense.RawRowView(i)...)
	}
	return data
}

// Clone returns a deep copy.
func (m *Matrix) Clone() *Matrix {
	return wrap(mat.DenseCopyOf(m.dense))
}

// EqualApprox reports whether both matrices have the same shape and every
// pair of entries differs by at most tol (absolute or relative).
func (m *Matrix) EqualApprox(other *Matrix, tol float64) bool {
	if !m.Shape().Equal(other.Shape()) {
		return false
	}
	return mat.EqualApprox(m.dense, other.dense, tol)
}

// String formats the matrix one row per line.
func (m *Matrix) String() string {
	return fmt.Sprintf("%v", mat.Formatted(m.dense, mat.Squeeze()))
}

// GoString renders the matrix as a constructor-like literal.
func (m *Matrix) GoString() string {
	return fmt.Sprintf("Matrix(%v)", m.Rows())
}
