package tensor

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// FromRows creates a matrix from a rectangular slice of rows.
// The input is copied.
//
// Returns ErrShape if there are no rows, the first row is empty, or the
// rows have different lengths.
//
// Example:
//
//	m, err := tensor.FromRows([][]float64{{1, 2, 3}, {4, 5, 6}})
func FromRows(rows [][]float64) (*Matrix, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.Wrap(ErrShape, "matrix must have at least one row and one column")
	}
	cols := len(rows[0])
	data := make([]float64, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, errors.Wrapf(ErrShape, "row %d has length %d, want %d (all rows must have the same length)", i, len(row), cols)
		}
		data = append(data, row...)
	}
	return wrap(mat.NewDense(len(rows), cols, data)), nil
}

// New creates a rows×cols matrix from row-major data. The slice is copied.
func New(rows, cols int, data []float64) (*Matrix, error) {
	shape := Shape{Rows: rows, Cols: cols}
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if len(data) != shape.NumElements() {
		return nil, errors.Wrapf(ErrShape, "shape %s requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}
	buf := make([]float64, len(data))
	copy(buf, data)
	return wrap(mat.NewDense(rows, cols, buf)), nil
}

// Zeros creates a rows×cols matrix of zeros.
func Zeros(rows, cols int) (*Matrix, error) {
	shape := Shape{Rows: rows, Cols: cols}
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	return zeros(shape), nil
}

// Ones creates a rows×cols matrix of ones.
func Ones(rows, cols int) (*Matrix, error) {
	return Full(rows, cols, 1)
}

// Full creates a rows×cols matrix with every entry set to v.
func Full(rows, cols int, v float64) (*Matrix, error) {
	shape := Shape{Rows: rows, Cols: cols}
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	return full(shape, v), nil
}

// Identity creates a size×size identity matrix.
func Identity(size int) (*Matrix, error) {
	m, err := Zeros(size, size)
	if err != nil {
		return nil, err
	}
	for i := 0; i < size; i++ {
		m.dense.Set(i, i, 1)
	}
	return m, nil
}

// ZerosLike returns a zero matrix with the shape of m.
func (m *Matrix) ZerosLike() *Matrix {
	return zeros(m.Shape())
}

// OnesLike returns a matrix of ones with the shape of m.
func (m *Matrix) OnesLike() *Matrix {
	return full(m.Shape(), 1)
}

// zeros and full assume a validated shape.
func zeros(s Shape) *Matrix {
	return wrap(mat.NewDense(s.Rows, s.Cols, nil))
}

func full(s Shape, v float64) *Matrix {
	data := make([]float64, s.NumElements())
	for i := range data {
		data[i] = v
	}
	return wrap(mat.NewDense(s.Rows, s.Cols, data))
}
