// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/microdiff/internal/tensor"
)

// Type aliases for public API

// Matrix is a dense row-major matrix of float64.
type Matrix = tensor.Matrix

// Shape is the (rows, cols) size of a matrix.
type Shape = tensor.Shape

// ErrShape reports ragged or empty input, or incompatible operand shapes.
var ErrShape = tensor.ErrShape

// FromRows creates a matrix from a rectangular, non-empty slice of rows.
// The input is copied.
func FromRows(rows [][]float64) (*Matrix, error) {
	return tensor.FromRows(rows)
}

// New creates a rows × cols matrix from row-major data. The data is copied.
func New(rows, cols int, data []float64) (*Matrix, error) {
	return tensor.New(rows, cols, data)
}

// Zeros creates a rows × cols matrix of zeros.
func Zeros(rows, cols int) (*Matrix, error) {
	return tensor.Zeros(rows, cols)
}

// Ones creates a rows × cols matrix of ones.
func Ones(rows, cols int) (*Matrix, error) {
	return tensor.Ones(rows, cols)
}

// Full creates a rows × cols matrix filled with v.
func Full(rows, cols int, v float64) (*Matrix, error) {
	return tensor.Full(rows, cols, v)
}

// Identity creates a size × size identity matrix.
func Identity(size int) (*Matrix, error) {
	return tensor.Identity(size)
}
