// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides dense float64 matrices for microdiff.
//
// # Overview
//
// Matrix is the value type of matrix graphs. It is immutable through the
// arithmetic methods: every operation returns a new matrix. Shapes are
// always two-dimensional (rows × cols) and never empty.
//
// # Basic Usage
//
//	import "github.com/born-ml/microdiff/tensor"
//
//	func main() {
//	    x, err := tensor.FromRows([][]float64{{1, 2}, {3, 4}})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    y, _ := tensor.Identity(2)
//	    z, _ := x.MatMul(y) // Matrix product
//	    fmt.Println(z.Sum())
//	}
//
// # Errors
//
// Constructors and binary operations return ErrShape, wrapped with the
// offending shapes, for ragged or empty input and incompatible operands:
//
//	if _, err := x.Add(w); errors.Is(err, tensor.ErrShape) {
//	    // handle mismatch
//	}
package tensor
